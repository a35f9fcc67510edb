package game

import (
	"context"
	"errors"
	"testing"

	"github.com/DhavalSuthar-24/socialsoccer/internal/address"
	"github.com/DhavalSuthar-24/socialsoccer/internal/address/addresstest"
	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
	"github.com/DhavalSuthar-24/socialsoccer/internal/models"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user/usertest"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
)

const (
	alice = "aaaaaaaaaaaaaaaaaaaaaaaa" // organiser
	bob   = "bbbbbbbbbbbbbbbbbbbbbbbb"
	carol = "cccccccccccccccccccccccc"
)

type fixture struct {
	t         *testing.T
	ctx       context.Context
	repo      *fakeRepo
	users     *usertest.Repository
	userSvc   *user.Service
	addresses *address.Service
	service   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cipher := addresstest.PrefixCipher{}
	users := usertest.NewRepository(
		user.User{ID: alice, Email: "alice@example.com"},
		user.User{ID: bob, Email: "bob@example.com"},
		user.User{ID: carol, Email: "carol@example.com"},
	)
	addresses := address.NewService(addresstest.NewRepository(), cipher, logger.Discard())
	userSvc := user.NewService(users, addresses, cipher, logger.Discard())
	repo := newFakeRepo(users)
	return &fixture{
		t:         t,
		ctx:       context.Background(),
		repo:      repo,
		users:     users,
		userSvc:   userSvc,
		addresses: addresses,
		service:   NewService(repo, userSvc, addresses, logger.Discard()),
	}
}

func (f *fixture) address(ownerID string, p models.Point) uint {
	f.t.Helper()
	a, err := f.addresses.Create(f.ctx, ownerID, address.Fields{LineOne: "1 Pitch Lane", City: "Dublin", Country: "Ireland"}, p)
	if err != nil {
		f.t.Fatalf("create address: %v", err)
	}
	f.repo.points[a.ID] = p
	return a.ID
}

func (f *fixture) game(organiserID string, mutate ...func(*NewGame)) *Game {
	f.t.Helper()
	in := NewGame{
		Day:             "Tuesday",
		Active:          true,
		Time:            "19:30",
		NumberOfPlayers: 10,
		Level:           LevelIntermediate,
	}
	for _, m := range mutate {
		m(&in)
	}
	if in.AddressID == 0 {
		in.AddressID = f.address(organiserID, models.Point{Longitude: -6.26, Latitude: 53.35})
	}
	g, err := f.service.Create(f.ctx, organiserID, in)
	if err != nil {
		f.t.Fatalf("create game: %v", err)
	}
	return g
}

func (f *fixture) roster(gameID uint) []string {
	return f.repo.rosters[gameID]
}

func (f *fixture) inRoster(gameID uint, userID string) bool {
	for _, id := range f.roster(gameID) {
		if id == userID {
			return true
		}
	}
	return false
}

func (f *fixture) request(gameID uint, userID string) *RequestToJoin {
	f.t.Helper()
	req, err := f.service.RequestToJoin(f.ctx, gameID, userID)
	if err != nil {
		f.t.Fatalf("request to join: %v", err)
	}
	return req
}

func (f *fixture) stored(requestID uint) (RequestToJoin, bool) {
	req, ok := f.repo.requests[requestID]
	return req, ok
}

func TestCreatePutsOrganiserOnRosterOnce(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)

	roster := f.roster(g.ID)
	if len(roster) != 1 || roster[0] != alice {
		t.Fatalf("expected roster [%s], got %v", alice, roster)
	}

	loaded, err := f.service.GetByID(f.ctx, g.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !loaded.HasPlayer(alice) || len(loaded.Players) != 1 {
		t.Fatalf("expected organiser loaded on the roster, got %+v", loaded.Players)
	}
}

func TestCreateValidates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NewGame)
	}{
		{"too few players", func(n *NewGame) { n.NumberOfPlayers = 7 }},
		{"too many players", func(n *NewGame) { n.NumberOfPlayers = 15 }},
		{"unknown day", func(n *NewGame) { n.Day = "Funday" }},
		{"unknown level", func(n *NewGame) { n.Level = "PROFESSIONAL" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := NewGame{Day: "Monday", Time: "18:00", NumberOfPlayers: 8, Level: LevelBeginner, AddressID: f.address(alice, models.Point{})}
			tt.mutate(&in)
			_, err := f.service.Create(f.ctx, alice, in)
			if common.KindOf(err) != common.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateUnknownAddressIsGenericError(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Create(f.ctx, alice, NewGame{
		Day: "Monday", Time: "18:00", NumberOfPlayers: 8, Level: LevelBeginner, AddressID: 999,
	})
	if err == nil || common.KindOf(err) != common.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestCreateRejectsAnotherUsersAddress(t *testing.T) {
	f := newFixture(t)
	home, err := f.userSvc.SaveAddress(f.ctx, alice, address.Fields{LineOne: "7 Private Road", City: "Cork"}, models.Point{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.repo.points[home.ID] = models.Point{}

	for _, organiser := range []string{bob, carol} {
		_, err := f.service.Create(f.ctx, organiser, NewGame{
			Day: "Monday", Time: "18:00", NumberOfPlayers: 8, Level: LevelBeginner, AddressID: home.ID,
		})
		if !errors.Is(err, common.ErrAuthorization) {
			t.Fatalf("expected authorization error for %s, got %v", organiser, err)
		}
	}
	if len(f.repo.games) != 0 {
		t.Fatalf("expected no games stored, got %d", len(f.repo.games))
	}
}

func TestCreateRejectsProfileAddress(t *testing.T) {
	f := newFixture(t)
	home, err := f.userSvc.SaveAddress(f.ctx, alice, address.Fields{City: "Cork"}, models.Point{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.repo.points[home.ID] = models.Point{}

	_, err = f.service.Create(f.ctx, alice, NewGame{
		Day: "Monday", Time: "18:00", NumberOfPlayers: 8, Level: LevelBeginner, AddressID: home.ID,
	})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateRejectsAddressOfAnotherGame(t *testing.T) {
	f := newFixture(t)
	first := f.game(alice)

	_, err := f.service.Create(f.ctx, alice, NewGame{
		Day: "Friday", Time: "20:00", NumberOfPlayers: 12, Level: LevelAdvanced, AddressID: first.LocationID,
	})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.repo.games) != 1 {
		t.Fatalf("expected only the first game, got %d", len(f.repo.games))
	}
}

func TestCreateTranslatesLocationRace(t *testing.T) {
	f := newFixture(t)
	addressID := f.address(alice, models.Point{})
	f.repo.raceOnCreateGame = true

	_, err := f.service.Create(f.ctx, alice, NewGame{
		Day: "Monday", Time: "18:00", NumberOfPlayers: 8, Level: LevelBeginner, AddressID: addressID,
	})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.repo.rosters) != 0 {
		t.Fatalf("expected no roster rows, got %v", f.repo.rosters)
	}
}

func TestGetByIDAbsent(t *testing.T) {
	f := newFixture(t)
	g, err := f.service.GetByID(f.ctx, 42)
	if err != nil || g != nil {
		t.Fatalf("expected absent game without error, got %v %v", g, err)
	}
}

func TestVerifyIsOrganiser(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)

	if _, err := f.service.VerifyIsOrganiser(f.ctx, g.ID, alice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.service.VerifyIsOrganiser(f.ctx, g.ID, bob); !errors.Is(err, common.ErrAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if _, err := f.service.VerifyIsOrganiser(f.ctx, 999, alice); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddPlayerIsIdempotent(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	for i := 0; i < 2; i++ {
		if err := f.service.AddPlayer(f.ctx, g.ID, bob); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(f.roster(g.ID)) != 2 {
		t.Fatalf("expected two players, got %v", f.roster(g.ID))
	}
	for i := 0; i < 2; i++ {
		if err := f.service.RemovePlayer(f.ctx, g.ID, bob); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if f.inRoster(g.ID, bob) {
		t.Fatalf("expected bob removed")
	}
}

func TestRequestToJoinCreatesPending(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)

	req := f.request(g.ID, bob)
	if !req.Pending() {
		t.Fatalf("expected pending request")
	}
	if f.inRoster(g.ID, bob) {
		t.Fatalf("a pending request must not add to the roster")
	}
}

func TestRequestToJoinDuplicate(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	req := f.request(g.ID, bob)

	_, err := f.service.RequestToJoin(f.ctx, g.ID, bob)
	if !errors.Is(err, common.ErrDuplicateRequest) {
		t.Fatalf("expected duplicate request while pending, got %v", err)
	}

	if err := f.service.Accept(f.ctx, alice, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = f.service.RequestToJoin(f.ctx, g.ID, bob)
	if !errors.Is(err, common.ErrDuplicateRequest) {
		t.Fatalf("expected duplicate request while accepted, got %v", err)
	}
}

func TestRequestToJoinRosterMember(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)

	_, err := f.service.RequestToJoin(f.ctx, g.ID, alice)
	if !errors.Is(err, common.ErrDuplicateRequest) {
		t.Fatalf("expected duplicate request for the organiser, got %v", err)
	}
	if len(f.repo.requests) != 0 {
		t.Fatalf("expected no request rows")
	}
}

func TestRequestToJoinTranslatesUniqueViolation(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	f.repo.raceOnCreateRequest = true

	_, err := f.service.RequestToJoin(f.ctx, g.ID, bob)
	if common.KindOf(err) != common.KindDuplicateRequest {
		t.Fatalf("expected duplicate request, got %v", err)
	}
}

func TestRequestToJoinMissingGame(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.RequestToJoin(f.ctx, 404, bob)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAccept(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	req := f.request(g.ID, bob)

	if err := f.service.Accept(f.ctx, alice, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := f.stored(req.ID)
	if stored.Accepted == nil || !*stored.Accepted {
		t.Fatalf("expected accepted = true, got %v", stored.Accepted)
	}
	if !f.inRoster(g.ID, bob) {
		t.Fatalf("expected bob on the roster")
	}
}

func TestAcceptPastCapacityIsAllowed(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice, func(n *NewGame) { n.NumberOfPlayers = 8 })
	for i := 0; i < 7; i++ {
		_ = f.service.AddPlayer(f.ctx, g.ID, string(rune('d'+i))+"xxxxxxxxxxxxxxxxxxxxxxx")
	}
	req := f.request(g.ID, bob)

	if err := f.service.Accept(f.ctx, alice, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.roster(g.ID)) != 9 {
		t.Fatalf("expected 9 players on an 8 player game, got %d", len(f.roster(g.ID)))
	}
}

func TestReject(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	req := f.request(g.ID, bob)

	if err := f.service.Reject(f.ctx, alice, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := f.stored(req.ID)
	if stored.Accepted == nil || *stored.Accepted {
		t.Fatalf("expected accepted = false, got %v", stored.Accepted)
	}
	if f.inRoster(g.ID, bob) {
		t.Fatalf("rejected player must not be on the roster")
	}
}

func TestRejectAfterAcceptRemovesFromRoster(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	req := f.request(g.ID, bob)

	if err := f.service.Accept(f.ctx, alice, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.service.Reject(f.ctx, alice, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.inRoster(g.ID, bob) {
		t.Fatalf("expected bob off the roster after reject")
	}

	// and back again
	if err := f.service.Accept(f.ctx, alice, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.inRoster(g.ID, bob) {
		t.Fatalf("expected bob back on the roster")
	}
}

func TestModerationRequiresOrganiser(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	req := f.request(g.ID, bob)
	if err := f.service.AddPlayer(f.ctx, g.ID, carol); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	actions := map[string]func() error{
		"accept": func() error { return f.service.Accept(f.ctx, carol, req.ID) },
		"reject": func() error { return f.service.Reject(f.ctx, carol, req.ID) },
		"remove": func() error { return f.service.Remove(f.ctx, carol, g.ID, bob) },
		"rate":   func() error { return f.service.Rate(f.ctx, carol, g.ID, bob, 5) },
	}
	for name, action := range actions {
		if err := action(); !errors.Is(err, common.ErrAuthorization) {
			t.Fatalf("%s: expected authorization error, got %v", name, err)
		}
	}

	stored, _ := f.stored(req.ID)
	if !stored.Pending() {
		t.Fatalf("expected request to stay pending")
	}
	if f.inRoster(g.ID, bob) || len(f.roster(g.ID)) != 2 {
		t.Fatalf("expected roster unchanged, got %v", f.roster(g.ID))
	}
	if len(f.repo.ratings) != 0 {
		t.Fatalf("expected no ratings")
	}
}

func TestModerateMissingRequest(t *testing.T) {
	f := newFixture(t)
	if err := f.service.Accept(f.ctx, alice, 12345); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	req := f.request(g.ID, bob)
	if err := f.service.Accept(f.ctx, alice, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.service.Cancel(f.ctx, g.ID, bob); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.inRoster(g.ID, bob) {
		t.Fatalf("expected bob off the roster")
	}
	if _, ok := f.stored(req.ID); ok {
		t.Fatalf("expected the request row to be deleted")
	}

	// bob can apply again afterwards
	f.request(g.ID, bob)
}

func TestOrganiserCannotCancel(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	if err := f.service.Cancel(f.ctx, g.ID, alice); !errors.Is(err, common.ErrAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if !f.inRoster(g.ID, alice) {
		t.Fatalf("organiser must stay on the roster")
	}
}

func TestOrganiserCannotRemoveThemselves(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	if err := f.service.Remove(f.ctx, alice, g.ID, alice); !errors.Is(err, common.ErrAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

// Organiser A creates a game, B asks to join, A accepts and later removes B.
func TestFullJoinCycle(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)

	req := f.request(g.ID, bob)
	open, err := f.service.OpenRequestsForGame(f.ctx, alice, g.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open) != 1 || open[0].Player.ID != bob {
		t.Fatalf("expected bob's open request, got %+v", open)
	}

	if err := f.service.Accept(f.ctx, alice, req.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if open, _ := f.service.OpenRequestsForGame(f.ctx, alice, g.ID); len(open) != 0 {
		t.Fatalf("expected no open requests after accept, got %+v", open)
	}
	if roster := f.roster(g.ID); len(roster) != 2 || roster[1] != bob {
		t.Fatalf("expected roster [alice bob], got %v", roster)
	}

	if err := f.service.Remove(f.ctx, alice, g.ID, bob); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if roster := f.roster(g.ID); len(roster) != 1 || roster[0] != alice {
		t.Fatalf("expected roster [alice], got %v", roster)
	}
	if len(f.repo.requests) != 0 {
		t.Fatalf("expected request row deleted, have %d", len(f.repo.requests))
	}
}

func TestOpenRequestsForGameRequiresOrganiser(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	if _, err := f.service.OpenRequestsForGame(f.ctx, bob, g.ID); !errors.Is(err, common.ErrAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestOpenRequestsForOrganiserIncludesAverageRating(t *testing.T) {
	f := newFixture(t)
	first := f.game(alice)
	second := f.game(alice)
	other := f.game(carol)

	if err := f.service.Rate(f.ctx, alice, first.ID, bob, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.service.Rate(f.ctx, carol, other.ID, bob, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.request(second.ID, bob)
	f.request(second.ID, carol)
	f.request(other.ID, bob) // carol's game, not alice's

	open, err := f.service.OpenRequestsForOrganiser(f.ctx, alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("expected two open requests, got %+v", open)
	}
	if open[0].Player.ID != bob || open[0].AverageRating == nil || *open[0].AverageRating != 4.5 {
		t.Fatalf("expected bob with average 4.5, got %+v", open[0])
	}
	if open[1].Player.ID != carol || open[1].AverageRating != nil {
		t.Fatalf("expected carol without ratings, got %+v", open[1])
	}
}

func TestAverageRating(t *testing.T) {
	ratings := func(values ...int) []Rating {
		out := make([]Rating, 0, len(values))
		for _, v := range values {
			out = append(out, Rating{Rating: v})
		}
		return out
	}

	if got := AverageRating(nil); got != nil {
		t.Fatalf("expected nil for no ratings, got %v", *got)
	}
	tests := []struct {
		in   []Rating
		want float64
	}{
		{ratings(5, 3, 4), 4},
		{ratings(5, 4), 4.5},
		{ratings(1), 1},
	}
	for _, tt := range tests {
		got := AverageRating(tt.in)
		if got == nil || *got != tt.want {
			t.Fatalf("AverageRating(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRateCreatesThenUpdates(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)

	if err := f.service.Rate(f.ctx, alice, g.ID, bob, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.service.Rate(f.ctx, alice, g.ID, bob, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.repo.ratings) != 1 || f.repo.ratings[0].Rating != 5 {
		t.Fatalf("expected a single rating of 5, got %+v", f.repo.ratings)
	}
}

func TestRateFallsBackToUpdateOnRace(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)
	f.repo.raceOnCreateRating = true

	if err := f.service.Rate(f.ctx, alice, g.ID, bob, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.repo.ratings) != 1 || f.repo.ratings[0].Rating != 4 {
		t.Fatalf("expected the concurrent row updated to 4, got %+v", f.repo.ratings)
	}
}

func TestRateStoresValueWithoutRangeCheck(t *testing.T) {
	f := newFixture(t)
	g := f.game(alice)

	if err := f.service.Rate(f.ctx, alice, g.ID, bob, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.repo.ratings) != 1 || f.repo.ratings[0].Rating != 7 {
		t.Fatalf("expected the value stored unchanged, got %+v", f.repo.ratings)
	}
}

func TestLatestGames(t *testing.T) {
	f := newFixture(t)
	f.game(alice)
	second := f.game(bob)
	third := f.game(carol)

	games, err := f.service.LatestGames(f.ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 2 || games[0].ID != third.ID || games[1].ID != second.ID {
		t.Fatalf("expected [%d %d], got %+v", third.ID, second.ID, games)
	}
}

func TestFilterGames(t *testing.T) {
	f := newFixture(t)
	on := func(day string, level Level, size int) func(*NewGame) {
		return func(n *NewGame) {
			n.Day = day
			n.Level = level
			n.NumberOfPlayers = size
		}
	}
	mondayBeginners := f.game(alice, on("Monday", LevelBeginner, 10))
	f.game(alice, on("Monday", LevelAdvanced, 10))
	f.game(bob, on("Friday", LevelBeginner, 12))

	day, level := "Monday", string(LevelBeginner)
	games, err := f.service.FilterGames(f.ctx, FilterCriteria{Day: &day, Level: &level})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 || games[0].ID != mondayBeginners.ID {
		t.Fatalf("expected only game %d, got %+v", mondayBeginners.ID, games)
	}

	all, _ := f.service.FilterGames(f.ctx, FilterCriteria{})
	if len(all) != 3 {
		t.Fatalf("expected no filtering with empty criteria, got %d games", len(all))
	}

	size := 12
	bySize, _ := f.service.FilterGames(f.ctx, FilterCriteria{NumberOfPlayers: &size})
	if len(bySize) != 1 || bySize[0].NumberOfPlayers != 12 {
		t.Fatalf("expected the 12 player game, got %+v", bySize)
	}
}

func TestNearestGames(t *testing.T) {
	f := newFixture(t)
	ref := models.Point{Longitude: -6.26, Latitude: 53.35}

	// IDs created far to near so that distance order differs from id order.
	offsets := []float64{0.06, 0.05, 0.04, 0.03, 0.02, 0.01, 0}
	var ids []uint
	for _, off := range offsets {
		p := models.Point{Longitude: ref.Longitude + off, Latitude: ref.Latitude}
		g := f.game(alice, func(n *NewGame) { n.AddressID = f.address(alice, p) })
		ids = append(ids, g.ID)
	}
	inactive := f.game(alice, func(n *NewGame) {
		n.Active = false
		n.AddressID = f.address(alice, ref)
	})

	got, err := f.service.NearestGames(f.ctx, ref, NearestGamesCount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 games, got %d", len(got))
	}
	want := []uint{ids[6], ids[5], ids[4], ids[3], ids[2]}
	for i, g := range got {
		if g.ID != want[i] {
			t.Fatalf("position %d: expected game %d, got %d", i, want[i], g.ID)
		}
		if g.ID == inactive.ID {
			t.Fatalf("inactive game returned")
		}
	}
	if got[0].Distance != 0 {
		t.Fatalf("expected distance 0 for the game at the reference point, got %v", got[0].Distance)
	}
	if got[0].Coordinates != ref {
		t.Fatalf("expected coordinates %+v, got %+v", ref, got[0].Coordinates)
	}
}

func TestGamesNearUserRequiresAddress(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.GamesNearUser(f.ctx, bob, NearestGamesCount)
	if !errors.Is(err, common.ErrProfileIncomplete) {
		t.Fatalf("expected profile incomplete, got %v", err)
	}
}

func TestGamesNearUser(t *testing.T) {
	f := newFixture(t)
	home := models.Point{Longitude: -9.05, Latitude: 53.27}
	if _, err := f.userSvc.SaveAddress(f.ctx, bob, address.Fields{City: "Galway"}, home); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	near := f.game(alice, func(n *NewGame) { n.AddressID = f.address(alice, home) })
	f.game(alice)

	got, err := f.service.GamesNearUser(f.ctx, bob, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != near.ID {
		t.Fatalf("expected game %d, got %+v", near.ID, got)
	}
}

func TestBuildGameDataForMap(t *testing.T) {
	f := newFixture(t)
	p := models.Point{Longitude: -8.47, Latitude: 51.9}
	g := f.game(alice, func(n *NewGame) { n.AddressID = f.address(alice, p) })
	if err := f.service.AddPlayer(f.ctx, g.ID, bob); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, _ := f.service.GetByID(f.ctx, g.ID)
	data, err := f.service.BuildGameDataForMap(f.ctx, loaded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MapData{
		ID:              g.ID,
		Level:           LevelIntermediate,
		Day:             "Tuesday",
		Time:            "19:30",
		Coordinates:     p,
		NumberOfPlayers: 10,
		PlayerCount:     2,
	}
	if data != want {
		t.Fatalf("expected %+v, got %+v", want, data)
	}
}

func TestDetail(t *testing.T) {
	f := newFixture(t)
	if err := f.userSvc.UpdateNames(f.ctx, alice, "Alice", "Organiser"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g := f.game(alice)
	f.request(g.ID, bob)

	owner, err := f.service.Detail(f.ctx, g.ID, alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !owner.IsOwner || !owner.IsCurrentPlayer || owner.HasOpenRequest {
		t.Fatalf("unexpected flags for organiser: %+v", owner)
	}
	if owner.Location.LineOne != "1 Pitch Lane" {
		t.Fatalf("expected decrypted location, got %+v", owner.Location)
	}
	if owner.Organiser.FirstName != "Alice" {
		t.Fatalf("expected organiser name, got %+v", owner.Organiser)
	}

	applicant, _ := f.service.Detail(f.ctx, g.ID, bob)
	if applicant.IsOwner || applicant.IsCurrentPlayer || !applicant.HasOpenRequest {
		t.Fatalf("unexpected flags for applicant: %+v", applicant)
	}

	anonymous, _ := f.service.Detail(f.ctx, g.ID, "")
	if anonymous.IsOwner || anonymous.IsCurrentPlayer || anonymous.HasOpenRequest {
		t.Fatalf("unexpected flags for anonymous viewer: %+v", anonymous)
	}
}

func TestManagedAndParticipatingGames(t *testing.T) {
	f := newFixture(t)
	own := f.game(bob)
	joined := f.game(alice)
	if err := f.service.AddPlayer(f.ctx, joined.ID, bob); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.game(carol)

	managed, _ := f.service.ManagedGames(f.ctx, bob)
	if len(managed) != 1 || managed[0].ID != own.ID {
		t.Fatalf("expected managed [%d], got %+v", own.ID, managed)
	}
	participating, _ := f.service.GamesParticipatingIn(f.ctx, bob)
	if len(participating) != 1 || participating[0].ID != joined.ID {
		t.Fatalf("expected participating [%d] without own game, got %+v", joined.ID, participating)
	}
}

func TestGamesWithMatchingIDs(t *testing.T) {
	f := newFixture(t)
	a := f.game(alice)
	f.game(alice)
	c := f.game(alice)

	games, err := f.service.GamesWithMatchingIDs(f.ctx, []uint{c.ID, a.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected two games, got %d", len(games))
	}
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	mine := f.game(alice)
	theirs := f.game(carol)
	if err := f.service.AddPlayer(f.ctx, theirs.ID, alice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.service.Rate(f.ctx, carol, theirs.ID, alice, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.request(mine.ID, bob)

	d, err := f.service.Dashboard(f.ctx, alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.ManagedGames) != 1 || len(d.ParticipatingGames) != 1 || len(d.OpenRequests) != 1 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if d.AverageRating == nil || *d.AverageRating != 4 {
		t.Fatalf("expected average rating 4, got %v", d.AverageRating)
	}
}
