package game

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/DhavalSuthar-24/socialsoccer/internal/models"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user/usertest"
)

// fakeRepo is an in-memory GameRepository. Rosters keep insertion order.
type fakeRepo struct {
	mu       sync.Mutex
	users    *usertest.Repository
	points   map[uint]models.Point // address id -> point
	nextID   uint
	clock    time.Time
	games    map[uint]Game
	rosters  map[uint][]string
	requests map[uint]RequestToJoin
	ratings  []Rating

	raceOnCreateGame    bool
	raceOnCreateRequest bool
	raceOnCreateRating  bool
}

func newFakeRepo(users *usertest.Repository) *fakeRepo {
	return &fakeRepo{
		users:    users,
		points:   make(map[uint]models.Point),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		games:    make(map[uint]Game),
		rosters:  make(map[uint][]string),
		requests: make(map[uint]RequestToJoin),
	}
}

var uniqueViolation = &pgconn.PgError{Code: "23505"}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

// hydrate fills the roster of a stored game.
func (r *fakeRepo) hydrate(g Game) Game {
	ids := r.rosters[g.ID]
	g.Players = make([]user.User, 0, len(ids))
	for _, id := range ids {
		u, _ := r.users.GetUserByID(context.Background(), id)
		if u == nil {
			u = &user.User{ID: id}
		}
		g.Players = append(g.Players, *u)
	}
	return g
}

func (r *fakeRepo) CreateGame(ctx context.Context, g *Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.points[g.LocationID]; !ok {
		return errors.New("violates foreign key constraint games_location_id_fkey")
	}
	if r.raceOnCreateGame {
		return uniqueViolation
	}
	for _, existing := range r.games {
		if existing.LocationID == g.LocationID {
			return uniqueViolation
		}
	}
	g.ID = r.id()
	r.clock = r.clock.Add(time.Minute)
	g.CreatedOn = r.clock
	stored := *g
	stored.Players = nil
	r.games[g.ID] = stored
	return nil
}

func (r *fakeRepo) GetGameByID(ctx context.Context, id uint) (*Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return nil, nil
	}
	g = r.hydrate(g)
	return &g, nil
}

func (r *fakeRepo) GetGamesByIDs(ctx context.Context, ids []uint) ([]Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Game
	// storage order, not request order
	for _, g := range r.sortedGames(func(a, b Game) bool { return a.ID < b.ID }) {
		if slices.Contains(ids, g.ID) {
			out = append(out, r.hydrate(g))
		}
	}
	return out, nil
}

func (r *fakeRepo) sortedGames(less func(a, b Game) bool) []Game {
	games := make([]Game, 0, len(r.games))
	for _, g := range r.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return less(games[i], games[j]) })
	return games
}

func newestFirst(a, b Game) bool { return a.CreatedOn.After(b.CreatedOn) }

func (r *fakeRepo) LatestGames(ctx context.Context, limit int) ([]Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Game
	for _, g := range r.sortedGames(newestFirst) {
		if len(out) == limit {
			break
		}
		out = append(out, r.hydrate(g))
	}
	return out, nil
}

func (r *fakeRepo) FilterGames(ctx context.Context, c FilterCriteria) ([]Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Game
	for _, g := range r.sortedGames(newestFirst) {
		if c.Day != nil && g.Day != *c.Day {
			continue
		}
		if c.Level != nil && string(g.Level) != *c.Level {
			continue
		}
		if c.NumberOfPlayers != nil && g.NumberOfPlayers != *c.NumberOfPlayers {
			continue
		}
		out = append(out, r.hydrate(g))
	}
	return out, nil
}

// NearestGames uses planar distance in degrees, which preserves order for the small test grids.
func (r *fakeRepo) NearestGames(ctx context.Context, p models.Point, count int) ([]NearestGame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []NearestGame
	for _, g := range r.games {
		if !g.Active {
			continue
		}
		gp := r.points[g.LocationID]
		raw, _ := json.Marshal(models.NewGeoJSONPoint(gp))
		rows = append(rows, NearestGame{
			ID:       g.ID,
			Location: raw,
			Distance: math.Hypot(gp.Longitude-p.Longitude, gp.Latitude-p.Latitude),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Distance < rows[j].Distance })
	if len(rows) > count {
		rows = rows[:count]
	}
	return rows, nil
}

func (r *fakeRepo) GamesByOrganiser(ctx context.Context, organiserID string) ([]Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Game
	for _, g := range r.sortedGames(newestFirst) {
		if g.OrganiserID == organiserID {
			out = append(out, r.hydrate(g))
		}
	}
	return out, nil
}

func (r *fakeRepo) LocationInUse(ctx context.Context, addressID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.games {
		if g.LocationID == addressID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GamesParticipatingIn(ctx context.Context, playerID string) ([]Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Game
	for _, g := range r.sortedGames(newestFirst) {
		if g.OrganiserID != playerID && slices.Contains(r.rosters[g.ID], playerID) {
			out = append(out, r.hydrate(g))
		}
	}
	return out, nil
}

func (r *fakeRepo) AddPlayer(ctx context.Context, gameID uint, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.rosters[gameID], playerID) {
		r.rosters[gameID] = append(r.rosters[gameID], playerID)
	}
	return nil
}

func (r *fakeRepo) RemovePlayer(ctx context.Context, gameID uint, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rosters[gameID] = slices.DeleteFunc(r.rosters[gameID], func(id string) bool { return id == playerID })
	return nil
}

func (r *fakeRepo) CountPlayers(ctx context.Context, gameID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rosters[gameID])), nil
}

func (r *fakeRepo) CreateRequest(ctx context.Context, req *RequestToJoin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceOnCreateRequest {
		return uniqueViolation
	}
	for _, existing := range r.requests {
		if existing.GameID == req.GameID && existing.PlayerID == req.PlayerID {
			return uniqueViolation
		}
	}
	req.ID = r.id()
	r.clock = r.clock.Add(time.Second)
	req.CreatedAt = r.clock
	r.requests[req.ID] = *req
	return nil
}

func (r *fakeRepo) GetRequestByID(ctx context.Context, id uint) (*RequestToJoin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (r *fakeRepo) GetRequest(ctx context.Context, gameID uint, playerID string) (*RequestToJoin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.GameID == gameID && req.PlayerID == playerID {
			return &req, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) SetRequestAccepted(ctx context.Context, id uint, accepted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req := r.requests[id]
	req.Accepted = &accepted
	r.requests[id] = req
	return nil
}

func (r *fakeRepo) DeleteRequest(ctx context.Context, gameID uint, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, req := range r.requests {
		if req.GameID == gameID && req.PlayerID == playerID {
			delete(r.requests, id)
		}
	}
	return nil
}

func (r *fakeRepo) openRequests(match func(RequestToJoin) bool) []RequestToJoin {
	var out []RequestToJoin
	for _, req := range r.requests {
		if req.Accepted == nil && match(req) {
			u, _ := r.users.GetUserByID(context.Background(), req.PlayerID)
			req.Player = u
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *fakeRepo) OpenRequestsForGame(ctx context.Context, gameID uint) ([]RequestToJoin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openRequests(func(req RequestToJoin) bool { return req.GameID == gameID }), nil
}

func (r *fakeRepo) OpenRequestsForOrganiser(ctx context.Context, organiserID string) ([]RequestToJoin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openRequests(func(req RequestToJoin) bool {
		return r.games[req.GameID].OrganiserID == organiserID
	}), nil
}

func (r *fakeRepo) GetRating(ctx context.Context, playerID string, gameID uint) (*Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rating := range r.ratings {
		if rating.PlayerID == playerID && rating.GameID == gameID {
			return &rating, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateRating(ctx context.Context, rating *Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceOnCreateRating {
		// another writer got there first
		r.ratings = append(r.ratings, Rating{ID: r.id(), PlayerID: rating.PlayerID, GameID: rating.GameID, Rating: 1})
		return uniqueViolation
	}
	rating.ID = r.id()
	r.ratings = append(r.ratings, *rating)
	return nil
}

func (r *fakeRepo) UpdateRating(ctx context.Context, playerID string, gameID uint, value int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.ratings {
		if r.ratings[i].PlayerID == playerID && r.ratings[i].GameID == gameID {
			r.ratings[i].Rating = value
		}
	}
	return nil
}

func (r *fakeRepo) RatingsForPlayers(ctx context.Context, playerIDs []string) ([]Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Rating
	for _, rating := range r.ratings {
		if slices.Contains(playerIDs, rating.PlayerID) {
			out = append(out, rating)
		}
	}
	return out, nil
}

func (r *fakeRepo) WithTransaction(ctx context.Context, txFunc func(GameRepository) error) error {
	return txFunc(r)
}
