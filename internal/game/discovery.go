package game

import (
	"context"
	"fmt"

	"github.com/DhavalSuthar-24/socialsoccer/internal/models"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
)

const (
	DefaultLatestLimit = 10
	MaxLatestLimit     = 100
	NearestGamesCount  = 5
)

func (s *Service) LatestGames(ctx context.Context, limit int) ([]Game, error) {
	games, err := s.repo.LatestGames(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("latest games: %w", err)
	}
	return games, nil
}

func (s *Service) FilterGames(ctx context.Context, criteria FilterCriteria) ([]Game, error) {
	games, err := s.repo.FilterGames(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("filter games: %w", err)
	}
	return games, nil
}

// NearestGames returns up to count active games closest to p. Distances come from the storage
// query; full records are loaded afterwards and put back into distance order.
func (s *Service) NearestGames(ctx context.Context, p models.Point, count int) ([]NearestGameData, error) {
	rows, err := s.repo.NearestGames(ctx, p, count)
	if err != nil {
		return nil, fmt.Errorf("nearest games: %w", err)
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	games, err := s.GamesWithMatchingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*Game, len(games))
	for i := range games {
		byID[games[i].ID] = &games[i]
	}

	out := make([]NearestGameData, 0, len(rows))
	for _, r := range rows {
		g, ok := byID[r.ID]
		if !ok {
			continue
		}
		var loc models.GeoJSONPoint
		if err := loc.Scan([]byte(r.Location)); err != nil {
			return nil, fmt.Errorf("game %d location: %w", r.ID, err)
		}
		out = append(out, NearestGameData{
			MapData:  mapData(g, loc.Point()),
			Distance: r.Distance,
		})
	}
	return out, nil
}

// GamesNearUser runs NearestGames from the user's home address.
func (s *Service) GamesNearUser(ctx context.Context, userID string, count int) ([]NearestGameData, error) {
	home, err := s.users.HomePoint(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.NearestGames(ctx, home, count)
}

func (s *Service) GamesWithMatchingIDs(ctx context.Context, ids []uint) ([]Game, error) {
	games, err := s.repo.GetGamesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("games by id: %w", err)
	}
	return games, nil
}

func (s *Service) ManagedGames(ctx context.Context, organiserID string) ([]Game, error) {
	games, err := s.repo.GamesByOrganiser(ctx, organiserID)
	if err != nil {
		return nil, fmt.Errorf("managed games: %w", err)
	}
	return games, nil
}

// GamesParticipatingIn lists games the player is rostered on but does not organise.
func (s *Service) GamesParticipatingIn(ctx context.Context, playerID string) ([]Game, error) {
	games, err := s.repo.GamesParticipatingIn(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("participating games: %w", err)
	}
	return games, nil
}

// BuildGameDataForMap resolves the game's point. Address fields stay encrypted and are left out.
func (s *Service) BuildGameDataForMap(ctx context.Context, g *Game) (MapData, error) {
	loc := g.Location
	if loc == nil {
		var err error
		if loc, err = s.addresses.Get(ctx, g.LocationID); err != nil {
			return MapData{}, err
		}
	}
	point, err := s.addresses.Coordinates(ctx, loc.CoordinatesID)
	if err != nil {
		return MapData{}, err
	}
	return mapData(g, point), nil
}

func (s *Service) BuildMapData(ctx context.Context, games []Game) ([]MapData, error) {
	out := make([]MapData, 0, len(games))
	for i := range games {
		d, err := s.BuildGameDataForMap(ctx, &games[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func mapData(g *Game, p models.Point) MapData {
	return MapData{
		ID:              g.ID,
		Level:           g.Level,
		Day:             g.Day,
		Time:            g.Time,
		Coordinates:     p,
		NumberOfPlayers: g.NumberOfPlayers,
		PlayerCount:     len(g.Players),
	}
}

// Detail is the single-game page: decrypted location, roster names and the viewer's relation to
// the game. viewerID may be empty for anonymous callers.
func (s *Service) Detail(ctx context.Context, gameID uint, viewerID string) (*Detail, error) {
	g, err := s.mustGet(ctx, gameID)
	if err != nil {
		return nil, err
	}

	data, err := s.BuildGameDataForMap(ctx, g)
	if err != nil {
		return nil, err
	}
	loc := g.Location
	if loc == nil {
		if loc, err = s.addresses.Get(ctx, g.LocationID); err != nil {
			return nil, err
		}
	}
	fields, err := s.addresses.Decrypt(loc)
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		MapData:  data,
		Active:   g.Active,
		Location: fields,
		Players:  make([]user.PlayerSummary, 0, len(g.Players)),
	}
	for i := range g.Players {
		summary, err := s.users.Summary(&g.Players[i])
		if err != nil {
			return nil, err
		}
		detail.Players = append(detail.Players, summary)
		if summary.ID == g.OrganiserID {
			detail.Organiser = summary
		}
	}
	if detail.Organiser.ID == "" {
		detail.Organiser.ID = g.OrganiserID
	}

	if viewerID != "" {
		detail.IsOwner = g.OrganiserID == viewerID
		detail.IsCurrentPlayer = g.HasPlayer(viewerID)
		req, err := s.repo.GetRequest(ctx, gameID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("get request: %w", err)
		}
		detail.HasOpenRequest = req != nil && req.Pending()
	}
	return detail, nil
}

// Dashboard gathers the caller's managed and joined games, pending requests to moderate and
// the caller's own average rating.
func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	managed, err := s.ManagedGames(ctx, userID)
	if err != nil {
		return nil, err
	}
	participating, err := s.GamesParticipatingIn(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{}
	if d.ManagedGames, err = s.BuildMapData(ctx, managed); err != nil {
		return nil, err
	}
	if d.ParticipatingGames, err = s.BuildMapData(ctx, participating); err != nil {
		return nil, err
	}
	if d.OpenRequests, err = s.OpenRequestsForOrganiser(ctx, userID); err != nil {
		return nil, err
	}
	if d.AverageRating, err = s.PlayerAverageRating(ctx, userID); err != nil {
		return nil, err
	}
	return d, nil
}
