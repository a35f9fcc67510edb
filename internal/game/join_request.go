package game

import (
	"context"
	"fmt"

	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
)

func duplicateRequest(gameID uint) error {
	return common.NewError(common.KindDuplicateRequest, "user already has a request to join game %d", gameID)
}

// RequestToJoin opens a pending request for userID. Roster members, including the organiser,
// and users with any existing request are refused.
func (s *Service) RequestToJoin(ctx context.Context, gameID uint, userID string) (*RequestToJoin, error) {
	g, err := s.mustGet(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.OrganiserID == userID || g.HasPlayer(userID) {
		return nil, duplicateRequest(gameID)
	}

	existing, err := s.repo.GetRequest(ctx, gameID, userID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if existing != nil {
		return nil, duplicateRequest(gameID)
	}

	req := &RequestToJoin{GameID: gameID, PlayerID: userID}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		if common.IsUniqueViolation(err) {
			return nil, duplicateRequest(gameID)
		}
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

// moderate loads a request and checks organiserID runs the request's own game.
func (s *Service) moderate(ctx context.Context, organiserID string, requestID uint) (*RequestToJoin, *Game, error) {
	req, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, nil, fmt.Errorf("get request: %w", err)
	}
	if req == nil {
		return nil, nil, common.NotFound("request %d not found", requestID)
	}
	g, err := s.VerifyIsOrganiser(ctx, req.GameID, organiserID)
	if err != nil {
		return nil, nil, err
	}
	return req, g, nil
}

// Accept puts the requesting player on the roster. Capacity is reported, not enforced.
func (s *Service) Accept(ctx context.Context, organiserID string, requestID uint) error {
	req, g, err := s.moderate(ctx, organiserID, requestID)
	if err != nil {
		return err
	}

	err = s.repo.WithTransaction(ctx, func(tx GameRepository) error {
		if err := tx.AddPlayer(ctx, req.GameID, req.PlayerID); err != nil {
			return fmt.Errorf("add player: %w", err)
		}
		if err := tx.SetRequestAccepted(ctx, req.ID, true); err != nil {
			return fmt.Errorf("accept request: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	count, err := s.repo.CountPlayers(ctx, g.ID)
	if err != nil {
		s.log.InternalError("failed to count roster", err, "game_id", g.ID)
		return nil
	}
	if int(count) > g.NumberOfPlayers {
		s.log.Warn("roster exceeds capacity", "game_id", g.ID, "players", count, "capacity", g.NumberOfPlayers)
	}
	return nil
}

// Reject marks the request rejected and takes the player off the roster if they were on it.
func (s *Service) Reject(ctx context.Context, organiserID string, requestID uint) error {
	req, _, err := s.moderate(ctx, organiserID, requestID)
	if err != nil {
		return err
	}

	return s.repo.WithTransaction(ctx, func(tx GameRepository) error {
		if err := tx.RemovePlayer(ctx, req.GameID, req.PlayerID); err != nil {
			return fmt.Errorf("remove player: %w", err)
		}
		if err := tx.SetRequestAccepted(ctx, req.ID, false); err != nil {
			return fmt.Errorf("reject request: %w", err)
		}
		return nil
	})
}

// Remove is the organiser taking a player off the roster. The request row goes with it.
func (s *Service) Remove(ctx context.Context, organiserID string, gameID uint, playerID string) error {
	g, err := s.VerifyIsOrganiser(ctx, gameID, organiserID)
	if err != nil {
		return err
	}
	if playerID == g.OrganiserID {
		return common.Unauthorized("the organiser cannot be removed from game %d", gameID)
	}
	return s.leave(ctx, gameID, playerID)
}

// Cancel is a player leaving a game or withdrawing a pending request.
func (s *Service) Cancel(ctx context.Context, gameID uint, userID string) error {
	g, err := s.mustGet(ctx, gameID)
	if err != nil {
		return err
	}
	if g.OrganiserID == userID {
		return common.Unauthorized("the organiser cannot leave game %d", gameID)
	}
	return s.leave(ctx, gameID, userID)
}

func (s *Service) leave(ctx context.Context, gameID uint, playerID string) error {
	return s.repo.WithTransaction(ctx, func(tx GameRepository) error {
		if err := tx.RemovePlayer(ctx, gameID, playerID); err != nil {
			return fmt.Errorf("remove player: %w", err)
		}
		if err := tx.DeleteRequest(ctx, gameID, playerID); err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		return nil
	})
}

// OpenRequestsForGame lists pending requests of a game the caller organises.
func (s *Service) OpenRequestsForGame(ctx context.Context, organiserID string, gameID uint) ([]OpenRequest, error) {
	if _, err := s.VerifyIsOrganiser(ctx, gameID, organiserID); err != nil {
		return nil, err
	}
	requests, err := s.repo.OpenRequestsForGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("open requests: %w", err)
	}
	return s.openRequestViews(ctx, requests)
}

// OpenRequestsForOrganiser lists pending requests across all of the organiser's games, each with
// the player's average rating.
func (s *Service) OpenRequestsForOrganiser(ctx context.Context, organiserID string) ([]OpenRequest, error) {
	requests, err := s.repo.OpenRequestsForOrganiser(ctx, organiserID)
	if err != nil {
		return nil, fmt.Errorf("open requests: %w", err)
	}
	return s.openRequestViews(ctx, requests)
}

func (s *Service) openRequestViews(ctx context.Context, requests []RequestToJoin) ([]OpenRequest, error) {
	playerIDs := make([]string, 0, len(requests))
	for _, r := range requests {
		playerIDs = append(playerIDs, r.PlayerID)
	}
	ratings, err := s.repo.RatingsForPlayers(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("ratings: %w", err)
	}
	byPlayer := make(map[string][]Rating)
	for _, r := range ratings {
		byPlayer[r.PlayerID] = append(byPlayer[r.PlayerID], r)
	}

	views := make([]OpenRequest, 0, len(requests))
	for _, r := range requests {
		view := OpenRequest{ID: r.ID, GameID: r.GameID, AverageRating: AverageRating(byPlayer[r.PlayerID])}
		if r.Player != nil {
			summary, err := s.users.Summary(r.Player)
			if err != nil {
				return nil, err
			}
			view.Player = summary
		} else {
			view.Player.ID = r.PlayerID
		}
		views = append(views, view)
	}
	return views, nil
}
