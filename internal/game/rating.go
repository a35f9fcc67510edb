package game

import (
	"context"
	"fmt"

	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
)

// Rate records the organiser's rating of a player for one game, replacing an earlier one.
func (s *Service) Rate(ctx context.Context, organiserID string, gameID uint, playerID string, value int) error {
	if _, err := s.VerifyIsOrganiser(ctx, gameID, organiserID); err != nil {
		return err
	}

	existing, err := s.repo.GetRating(ctx, playerID, gameID)
	if err != nil {
		return fmt.Errorf("get rating: %w", err)
	}
	if existing != nil {
		return s.updateRating(ctx, playerID, gameID, value)
	}

	err = s.repo.CreateRating(ctx, &Rating{PlayerID: playerID, GameID: gameID, Rating: value})
	if common.IsUniqueViolation(err) {
		// A concurrent rate created the row first.
		if err := s.repo.UpdateRating(ctx, playerID, gameID, value); err != nil {
			return common.WrapError(common.KindDuplicateRating, err,
				fmt.Sprintf("player %s is already rated for game %d", playerID, gameID))
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

func (s *Service) updateRating(ctx context.Context, playerID string, gameID uint, value int) error {
	if err := s.repo.UpdateRating(ctx, playerID, gameID, value); err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	return nil
}

// AverageRating is the mean of ratings, nil when there are none.
func AverageRating(ratings []Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	total := 0
	for _, r := range ratings {
		total += r.Rating
	}
	avg := float64(total) / float64(len(ratings))
	return &avg
}

// PlayerAverageRating is the mean of every rating a player has received.
func (s *Service) PlayerAverageRating(ctx context.Context, playerID string) (*float64, error) {
	ratings, err := s.repo.RatingsForPlayers(ctx, []string{playerID})
	if err != nil {
		return nil, fmt.Errorf("ratings: %w", err)
	}
	return AverageRating(ratings), nil
}
