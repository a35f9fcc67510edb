package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/DhavalSuthar-24/socialsoccer/internal/address"
	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
)

type Service struct {
	repo      GameRepository
	users     *user.Service
	addresses *address.Service
	log       logger.Logger
}

func NewService(repo GameRepository, users *user.Service, addresses *address.Service, log logger.Logger) *Service {
	return &Service{repo: repo, users: users, addresses: addresses, log: log}
}

// NewGame holds the fields of a game to create.
type NewGame struct {
	Day             string
	Active          bool
	Time            string
	NumberOfPlayers int
	Level           Level
	AddressID       uint
}

func (n NewGame) validate() error {
	if !slices.Contains(Days, n.Day) {
		return common.NewError(common.KindValidation, "day must be one of %v", Days)
	}
	if !slices.Contains(Levels, string(n.Level)) {
		return common.NewError(common.KindValidation, "level must be one of %v", Levels)
	}
	if n.NumberOfPlayers < MinPlayers || n.NumberOfPlayers > MaxPlayers {
		return common.NewError(common.KindValidation, "numberOfPlayers must be between %d and %d", MinPlayers, MaxPlayers)
	}
	return nil
}

// Create inserts the game and puts the organiser on its roster in one transaction. An unknown
// address fails on the foreign key.
func (s *Service) Create(ctx context.Context, organiserID string, in NewGame) (*Game, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkLocation(ctx, organiserID, in.AddressID); err != nil {
		return nil, err
	}

	g := &Game{
		Day:             in.Day,
		Active:          in.Active,
		Time:            in.Time,
		Level:           in.Level,
		NumberOfPlayers: in.NumberOfPlayers,
		OrganiserID:     organiserID,
		LocationID:      in.AddressID,
	}
	err := s.repo.WithTransaction(ctx, func(tx GameRepository) error {
		if err := tx.CreateGame(ctx, g); err != nil {
			if common.IsUniqueViolation(err) {
				return locationTaken(in.AddressID)
			}
			return fmt.Errorf("create game: %w", err)
		}
		if err := tx.AddPlayer(ctx, g.ID, organiserID); err != nil {
			return fmt.Errorf("add organiser to roster: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("game created", "game_id", g.ID, "organiser_id", organiserID)
	return g, nil
}

// checkLocation allows only an address the organiser created that is neither a profile
// address nor another game's location.
func (s *Service) checkLocation(ctx context.Context, organiserID string, addressID uint) error {
	a, err := s.addresses.Find(ctx, addressID)
	if err != nil {
		return err
	}
	if a == nil {
		return nil
	}
	if err := s.addresses.CheckOwner(a, organiserID); err != nil {
		return err
	}

	home, err := s.users.IsHomeAddress(ctx, addressID)
	if err != nil {
		return err
	}
	if home {
		return common.NewError(common.KindConflict, "address %d is a profile address and cannot be used as a game location", addressID)
	}

	taken, err := s.repo.LocationInUse(ctx, addressID)
	if err != nil {
		return fmt.Errorf("check game location: %w", err)
	}
	if taken {
		return locationTaken(addressID)
	}
	return nil
}

func locationTaken(addressID uint) error {
	return common.NewError(common.KindConflict, "address %d is already the location of another game", addressID)
}

// GetByID returns the game with roster and location, or nil when there is none.
func (s *Service) GetByID(ctx context.Context, gameID uint) (*Game, error) {
	g, err := s.repo.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	return g, nil
}

func (s *Service) mustGet(ctx context.Context, gameID uint) (*Game, error) {
	g, err := s.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, common.NotFound("game %d not found", gameID)
	}
	return g, nil
}

// VerifyIsOrganiser is the authorization gate for moderation and rating.
func (s *Service) VerifyIsOrganiser(ctx context.Context, gameID uint, userID string) (*Game, error) {
	g, err := s.mustGet(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.OrganiserID != userID {
		return nil, common.Unauthorized("user is not the organiser of game %d", gameID)
	}
	return g, nil
}

func (s *Service) AddPlayer(ctx context.Context, gameID uint, playerID string) error {
	if err := s.repo.AddPlayer(ctx, gameID, playerID); err != nil {
		return fmt.Errorf("add player: %w", err)
	}
	return nil
}

func (s *Service) RemovePlayer(ctx context.Context, gameID uint, playerID string) error {
	if err := s.repo.RemovePlayer(ctx, gameID, playerID); err != nil {
		return fmt.Errorf("remove player: %w", err)
	}
	return nil
}
