package user

import (
	"context"
	"fmt"

	"github.com/DhavalSuthar-24/socialsoccer/internal/address"
	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
	"github.com/DhavalSuthar-24/socialsoccer/internal/models"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/encryption"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/utils"
)

type Service struct {
	repo      UserRepository
	addresses *address.Service
	cipher    encryption.Cipher
	log       logger.Logger
}

func NewService(repo UserRepository, addresses *address.Service, cipher encryption.Cipher, log logger.Logger) *Service {
	return &Service{repo: repo, addresses: addresses, cipher: cipher, log: log}
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, common.NotFound("user not found")
	}
	return u, nil
}

// UpdateNames sanitises, encrypts and stores the user's first and last name.
func (s *Service) UpdateNames(ctx context.Context, userID, firstName, lastName string) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}

	first := utils.SanitizeString(firstName)
	last := utils.SanitizeString(lastName)
	if err := encryption.EncryptAll(s.cipher, &first, &last); err != nil {
		return fmt.Errorf("encrypt names: %w", err)
	}
	if err := s.repo.UpdateNames(ctx, userID, first, last); err != nil {
		return fmt.Errorf("update names: %w", err)
	}
	return nil
}

// LinkAddress points the user at an existing address they created.
func (s *Service) LinkAddress(ctx context.Context, userID string, addressID uint) error {
	a, err := s.addresses.Get(ctx, addressID)
	if err != nil {
		return err
	}
	if err := s.addresses.CheckOwner(a, userID); err != nil {
		return err
	}
	if err := s.repo.SetAddress(ctx, userID, addressID); err != nil {
		return fmt.Errorf("link address: %w", err)
	}
	return nil
}

// SaveAddress creates and links a home address, or replaces the one already linked.
func (s *Service) SaveAddress(ctx context.Context, userID string, fields address.Fields, p models.Point) (*address.Address, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.AddressID != nil {
		return s.addresses.Replace(ctx, *u.AddressID, fields, p)
	}

	a, err := s.addresses.Create(ctx, userID, fields, p)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetAddress(ctx, userID, a.ID); err != nil {
		return nil, fmt.Errorf("link address: %w", err)
	}
	return a, nil
}

// IsHomeAddress reports whether any user has the address on their profile.
func (s *Service) IsHomeAddress(ctx context.Context, addressID uint) (bool, error) {
	linked, err := s.repo.AddressLinked(ctx, addressID)
	if err != nil {
		return false, fmt.Errorf("check address link: %w", err)
	}
	return linked, nil
}

// HomePoint returns the coordinates of the user's address. Users without one get a
// profile-incomplete error.
func (s *Service) HomePoint(ctx context.Context, userID string) (models.Point, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return models.Point{}, err
	}
	if u.AddressID == nil {
		return models.Point{}, common.NewError(common.KindProfileIncomplete, "add an address to your profile to find games near you")
	}
	a, err := s.addresses.Get(ctx, *u.AddressID)
	if err != nil {
		return models.Point{}, err
	}
	return s.addresses.Coordinates(ctx, a.CoordinatesID)
}

// Summary decrypts the public part of a user.
func (s *Service) Summary(u *User) (PlayerSummary, error) {
	first, last, err := s.names(u)
	if err != nil {
		return PlayerSummary{}, err
	}
	return PlayerSummary{ID: u.ID, FirstName: first, LastName: last}, nil
}

// Summaries decrypts the public part of every user in users, keyed by id.
func (s *Service) Summaries(users []User) (map[string]PlayerSummary, error) {
	out := make(map[string]PlayerSummary, len(users))
	for i := range users {
		sum, err := s.Summary(&users[i])
		if err != nil {
			return nil, err
		}
		out[sum.ID] = sum
	}
	return out, nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*ProfileResponse, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	first, last, err := s.names(u)
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{
		ID:            u.ID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		FirstName:     first,
		LastName:      last,
	}
	if u.AddressID != nil {
		view, err := s.addresses.View(ctx, *u.AddressID)
		if err != nil {
			return nil, err
		}
		resp.Address = view
	}
	resp.Complete = IsComplete(u)
	return resp, nil
}

// IsComplete reports whether the user has names and an address.
func IsComplete(u *User) bool {
	return u.FirstName != nil && *u.FirstName != "" &&
		u.LastName != nil && *u.LastName != "" &&
		u.AddressID != nil
}

func (s *Service) names(u *User) (string, string, error) {
	var first, last string
	var err error
	if u.FirstName != nil && *u.FirstName != "" {
		if first, err = s.cipher.Decrypt(*u.FirstName); err != nil {
			return "", "", fmt.Errorf("decrypt first name for user %s: %w", u.ID, err)
		}
	}
	if u.LastName != nil && *u.LastName != "" {
		if last, err = s.cipher.Decrypt(*u.LastName); err != nil {
			return "", "", fmt.Errorf("decrypt last name for user %s: %w", u.ID, err)
		}
	}
	return first, last, nil
}
