package address

import (
	"context"
	"fmt"

	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
	"github.com/DhavalSuthar-24/socialsoccer/internal/models"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/encryption"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/utils"
)

type Service struct {
	repo   AddressRepository
	cipher encryption.Cipher
	log    logger.Logger
}

func NewService(repo AddressRepository, cipher encryption.Cipher, log logger.Logger) *Service {
	return &Service{repo: repo, cipher: cipher, log: log}
}

// Create stores a new coordinates row and an encrypted address owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, fields Fields, p models.Point) (*Address, error) {
	coordinatesID, err := s.repo.CreateCoordinates(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create coordinates: %w", err)
	}

	a := &Address{OwnerID: ownerID, CoordinatesID: coordinatesID}
	if err := s.encryptInto(a, fields); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAddress(ctx, a); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return a, nil
}

// Replace writes new fields and a new coordinates row for an existing address. The old
// coordinates row is deleted only once the address points at the new one. If that delete
// fails the update still stands and the old row is left unreferenced.
func (s *Service) Replace(ctx context.Context, addressID uint, fields Fields, p models.Point) (*Address, error) {
	a, err := s.Get(ctx, addressID)
	if err != nil {
		return nil, err
	}
	previousCoordinatesID := a.CoordinatesID

	coordinatesID, err := s.repo.CreateCoordinates(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create coordinates: %w", err)
	}

	a.CoordinatesID = coordinatesID
	if err := s.encryptInto(a, fields); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAddress(ctx, a); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	if previousCoordinatesID != 0 && previousCoordinatesID != coordinatesID {
		if err := s.repo.DeleteCoordinates(ctx, previousCoordinatesID); err != nil {
			s.log.InternalError("failed to delete replaced coordinates", err,
				"address_id", a.ID, "coordinates_id", previousCoordinatesID)
		}
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Address, error) {
	a, err := s.repo.GetAddress(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}
	if a == nil {
		return nil, common.NotFound("address %d not found", id)
	}
	return a, nil
}

// Find returns the address or nil when there is none.
func (s *Service) Find(ctx context.Context, id uint) (*Address, error) {
	a, err := s.repo.GetAddress(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

// CheckOwner fails with an authorization error unless userID created the address.
func (s *Service) CheckOwner(a *Address, userID string) error {
	if a.OwnerID != userID {
		return common.Unauthorized("address %d belongs to another user", a.ID)
	}
	return nil
}

// Coordinates returns the point an address references.
func (s *Service) Coordinates(ctx context.Context, coordinatesID uint) (models.Point, error) {
	rec, err := s.repo.GetCoordinates(ctx, coordinatesID)
	if err != nil {
		return models.Point{}, fmt.Errorf("get coordinates: %w", err)
	}
	if rec == nil {
		return models.Point{}, common.NotFound("coordinates %d not found", coordinatesID)
	}
	return rec.Location.Point(), nil
}

// Decrypt returns the plain fields of a stored address.
func (s *Service) Decrypt(a *Address) (Fields, error) {
	f := Fields{
		LineOne:    a.LineOne,
		LineTwo:    a.LineTwo,
		City:       a.City,
		County:     a.County,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
	if err := encryption.DecryptAll(s.cipher, &f.LineOne, &f.LineTwo, &f.City, &f.County, &f.Country, &f.PostalCode); err != nil {
		return Fields{}, fmt.Errorf("decrypt address %d: %w", a.ID, err)
	}
	return f, nil
}

// View loads an address with its decrypted fields and point.
func (s *Service) View(ctx context.Context, id uint) (*AddressResponse, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fields, err := s.Decrypt(a)
	if err != nil {
		return nil, err
	}
	point, err := s.Coordinates(ctx, a.CoordinatesID)
	if err != nil {
		return nil, err
	}
	return &AddressResponse{ID: a.ID, Fields: fields, Coordinates: point}, nil
}

func (s *Service) encryptInto(a *Address, f Fields) error {
	a.LineOne = utils.SanitizeString(f.LineOne)
	a.LineTwo = utils.SanitizeString(f.LineTwo)
	a.City = utils.SanitizeString(f.City)
	a.County = utils.SanitizeString(f.County)
	a.Country = utils.SanitizeString(f.Country)
	a.PostalCode = utils.SanitizeString(f.PostalCode)
	if err := encryption.EncryptAll(s.cipher, &a.LineOne, &a.LineTwo, &a.City, &a.County, &a.Country, &a.PostalCode); err != nil {
		return fmt.Errorf("encrypt address: %w", err)
	}
	return nil
}
