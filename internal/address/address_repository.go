package address

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/socialsoccer/internal/models"
)

// AddressRepository is the location store.
type AddressRepository interface {
	CreateCoordinates(ctx context.Context, p models.Point) (uint, error)
	GetCoordinates(ctx context.Context, id uint) (*CoordinatesRecord, error)
	DeleteCoordinates(ctx context.Context, id uint) error

	CreateAddress(ctx context.Context, a *Address) error
	GetAddress(ctx context.Context, id uint) (*Address, error)
	UpdateAddress(ctx context.Context, a *Address) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) CreateCoordinates(ctx context.Context, p models.Point) (uint, error) {
	var id uint
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO coordinates (location)
		 VALUES (ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography)
		 RETURNING id`,
		p.Longitude, p.Latitude,
	).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *addressRepository) GetCoordinates(ctx context.Context, id uint) (*CoordinatesRecord, error) {
	var rec CoordinatesRecord
	res := r.db.WithContext(ctx).Raw(
		`SELECT id, ST_AsGeoJSON(location) AS location FROM coordinates WHERE id = ?`, id,
	).Scan(&rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &rec, nil
}

func (r *addressRepository) DeleteCoordinates(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Coordinates{}, id).Error
}

func (r *addressRepository) CreateAddress(ctx context.Context, a *Address) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *addressRepository) GetAddress(ctx context.Context, id uint) (*Address, error) {
	var a Address
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *addressRepository) UpdateAddress(ctx context.Context, a *Address) error {
	return r.db.WithContext(ctx).Save(a).Error
}
