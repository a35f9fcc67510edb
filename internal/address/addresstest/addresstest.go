// Package addresstest provides in-memory stand-ins for the address store, for use in tests of
// packages that depend on address.Service.
package addresstest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/DhavalSuthar-24/socialsoccer/internal/address"
	"github.com/DhavalSuthar-24/socialsoccer/internal/models"
)

// PrefixCipher marks values as encrypted with an "enc:" prefix.
type PrefixCipher struct{}

func (PrefixCipher) Encrypt(s string) (string, error) { return "enc:" + s, nil }

func (PrefixCipher) Decrypt(s string) (string, error) {
	if !strings.HasPrefix(s, "enc:") {
		return "", errors.New("addresstest: value is not encrypted")
	}
	return strings.TrimPrefix(s, "enc:"), nil
}

// Repository is an in-memory address.AddressRepository.
type Repository struct {
	mu          sync.Mutex
	nextID      uint
	coordinates map[uint]models.Point
	addresses   map[uint]address.Address
}

func NewRepository() *Repository {
	return &Repository{
		coordinates: make(map[uint]models.Point),
		addresses:   make(map[uint]address.Address),
	}
}

func (r *Repository) CreateCoordinates(ctx context.Context, p models.Point) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.coordinates[r.nextID] = p
	return r.nextID, nil
}

func (r *Repository) GetCoordinates(ctx context.Context, id uint) (*address.CoordinatesRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.coordinates[id]
	if !ok {
		return nil, nil
	}
	return &address.CoordinatesRecord{ID: id, Location: models.NewGeoJSONPoint(p)}, nil
}

func (r *Repository) DeleteCoordinates(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.coordinates, id)
	return nil
}

func (r *Repository) CreateAddress(ctx context.Context, a *address.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	r.addresses[a.ID] = *a
	return nil
}

func (r *Repository) GetAddress(ctx context.Context, id uint) (*address.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addresses[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *Repository) UpdateAddress(ctx context.Context, a *address.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addresses[a.ID]; !ok {
		return errors.New("addresstest: address not found")
	}
	r.addresses[a.ID] = *a
	return nil
}

// CoordinatesCount is the number of stored coordinates rows.
func (r *Repository) CoordinatesCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.coordinates)
}
