// Package usertest provides an in-memory user.UserRepository for tests.
package usertest

import (
	"context"
	"errors"
	"sync"

	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
)

var ErrDuplicateEmail = errors.New("usertest: duplicate email")

type Repository struct {
	mu    sync.Mutex
	users map[string]user.User
}

func NewRepository(users ...user.User) *Repository {
	r := &Repository{users: make(map[string]user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *Repository) CreateUser(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *Repository) GetUsersByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []user.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *Repository) UpdateNames(ctx context.Context, id string, firstName, lastName string) error {
	return r.update(id, func(u *user.User) {
		u.FirstName = &firstName
		u.LastName = &lastName
	})
}

func (r *Repository) SetAddress(ctx context.Context, id string, addressID uint) error {
	return r.update(id, func(u *user.User) { u.AddressID = &addressID })
}

func (r *Repository) AddressLinked(ctx context.Context, addressID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.AddressID != nil && *u.AddressID == addressID {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) MarkEmailVerified(ctx context.Context, id string) error {
	return r.update(id, func(u *user.User) { u.EmailVerified = true })
}

func (r *Repository) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	return r.update(id, func(u *user.User) { u.PasswordHash = hash })
}

func (r *Repository) WithTransaction(ctx context.Context, txFunc func(user.UserRepository) error) error {
	return txFunc(r)
}

func (r *Repository) update(id string, apply func(*user.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.New("usertest: user not found")
	}
	apply(&u)
	r.users[id] = u
	return nil
}
