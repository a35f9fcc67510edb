package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]User, error)
	UpdateNames(ctx context.Context, id string, firstName, lastName string) error
	SetAddress(ctx context.Context, id string, addressID uint) error
	AddressLinked(ctx context.Context, addressID uint) (bool, error)
	MarkEmailVerified(ctx context.Context, id string) error
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
	WithTransaction(ctx context.Context, txFunc func(UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]User, error) {
	var users []User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) UpdateNames(ctx context.Context, id string, firstName, lastName string) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"first_name": firstName, "last_name": lastName}).Error
}

func (r *userRepository) SetAddress(ctx context.Context, id string, addressID uint) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("address_id", addressID).Error
}

func (r *userRepository) AddressLinked(ctx context.Context, addressID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("address_id = ?", addressID).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("email_verified", true).Error
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password_hash", hash).Error
}

func (r *userRepository) WithTransaction(ctx context.Context, txFunc func(UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&userRepository{db: tx})
	})
}
