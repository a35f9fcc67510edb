package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
)

type AuthRepository interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	UpdateSessionExpiry(ctx context.Context, id string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID string) error

	CreateEmailVerification(ctx context.Context, v *EmailVerification) error
	GetEmailVerification(ctx context.Context, id string) (*EmailVerification, error)
	DeleteEmailVerification(ctx context.Context, id string) error
	DeleteUserEmailVerifications(ctx context.Context, userID string) error

	CreatePasswordResetToken(ctx context.Context, t *PasswordResetToken) error
	GetPasswordResetToken(ctx context.Context, tokenHash string) (*PasswordResetToken, error)
	DeleteUserPasswordResetTokens(ctx context.Context, userID string) error

	// WithTransaction runs txFunc with auth and user repositories bound to one transaction.
	WithTransaction(ctx context.Context, txFunc func(AuthRepository, user.UserRepository) error) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *authRepository) GetSession(ctx context.Context, id string) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *authRepository) UpdateSessionExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).Update("expires_at", expiresAt).Error
}

func (r *authRepository) DeleteSession(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Session{}).Error
}

func (r *authRepository) DeleteUserSessions(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Session{}).Error
}

func (r *authRepository) CreateEmailVerification(ctx context.Context, v *EmailVerification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *authRepository) GetEmailVerification(ctx context.Context, id string) (*EmailVerification, error) {
	var v EmailVerification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *authRepository) DeleteEmailVerification(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&EmailVerification{}).Error
}

func (r *authRepository) DeleteUserEmailVerifications(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&EmailVerification{}).Error
}

func (r *authRepository) CreatePasswordResetToken(ctx context.Context, t *PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *authRepository) GetPasswordResetToken(ctx context.Context, tokenHash string) (*PasswordResetToken, error) {
	var t PasswordResetToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *authRepository) DeleteUserPasswordResetTokens(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&PasswordResetToken{}).Error
}

func (r *authRepository) WithTransaction(ctx context.Context, txFunc func(AuthRepository, user.UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&authRepository{db: tx}, user.NewUserRepository(tx))
	})
}
