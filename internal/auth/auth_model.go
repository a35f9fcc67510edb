package auth

import "time"

// Session is keyed by the sha256 hex of the token held in the client's cookie.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    string    `gorm:"size:24;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (Session) TableName() string { return "sessions" }

// EmailVerification is a single-use token mailed at registration.
type EmailVerification struct {
	ID        string    `gorm:"primaryKey;size:24"`
	UserID    string    `gorm:"size:24;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (EmailVerification) TableName() string { return "email_verifications" }

// PasswordResetToken stores only the sha256 hex of the mailed token.
type PasswordResetToken struct {
	TokenHash string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:24;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (PasswordResetToken) TableName() string { return "password_reset_tokens" }

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=254" example:"alice@example.com"`
	Password        string `json:"password" binding:"required,min=8,max=72" example:"correct-horse-battery"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password" example:"correct-horse-battery"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"correct-horse-battery"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email" example:"alice@example.com"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email" example:"alice@example.com"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

type LogoutRequest struct {
	AllSessions bool `json:"all_sessions"`
}

// AuthResponse is returned alongside the session cookie. The access token serves clients that
// cannot hold cookies.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// IssuedSession is a freshly created session together with the raw token for the cookie.
type IssuedSession struct {
	Token   string
	Session *Session
}
