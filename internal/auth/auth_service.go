package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/socialsoccer/config"
	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/token"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/utils"
	hashutil "github.com/DhavalSuthar-24/socialsoccer/utils"
)

const (
	emailVerificationLifetime = 24 * time.Hour
	passwordResetLifetime     = time.Hour
)

// Mailer delivers the two account emails.
type Mailer interface {
	SendVerification(ctx context.Context, to, url string) error
	SendPasswordReset(ctx context.Context, to, url string) error
}

type Service struct {
	repo   AuthRepository
	users  user.UserRepository
	mailer Mailer
	config *config.Config
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo AuthRepository, users user.UserRepository, mailer Mailer, cfg *config.Config, log logger.Logger) *Service {
	return &Service{repo: repo, users: users, mailer: mailer, config: cfg, log: log, now: time.Now}
}

// Register creates an unverified account, mails the verification link and signs the user in.
func (s *Service) Register(ctx context.Context, email, password string) (*user.User, *IssuedSession, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, nil, common.NewError(common.KindConflict, "account with this email already exists")
	}

	hash, err := hashutil.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           utils.GenerateRandomToken(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if common.IsUniqueViolation(err) {
			return nil, nil, common.NewError(common.KindConflict, "account with this email already exists")
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sendVerification(ctx, u); err != nil {
		return nil, nil, err
	}

	issued, err := s.CreateSession(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("user registered", "user_id", u.ID)
	return u, issued, nil
}

// Login checks credentials. Unknown emails and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, *IssuedSession, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup email: %w", err)
	}
	if u == nil || !hashutil.CheckPassword(u.PasswordHash, password) {
		return nil, nil, common.NewError(common.KindInvalidCredentials, "incorrect email or password")
	}

	issued, err := s.CreateSession(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, issued, nil
}

// CreateSession generates a token and stores its hash as a session for userID.
func (s *Service) CreateSession(ctx context.Context, userID string) (*IssuedSession, error) {
	tok := utils.GenerateRandomToken()
	session := &Session{
		ID:        utils.HashToken(tok),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.config.Session.Lifetime),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &IssuedSession{Token: tok, Session: session}, nil
}

// ValidateSessionToken returns the session and its user, or nil values when the token is unknown
// or expired. Expired sessions are deleted; sessions close to expiry are extended.
func (s *Service) ValidateSessionToken(ctx context.Context, tok string) (*Session, *user.User, error) {
	if tok == "" {
		return nil, nil, nil
	}

	session, err := s.repo.GetSession(ctx, utils.HashToken(tok))
	if err != nil {
		return nil, nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, nil, nil
	}

	now := s.now()
	if !now.Before(session.ExpiresAt) {
		if err := s.repo.DeleteSession(ctx, session.ID); err != nil {
			return nil, nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, nil, nil
	}

	u, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("get session user: %w", err)
	}
	if u == nil {
		return nil, nil, nil
	}

	if !now.Before(session.ExpiresAt.Add(-s.config.Session.RenewWithin)) {
		session.ExpiresAt = now.Add(s.config.Session.Lifetime)
		if err := s.repo.UpdateSessionExpiry(ctx, session.ID, session.ExpiresAt); err != nil {
			return nil, nil, fmt.Errorf("renew session: %w", err)
		}
	}
	return session, u, nil
}

func (s *Service) InvalidateSession(ctx context.Context, sessionID string) error {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Service) InvalidateAllSessions(ctx context.Context, userID string) error {
	if err := s.repo.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}

// CreateEmailVerificationToken replaces any outstanding verification tokens of the user.
func (s *Service) CreateEmailVerificationToken(ctx context.Context, userID string) (string, error) {
	if err := s.repo.DeleteUserEmailVerifications(ctx, userID); err != nil {
		return "", fmt.Errorf("delete verification tokens: %w", err)
	}
	v := &EmailVerification{
		ID:        utils.GenerateRandomToken(),
		UserID:    userID,
		ExpiresAt: s.now().Add(emailVerificationLifetime),
	}
	if err := s.repo.CreateEmailVerification(ctx, v); err != nil {
		return "", fmt.Errorf("create verification token: %w", err)
	}
	return v.ID, nil
}

// ResendVerification mails a new link to an unverified account. Unknown and already verified
// emails are ignored.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	u, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("lookup email: %w", err)
	}
	if u == nil || u.EmailVerified {
		return nil
	}
	return s.sendVerification(ctx, u)
}

// VerifyEmail consumes a verification token: the token and all of the user's sessions are
// deleted and committed before expiry is checked. A live token marks the email verified and a
// fresh session is issued.
func (s *Service) VerifyEmail(ctx context.Context, tok string) (*IssuedSession, error) {
	var consumed *EmailVerification
	err := s.repo.WithTransaction(ctx, func(repo AuthRepository, _ user.UserRepository) error {
		v, err := repo.GetEmailVerification(ctx, tok)
		if err != nil {
			return fmt.Errorf("get verification token: %w", err)
		}
		if v == nil {
			return common.NewError(common.KindInvalidToken, "Invalid token")
		}
		if err := repo.DeleteEmailVerification(ctx, v.ID); err != nil {
			return fmt.Errorf("delete verification token: %w", err)
		}
		if err := repo.DeleteUserSessions(ctx, v.UserID); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		consumed = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !s.now().Before(consumed.ExpiresAt) {
		return nil, common.NewError(common.KindExpiredToken, "Expired token")
	}
	if err := s.users.MarkEmailVerified(ctx, consumed.UserID); err != nil {
		return nil, fmt.Errorf("mark email verified: %w", err)
	}
	return s.CreateSession(ctx, consumed.UserID)
}

// RequestPasswordReset mails a reset link when the email belongs to an account. The outcome is
// the same either way.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("lookup email: %w", err)
	}
	if u == nil {
		s.log.Debug("password reset requested for unknown email")
		return nil
	}

	tok := utils.GenerateRandomToken()
	if err := s.repo.CreatePasswordResetToken(ctx, &PasswordResetToken{
		TokenHash: utils.HashToken(tok),
		UserID:    u.ID,
		ExpiresAt: s.now().Add(passwordResetLifetime),
	}); err != nil {
		return fmt.Errorf("create password reset token: %w", err)
	}

	url := s.config.App.BaseURL + "/password-reset/" + tok
	if err := s.mailer.SendPasswordReset(ctx, u.Email, url); err != nil {
		s.log.BusinessError("password reset email failed", err, "user_id", u.ID)
		return common.WrapError(common.KindEmailDelivery, err, "failed to send email")
	}
	return nil
}

// ResetPassword consumes a reset token, stores the new password and signs the user out everywhere.
func (s *Service) ResetPassword(ctx context.Context, tok, password string) error {
	hash, err := hashutil.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.WithTransaction(ctx, func(repo AuthRepository, users user.UserRepository) error {
		t, err := repo.GetPasswordResetToken(ctx, utils.HashToken(tok))
		if err != nil {
			return fmt.Errorf("get password reset token: %w", err)
		}
		if t == nil {
			return common.NewError(common.KindInvalidToken, "Invalid token")
		}
		if !s.now().Before(t.ExpiresAt) {
			return common.NewError(common.KindExpiredToken, "Expired token")
		}
		if err := users.UpdatePasswordHash(ctx, t.UserID, hash); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		if err := repo.DeleteUserPasswordResetTokens(ctx, t.UserID); err != nil {
			return fmt.Errorf("delete password reset tokens: %w", err)
		}
		if err := repo.DeleteUserSessions(ctx, t.UserID); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		return nil
	})
}

// IssueAccessToken signs a JWT for clients that authenticate with a bearer header.
func (s *Service) IssueAccessToken(userID string) (string, time.Time, error) {
	signed, expiresAt, err := token.GenerateJWT(userID, s.config.JWT.AccessTokenSecret, s.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *Service) sendVerification(ctx context.Context, u *user.User) error {
	tok, err := s.CreateEmailVerificationToken(ctx, u.ID)
	if err != nil {
		return err
	}
	url := s.config.App.BaseURL + "/auth/email-verification/" + tok
	if err := s.mailer.SendVerification(ctx, u.Email, url); err != nil {
		s.log.BusinessError("verification email failed", err, "user_id", u.ID)
		return common.WrapError(common.KindEmailDelivery, err, "failed to send email")
	}
	return nil
}
