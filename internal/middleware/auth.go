package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/socialsoccer/config"
	"github.com/DhavalSuthar-24/socialsoccer/internal/auth"
	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/responses"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/token"
)

// SessionValidator is satisfied by *auth.Service.
type SessionValidator interface {
	ValidateSessionToken(ctx context.Context, tok string) (*auth.Session, *user.User, error)
}

// Authenticator resolves the caller from the session cookie, falling back to a Bearer access token.
type Authenticator struct {
	sessions SessionValidator
	config   *config.Config
	log      logger.Logger
}

func NewAuthenticator(sessions SessionValidator, cfg *config.Config, log logger.Logger) *Authenticator {
	return &Authenticator{sessions: sessions, config: cfg, log: log}
}

// RequireAuth aborts with 401 when there is no valid session or token.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := a.authenticate(c)
		if err != nil {
			a.log.InternalError("authentication failed", err, "request_id", common.GetRequestID(c))
			responses.SendAppError(c, err)
			return
		}
		if !ok {
			responses.Unauthorized(c, "Authentication required")
			return
		}
		c.Next()
	}
}

// OptionalAuth sets the caller when there is one and lets anonymous requests through.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := a.authenticate(c); err != nil {
			a.log.InternalError("optional authentication failed", err, "request_id", common.GetRequestID(c))
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context) (bool, error) {
	name := a.config.Session.CookieName
	if tok, err := c.Cookie(name); err == nil && tok != "" {
		session, u, err := a.sessions.ValidateSessionToken(c.Request.Context(), tok)
		if err != nil {
			return false, err
		}
		if session != nil {
			// expiry may have moved forward
			auth.SetSessionCookie(c, name, tok, session.ExpiresAt, a.config.Session.Secure)
			c.Set(common.ContextUserIDKey, u.ID)
			c.Set(common.ContextSessionKey, session)
			return true, nil
		}
		auth.DeleteSessionCookie(c, name, a.config.Session.Secure)
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return false, nil
	}
	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return false, nil
	}
	claims, err := token.ValidateJWT(strings.TrimSpace(raw), a.config.JWT.AccessTokenSecret)
	if err != nil {
		a.log.Debug("rejected access token", "error", err)
		return false, nil
	}
	c.Set(common.ContextUserIDKey, claims.UserID)
	return true, nil
}
