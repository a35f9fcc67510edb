package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/socialsoccer/config"
	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
	"github.com/DhavalSuthar-24/socialsoccer/internal/user"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/responses"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/validator"
)

type AuthController struct {
	service *Service
	config  *config.Config
}

func NewAuthController(service *Service, cfg *config.Config) *AuthController {
	return &AuthController{service: service, config: cfg}
}

// signIn sets the session cookie and answers with an access token for the same user.
func (ac *AuthController) signIn(c *gin.Context, status int, message string, u *user.User, issued *IssuedSession) {
	SetSessionCookie(c, ac.config.Session.CookieName, issued.Token, issued.Session.ExpiresAt, ac.config.Session.Secure)

	accessToken, expiresAt, err := ac.service.IssueAccessToken(u.ID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, status, message, AuthResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        UserResponse{ID: u.ID, Email: u.Email, EmailVerified: u.EmailVerified},
	})
}

// @Summary      Register a new user
// @Description  Creates an unverified account, emails a verification link and signs the user in.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "Email and password"
// @Success      201   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      400   {object} responses.ErrorResponse "Validation error"
// @Failure      409   {object} responses.ErrorResponse "Email already registered"
// @Failure      502   {object} responses.ErrorResponse "Verification email could not be sent"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	u, issued, err := ac.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	ac.signIn(c, http.StatusCreated, "Registration successful. Please check your emails to verify your account", u, issued)
}

// @Summary      Login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      400   {object} responses.ErrorResponse
// @Failure      401   {object} responses.ErrorResponse "Incorrect email or password"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	u, issued, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	ac.signIn(c, http.StatusOK, "Logged in", u, issued)
}

// @Summary      Logout
// @Description  Deletes the current session, or every session of the user when all_sessions is set.
// @Tags         Auth
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest false "Logout options"
// @Success      200 {object} responses.SuccessResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	ctx := c.Request.Context()
	if req.AllSessions {
		err = ac.service.InvalidateAllSessions(ctx, userID)
	} else if session, ok := c.Value(common.ContextSessionKey).(*Session); ok {
		err = ac.service.InvalidateSession(ctx, session.ID)
	}
	if err != nil {
		responses.SendAppError(c, err)
		return
	}

	DeleteSessionCookie(c, ac.config.Session.CookieName, ac.config.Session.Secure)
	responses.SendSuccess(c, http.StatusOK, "Logged out", nil)
}

// @Summary      Verify email
// @Description  Consumes the emailed token, marks the email verified and starts a new session.
// @Tags         Auth
// @Produce      json
// @Param        token path string true "Verification token"
// @Success      200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      401 {object} responses.ErrorResponse "Invalid or expired token"
// @Router       /auth/verify-email/{token} [get]
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	ctx := c.Request.Context()
	issued, err := ac.service.VerifyEmail(ctx, c.Param("token"))
	if err != nil {
		responses.SendAppError(c, err)
		return
	}

	u, err := ac.service.users.GetUserByID(ctx, issued.Session.UserID)
	if err != nil || u == nil {
		responses.SendAppError(c, common.NotFound("user not found"))
		return
	}
	ac.signIn(c, http.StatusOK, "Email has been verified", u, issued)
}

// @Summary      Resend verification email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body ResendVerificationRequest true "Account email"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /auth/resend-verification [post]
func (ac *AuthController) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}
	if err := ac.service.ResendVerification(c.Request.Context(), req.Email); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "If the account exists and is unverified, a new link has been sent", nil)
}

// @Summary      Request password reset
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body PasswordResetRequest true "Account email"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Router       /auth/password-reset [post]
func (ac *AuthController) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}
	if err := ac.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "If an account exists for this email, a reset link has been sent", nil)
}

// @Summary      Reset password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        token path string true "Reset token"
// @Param        request body ResetPasswordRequest true "New password"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      401 {object} responses.ErrorResponse "Invalid or expired token"
// @Router       /auth/password-reset/{token} [post]
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}
	if err := ac.service.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		responses.SendAppError(c, err)
		return
	}
	DeleteSessionCookie(c, ac.config.Session.CookieName, ac.config.Session.Secure)
	responses.SendSuccess(c, http.StatusOK, "Password updated, please log in again", nil)
}

// @Summary      Current user
// @Tags         Auth
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse{data=UserResponse}
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	u, err := ac.service.users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", UserResponse{ID: u.ID, Email: u.Email, EmailVerified: u.EmailVerified})
}
