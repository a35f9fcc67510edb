package auth

import "github.com/gin-gonic/gin"

// RegisterAuthRoutes mounts /auth. limit throttles the unauthenticated endpoints.
func RegisterAuthRoutes(router *gin.RouterGroup, controller *AuthController, requireAuth, limit gin.HandlerFunc) {
	authPublic := router.Group("/auth", limit)
	{
		authPublic.POST("/register", controller.Register)
		authPublic.POST("/login", controller.Login)
		authPublic.GET("/verify-email/:token", controller.VerifyEmail)
		authPublic.POST("/resend-verification", controller.ResendVerification)
		authPublic.POST("/password-reset", controller.RequestPasswordReset)
		authPublic.POST("/password-reset/:token", controller.ResetPassword)
	}

	authProtected := router.Group("/auth", requireAuth)
	{
		authProtected.GET("/me", controller.Me)
		authProtected.POST("/logout", controller.Logout)
	}
}
