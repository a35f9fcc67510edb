package user

import "github.com/gin-gonic/gin"

func RegisterProfileRoutes(router *gin.RouterGroup, controller *UserController, requireAuth gin.HandlerFunc) {
	profile := router.Group("/profile", requireAuth)
	{
		profile.GET("", controller.GetProfile)
		profile.PUT("/names", controller.UpdateNames)
		profile.POST("/address", controller.SaveAddress)
		profile.PUT("/address", controller.SaveAddress)
	}
}
