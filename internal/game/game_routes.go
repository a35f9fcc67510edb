package game

import "github.com/gin-gonic/gin"

// RegisterGameRoutes mounts /games and the dashboard under /profile. optionalAuth identifies the
// caller when credentials are present without rejecting anonymous requests.
func RegisterGameRoutes(router *gin.RouterGroup, controller *GameController, requireAuth, optionalAuth gin.HandlerFunc) {
	games := router.Group("/games")
	{
		games.GET("/latest", controller.LatestGames)
		games.POST("/filter", controller.FilterGames)
		games.GET("/:id", optionalAuth, controller.GetGame)
	}

	authed := games.Group("", requireAuth)
	{
		authed.POST("", controller.CreateGame)
		authed.GET("/nearest", controller.NearestGames)
		authed.GET("/mine/managed", controller.ManagedGames)
		authed.GET("/mine/participating", controller.ParticipatingGames)

		authed.POST("/:id/join-requests", controller.RequestToJoin)
		authed.GET("/:id/join-requests", controller.OpenRequests)
		authed.POST("/join-requests/:requestID/accept", controller.AcceptRequest)
		authed.POST("/join-requests/:requestID/reject", controller.RejectRequest)

		authed.DELETE("/:id/players/me", controller.Cancel)
		authed.DELETE("/:id/players/:playerID", controller.RemovePlayer)
		authed.PUT("/:id/ratings/:playerID", controller.RatePlayer)
	}

	router.GET("/profile/dashboard", requireAuth, controller.Dashboard)
}
