package address

import "github.com/gin-gonic/gin"

func RegisterAddressRoutes(router *gin.RouterGroup, controller *AddressController, requireAuth gin.HandlerFunc) {
	addresses := router.Group("/addresses")
	{
		addresses.POST("/geocode", controller.ParseGeocode)
		addresses.POST("", requireAuth, controller.CreateAddress)
	}
}
