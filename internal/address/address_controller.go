package address

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/geocode"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/responses"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/validator"
)

type AddressController struct {
	service *Service
}

func NewAddressController(service *Service) *AddressController {
	return &AddressController{service: service}
}

// CreateAddress godoc
// @Summary Create an address
// @Description Stores an encrypted address and its map point. The returned id is used when creating a game.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param address body AddressRequest true "Address fields and coordinates"
// @Success 201 {object} responses.SuccessResponse{data=AddressResponse} "Address created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /addresses [post]
func (ac *AddressController) CreateAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	a, err := ac.service.Create(c.Request.Context(), userID, req.Fields(), req.Point())
	if err != nil {
		responses.SendAppError(c, err)
		return
	}

	fields, err := ac.service.Decrypt(a)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Address created", AddressResponse{
		ID:          a.ID,
		Fields:      fields,
		Coordinates: req.Point(),
	})
}

// ParseGeocode godoc
// @Summary Parse a geocoder result
// @Description Maps the address_components of a maps geocoder result onto address fields.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param result body GeocodeRequest true "Geocoder address components"
// @Success 200 {object} responses.SuccessResponse{data=geocode.Fields} "Parsed address"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Router /addresses/geocode [post]
func (ac *AddressController) ParseGeocode(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Address parsed", geocode.ParseComponents(req.AddressComponents))
}
