package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/socialsoccer/internal/address"
	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/responses"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/validator"
)

type UserController struct {
	service *Service
}

func NewUserController(service *Service) *UserController {
	return &UserController{service: service}
}

// @Summary      Get profile
// @Description  Returns the authenticated user's decrypted profile and whether it is complete.
// @Tags         Profile
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse{data=ProfileResponse}
// @Failure      401 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /profile [get]
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	profile, err := uc.service.Profile(c.Request.Context(), userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", profile)
}

// @Summary      Update names
// @Tags         Profile
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        names body UpdateNamesRequest true "First and last name"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /profile/names [put]
func (uc *UserController) UpdateNames(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req UpdateNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	if err := uc.service.UpdateNames(c.Request.Context(), userID, req.FirstName, req.LastName); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Names updated", nil)
}

// @Summary      Save home address
// @Description  Creates the user's address, or replaces it when one is already linked.
// @Tags         Profile
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        address body address.AddressRequest true "Address fields and coordinates"
// @Success      200 {object} responses.SuccessResponse{data=address.AddressResponse}
// @Failure      400 {object} responses.ErrorResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /profile/address [post]
// @Router       /profile/address [put]
func (uc *UserController) SaveAddress(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req address.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	a, err := uc.service.SaveAddress(c.Request.Context(), userID, req.Fields(), req.Point())
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Address saved", address.AddressResponse{
		ID:          a.ID,
		Fields:      req.Fields(),
		Coordinates: req.Point(),
	})
}
