package game

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/socialsoccer/internal/common"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/responses"
	"github.com/DhavalSuthar-24/socialsoccer/pkg/validator"
)

type GameController struct {
	service *Service
}

func NewGameController(service *Service) *GameController {
	return &GameController{service: service}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+param)
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (string, bool) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return "", false
	}
	return userID, true
}

func (gc *GameController) sendMapData(c *gin.Context, games []Game) {
	data, err := gc.service.BuildMapData(c.Request.Context(), games)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", data)
}

// @Summary      Latest games
// @Tags         Games
// @Produce      json
// @Param        limit query int false "Maximum number of games" default(10)
// @Success      200 {object} responses.SuccessResponse{data=[]MapData}
// @Router       /games/latest [get]
func (gc *GameController) LatestGames(c *gin.Context) {
	limit := DefaultLatestLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			responses.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxLatestLimit)
	}

	games, err := gc.service.LatestGames(c.Request.Context(), limit)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	gc.sendMapData(c, games)
}

// @Summary      Filter games
// @Description  Exact match on day, level and number of players; omitted fields are not filtered.
// @Tags         Games
// @Accept       json
// @Produce      json
// @Param        criteria body FilterCriteria true "Filter"
// @Success      200 {object} responses.SuccessResponse{data=[]MapData}
// @Failure      400 {object} responses.ErrorResponse
// @Router       /games/filter [post]
func (gc *GameController) FilterGames(c *gin.Context) {
	var criteria FilterCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	games, err := gc.service.FilterGames(c.Request.Context(), criteria)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	gc.sendMapData(c, games)
}

// @Summary      Games near me
// @Description  The five closest active games to the caller's home address.
// @Tags         Games
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse{data=[]NearestGameData}
// @Failure      401 {object} responses.ErrorResponse
// @Failure      412 {object} responses.ErrorResponse "Profile has no address"
// @Router       /games/nearest [get]
func (gc *GameController) NearestGames(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	games, err := gc.service.GamesNearUser(c.Request.Context(), userID, NearestGamesCount)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", games)
}

// @Summary      Create a game
// @Description  The caller becomes the organiser and first player. The address must be one the caller
// @Description  created, not a profile address and not the location of another game.
// @Tags         Games
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        game body CreateGameRequest true "Game"
// @Success      201 {object} responses.SuccessResponse{data=Game}
// @Failure      400 {object} responses.ErrorResponse
// @Failure      401 {object} responses.ErrorResponse
// @Failure      403 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse
// @Router       /games [post]
func (gc *GameController) CreateGame(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	g, err := gc.service.Create(c.Request.Context(), userID, NewGame{
		Day:             req.Day,
		Active:          active,
		Time:            req.Time,
		NumberOfPlayers: req.NumberOfPlayers,
		Level:           Level(req.Level),
		AddressID:       req.AddressID,
	})
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Game created", g)
}

// @Summary      Game detail
// @Tags         Games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} responses.SuccessResponse{data=Detail}
// @Failure      404 {object} responses.ErrorResponse
// @Router       /games/{id} [get]
func (gc *GameController) GetGame(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	viewerID, _ := common.GetUserIDFromContext(c)

	detail, err := gc.service.Detail(c.Request.Context(), gameID, viewerID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", detail)
}

// @Summary      Request to join
// @Tags         Join Requests
// @Security     ApiKeyAuth
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      201 {object} responses.SuccessResponse{data=RequestToJoin}
// @Failure      404 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse "Already requested or on the roster"
// @Router       /games/{id}/join-requests [post]
func (gc *GameController) RequestToJoin(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	req, err := gc.service.RequestToJoin(c.Request.Context(), gameID, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Request sent to the organiser", req)
}

// @Summary      Open requests for a game
// @Tags         Join Requests
// @Security     ApiKeyAuth
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} responses.SuccessResponse{data=[]OpenRequest}
// @Failure      403 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /games/{id}/join-requests [get]
func (gc *GameController) OpenRequests(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	requests, err := gc.service.OpenRequestsForGame(c.Request.Context(), userID, gameID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", requests)
}

// @Summary      Accept a join request
// @Tags         Join Requests
// @Security     ApiKeyAuth
// @Produce      json
// @Param        requestID path int true "Request ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /games/join-requests/{requestID}/accept [post]
func (gc *GameController) AcceptRequest(c *gin.Context) {
	gc.moderate(c, gc.service.Accept, "Request accepted")
}

// @Summary      Reject a join request
// @Tags         Join Requests
// @Security     ApiKeyAuth
// @Produce      json
// @Param        requestID path int true "Request ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /games/join-requests/{requestID}/reject [post]
func (gc *GameController) RejectRequest(c *gin.Context) {
	gc.moderate(c, gc.service.Reject, "Request rejected")
}

func (gc *GameController) moderate(c *gin.Context, action func(ctx context.Context, organiserID string, requestID uint) error, message string) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	requestID, ok := parseID(c, "requestID")
	if !ok {
		return
	}
	if err := action(c.Request.Context(), userID, requestID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, message, nil)
}

// @Summary      Leave a game
// @Description  Removes the caller from the roster, or withdraws a pending request.
// @Tags         Join Requests
// @Security     ApiKeyAuth
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse "Organisers cannot leave their own game"
// @Failure      404 {object} responses.ErrorResponse
// @Router       /games/{id}/players/me [delete]
func (gc *GameController) Cancel(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := gc.service.Cancel(c.Request.Context(), gameID, userID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "You have left the game", nil)
}

// @Summary      Remove a player
// @Tags         Join Requests
// @Security     ApiKeyAuth
// @Produce      json
// @Param        id path int true "Game ID"
// @Param        playerID path string true "Player ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /games/{id}/players/{playerID} [delete]
func (gc *GameController) RemovePlayer(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := gc.service.Remove(c.Request.Context(), userID, gameID, c.Param("playerID")); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player removed from the game", nil)
}

// @Summary      Rate a player
// @Tags         Ratings
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Game ID"
// @Param        playerID path string true "Player ID"
// @Param        rating body RateRequest true "Rating from 1 to 5"
// @Success      200 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /games/{id}/ratings/{playerID} [put]
func (gc *GameController) RatePlayer(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	if err := gc.service.Rate(c.Request.Context(), userID, gameID, c.Param("playerID"), req.Rating); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Rating saved", nil)
}

// @Summary      Games I organise
// @Tags         Games
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse{data=[]MapData}
// @Router       /games/mine/managed [get]
func (gc *GameController) ManagedGames(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	games, err := gc.service.ManagedGames(c.Request.Context(), userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	gc.sendMapData(c, games)
}

// @Summary      Games I play in
// @Tags         Games
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse{data=[]MapData}
// @Router       /games/mine/participating [get]
func (gc *GameController) ParticipatingGames(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	games, err := gc.service.GamesParticipatingIn(c.Request.Context(), userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	gc.sendMapData(c, games)
}

// @Summary      Dashboard
// @Description  Managed games, joined games, requests awaiting the caller and the caller's average rating.
// @Tags         Profile
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200 {object} responses.SuccessResponse{data=Dashboard}
// @Router       /profile/dashboard [get]
func (gc *GameController) Dashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	d, err := gc.service.Dashboard(c.Request.Context(), userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", d)
}
