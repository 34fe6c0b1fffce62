package settlement

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/app/api"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service Service
}

// NewHandler creates a new settlement handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// SettleGame godoc
// @Summary Settle a game
// @Description Complete a game and resolve every pending bet on it
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Game ID"
// @Param request body SettleRequest true "Final result"
// @Success 200 {object} api.Response{data=Result}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/games/{id}/settle [post]
func (h *Handler) SettleGame(c *gin.Context) {
	gameID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	var (
		result *Result
		err    error
	)
	if req.WinnerTeamID != nil {
		result, err = h.service.SettleGame(c.Request.Context(), gameID, *req.WinnerTeamID, *req.HomeScore, *req.AwayScore)
	} else {
		result, err = h.service.SettleFromScores(c.Request.Context(), gameID, *req.HomeScore, *req.AwayScore)
	}
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.OKResponse(c, "Game settled successfully", result)
}

// UpdateStatus godoc
// @Summary Change a game's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Game ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} api.Response{data=GameStatusResponse}
// @Router /api/v1/admin/games/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	gameID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), gameID, req.Status)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.OKResponse(c, "Game status updated successfully", result)
}
