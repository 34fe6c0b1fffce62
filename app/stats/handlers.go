package stats

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/app/api"
)

// Handler handles HTTP requests for betting stats
type Handler struct {
	service Service
}

// NewHandler creates a new stats handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMyStats godoc
// @Summary Get my betting stats
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=BettingStats}
// @Router /api/v1/stats [get]
func (h *Handler) GetMyStats(c *gin.Context) {
	userID, ok := api.MustUserID(c)
	if !ok {
		return
	}

	result, err := h.service.GetStats(c.Request.Context(), userID)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.OKResponse(c, "Stats retrieved successfully", result)
}

// GetUserStats godoc
// @Summary Get a user's betting stats
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} api.Response{data=BettingStats}
// @Router /api/v1/admin/users/{id}/stats [get]
func (h *Handler) GetUserStats(c *gin.Context) {
	userID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetStats(c.Request.Context(), userID)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.OKResponse(c, "Stats retrieved successfully", result)
}
