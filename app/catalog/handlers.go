package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/app/api"
	"github.com/joefazee/sportsbook/internal/sanitizer"
	"github.com/joefazee/sportsbook/internal/validator"
)

// Handler handles HTTP requests for the sports catalog
type Handler struct {
	service   Service
	sanitizer sanitizer.HTMLStripperer
}

// NewHandler creates a new catalog handler
func NewHandler(service Service, sanitizer sanitizer.HTMLStripperer) *Handler {
	return &Handler{service: service, sanitizer: sanitizer}
}

// GetSports godoc
// @Summary List sports
// @Tags catalog
// @Produce json
// @Success 200 {object} api.Response{data=[]SportResponse}
// @Router /api/v1/sports [get]
func (h *Handler) GetSports(c *gin.Context) {
	sports, err := h.service.ListSports(c.Request.Context())
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.ListResponse(c, "Sports retrieved successfully", sports, len(sports))
}

// GetTeams godoc
// @Summary List a sport's teams
// @Tags catalog
// @Produce json
// @Param id path string true "Sport ID"
// @Success 200 {object} api.Response{data=[]TeamResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/sports/{id}/teams [get]
func (h *Handler) GetTeams(c *gin.Context) {
	sportID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	teams, err := h.service.ListTeams(c.Request.Context(), sportID)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.ListResponse(c, "Teams retrieved successfully", teams, len(teams))
}

// GetGames godoc
// @Summary List games
// @Tags catalog
// @Produce json
// @Param status query string false "upcoming, live or completed"
// @Param sport_id query string false "Sport ID"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} api.Response{data=[]GameResponse,meta=api.PaginationMeta}
// @Router /api/v1/games [get]
func (h *Handler) GetGames(c *gin.Context) {
	var filters GameFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	filters.Validate(v)
	if !v.Valid() {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	games, total, err := h.service.ListGames(c.Request.Context(), &filters)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.PaginatedResponse(c, "Games retrieved successfully", games, api.NewPaginationMeta(filters.Page, filters.PerPage, total))
}

// GetGameByID godoc
// @Summary Get a game
// @Tags catalog
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} api.Response{data=GameResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/games/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	game, err := h.service.GetGame(c.Request.Context(), id)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.OKResponse(c, "Game retrieved successfully", game)
}

// CreateGame godoc
// @Summary List a new game (Admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGameRequest true "Game"
// @Success 201 {object} api.Response{data=GameResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 422 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/games [post]
func (h *Handler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	req.SanitizeAndValidate(v, h.sanitizer)
	if !v.Valid() {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	game, err := h.service.CreateGame(c.Request.Context(), &req)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.CreatedResponse(c, "Game created successfully", game)
}

// UpdateOdds godoc
// @Summary Reprice an upcoming game (Admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Game ID"
// @Param request body UpdateOddsRequest true "New odds"
// @Success 200 {object} api.Response{data=GameResponse}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/games/{id}/odds [patch]
func (h *Handler) UpdateOdds(c *gin.Context) {
	id, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateOddsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	game, err := h.service.UpdateOdds(c.Request.Context(), id, &req)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.OKResponse(c, "Odds updated successfully", game)
}
