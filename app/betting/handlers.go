package betting

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joefazee/sportsbook/app/api"
)

// Handler handles HTTP requests for betting operations
type Handler struct {
	service   Service
	validator *validator.Validate
}

// NewHandler creates a new betting handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// PlaceSingle godoc
// @Summary Place a single bet
// @Description Stake on one team in one upcoming game at the listed odds
// @Tags betting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlaceSingleRequest true "Bet placement request"
// @Success 201 {object} api.Response{data=PlacementResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 403 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 422 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/bets [post]
func (h *Handler) PlaceSingle(c *gin.Context) {
	userID, ok := api.MustUserID(c)
	if !ok {
		return
	}

	var req PlaceSingleRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.service.PlaceSingle(c.Request.Context(), userID, &req)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.CreatedResponse(c, "Bet placed successfully", result)
}

// PlaceParlay godoc
// @Summary Place a parlay
// @Description Combine two or more selections under one stake
// @Tags betting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlaceParlayRequest true "Parlay placement request"
// @Success 201 {object} api.Response{data=PlacementResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 422 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/bets/parlay [post]
func (h *Handler) PlaceParlay(c *gin.Context) {
	userID, ok := api.MustUserID(c)
	if !ok {
		return
	}

	var req PlaceParlayRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.service.PlaceParlay(c.Request.Context(), userID, &req)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.CreatedResponse(c, "Parlay placed successfully", result)
}

// GetMyBets godoc
// @Summary List my bets
// @Tags betting
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, won or lost"
// @Param kind query string false "single or parlay"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} api.Response{data=[]BetResponse,meta=api.PaginationMeta}
// @Router /api/v1/bets [get]
func (h *Handler) GetMyBets(c *gin.Context) {
	userID, ok := api.MustUserID(c)
	if !ok {
		return
	}

	var filters BetFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	bets, total, err := h.service.ListBets(c.Request.Context(), userID, &filters)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.PaginatedResponse(c, "Bets retrieved successfully", bets, api.NewPaginationMeta(filters.Page, filters.PerPage, total))
}

// GetBetByID godoc
// @Summary Get one of my bets
// @Tags betting
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bet ID"
// @Success 200 {object} api.Response{data=BetResponse}
// @Failure 403 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/bets/{id} [get]
func (h *Handler) GetBetByID(c *gin.Context) {
	userID, ok := api.MustUserID(c)
	if !ok {
		return
	}

	betID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	bet, err := h.service.GetBet(c.Request.Context(), userID, betID)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.OKResponse(c, "Bet retrieved successfully", bet)
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		api.ValidationErrorResponse(c, formatValidationErrors(err))
		return false
	}
	return true
}

func formatValidationErrors(err error) interface{} {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = validationMessage(fieldError)
	}
	return fields
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "gt":
		return "Value must be greater than " + fieldError.Param()
	case "min":
		return "Value must be at least " + fieldError.Param()
	default:
		return "Invalid value"
	}
}
