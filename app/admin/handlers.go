package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/app/api"
	"github.com/joefazee/sportsbook/internal/logger"
	"github.com/joefazee/sportsbook/internal/sanitizer"
	"github.com/joefazee/sportsbook/internal/validator"
)

type Handler struct {
	service   Service
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

func NewHandler(service Service, sanitizer sanitizer.HTMLStripperer, logger logger.Logger) *Handler {
	return &Handler{service: service, sanitizer: sanitizer, logger: logger}
}

// validate is satisfied by request types that only need checking
type validate interface {
	Validate(v *validator.Validator)
}

func (h *Handler) bindJSON(c *gin.Context, req validate) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return false
	}
	return check(c, req.Validate)
}

func (h *Handler) bindQuery(c *gin.Context, req validate) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return false
	}
	return check(c, req.Validate)
}

func check(c *gin.Context, fn func(*validator.Validator)) bool {
	v := validator.New()
	fn(v)
	if !v.Valid() {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return false
	}
	return true
}

// GetUsers godoc
// @Summary      List users (Admin)
// @Tags         admin
// @Produce      json
// @Param        page      query  int     false  "Page number" default(1)
// @Param        per_page  query  int     false  "Items per page" default(20)
// @Param        search    query  string  false  "Username or name"
// @Param        role      query  string  false  "Role" Enums(user, agent, owner)
// @Param        suspended query  bool    false  "Suspended only"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=[]UserResponse,meta=api.PaginationMeta}
// @Router       /api/v1/admin/users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	var filters UserFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	if !check(c, func(v *validator.Validator) { filters.SanitizeAndValidate(v, h.sanitizer) }) {
		return
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), &filters)
	if err != nil {
		h.logger.Error(err, logger.Fields{"handler": "GetUsers"})
		api.HandleError(c, err)
		return
	}
	api.PaginatedResponse(c, "Users retrieved successfully", users, api.NewPaginationMeta(filters.Page, filters.PerPage, total))
}

// GetUser godoc
// @Summary      User details (Admin)
// @Description  User, wallet, recent bets and recent transactions
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "User ID"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=UserDetailResponse}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	details, err := h.service.GetUserDetails(c.Request.Context(), userID)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.OKResponse(c, "User retrieved successfully", details)
}

// UpdateLimits godoc
// @Summary      Update betting limits (Admin)
// @Description  Each limit is {"mode":"unlimited|blocked|capped","amount":n} or a legacy number where 0 and null mean unlimited
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path  string               true  "User ID"
// @Param        request  body  UpdateLimitsRequest  true  "Limits"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=UserResponse}
// @Router       /api/v1/admin/users/{id}/limits [put]
func (h *Handler) UpdateLimits(c *gin.Context) {
	userID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateLimitsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateLimits(c.Request.Context(), userID, &req)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.OKResponse(c, "Limits updated successfully", user)
}

// UpdateSuspension godoc
// @Summary      Suspend or reinstate a user (Admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path  string          true  "User ID"
// @Param        request  body  SuspendRequest  true  "Suspension"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=UserResponse}
// @Router       /api/v1/admin/users/{id}/suspension [patch]
func (h *Handler) UpdateSuspension(c *gin.Context) {
	userID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req SuspendRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.SetSuspended(c.Request.Context(), userID, *req.Suspended)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.OKResponse(c, "User updated successfully", user)
}

// UpdateRole godoc
// @Summary      Change a user's role (Owner)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "User ID"
// @Param        request  body  UpdateRoleRequest  true  "Role"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=UserResponse}
// @Failure      403  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users/{id}/role [patch]
func (h *Handler) UpdateRole(c *gin.Context) {
	actorID, ok := api.MustUserID(c)
	if !ok {
		return
	}
	userID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), actorID, userID, req.Role)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.OKResponse(c, "Role updated successfully", user)
}

// SetBalance godoc
// @Summary      Override a wallet balance (Admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "User ID"
// @Param        request  body  SetBalanceRequest  true  "Balance in minor units"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=BalanceResponse}
// @Router       /api/v1/admin/users/{id}/balance [put]
func (h *Handler) SetBalance(c *gin.Context) {
	userID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req SetBalanceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.SetBalance(c.Request.Context(), userID, *req.Balance)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.OKResponse(c, "Balance updated successfully", result)
}

// AdjustBalance godoc
// @Summary      Credit or debit a wallet (Admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "User ID"
// @Param        request  body  AdjustBalanceRequest  true  "Signed amount and reason"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=BalanceResponse}
// @Failure      422  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/admin/users/{id}/balance/adjust [post]
func (h *Handler) AdjustBalance(c *gin.Context) {
	userID, ok := api.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}
	if !check(c, func(v *validator.Validator) { req.SanitizeAndValidate(v, h.sanitizer) }) {
		return
	}

	result, err := h.service.AdjustBalance(c.Request.Context(), userID, &req)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.OKResponse(c, "Balance adjusted successfully", result)
}

// GetBets godoc
// @Summary      List all bets (Admin)
// @Tags         admin
// @Produce      json
// @Param        status   query  string  false  "pending, won or lost"
// @Param        user_id  query  string  false  "User ID"
// @Param        game_id  query  string  false  "Game ID, parlay legs included"
// @Param        page     query  int     false  "Page number"
// @Param        per_page query  int     false  "Items per page"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=[]AdminBetResponse,meta=api.PaginationMeta}
// @Router       /api/v1/admin/bets [get]
func (h *Handler) GetBets(c *gin.Context) {
	var filters BetFilters
	if !h.bindQuery(c, &filters) {
		return
	}

	bets, total, err := h.service.ListBets(c.Request.Context(), &filters)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.PaginatedResponse(c, "Bets retrieved successfully", bets, api.NewPaginationMeta(filters.Page, filters.PerPage, total))
}

// GetTransactions godoc
// @Summary      List all transactions (Admin)
// @Tags         admin
// @Produce      json
// @Param        type     query  string  false  "Transaction type"
// @Param        user_id  query  string  false  "User ID"
// @Param        page     query  int     false  "Page number"
// @Param        per_page query  int     false  "Items per page"
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=[]AdminTransactionResponse,meta=api.PaginationMeta}
// @Router       /api/v1/admin/transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	var filters TransactionFilters
	if !h.bindQuery(c, &filters) {
		return
	}

	txns, total, err := h.service.ListTransactions(c.Request.Context(), &filters)
	if err != nil {
		api.HandleError(c, err)
		return
	}
	api.PaginatedResponse(c, "Transactions retrieved successfully", txns, api.NewPaginationMeta(filters.Page, filters.PerPage, total))
}
