package wallet

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetWallet godoc
// @Summary Get my wallet
// @Description Get the caller's wallet, creating an empty one on first access
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=Response}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/wallet [get]
func (h *Handler) GetWallet(c *gin.Context) {
	userID, ok := api.MustUserID(c)
	if !ok {
		return
	}

	wallet, err := h.service.GetWallet(c.Request.Context(), userID)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.OKResponse(c, "Wallet retrieved successfully", wallet)
}

// Deposit godoc
// @Summary Deposit funds
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmountRequest true "Amount in minor units"
// @Success 200 {object} api.Response{data=OperationResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/wallet/deposit [post]
func (h *Handler) Deposit(c *gin.Context) {
	h.move(c, h.service.Deposit, "Deposit successful")
}

// Withdraw godoc
// @Summary Withdraw funds
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmountRequest true "Amount in minor units"
// @Success 200 {object} api.Response{data=OperationResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 422 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/wallet/withdraw [post]
func (h *Handler) Withdraw(c *gin.Context) {
	h.move(c, h.service.Withdraw, "Withdrawal successful")
}

// GetTransactions godoc
// @Summary List my transactions
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} api.Response{data=[]TransactionResponse,meta=api.PaginationMeta}
// @Router /api/v1/wallet/transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	userID, ok := api.MustUserID(c)
	if !ok {
		return
	}

	page, perPage := api.Pagination(c)
	transactions, total, err := h.service.GetTransactions(c.Request.Context(), userID, page, perPage)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.PaginatedResponse(c, "Transactions retrieved successfully", transactions, api.NewPaginationMeta(page, perPage, total))
}

type moveFunc func(ctx context.Context, userID uuid.UUID, req *AmountRequest) (*OperationResponse, error)

func (h *Handler) move(c *gin.Context, fn moveFunc, message string) {
	userID, ok := api.MustUserID(c)
	if !ok {
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	result, err := fn(c.Request.Context(), userID, &req)
	if err != nil {
		api.HandleError(c, err)
		return
	}

	api.OKResponse(c, message, result)
}
