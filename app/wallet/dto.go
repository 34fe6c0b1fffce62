package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/internal/formatter"
	"github.com/joefazee/sportsbook/models"
)

// AmountRequest is the body for deposits and withdrawals, in minor units.
type AmountRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// Response represents a wallet in API responses
type Response struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Balance        int64     `json:"balance"`
	BalanceDisplay string    `json:"balance_display"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TransactionResponse represents a ledger row in API responses
type TransactionResponse struct {
	ID           uuid.UUID              `json:"id"`
	Type         models.TransactionType `json:"type"`
	Amount       int64                  `json:"amount"`
	BalanceAfter int64                  `json:"balance_after"`
	BetID        *uuid.UUID             `json:"bet_id,omitempty"`
	Description  string                 `json:"description"`
	CreatedAt    time.Time              `json:"created_at"`
}

// OperationResponse represents the response for wallet operations
type OperationResponse struct {
	Wallet      *Response            `json:"wallet"`
	Transaction *TransactionResponse `json:"transaction"`
}

// ToWalletResponse converts a models.Wallet to Response
func ToWalletResponse(wallet *models.Wallet) *Response {
	return &Response{
		ID:             wallet.ID,
		UserID:         wallet.UserID,
		Balance:        wallet.Balance,
		BalanceDisplay: formatter.Money(wallet.Balance),
		UpdatedAt:      wallet.UpdatedAt,
	}
}

// ToTransactionResponse converts a models.Transaction to TransactionResponse
func ToTransactionResponse(t *models.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		Type:         t.Type,
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		BetID:        t.BetID,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of ledger rows
func ToTransactionResponses(transactions []models.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = *ToTransactionResponse(&transactions[i])
	}
	return responses
}
