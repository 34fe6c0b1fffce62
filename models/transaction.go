package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeBetPlaced  TransactionType = "bet_placed"
	TransactionTypeBetWon     TransactionType = "bet_won"
	TransactionTypeBetLost    TransactionType = "bet_lost"
)

// Transaction is an append-only ledger row. Amount is signed and
// BalanceAfter is the wallet balance once it was applied.
type Transaction struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user" json:"user_id"`
	WalletID     uuid.UUID       `gorm:"type:uuid;not null" json:"wallet_id"`
	BetID        *uuid.UUID      `gorm:"type:uuid;index" json:"bet_id,omitempty"`
	Type         TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Amount       int64           `gorm:"not null" json:"amount"`
	BalanceAfter int64           `gorm:"not null" json:"balance_after"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime;index:idx_transactions_user" json:"created_at"`
}

// TableName specifies the table name for Transaction model
func (*Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate sets up the model before creation
func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Validate checks the amount sign against the transaction type.
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if t.BalanceAfter < 0 {
		return ErrNegativeBalance
	}

	switch t.Type {
	case TransactionTypeDeposit, TransactionTypeBetWon:
		if t.Amount <= 0 {
			return ErrInvalidTransactionAmount
		}
	case TransactionTypeWithdrawal, TransactionTypeBetPlaced:
		if t.Amount >= 0 {
			return ErrInvalidTransactionAmount
		}
	case TransactionTypeBetLost:
		// audit marker only
		if t.Amount != 0 {
			return ErrInvalidTransactionAmount
		}
	default:
		return ErrInvalidTransactionType
	}
	return nil
}
