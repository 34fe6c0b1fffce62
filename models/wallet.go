package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wallet holds a user's cash balance in minor units.
type Wallet struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Balance   int64     `gorm:"not null;default:0;check:balance >= 0" json:"balance"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:WalletID" json:"-"`
}

// TableName specifies the table name for Wallet model
func (*Wallet) TableName() string {
	return "wallets"
}

// BeforeCreate sets up the model before creation
func (w *Wallet) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// CanDebit checks if the wallet can cover amount
func (w *Wallet) CanDebit(amount int64) bool {
	return w.Balance >= amount
}

// Apply adds a signed delta to the balance. A zero delta is allowed and
// leaves the balance unchanged.
func (w *Wallet) Apply(delta int64) error {
	if w.Balance+delta < 0 {
		return ErrInsufficientBalance
	}
	w.Balance += delta
	return nil
}

// Validate performs validation on the wallet model
func (w *Wallet) Validate() error {
	if w.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if w.Balance < 0 {
		return ErrNegativeBalance
	}
	return nil
}
