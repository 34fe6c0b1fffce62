package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

// Entry is one signed movement against a user's wallet.
type Entry struct {
	UserID      uuid.UUID
	Type        models.TransactionType
	Amount      int64
	BetID       *uuid.UUID
	Description string
}

// Ledger applies entries to wallets. Every call must run inside a database
// transaction; the wallet row stays locked until that transaction ends.
type Ledger struct {
	repo Repository
}

func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Lock returns the caller's wallet row-locked, creating an empty one first
// when the user has none.
func (l *Ledger) Lock(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Wallet, error) {
	repo := l.repo.WithTx(tx)

	wallet, err := repo.GetByUserIDForUpdate(ctx, userID)
	if errors.Is(err, models.ErrRecordNotFound) {
		if err = repo.EnsureWallet(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to create wallet: %w", err)
		}
		wallet, err = repo.GetByUserIDForUpdate(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return wallet, nil
}

// Post locks the wallet, applies the entry and appends the ledger row. A
// debit larger than the balance fails with models.ErrInsufficientBalance and
// leaves nothing written. Zero-amount entries only append the row.
func (l *Ledger) Post(ctx context.Context, tx *gorm.DB, e Entry) (*models.Transaction, error) {
	repo := l.repo.WithTx(tx)

	wallet, err := l.Lock(ctx, tx, e.UserID)
	if err != nil {
		return nil, err
	}

	if err := wallet.Apply(e.Amount); err != nil {
		return nil, err
	}

	if e.Amount != 0 {
		if err := repo.UpdateBalance(ctx, wallet); err != nil {
			return nil, fmt.Errorf("failed to update wallet: %w", err)
		}
	}

	txn := &models.Transaction{
		UserID:       e.UserID,
		WalletID:     wallet.ID,
		BetID:        e.BetID,
		Type:         e.Type,
		Amount:       e.Amount,
		BalanceAfter: wallet.Balance,
		Description:  e.Description,
	}
	if err := repo.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return txn, nil
}
