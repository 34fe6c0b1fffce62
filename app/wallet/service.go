package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/internal/events"
	"github.com/joefazee/sportsbook/internal/logger"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

type Service interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*Response, error)
	Deposit(ctx context.Context, userID uuid.UUID, req *AmountRequest) (*OperationResponse, error)
	Withdraw(ctx context.Context, userID uuid.UUID, req *AmountRequest) (*OperationResponse, error)
	GetTransactions(ctx context.Context, userID uuid.UUID, page, perPage int) ([]TransactionResponse, int64, error)
}

type service struct {
	repo      Repository
	ledger    *Ledger
	db        *gorm.DB
	publisher events.Publisher
	logger    logger.Logger
}

func NewService(repo Repository, ledger *Ledger, db *gorm.DB, publisher events.Publisher, log logger.Logger) Service {
	return &service{
		repo:      repo,
		ledger:    ledger,
		db:        db,
		publisher: publisher,
		logger:    log,
	}
}

// GetWallet returns the user's wallet, creating an empty one on first read.
func (s *service) GetWallet(ctx context.Context, userID uuid.UUID) (*Response, error) {
	wallet, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, models.ErrRecordNotFound) {
		if err = s.repo.EnsureWallet(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to create wallet: %w", err)
		}
		wallet, err = s.repo.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return ToWalletResponse(wallet), nil
}

func (s *service) Deposit(ctx context.Context, userID uuid.UUID, req *AmountRequest) (*OperationResponse, error) {
	if req.Amount < 1 {
		return nil, models.ErrInvalidTransactionAmount
	}

	return s.post(ctx, Entry{
		UserID:      userID,
		Type:        models.TransactionTypeDeposit,
		Amount:      req.Amount,
		Description: "Deposit",
	})
}

// Withdraw takes funds out. Withdrawal rows carry a negative amount so the
// ledger always sums to the balance.
func (s *service) Withdraw(ctx context.Context, userID uuid.UUID, req *AmountRequest) (*OperationResponse, error) {
	if req.Amount < 1 {
		return nil, models.ErrInvalidTransactionAmount
	}

	return s.post(ctx, Entry{
		UserID:      userID,
		Type:        models.TransactionTypeWithdrawal,
		Amount:      -req.Amount,
		Description: "Withdrawal",
	})
}

func (s *service) GetTransactions(ctx context.Context, userID uuid.UUID, page, perPage int) ([]TransactionResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	transactions, total, err := s.repo.GetTransactions(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	return ToTransactionResponses(transactions), total, nil
}

// post runs a single ledger entry in its own transaction and announces it
// once committed.
func (s *service) post(ctx context.Context, e Entry) (*OperationResponse, error) {
	var txn *models.Transaction
	var wallet *models.Wallet

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = s.ledger.Post(ctx, tx, e)
		if err != nil {
			return err
		}
		wallet, err = s.repo.WithTx(tx).GetByUserID(ctx, e.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	PublishMovements(ctx, s.publisher, s.logger, *txn)

	return &OperationResponse{
		Wallet:      ToWalletResponse(wallet),
		Transaction: ToTransactionResponse(txn),
	}, nil
}

// PublishMovements emits a wallet.moved event per ledger row. Failures are
// logged and swallowed since the rows are already committed.
func PublishMovements(ctx context.Context, publisher events.Publisher, log logger.Logger, txns ...models.Transaction) {
	if len(txns) == 0 {
		return
	}

	evts := make([]events.Event, len(txns))
	for i := range txns {
		evts[i] = events.New(events.WalletMoved, txns[i].UserID.String(), ToTransactionResponse(&txns[i]))
	}

	if err := publisher.Publish(ctx, evts...); err != nil {
		log.Error(err, logger.Fields{"event": events.WalletMoved, "count": len(evts)})
	}
}
