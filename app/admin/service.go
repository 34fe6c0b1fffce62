package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/betting"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/internal/events"
	"github.com/joefazee/sportsbook/internal/logger"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

type service struct {
	db        *gorm.DB
	repo      Repository
	ledger    *wallet.Ledger
	publisher events.Publisher
	logger    logger.Logger
}

// NewService creates the back-office service. Balance changes go through
// ledger so every override leaves a transaction row.
func NewService(db *gorm.DB, repo Repository, ledger *wallet.Ledger, publisher events.Publisher, log logger.Logger) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &service{db: db, repo: repo, ledger: ledger, publisher: publisher, logger: log}
}

func (s *service) ListUsers(ctx context.Context, filters *UserFilters) ([]UserResponse, int64, error) {
	normalizePage(&filters.Page, &filters.PerPage)

	users, total, err := s.repo.GetUsers(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get users: %w", err)
	}

	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out, total, nil
}

func (s *service) GetUserDetails(ctx context.Context, userID uuid.UUID) (*UserDetailResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	bets, _, err := s.repo.GetBets(ctx, &BetFilters{Page: 1, PerPage: recentItems, userID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}
	txns, _, err := s.repo.GetTransactions(ctx, &TransactionFilters{Page: 1, PerPage: recentItems, userID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	resp := &UserDetailResponse{
		User:               ToUserResponse(user),
		RecentBets:         make([]betting.BetResponse, len(bets)),
		RecentTransactions: wallet.ToTransactionResponses(txns),
	}
	if user.Wallet != nil {
		resp.Wallet = wallet.ToWalletResponse(user.Wallet)
	}
	for i := range bets {
		resp.RecentBets[i] = *betting.ToBetResponse(&bets[i])
	}
	return resp, nil
}

// UpdateLimits replaces only the limits present in req.
func (s *service) UpdateLimits(ctx context.Context, userID uuid.UUID, req *UpdateLimitsRequest) (*UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DailyLimit.Set {
		user.DailyLimit = req.DailyLimit.Limit
	}
	if req.WeeklyLimit.Set {
		user.WeeklyLimit = req.WeeklyLimit.Limit
	}
	if req.PerBetLimit.Set {
		user.PerBetLimit = req.PerBetLimit.Limit
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLimits(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update limits: %w", err)
	}

	s.logger.Info("limits updated", logger.Fields{
		"user_id": userID,
		"daily":   user.DailyLimit,
		"weekly":  user.WeeklyLimit,
		"per_bet": user.PerBetLimit,
	})
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *service) SetSuspended(ctx context.Context, userID uuid.UUID, suspended bool) (*UserResponse, error) {
	if err := s.repo.UpdateSuspended(ctx, userID, suspended); err != nil {
		return nil, err
	}
	s.logger.Info("suspension changed", logger.Fields{"user_id": userID, "suspended": suspended})
	return s.reload(ctx, userID)
}

// UpdateRole changes a user's role. Staff cannot change their own role.
func (s *service) UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role models.Role) (*UserResponse, error) {
	if !role.IsValid() {
		return nil, models.ErrInvalidRole
	}
	if actorID == userID {
		return nil, fmt.Errorf("%w: cannot change your own role", models.ErrForbidden)
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	s.logger.Info("role changed", logger.Fields{"user_id": userID, "role": role, "by": actorID})
	return s.reload(ctx, userID)
}

// SetBalance moves the wallet to exactly balance, recording the difference
// as a deposit or withdrawal. No row is written when nothing changes.
func (s *service) SetBalance(ctx context.Context, userID uuid.UUID, balance int64) (*BalanceResponse, error) {
	if balance < 0 {
		return nil, models.ErrNegativeBalance
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	var resp *BalanceResponse
	var posted *models.Transaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := s.ledger.Lock(ctx, tx, userID)
		if err != nil {
			return err
		}

		delta := balance - w.Balance
		if delta == 0 {
			resp = toBalanceResponse(userID, w.Balance, 0, nil)
			return nil
		}

		entry := wallet.Entry{UserID: userID, Type: models.TransactionTypeDeposit, Amount: delta, Description: "Balance set by admin"}
		if delta < 0 {
			entry.Type = models.TransactionTypeWithdrawal
		}
		posted, err = s.ledger.Post(ctx, tx, entry)
		if err != nil {
			return err
		}
		resp = toBalanceResponse(userID, posted.BalanceAfter, delta, posted)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.announce(ctx, posted, logger.Fields{"user_id": userID, "balance": balance, "delta": resp.Delta, "op": "set_balance"})
	return resp, nil
}

// AdjustBalance applies a signed amount with the reason as the ledger text.
func (s *service) AdjustBalance(ctx context.Context, userID uuid.UUID, req *AdjustBalanceRequest) (*BalanceResponse, error) {
	if req.Amount == 0 {
		return nil, models.ErrInvalidTransactionAmount
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	entry := wallet.Entry{
		UserID:      userID,
		Type:        models.TransactionTypeDeposit,
		Amount:      req.Amount,
		Description: "Admin adjustment: " + req.Reason,
	}
	if req.Amount < 0 {
		entry.Type = models.TransactionTypeWithdrawal
	}

	var posted *models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		posted, err = s.ledger.Post(ctx, tx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.announce(ctx, posted, logger.Fields{"user_id": userID, "delta": req.Amount, "reason": req.Reason, "op": "adjust_balance"})
	return toBalanceResponse(userID, posted.BalanceAfter, req.Amount, posted), nil
}

func (s *service) ListBets(ctx context.Context, filters *BetFilters) ([]AdminBetResponse, int64, error) {
	normalizePage(&filters.Page, &filters.PerPage)

	bets, total, err := s.repo.GetBets(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get bets: %w", err)
	}

	out := make([]AdminBetResponse, len(bets))
	for i := range bets {
		out[i] = AdminBetResponse{BetResponse: *betting.ToBetResponse(&bets[i]), UserID: bets[i].UserID}
		if bets[i].User != nil {
			out[i].Username = bets[i].User.Username
		}
	}
	return out, total, nil
}

func (s *service) ListTransactions(ctx context.Context, filters *TransactionFilters) ([]AdminTransactionResponse, int64, error) {
	normalizePage(&filters.Page, &filters.PerPage)

	txns, total, err := s.repo.GetTransactions(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	out := make([]AdminTransactionResponse, len(txns))
	for i := range txns {
		out[i] = AdminTransactionResponse{TransactionResponse: *wallet.ToTransactionResponse(&txns[i]), UserID: txns[i].UserID}
	}
	return out, total, nil
}

func (s *service) reload(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *service) announce(ctx context.Context, txn *models.Transaction, fields logger.Fields) {
	s.logger.Info("balance changed by admin", fields)
	if txn != nil {
		wallet.PublishMovements(ctx, s.publisher, s.logger, *txn)
	}
}
