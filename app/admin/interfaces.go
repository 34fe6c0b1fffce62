package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/api"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

// Repository defines the back-office data access
type Repository interface {
	api.UserFinder
	WithTx(tx *gorm.DB) Repository

	GetUsers(ctx context.Context, filters *UserFilters) ([]models.User, int64, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLimits(ctx context.Context, user *models.User) error
	UpdateSuspended(ctx context.Context, userID uuid.UUID, suspended bool) error
	UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) error

	GetBets(ctx context.Context, filters *BetFilters) ([]models.Bet, int64, error)
	GetTransactions(ctx context.Context, filters *TransactionFilters) ([]models.Transaction, int64, error)
}

// Service defines the back-office operations
type Service interface {
	ListUsers(ctx context.Context, filters *UserFilters) ([]UserResponse, int64, error)
	GetUserDetails(ctx context.Context, userID uuid.UUID) (*UserDetailResponse, error)
	UpdateLimits(ctx context.Context, userID uuid.UUID, req *UpdateLimitsRequest) (*UserResponse, error)
	SetSuspended(ctx context.Context, userID uuid.UUID, suspended bool) (*UserResponse, error)
	UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role models.Role) (*UserResponse, error)
	SetBalance(ctx context.Context, userID uuid.UUID, balance int64) (*BalanceResponse, error)
	AdjustBalance(ctx context.Context, userID uuid.UUID, req *AdjustBalanceRequest) (*BalanceResponse, error)
	ListBets(ctx context.Context, filters *BetFilters) ([]AdminBetResponse, int64, error)
	ListTransactions(ctx context.Context, filters *TransactionFilters) ([]AdminTransactionResponse, int64, error)
}
