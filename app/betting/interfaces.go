package betting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

// Repository defines the interface for betting data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetWalletBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	GetGame(ctx context.Context, gameID uuid.UUID) (*models.Game, error)
	GetGamesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Game, error)
	// LockGames reads the games FOR SHARE. Placements on the same game do not
	// block each other but settlement's FOR UPDATE waits for them.
	LockGames(ctx context.Context, ids []uuid.UUID) ([]models.Game, error)

	CreateBet(ctx context.Context, bet *models.Bet) error
	GetBetByID(ctx context.Context, betID uuid.UUID) (*models.Bet, error)
	GetBetsByUser(ctx context.Context, userID uuid.UUID, filters *BetFilters) ([]models.Bet, int64, error)

	// StakedSince sums stakes of every bet the user placed at or after since.
	StakedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
}

// Service defines the interface for bet placement and bet history
type Service interface {
	PlaceSingle(ctx context.Context, userID uuid.UUID, req *PlaceSingleRequest) (*PlacementResponse, error)
	PlaceParlay(ctx context.Context, userID uuid.UUID, req *PlaceParlayRequest) (*PlacementResponse, error)
	ListBets(ctx context.Context, userID uuid.UUID, filters *BetFilters) ([]BetResponse, int64, error)
	GetBet(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error)
}

// StatsInvalidator drops cached stats for users whose bets changed.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}
