package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

// Repository defines the data access settlement needs. Lock* methods take a
// row lock and must run inside a transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	LockGame(ctx context.Context, gameID uuid.UUID) (*models.Game, error)
	UpdateGameResult(ctx context.Context, game *models.Game) error
	UpdateGameStatus(ctx context.Context, game *models.Game) error

	PendingSingles(ctx context.Context, gameID uuid.UUID) ([]models.Bet, error)
	PendingLegs(ctx context.Context, gameID uuid.UUID) ([]models.ParlayLeg, error)
	UpdateLegResult(ctx context.Context, leg *models.ParlayLeg) error
	LockParlay(ctx context.Context, betID uuid.UUID) (*models.Bet, error)

	// ResolveBet moves a pending bet to its final status. It fails with
	// models.ErrAlreadySettled when the row is no longer pending.
	ResolveBet(ctx context.Context, bet *models.Bet) error
}

// Service resolves games and the bets placed on them
type Service interface {
	SettleGame(ctx context.Context, gameID, winnerID uuid.UUID, homeScore, awayScore int) (*Result, error)
	SettleFromScores(ctx context.Context, gameID uuid.UUID, homeScore, awayScore int) (*Result, error)
	UpdateStatus(ctx context.Context, gameID uuid.UUID, status models.GameStatus) (*GameStatusResponse, error)
}

// StatsInvalidator drops cached stats for users whose bets changed.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}
