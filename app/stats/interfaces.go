package stats

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
)

// Repository reads the history stats are built from
type Repository interface {
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
	// GetUserBets returns every bet of the user with its game loaded.
	GetUserBets(ctx context.Context, userID uuid.UUID) ([]models.Bet, error)
	// GetSports returns the catalog in display order.
	GetSports(ctx context.Context) ([]models.Sport, error)
}

// Service computes per-user betting stats
type Service interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*BettingStats, error)
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}
