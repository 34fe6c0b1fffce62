package betting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new betting repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

// GetWalletBalance returns 0 for users that have no wallet yet.
func (r *repository) GetWalletBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balances []int64
	err := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Limit(1).
		Pluck("balance", &balances).Error
	if err != nil || len(balances) == 0 {
		return 0, err
	}
	return balances[0], nil
}

func (r *repository) GetGame(ctx context.Context, gameID uuid.UUID) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Preload("HomeTeam").
		Preload("AwayTeam").
		Where("id = ?", gameID).
		First(&game).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &game, nil
}

func (r *repository) GetGamesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
	var games []models.Game
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&games).Error
	return games, err
}

func (r *repository) LockGames(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
	var games []models.Game
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&games).Error
	return games, err
}

// CreateBet inserts the bet and, for parlays, its legs.
func (r *repository) CreateBet(ctx context.Context, bet *models.Bet) error {
	if err := bet.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit("Game").Create(bet).Error
}

func (r *repository) GetBetByID(ctx context.Context, betID uuid.UUID) (*models.Bet, error) {
	var bet models.Bet
	err := r.db.WithContext(ctx).
		Preload("Game").
		Preload("Legs").
		Where("id = ?", betID).
		First(&bet).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &bet, nil
}

func (r *repository) GetBetsByUser(ctx context.Context, userID uuid.UUID, filters *BetFilters) ([]models.Bet, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Bet{}).Where("user_id = ?", userID)
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Kind == KindSingle {
		query = query.Where("is_parlay = ?", false)
	} else if filters.Kind == KindParlay {
		query = query.Where("is_parlay = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bets []models.Bet
	err := query.
		Preload("Legs").
		Order("created_at DESC").
		Limit(filters.PerPage).
		Offset((filters.Page - 1) * filters.PerPage).
		Find(&bets).Error
	return bets, total, err
}

func (r *repository) StakedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Bet{}).
		Select("COALESCE(SUM(stake), 0)").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Scan(&total).Error
	return total, err
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return err
}
