package settlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) LockGame(ctx context.Context, gameID uuid.UUID) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", gameID).
		First(&game).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &game, nil
}

func (r *repository) UpdateGameResult(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).
		Model(game).
		Select("status", "winner_id", "home_score", "away_score", "settled_at").
		Updates(game).Error
}

func (r *repository) UpdateGameStatus(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Model(game).Update("status", game.Status).Error
}

func (r *repository) PendingSingles(ctx context.Context, gameID uuid.UUID) ([]models.Bet, error) {
	var bets []models.Bet
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND is_parlay = ? AND status = ?", gameID, false, models.BetStatusPending).
		Order("id").
		Find(&bets).Error
	return bets, err
}

func (r *repository) PendingLegs(ctx context.Context, gameID uuid.UUID) ([]models.ParlayLeg, error) {
	var legs []models.ParlayLeg
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND result = ?", gameID, models.BetStatusPending).
		Find(&legs).Error
	return legs, err
}

func (r *repository) UpdateLegResult(ctx context.Context, leg *models.ParlayLeg) error {
	return r.db.WithContext(ctx).Model(leg).Update("result", leg.Result).Error
}

// LockParlay locks the parent bet first and reads its legs afterwards, so
// legs resolved by a settlement that held the lock are visible.
func (r *repository) LockParlay(ctx context.Context, betID uuid.UUID) (*models.Bet, error) {
	var bet models.Bet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_parlay = ?", betID, true).
		First(&bet).Error
	if err != nil {
		return nil, mapNotFound(err)
	}

	if err := r.db.WithContext(ctx).Where("bet_id = ?", betID).Find(&bet.Legs).Error; err != nil {
		return nil, err
	}
	return &bet, nil
}

func (r *repository) ResolveBet(ctx context.Context, bet *models.Bet) error {
	result := r.db.WithContext(ctx).
		Model(&models.Bet{}).
		Where("id = ? AND status = ?", bet.ID, models.BetStatusPending).
		Updates(map[string]interface{}{
			"status":     bet.Status,
			"settled_at": bet.SettledAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrAlreadySettled
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return err
}
