package stats

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new stats repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *repository) GetUserBets(ctx context.Context, userID uuid.UUID) ([]models.Bet, error) {
	var bets []models.Bet
	err := r.db.WithContext(ctx).
		Preload("Game").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&bets).Error
	return bets, err
}

func (r *repository) GetSports(ctx context.Context) ([]models.Sport, error) {
	var sports []models.Sport
	err := r.db.WithContext(ctx).Order("sort_order, name").Find(&sports).Error
	return sports, err
}
