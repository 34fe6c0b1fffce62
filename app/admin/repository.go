package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new admin repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetUsers(ctx context.Context, filters *UserFilters) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("username ILIKE ? OR name ILIKE ?", like, like)
	}
	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}
	if filters.Suspended != "" {
		query = query.Where("suspended = ?", filters.Suspended == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.
		Preload("Wallet").
		Order("created_at DESC").
		Limit(filters.PerPage).
		Offset((filters.Page - 1) * filters.PerPage).
		Find(&users).Error
	return users, total, err
}

func (r *repository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Wallet").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

// FindUser reads only what staff route checks need.
func (r *repository) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Select("id", "role", "suspended").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

// UpdateLimits writes all three limits; NULL columns mean unlimited.
func (r *repository) UpdateLimits(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).
		Model(&models.User{ID: user.ID}).
		Select("daily_limit", "weekly_limit", "per_bet_limit").
		Updates(user).Error
}

func (r *repository) UpdateSuspended(ctx context.Context, userID uuid.UUID, suspended bool) error {
	return r.updateColumn(ctx, userID, "suspended", suspended)
}

func (r *repository) UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	return r.updateColumn(ctx, userID, "role", role)
}

func (r *repository) updateColumn(ctx context.Context, userID uuid.UUID, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

func (r *repository) GetBets(ctx context.Context, filters *BetFilters) ([]models.Bet, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Bet{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.userID != uuid.Nil {
		query = query.Where("user_id = ?", filters.userID)
	}
	if filters.gameID != uuid.Nil {
		query = query.Where("game_id = ? OR id IN (?)", filters.gameID,
			r.db.Model(&models.ParlayLeg{}).Select("bet_id").Where("game_id = ?", filters.gameID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bets []models.Bet
	err := query.
		Preload("User").
		Preload("Legs").
		Order("created_at DESC").
		Limit(filters.PerPage).
		Offset((filters.Page - 1) * filters.PerPage).
		Find(&bets).Error
	return bets, total, err
}

func (r *repository) GetTransactions(ctx context.Context, filters *TransactionFilters) ([]models.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.userID != uuid.Nil {
		query = query.Where("user_id = ?", filters.userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txns []models.Transaction
	err := query.
		Order("created_at DESC").
		Limit(filters.PerPage).
		Offset((filters.Page - 1) * filters.PerPage).
		Find(&txns).Error
	return txns, total, err
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return err
}
