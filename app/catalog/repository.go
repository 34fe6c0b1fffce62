package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetSports returns sports in catalog order
func (r *repository) GetSports(ctx context.Context) ([]models.Sport, error) {
	var sports []models.Sport
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&sports).Error
	return sports, err
}

func (r *repository) GetSportByID(ctx context.Context, id uuid.UUID) (*models.Sport, error) {
	var sport models.Sport
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&sport).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &sport, nil
}

func (r *repository) GetTeamsBySport(ctx context.Context, sportID uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Where("sport_id = ?", sportID).
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}

func (r *repository) GetTeamsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&teams).Error
	return teams, err
}

// GetGames returns a page of games, soonest first.
func (r *repository) GetGames(ctx context.Context, filters *GameFilters) ([]models.Game, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Game{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.sportID != uuid.Nil {
		query = query.Where("sport_id = ?", filters.sportID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var games []models.Game
	err := query.
		Preload("HomeTeam").
		Preload("AwayTeam").
		Order("scheduled_at ASC").
		Limit(filters.PerPage).
		Offset((filters.Page - 1) * filters.PerPage).
		Find(&games).Error
	return games, total, err
}

func (r *repository) GetGameByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Preload("HomeTeam").
		Preload("AwayTeam").
		Where("id = ?", id).
		First(&game).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &game, nil
}

func (r *repository) CreateGame(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Omit("Sport", "HomeTeam", "AwayTeam").Create(game).Error
}

// UpdateOdds reprices the game only while it is still upcoming.
func (r *repository) UpdateOdds(ctx context.Context, game *models.Game) error {
	result := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("id = ? AND status = ?", game.ID, models.GameStatusUpcoming).
		Updates(map[string]interface{}{
			"home_odds": game.HomeOdds,
			"away_odds": game.AwayOdds,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrGameNotBettable
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return err
}
