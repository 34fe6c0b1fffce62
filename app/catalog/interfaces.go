package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
)

// Repository defines the interface for catalog data access
type Repository interface {
	GetSports(ctx context.Context) ([]models.Sport, error)
	GetSportByID(ctx context.Context, id uuid.UUID) (*models.Sport, error)
	GetTeamsBySport(ctx context.Context, sportID uuid.UUID) ([]models.Team, error)
	GetTeamsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Team, error)
	GetGames(ctx context.Context, filters *GameFilters) ([]models.Game, int64, error)
	GetGameByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	CreateGame(ctx context.Context, game *models.Game) error
	UpdateOdds(ctx context.Context, game *models.Game) error
}

// Service defines the interface for catalog business logic
type Service interface {
	ListSports(ctx context.Context) ([]SportResponse, error)
	ListTeams(ctx context.Context, sportID uuid.UUID) ([]TeamResponse, error)
	ListGames(ctx context.Context, filters *GameFilters) ([]GameResponse, int64, error)
	GetGame(ctx context.Context, id uuid.UUID) (*GameResponse, error)
	CreateGame(ctx context.Context, req *CreateGameRequest) (*GameResponse, error)
	UpdateOdds(ctx context.Context, id uuid.UUID, req *UpdateOddsRequest) (*GameResponse, error)
}
