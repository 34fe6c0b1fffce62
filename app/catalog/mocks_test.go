package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetSports(ctx context.Context) ([]models.Sport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Sport), args.Error(1)
}

func (m *MockRepository) GetSportByID(ctx context.Context, id uuid.UUID) (*models.Sport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sport), args.Error(1)
}

func (m *MockRepository) GetTeamsBySport(ctx context.Context, sportID uuid.UUID) ([]models.Team, error) {
	args := m.Called(ctx, sportID)
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockRepository) GetTeamsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Team, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockRepository) GetGames(ctx context.Context, filters *GameFilters) ([]models.Game, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) GetGameByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockRepository) CreateGame(ctx context.Context, game *models.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *MockRepository) UpdateOdds(ctx context.Context, game *models.Game) error {
	return m.Called(ctx, game).Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) ListSports(ctx context.Context) ([]SportResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]SportResponse), args.Error(1)
}

func (m *MockService) ListTeams(ctx context.Context, sportID uuid.UUID) ([]TeamResponse, error) {
	args := m.Called(ctx, sportID)
	return args.Get(0).([]TeamResponse), args.Error(1)
}

func (m *MockService) ListGames(ctx context.Context, filters *GameFilters) ([]GameResponse, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]GameResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockService) GetGame(ctx context.Context, id uuid.UUID) (*GameResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameResponse), args.Error(1)
}

func (m *MockService) CreateGame(ctx context.Context, req *CreateGameRequest) (*GameResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameResponse), args.Error(1)
}

func (m *MockService) UpdateOdds(ctx context.Context, id uuid.UUID, req *UpdateOddsRequest) (*GameResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameResponse), args.Error(1)
}
