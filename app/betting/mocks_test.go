package betting

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) WithTx(_ *gorm.DB) Repository { return m }

func (m *MockRepository) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetWalletBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetGame(ctx context.Context, gameID uuid.UUID) (*models.Game, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockRepository) GetGamesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockRepository) LockGames(ctx context.Context, ids []uuid.UUID) ([]models.Game, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockRepository) CreateBet(ctx context.Context, bet *models.Bet) error {
	return m.Called(ctx, bet).Error(0)
}

func (m *MockRepository) GetBetByID(ctx context.Context, betID uuid.UUID) (*models.Bet, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockRepository) GetBetsByUser(ctx context.Context, userID uuid.UUID, filters *BetFilters) ([]models.Bet, int64, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).([]models.Bet), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) StakedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) PlaceSingle(ctx context.Context, userID uuid.UUID, req *PlaceSingleRequest) (*PlacementResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PlacementResponse), args.Error(1)
}

func (m *MockService) PlaceParlay(ctx context.Context, userID uuid.UUID, req *PlaceParlayRequest) (*PlacementResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PlacementResponse), args.Error(1)
}

func (m *MockService) ListBets(ctx context.Context, userID uuid.UUID, filters *BetFilters) ([]BetResponse, int64, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).([]BetResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockService) GetBet(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error) {
	args := m.Called(ctx, userID, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BetResponse), args.Error(1)
}

// rejectionRecorder captures metric calls made by the service.
type rejectionRecorder struct {
	mu       sync.Mutex
	rejected []string
	placed   []string
}

func (r *rejectionRecorder) BetPlaced(kind string, _ int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placed = append(r.placed, kind)
}

func (r *rejectionRecorder) BetRejected(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected = append(r.rejected, reason)
}

func (r *rejectionRecorder) BetSettled(string) {}
func (r *rejectionRecorder) GameSettled(int)   {}
func (r *rejectionRecorder) CacheLookup(bool)  {}
