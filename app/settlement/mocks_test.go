package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SettleGame(ctx context.Context, gameID, winnerID uuid.UUID, homeScore, awayScore int) (*Result, error) {
	args := m.Called(ctx, gameID, winnerID, homeScore, awayScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func (m *MockService) SettleFromScores(ctx context.Context, gameID uuid.UUID, homeScore, awayScore int) (*Result, error) {
	args := m.Called(ctx, gameID, homeScore, awayScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func (m *MockService) UpdateStatus(ctx context.Context, gameID uuid.UUID, status models.GameStatus) (*GameStatusResponse, error) {
	args := m.Called(ctx, gameID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GameStatusResponse), args.Error(1)
}
