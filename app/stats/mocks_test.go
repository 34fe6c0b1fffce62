package stats

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetUserBets(ctx context.Context, userID uuid.UUID) ([]models.Bet, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Bet), args.Error(1)
}

func (m *MockRepository) GetSports(ctx context.Context) ([]models.Sport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Sport), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) GetStats(ctx context.Context, userID uuid.UUID) (*BettingStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BettingStats), args.Error(1)
}

func (m *MockService) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	m.Called(ctx, userIDs)
}

type lookupCounter struct {
	hits, misses int
}

func (c *lookupCounter) BetPlaced(string, int64) {}
func (c *lookupCounter) BetRejected(string)      {}
func (c *lookupCounter) BetSettled(string)       {}
func (c *lookupCounter) GameSettled(int)         {}
func (c *lookupCounter) CacheLookup(hit bool) {
	if hit {
		c.hits++
		return
	}
	c.misses++
}
