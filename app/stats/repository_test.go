package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
	"github.com/joefazee/sportsbook/tests/suites"
	"github.com/stretchr/testify/suite"
)

type StatsRepositoryTestSuite struct {
	suites.RepositoryTestSuite
	repo Repository
}

func (suite *StatsRepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping database integration test")
	}

	suite.AutoMigrate = true
	suite.RepositoryTestSuite.SetupSuite()

	suite.repo = NewRepository(suite.DB)
}

func TestStatsRepository(t *testing.T) {
	suite.Run(t, new(StatsRepositoryTestSuite))
}

func (suite *StatsRepositoryTestSuite) TestGetSportsInCatalogOrder() {
	suite.SeedSport("Tennis", 3)
	suite.SeedSport("Basketball", 1)
	suite.SeedSport("Hockey", 2)

	sports, err := suite.repo.GetSports(context.Background())
	suite.AssertNoDBError(err)
	suite.Require().Len(sports, 3)
	suite.Equal("Basketball", sports[0].Name)
	suite.Equal("Tennis", sports[2].Name)
}

func (suite *StatsRepositoryTestSuite) TestStatsFromStoredBets() {
	ctx := context.Background()
	user := suite.SeedUser("alice", 0)
	hockey := suite.SeedSport("Hockey", 2)
	game := suite.SeedGame(hockey, 120, -140, time.Now().Add(time.Hour))

	settled := time.Now()
	bets := []models.Bet{
		{UserID: user.ID, GameID: &game.ID, SelectedTeamID: &game.HomeTeamID, Odds: 120, Stake: 100, PotentialPayout: 220, Status: models.BetStatusWon, SettledAt: &settled},
		{UserID: user.ID, GameID: &game.ID, SelectedTeamID: &game.AwayTeamID, Odds: -140, Stake: 140, PotentialPayout: 240, Status: models.BetStatusLost, SettledAt: &settled},
		{UserID: user.ID, IsParlay: true, Odds: 300, Stake: 50, PotentialPayout: 200},
	}
	for i := range bets {
		suite.Require().NoError(suite.DB.Omit("Game", "Legs").Create(&bets[i]).Error)
	}

	svc := NewService(suite.repo, nil, nil, GetDefaultConfig(), nil, nil, nil)
	result, err := svc.GetStats(ctx, user.ID)
	suite.AssertNoDBError(err)

	suite.Equal(3, result.TotalBets)
	suite.Equal(50.0, result.WinRate)
	suite.Equal(int64(80), result.NetProfit)
	suite.Require().NotNil(result.FavoriteSport)
	suite.Equal("Hockey", *result.FavoriteSport)
	suite.Require().Len(result.SportBreakdown, 1)
	suite.Equal(2, result.SportBreakdown[0].Bets)
	suite.Equal(3, result.RecentActivity[6].Bets)
}

func (suite *StatsRepositoryTestSuite) TestUnknownUserHasNoStats() {
	ctx := context.Background()
	user := suite.SeedUser("bob", 0)

	exists, err := suite.repo.UserExists(ctx, user.ID)
	suite.AssertNoDBError(err)
	suite.True(exists)

	_, err = NewService(suite.repo, nil, nil, GetDefaultConfig(), nil, nil, nil).GetStats(ctx, uuid.New())
	suite.ErrorIs(err, models.ErrRecordNotFound)
}
