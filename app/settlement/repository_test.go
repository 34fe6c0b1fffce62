package settlement

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/betting"
	"github.com/joefazee/sportsbook/app/limits"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/internal/events"
	"github.com/joefazee/sportsbook/models"
	"github.com/joefazee/sportsbook/tests/suites"
	"github.com/stretchr/testify/suite"
)

type SettlementRepositoryTestSuite struct {
	suites.RepositoryTestSuite
	betting   betting.Service
	service   Service
	publisher *events.Recorder
}

func (suite *SettlementRepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping database integration test")
	}

	suite.AutoMigrate = true
	suite.RepositoryTestSuite.SetupSuite()
}

func (suite *SettlementRepositoryTestSuite) SetupTest() {
	ledger := wallet.NewLedger(wallet.NewRepository(suite.DB))
	betRepo := betting.NewRepository(suite.DB)

	suite.publisher = &events.Recorder{}
	suite.betting = betting.NewService(suite.DB, betRepo, ledger, limits.NewGuard(betRepo), betting.GetDefaultConfig(), betting.ServiceDeps{})
	suite.service = NewService(suite.DB, NewRepository(suite.DB), ledger, GetDefaultConfig(), ServiceDeps{Publisher: suite.publisher})
}

func TestSettlementRepository(t *testing.T) {
	suite.Run(t, new(SettlementRepositoryTestSuite))
}

func (suite *SettlementRepositoryTestSuite) single(userID uuid.UUID, game *models.Game, teamID uuid.UUID, stake int64) uuid.UUID {
	res, err := suite.betting.PlaceSingle(context.Background(), userID, &betting.PlaceSingleRequest{
		GameID: game.ID, SelectedTeamID: teamID, Stake: stake,
	})
	suite.Require().NoError(err)
	return res.BetID
}

func (suite *SettlementRepositoryTestSuite) bet(id uuid.UUID) models.Bet {
	var bet models.Bet
	suite.Require().NoError(suite.DB.Preload("Legs").First(&bet, "id = ?", id).Error)
	return bet
}

func (suite *SettlementRepositoryTestSuite) TestWinningSingleIsPaid() {
	ctx := context.Background()
	user := suite.SeedUser("alice", 500)
	game := suite.SeedGame(suite.SeedSport("Basketball", 1), -150, 200, time.Now().Add(time.Hour))
	betID := suite.single(user.ID, game, game.AwayTeamID, 100)
	suite.Equal(int64(400), suite.WalletBalance(user.ID))

	result, err := suite.service.SettleGame(ctx, game.ID, game.AwayTeamID, 98, 101)
	suite.AssertNoDBError(err)

	suite.Equal(1, result.SettledCount)
	suite.Equal(1, result.Won)
	suite.Equal(int64(300), result.PaidOut)
	suite.Equal(int64(700), suite.WalletBalance(user.ID))
	suite.Equal(int64(700), suite.LedgerSum(user.ID))

	bet := suite.bet(betID)
	suite.Equal(models.BetStatusWon, bet.Status)
	suite.NotNil(bet.SettledAt)

	var stored models.Game
	suite.Require().NoError(suite.DB.First(&stored, "id = ?", game.ID).Error)
	suite.Equal(models.GameStatusCompleted, stored.Status)
	suite.Equal(game.AwayTeamID, *stored.WinnerID)
	suite.Equal(101, *stored.AwayScore)

	suite.Len(suite.publisher.OfType(events.GameSettled), 1)
	suite.Len(suite.publisher.OfType(events.BetSettled), 1)
}

func (suite *SettlementRepositoryTestSuite) TestLosingSingleGetsZeroMarker() {
	ctx := context.Background()
	user := suite.SeedUser("bob", 500)
	game := suite.SeedGame(suite.SeedSport("Hockey", 2), -150, 130, time.Now().Add(time.Hour))
	betID := suite.single(user.ID, game, game.HomeTeamID, 150)

	result, err := suite.service.SettleFromScores(ctx, game.ID, 2, 2)
	suite.AssertNoDBError(err)
	suite.Equal(game.AwayTeamID, result.WinnerID)
	suite.Equal(1, result.Lost)

	suite.Equal(models.BetStatusLost, suite.bet(betID).Status)
	suite.Equal(int64(350), suite.WalletBalance(user.ID))

	var marker models.Transaction
	suite.Require().NoError(suite.DB.Where("bet_id = ? AND type = ?", betID, models.TransactionTypeBetLost).First(&marker).Error)
	suite.Zero(marker.Amount)
	suite.Equal(int64(350), marker.BalanceAfter)
	suite.Equal("Lost bet on game #"+game.ID.String(), marker.Description)
}

func (suite *SettlementRepositoryTestSuite) TestSettlingTwiceNeverPaysTwice() {
	ctx := context.Background()
	user := suite.SeedUser("carol", 500)
	game := suite.SeedGame(suite.SeedSport("Football", 1), 100, -120, time.Now().Add(time.Hour))
	suite.single(user.ID, game, game.HomeTeamID, 100)

	_, err := suite.service.SettleGame(ctx, game.ID, game.HomeTeamID, 21, 14)
	suite.AssertNoDBError(err)

	_, err = suite.service.SettleGame(ctx, game.ID, game.HomeTeamID, 21, 14)
	suite.ErrorIs(err, models.ErrAlreadySettled)

	_, err = suite.service.SettleFromScores(ctx, game.ID, 21, 14)
	suite.ErrorIs(err, models.ErrAlreadySettled)

	suite.Equal(int64(600), suite.WalletBalance(user.ID))
	suite.Equal(int64(600), suite.LedgerSum(user.ID))
}

func (suite *SettlementRepositoryTestSuite) TestConcurrentDuplicateSettlement() {
	ctx := context.Background()
	user := suite.SeedUser("dave", 500)
	game := suite.SeedGame(suite.SeedSport("Baseball", 3), 150, -170, time.Now().Add(time.Hour))
	suite.single(user.ID, game, game.HomeTeamID, 100)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.service.SettleGame(ctx, game.ID, game.HomeTeamID, 5, 3)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		suite.ErrorIs(err, models.ErrAlreadySettled)
	}
	suite.Equal(1, succeeded)
	suite.Equal(int64(650), suite.WalletBalance(user.ID))
}

func (suite *SettlementRepositoryTestSuite) TestWrongWinnerIsRejected() {
	ctx := context.Background()
	game := suite.SeedGame(suite.SeedSport("Tennis", 4), 110, -130, time.Now().Add(time.Hour))

	_, err := suite.service.SettleGame(ctx, game.ID, uuid.New(), 2, 0)
	suite.ErrorIs(err, models.ErrInvalidWinner)

	var stored models.Game
	suite.Require().NoError(suite.DB.First(&stored, "id = ?", game.ID).Error)
	suite.Equal(models.GameStatusUpcoming, stored.Status)
}

func (suite *SettlementRepositoryTestSuite) TestParlayPaysOnlyWhenEveryLegWins() {
	ctx := context.Background()
	user := suite.SeedUser("erin", 1000)
	sport := suite.SeedSport("Football", 1)
	start := time.Now().Add(time.Hour)
	a := suite.SeedGame(sport, 100, -120, start)
	b := suite.SeedGame(sport, 100, -120, start)

	placed, err := suite.betting.PlaceParlay(ctx, user.ID, &betting.PlaceParlayRequest{
		Stake: 100,
		Selections: []betting.Selection{
			{GameID: a.ID, SelectedTeamID: a.HomeTeamID, Odds: 100},
			{GameID: b.ID, SelectedTeamID: b.HomeTeamID, Odds: 100},
		},
	})
	suite.Require().NoError(err)
	suite.Equal(int64(400), placed.PotentialPayout)

	first, err := suite.service.SettleGame(ctx, a.ID, a.HomeTeamID, 3, 0)
	suite.AssertNoDBError(err)
	suite.Equal(1, first.LegsResolved)
	suite.Zero(first.ParlaysResolved)
	suite.Equal(models.BetStatusPending, suite.bet(placed.BetID).Status)
	suite.Equal(int64(900), suite.WalletBalance(user.ID))

	second, err := suite.service.SettleGame(ctx, b.ID, b.HomeTeamID, 1, 0)
	suite.AssertNoDBError(err)
	suite.Equal(1, second.ParlaysResolved)

	bet := suite.bet(placed.BetID)
	suite.Equal(models.BetStatusWon, bet.Status)
	for _, leg := range bet.Legs {
		suite.Equal(models.BetStatusWon, leg.Result)
	}
	suite.Equal(int64(1300), suite.WalletBalance(user.ID))
	suite.Equal(int64(1300), suite.LedgerSum(user.ID))
}

func (suite *SettlementRepositoryTestSuite) TestParlayLosesOnFirstLostLeg() {
	ctx := context.Background()
	user := suite.SeedUser("frank", 1000)
	sport := suite.SeedSport("Hockey", 2)
	start := time.Now().Add(time.Hour)
	a := suite.SeedGame(sport, 100, -120, start)
	b := suite.SeedGame(sport, 100, -120, start)

	placed, err := suite.betting.PlaceParlay(ctx, user.ID, &betting.PlaceParlayRequest{
		Stake: 100,
		Selections: []betting.Selection{
			{GameID: a.ID, SelectedTeamID: a.HomeTeamID, Odds: 100},
			{GameID: b.ID, SelectedTeamID: b.HomeTeamID, Odds: 100},
		},
	})
	suite.Require().NoError(err)

	first, err := suite.service.SettleGame(ctx, a.ID, a.AwayTeamID, 0, 2)
	suite.AssertNoDBError(err)
	suite.Equal(1, first.ParlaysResolved)
	suite.Equal(models.BetStatusLost, suite.bet(placed.BetID).Status)

	second, err := suite.service.SettleGame(ctx, b.ID, b.HomeTeamID, 4, 1)
	suite.AssertNoDBError(err)
	suite.Zero(second.ParlaysResolved)
	suite.Equal(1, second.LegsResolved)

	var markers int64
	suite.Require().NoError(suite.DB.Model(&models.Transaction{}).
		Where("bet_id = ? AND type = ?", placed.BetID, models.TransactionTypeBetLost).
		Count(&markers).Error)
	suite.Equal(int64(1), markers)
	suite.Equal(int64(900), suite.WalletBalance(user.ID))
}

func (suite *SettlementRepositoryTestSuite) TestConcurrentGamesSameWallet() {
	ctx := context.Background()
	user := suite.SeedUser("gina", 1000)
	sport := suite.SeedSport("Basketball", 1)
	start := time.Now().Add(time.Hour)

	games := make([]*models.Game, 6)
	for i := range games {
		games[i] = suite.SeedGame(sport, 100, -120, start)
		suite.single(user.ID, games[i], games[i].HomeTeamID, 100)
	}
	suite.Equal(int64(400), suite.WalletBalance(user.ID))

	var wg sync.WaitGroup
	for _, g := range games {
		wg.Add(1)
		go func(g *models.Game) {
			defer wg.Done()
			_, err := suite.service.SettleGame(ctx, g.ID, g.HomeTeamID, 1, 0)
			suite.NoError(err)
		}(g)
	}
	wg.Wait()

	suite.Equal(int64(1600), suite.WalletBalance(user.ID))
	suite.Equal(int64(1600), suite.LedgerSum(user.ID))
}

func (suite *SettlementRepositoryTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	game := suite.SeedGame(suite.SeedSport("Tennis", 4), 110, -130, time.Now().Add(time.Hour))

	resp, err := suite.service.UpdateStatus(ctx, game.ID, models.GameStatusLive)
	suite.AssertNoDBError(err)
	suite.Equal(models.GameStatusLive, resp.Status)

	_, err = suite.service.SettleGame(ctx, game.ID, game.HomeTeamID, 2, 1)
	suite.AssertNoDBError(err)

	_, err = suite.service.UpdateStatus(ctx, game.ID, models.GameStatusUpcoming)
	suite.ErrorIs(err, models.ErrAlreadySettled)

	_, err = suite.service.UpdateStatus(ctx, uuid.New(), models.GameStatusLive)
	suite.ErrorIs(err, models.ErrRecordNotFound)
}
