package betting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/limits"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/internal/events"
	"github.com/joefazee/sportsbook/models"
	"github.com/joefazee/sportsbook/tests/suites"
	"github.com/stretchr/testify/suite"
)

type BettingRepositoryTestSuite struct {
	suites.RepositoryTestSuite
	repo      Repository
	publisher *events.Recorder
	service   Service
}

func (suite *BettingRepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping database integration test")
	}

	suite.AutoMigrate = true
	suite.RepositoryTestSuite.SetupSuite()

	suite.repo = NewRepository(suite.DB)
}

func (suite *BettingRepositoryTestSuite) SetupTest() {
	suite.publisher = &events.Recorder{}
	ledger := wallet.NewLedger(wallet.NewRepository(suite.DB))
	suite.service = NewService(suite.DB, suite.repo, ledger, limits.NewGuard(suite.repo), GetDefaultConfig(), ServiceDeps{
		Publisher: suite.publisher,
	})
}

func TestBettingRepository(t *testing.T) {
	suite.Run(t, new(BettingRepositoryTestSuite))
}

// interleavedRepository runs between once the placement pre-check has read
// the wallet, before the placement transaction starts.
type interleavedRepository struct {
	Repository
	between func()
	once    sync.Once
}

func (r *interleavedRepository) GetWalletBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	balance, err := r.Repository.GetWalletBalance(ctx, userID)
	r.once.Do(r.between)
	return balance, err
}

func (suite *BettingRepositoryTestSuite) interleaved(between func()) Service {
	repo := &interleavedRepository{Repository: suite.repo, between: between}
	ledger := wallet.NewLedger(wallet.NewRepository(suite.DB))
	return NewService(suite.DB, repo, ledger, limits.NewGuard(repo), GetDefaultConfig(), ServiceDeps{
		Publisher: suite.publisher,
	})
}

func (suite *BettingRepositoryTestSuite) completeGame(game *models.Game) {
	settledAt := time.Now()
	suite.Require().NoError(suite.DB.Model(&models.Game{}).Where("id = ?", game.ID).Updates(map[string]any{
		"status":     models.GameStatusCompleted,
		"home_score": 3,
		"away_score": 1,
		"winner_id":  game.HomeTeamID,
		"settled_at": settledAt,
	}).Error)
}

func (suite *BettingRepositoryTestSuite) TestPlaceSingle_DebitsStakeOnce() {
	ctx := context.Background()
	user := suite.SeedUser("alice", 500)
	game := suite.SeedGame(suite.SeedSport("Basketball", 1), -110, 200, time.Now().Add(time.Hour))

	result, err := suite.service.PlaceSingle(ctx, user.ID, &PlaceSingleRequest{
		GameID: game.ID, SelectedTeamID: game.AwayTeamID, Stake: 100,
	})
	suite.AssertNoDBError(err)

	suite.Equal(int64(300), result.PotentialPayout)
	suite.Equal(int64(400), result.BalanceAfter)
	suite.Equal(int64(400), suite.WalletBalance(user.ID))
	suite.Equal(int64(400), suite.LedgerSum(user.ID))

	var placed []models.Transaction
	suite.Require().NoError(suite.DB.Where("user_id = ? AND type = ?", user.ID, models.TransactionTypeBetPlaced).Find(&placed).Error)
	suite.Require().Len(placed, 1)
	suite.Equal(int64(-100), placed[0].Amount)
	suite.Equal(result.BetID, *placed[0].BetID)
	suite.Equal("Bet on game #"+game.ID.String(), placed[0].Description)

	suite.Len(suite.publisher.OfType(events.BetPlaced), 1)
}

func (suite *BettingRepositoryTestSuite) TestPlaceSingle_RejectedLeavesNoTrace() {
	ctx := context.Background()
	user := suite.SeedUser("bob", 50)
	game := suite.SeedGame(suite.SeedSport("Hockey", 2), 120, -140, time.Now().Add(time.Hour))

	_, err := suite.service.PlaceSingle(ctx, user.ID, &PlaceSingleRequest{
		GameID: game.ID, SelectedTeamID: game.HomeTeamID, Stake: 100,
	})
	suite.ErrorIs(err, models.ErrInsufficientBalance)

	suite.Equal(int64(0), suite.CountRecords("bets"))
	suite.Equal(int64(50), suite.WalletBalance(user.ID))
	suite.Empty(suite.publisher.Events())
}

func (suite *BettingRepositoryTestSuite) TestPlaceParlay_StoresLegsAtListedOdds() {
	ctx := context.Background()
	user := suite.SeedUser("carol", 1000)
	sport := suite.SeedSport("Football", 1)
	start := time.Now().Add(2 * time.Hour)
	a := suite.SeedGame(sport, -110, 100, start)
	b := suite.SeedGame(sport, 150, -170, start)

	result, err := suite.service.PlaceParlay(ctx, user.ID, &PlaceParlayRequest{
		Stake: 100,
		Selections: []Selection{
			{GameID: a.ID, SelectedTeamID: a.HomeTeamID, Odds: -110},
			{GameID: b.ID, SelectedTeamID: b.HomeTeamID, Odds: 150},
		},
	})
	suite.AssertNoDBError(err)
	suite.Require().NotNil(result.CombinedOdds)
	suite.Equal(int64(900), suite.WalletBalance(user.ID))

	bet, err := suite.repo.GetBetByID(ctx, result.BetID)
	suite.AssertNoDBError(err)
	suite.True(bet.IsParlay)
	suite.Nil(bet.GameID)
	suite.Len(bet.Legs, 2)
	for _, leg := range bet.Legs {
		suite.Equal(models.BetStatusPending, leg.Result)
	}

	bets, total, err := suite.service.ListBets(ctx, user.ID, &BetFilters{Kind: KindParlay})
	suite.AssertNoDBError(err)
	suite.Equal(int64(1), total)
	suite.Len(bets[0].Legs, 2)
}

func (suite *BettingRepositoryTestSuite) TestDailyLimitCountsEarlierStakes() {
	ctx := context.Background()
	user := suite.SeedUser("dave", 1000)
	suite.Require().NoError(suite.DB.Model(user).Update("daily_limit", models.Capped(150)).Error)
	game := suite.SeedGame(suite.SeedSport("Tennis", 3), 110, -130, time.Now().Add(time.Hour))
	req := &PlaceSingleRequest{GameID: game.ID, SelectedTeamID: game.HomeTeamID, Stake: 100}

	_, err := suite.service.PlaceSingle(ctx, user.ID, req)
	suite.AssertNoDBError(err)

	_, err = suite.service.PlaceSingle(ctx, user.ID, req)
	var v *limits.Violation
	suite.Require().ErrorAs(err, &v)
	suite.Equal(limits.Daily, v.Limit)
	suite.Equal(int64(50), v.Remaining)
	suite.Equal(int64(900), suite.WalletBalance(user.ID))
}

func (suite *BettingRepositoryTestSuite) TestConcurrentPlacementsNeverOverdraw() {
	ctx := context.Background()
	user := suite.SeedUser("erin", 500)
	game := suite.SeedGame(suite.SeedSport("Baseball", 4), -120, 105, time.Now().Add(time.Hour))

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.PlaceSingle(ctx, user.ID, &PlaceSingleRequest{
				GameID: game.ID, SelectedTeamID: game.AwayTeamID, Stake: 100,
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(5, accepted)
	suite.Equal(int64(0), suite.WalletBalance(user.ID))
	suite.Equal(int64(0), suite.LedgerSum(user.ID))
	suite.Equal(int64(5), suite.CountRecords("bets"))
}

func (suite *BettingRepositoryTestSuite) TestPlaceSingle_GameSettledAfterPrecheck() {
	ctx := context.Background()
	user := suite.SeedUser("frank", 500)
	game := suite.SeedGame(suite.SeedSport("Cricket", 5), -110, 200, time.Now().Add(time.Hour))

	svc := suite.interleaved(func() { suite.completeGame(game) })
	_, err := svc.PlaceSingle(ctx, user.ID, &PlaceSingleRequest{
		GameID: game.ID, SelectedTeamID: game.AwayTeamID, Stake: 100,
	})

	suite.ErrorIs(err, models.ErrGameNotBettable)
	suite.Equal(int64(500), suite.WalletBalance(user.ID))
	suite.Equal(int64(500), suite.LedgerSum(user.ID))
	suite.Equal(int64(0), suite.CountRecords("bets"))
	suite.Empty(suite.publisher.OfType(events.BetPlaced))
}

func (suite *BettingRepositoryTestSuite) TestPlaceParlay_LegSettledAfterPrecheck() {
	ctx := context.Background()
	user := suite.SeedUser("grace", 500)
	sport := suite.SeedSport("Rugby", 6)
	start := time.Now().Add(time.Hour)
	a := suite.SeedGame(sport, -110, 100, start)
	b := suite.SeedGame(sport, 150, -170, start)

	svc := suite.interleaved(func() { suite.completeGame(b) })
	_, err := svc.PlaceParlay(ctx, user.ID, &PlaceParlayRequest{
		Stake: 100,
		Selections: []Selection{
			{GameID: a.ID, SelectedTeamID: a.HomeTeamID, Odds: -110},
			{GameID: b.ID, SelectedTeamID: b.HomeTeamID, Odds: 150},
		},
	})

	suite.ErrorIs(err, models.ErrGameNotBettable)
	suite.Equal(int64(500), suite.WalletBalance(user.ID))
	suite.Equal(int64(0), suite.CountRecords("bets"))
	suite.Equal(int64(0), suite.CountRecords("parlay_legs"))
}

func (suite *BettingRepositoryTestSuite) TestPlaceParlay_LineMovedAfterPrecheck() {
	ctx := context.Background()
	user := suite.SeedUser("heidi", 500)
	sport := suite.SeedSport("Soccer", 7)
	start := time.Now().Add(time.Hour)
	a := suite.SeedGame(sport, -110, 100, start)
	b := suite.SeedGame(sport, 150, -170, start)

	svc := suite.interleaved(func() {
		suite.Require().NoError(suite.DB.Model(&models.Game{}).Where("id = ?", b.ID).Update("home_odds", 250).Error)
	})
	_, err := svc.PlaceParlay(ctx, user.ID, &PlaceParlayRequest{
		Stake: 100,
		Selections: []Selection{
			{GameID: a.ID, SelectedTeamID: a.HomeTeamID, Odds: -110},
			{GameID: b.ID, SelectedTeamID: b.HomeTeamID, Odds: 150},
		},
	})

	var changed *OddsChangedError
	suite.Require().ErrorAs(err, &changed)
	suite.Equal(b.ID, changed.GameID)
	suite.Equal(250, changed.Current)
	suite.Equal(int64(500), suite.WalletBalance(user.ID))
}

func (suite *BettingRepositoryTestSuite) TestPlaceSingle_PricedAtLockedLine() {
	ctx := context.Background()
	user := suite.SeedUser("ivan", 500)
	game := suite.SeedGame(suite.SeedSport("Golf", 8), -110, 200, time.Now().Add(time.Hour))

	svc := suite.interleaved(func() {
		suite.Require().NoError(suite.DB.Model(&models.Game{}).Where("id = ?", game.ID).Update("away_odds", 300).Error)
	})
	result, err := svc.PlaceSingle(ctx, user.ID, &PlaceSingleRequest{
		GameID: game.ID, SelectedTeamID: game.AwayTeamID, Stake: 100,
	})
	suite.AssertNoDBError(err)

	suite.Equal(300, result.Odds)
	suite.Equal(int64(400), result.PotentialPayout)

	bet, err := suite.repo.GetBetByID(ctx, result.BetID)
	suite.AssertNoDBError(err)
	suite.Equal(300, bet.Odds)
}
