package suites

import (
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
)

// SeedUser creates a user with a wallet holding balance minor units. A
// positive balance is backed by a deposit row so the ledger sums match.
func (suite *RepositoryTestSuite) SeedUser(username string, balance int64) *models.User {
	suite.T().Helper()

	user := &models.User{
		Username:    username,
		Name:        username,
		Role:        models.RoleUser,
		DailyLimit:  models.Unlimited(),
		WeeklyLimit: models.Unlimited(),
		PerBetLimit: models.Unlimited(),
	}
	suite.Require().NoError(suite.DB.Create(user).Error)

	wallet := &models.Wallet{UserID: user.ID, Balance: balance}
	suite.Require().NoError(suite.DB.Create(wallet).Error)

	if balance > 0 {
		suite.Require().NoError(suite.DB.Create(&models.Transaction{
			UserID:       user.ID,
			WalletID:     wallet.ID,
			Type:         models.TransactionTypeDeposit,
			Amount:       balance,
			BalanceAfter: balance,
			Description:  "Seed deposit",
		}).Error)
	}

	user.Wallet = wallet
	return user
}

// SeedSport creates a sport with a unique code.
func (suite *RepositoryTestSuite) SeedSport(name string, sortOrder int) *models.Sport {
	suite.T().Helper()

	sport := &models.Sport{
		Name:      name,
		Code:      "S" + uuid.NewString()[:12],
		SortOrder: sortOrder,
	}
	suite.Require().NoError(suite.DB.Create(sport).Error)
	return sport
}

// SeedTeam creates a team in sport.
func (suite *RepositoryTestSuite) SeedTeam(sport *models.Sport, name string) *models.Team {
	suite.T().Helper()

	team := &models.Team{SportID: sport.ID, Name: name, City: "City"}
	suite.Require().NoError(suite.DB.Create(team).Error)
	return team
}

// SeedGame creates an upcoming game between two fresh teams of sport.
func (suite *RepositoryTestSuite) SeedGame(sport *models.Sport, homeOdds, awayOdds int, scheduledAt time.Time) *models.Game {
	suite.T().Helper()

	home := suite.SeedTeam(sport, "Home "+uuid.NewString()[:6])
	away := suite.SeedTeam(sport, "Away "+uuid.NewString()[:6])

	game := &models.Game{
		SportID:     sport.ID,
		HomeTeamID:  home.ID,
		AwayTeamID:  away.ID,
		HomeOdds:    homeOdds,
		AwayOdds:    awayOdds,
		ScheduledAt: scheduledAt,
		Status:      models.GameStatusUpcoming,
	}
	suite.Require().NoError(suite.DB.Create(game).Error)

	game.HomeTeam = home
	game.AwayTeam = away
	return game
}

// WalletBalance reads the stored balance for userID.
func (suite *RepositoryTestSuite) WalletBalance(userID uuid.UUID) int64 {
	suite.T().Helper()

	var wallet models.Wallet
	suite.Require().NoError(suite.DB.Where("user_id = ?", userID).First(&wallet).Error)
	return wallet.Balance
}

// LedgerSum adds up every transaction amount for userID.
func (suite *RepositoryTestSuite) LedgerSum(userID uuid.UUID) int64 {
	suite.T().Helper()

	var sum int64
	suite.Require().NoError(suite.DB.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error)
	return sum
}
