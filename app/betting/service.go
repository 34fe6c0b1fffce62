package betting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/limits"
	"github.com/joefazee/sportsbook/app/odds"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/internal/events"
	"github.com/joefazee/sportsbook/internal/formatter"
	"github.com/joefazee/sportsbook/internal/logger"
	"github.com/joefazee/sportsbook/internal/metrics"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

// ServiceDeps carries the optional collaborators of the betting service.
// Nil fields fall back to no-op implementations.
type ServiceDeps struct {
	Publisher events.Publisher
	Metrics   metrics.Recorder
	Stats     StatsInvalidator
	Logger    logger.Logger
	Clock     func() time.Time
}

type service struct {
	db        *gorm.DB
	repo      Repository
	ledger    *wallet.Ledger
	guard     *limits.Guard
	config    *Config
	publisher events.Publisher
	metrics   metrics.Recorder
	stats     StatsInvalidator
	logger    logger.Logger
	now       func() time.Time
}

// NewService creates a new betting service
func NewService(db *gorm.DB, repo Repository, ledger *wallet.Ledger, guard *limits.Guard, config *Config, deps ServiceDeps) Service {
	s := &service{
		db:        db,
		repo:      repo,
		ledger:    ledger,
		guard:     guard,
		config:    config,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		stats:     deps.Stats,
		logger:    deps.Logger,
		now:       deps.Clock,
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	if s.stats == nil {
		s.stats = noopInvalidator{}
	}
	if s.logger == nil {
		s.logger = logger.NewNullLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// PlaceSingle takes a stake on one side of one game at the listed odds.
func (s *service) PlaceSingle(ctx context.Context, userID uuid.UUID, req *PlaceSingleRequest) (resp *PlacementResponse, err error) {
	defer s.observe(userID, KindSingle, &err)

	ctx, cancel := context.WithTimeout(ctx, s.config.OperationTimeout)
	defer cancel()

	user, err := s.precheck(ctx, userID, req.Stake)
	if err != nil {
		return nil, err
	}

	game, err := s.repo.GetGame(ctx, req.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", req.GameID, err)
	}

	gameID := req.GameID
	bet := &models.Bet{
		UserID:         userID,
		GameID:         &gameID,
		SelectedTeamID: &req.SelectedTeamID,
		Stake:          req.Stake,
		Status:         models.BetStatusPending,
	}

	if err := s.priceSingle(bet, []models.Game{*game}); err != nil {
		return nil, err
	}

	balance, err := s.commit(ctx, user, bet, []uuid.UUID{gameID}, s.priceSingle)
	if err != nil {
		return nil, err
	}

	s.afterPlacement(ctx, bet, KindSingle)
	return ToPlacementResponse(bet, balance), nil
}

// PlaceParlay combines the selections into one bet. Legs are re-priced
// against the listed odds and stored at the server's price.
func (s *service) PlaceParlay(ctx context.Context, userID uuid.UUID, req *PlaceParlayRequest) (resp *PlacementResponse, err error) {
	defer s.observe(userID, KindParlay, &err)

	ctx, cancel := context.WithTimeout(ctx, s.config.OperationTimeout)
	defer cancel()

	if err := s.checkSelections(req.Selections); err != nil {
		return nil, err
	}

	user, err := s.precheck(ctx, userID, req.Stake)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(req.Selections))
	for i, sel := range req.Selections {
		ids[i] = sel.GameID
	}

	games, err := s.repo.GetGamesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	bet := &models.Bet{
		UserID:   userID,
		IsParlay: true,
		Stake:    req.Stake,
		Status:   models.BetStatusPending,
	}

	var price pricer = func(bet *models.Bet, games []models.Game) error {
		return s.priceParlay(bet, games, req.Selections)
	}
	if err := price(bet, games); err != nil {
		return nil, err
	}

	balance, err := s.commit(ctx, user, bet, ids, price)
	if err != nil {
		return nil, err
	}

	s.afterPlacement(ctx, bet, KindParlay)
	return ToPlacementResponse(bet, balance), nil
}

func (s *service) ListBets(ctx context.Context, userID uuid.UUID, filters *BetFilters) ([]BetResponse, int64, error) {
	if filters == nil {
		filters = &BetFilters{}
	}
	filters.normalize()

	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, 0, models.ErrInvalidBetStatus
	}

	bets, total, err := s.repo.GetBetsByUser(ctx, userID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get bets: %w", err)
	}

	responses := make([]BetResponse, len(bets))
	for i := range bets {
		responses[i] = *ToBetResponse(&bets[i])
	}
	return responses, total, nil
}

func (s *service) GetBet(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error) {
	bet, err := s.repo.GetBetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet.UserID != userID {
		return nil, models.ErrForbidden
	}
	return ToBetResponse(bet), nil
}

// precheck runs the checks shared by every placement: minimum stake, user
// lookup, limits and a balance pre-check. The balance is checked again under
// the wallet lock in commit.
func (s *service) precheck(ctx context.Context, userID uuid.UUID, stake int64) (*models.User, error) {
	if stake < s.config.MinStake {
		return nil, fmt.Errorf("%w: minimum stake is %s", models.ErrInvalidStake, formatter.Money(s.config.MinStake))
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.guard.Check(ctx, user, stake); err != nil {
		return nil, err
	}

	balance, err := s.repo.GetWalletBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet balance: %w", err)
	}
	if balance < stake {
		return nil, models.ErrInsufficientBalance
	}
	return user, nil
}

func (s *service) checkSelections(selections []Selection) error {
	n := len(selections)
	if n < s.config.MinParlayLegs || n > s.config.MaxParlayLegs {
		return fmt.Errorf("%w: a parlay takes %d to %d selections, got %d",
			models.ErrInvalidParlayLegs, s.config.MinParlayLegs, s.config.MaxParlayLegs, n)
	}

	seen := make(map[uuid.UUID]struct{}, n)
	for _, sel := range selections {
		if _, dup := seen[sel.GameID]; dup {
			return fmt.Errorf("%w: game #%s is selected more than once", models.ErrInvalidParlayLegs, sel.GameID)
		}
		seen[sel.GameID] = struct{}{}
	}
	return nil
}

// pricer sets the odds and potential payout of bet from the given games.
// It runs once before the transaction to fail fast and again on the locked
// rows inside it.
type pricer func(bet *models.Bet, games []models.Game) error

// priceSingle prices a single bet at the listed line of its game.
func (s *service) priceSingle(bet *models.Bet, games []models.Game) error {
	var game *models.Game
	for i := range games {
		if games[i].ID == *bet.GameID {
			game = &games[i]
		}
	}
	if game == nil {
		return fmt.Errorf("game #%s: %w", *bet.GameID, models.ErrRecordNotFound)
	}
	if !game.IsBettable(s.now()) {
		return notBettable(game)
	}

	price, err := game.OddsFor(*bet.SelectedTeamID)
	if err != nil {
		return err
	}

	payout, err := s.payout(bet.Stake, price)
	if err != nil {
		return err
	}

	bet.Odds, bet.PotentialPayout = price, payout
	return nil
}

// priceParlay re-prices every leg and combines them. Legs are stored at the
// server's price.
func (s *service) priceParlay(bet *models.Bet, games []models.Game, selections []Selection) error {
	legs, err := s.priceLegs(games, selections)
	if err != nil {
		return err
	}

	prices := make([]int, len(legs))
	for i := range legs {
		prices[i] = legs[i].Odds
	}

	combined, err := odds.CombineParlayOdds(prices)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrInvalidParlayLegs, err)
	}

	payout, err := s.payout(bet.Stake, combined)
	if err != nil {
		return err
	}

	bet.Odds, bet.PotentialPayout, bet.Legs = combined, payout, legs
	return nil
}

func (s *service) payout(stake int64, american int) (int64, error) {
	payout, err := odds.Payout(stake, american)
	switch {
	case errors.Is(err, odds.ErrOverflow):
		return 0, fmt.Errorf("%w: stake %s is too large at %s", models.ErrInvalidStake, formatter.Money(stake), odds.Format(american))
	case err != nil:
		return 0, fmt.Errorf("%w: %w", models.ErrInvalidOdds, err)
	}
	return payout, nil
}

// priceLegs checks every selected game is open and that the client's odds
// still match the listed line.
func (s *service) priceLegs(games []models.Game, selections []Selection) ([]models.ParlayLeg, error) {
	byID := make(map[uuid.UUID]*models.Game, len(games))
	for i := range games {
		byID[games[i].ID] = &games[i]
	}

	now := s.now()
	legs := make([]models.ParlayLeg, 0, len(selections))
	for _, sel := range selections {
		game, ok := byID[sel.GameID]
		if !ok {
			return nil, fmt.Errorf("game #%s: %w", sel.GameID, models.ErrRecordNotFound)
		}
		if !game.IsBettable(now) {
			return nil, notBettable(game)
		}

		current, err := game.OddsFor(sel.SelectedTeamID)
		if err != nil {
			return nil, err
		}
		if abs(sel.Odds-current) > s.config.ParlayOddsTolerance {
			return nil, &OddsChangedError{
				GameID:    game.ID,
				TeamID:    sel.SelectedTeamID,
				Submitted: sel.Odds,
				Current:   current,
			}
		}

		legs = append(legs, models.ParlayLeg{
			GameID:         game.ID,
			SelectedTeamID: sel.SelectedTeamID,
			Odds:           current,
			Result:         models.BetStatusPending,
		})
	}
	return legs, nil
}

// commit debits the stake and stores the bet atomically. The bet's games
// are share-locked and re-priced first, so a game settled or re-lined after
// the pre-check is caught here and a settlement cannot complete a game while
// a stake on it is in flight. Games are locked before the wallet, the same
// order settlement uses. Limits and balance are checked again once the
// wallet row is locked, so concurrent placements by the same user see each
// other's stakes. It returns the wallet balance after the debit.
func (s *service) commit(ctx context.Context, user *models.User, bet *models.Bet, gameIDs []uuid.UUID, price pricer) (int64, error) {
	var balance int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		games, err := txRepo.LockGames(ctx, gameIDs)
		if err != nil {
			return fmt.Errorf("failed to lock games: %w", err)
		}
		if err := price(bet, games); err != nil {
			return err
		}

		w, err := s.ledger.Lock(ctx, tx, bet.UserID)
		if err != nil {
			return err
		}
		if err := s.guard.WithHistory(txRepo).Check(ctx, user, bet.Stake); err != nil {
			return err
		}
		if !w.CanDebit(bet.Stake) {
			return models.ErrInsufficientBalance
		}

		if err := txRepo.CreateBet(ctx, bet); err != nil {
			return fmt.Errorf("failed to create bet: %w", err)
		}

		txn, err := s.ledger.Post(ctx, tx, wallet.Entry{
			UserID:      bet.UserID,
			Type:        models.TransactionTypeBetPlaced,
			Amount:      -bet.Stake,
			BetID:       &bet.ID,
			Description: bet.Description(),
		})
		if err != nil {
			return err
		}

		balance = txn.BalanceAfter
		return nil
	})

	return balance, err
}

func (s *service) afterPlacement(ctx context.Context, bet *models.Bet, kind string) {
	s.metrics.BetPlaced(kind, bet.Stake)
	s.stats.Invalidate(ctx, bet.UserID)

	evt := events.New(events.BetPlaced, bet.UserID.String(), ToBetResponse(bet))
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Error(err, logger.Fields{"event": events.BetPlaced, "bet_id": bet.ID})
	}
}

func (s *service) observe(userID uuid.UUID, kind string, errp *error) {
	if *errp == nil {
		return
	}
	reason := rejectionReason(*errp)
	s.metrics.BetRejected(reason)
	if reason == "error" {
		s.logger.Error(*errp, logger.Fields{"user_id": userID, "kind": kind})
		return
	}
	s.logger.Debug("bet rejected", logger.Fields{"user_id": userID, "kind": kind, "reason": reason, "error": (*errp).Error()})
}

func rejectionReason(err error) string {
	reasons := []struct {
		target error
		reason string
	}{
		{models.ErrForbidden, "forbidden"},
		{models.ErrInvalidStake, "invalid_stake"},
		{models.ErrInsufficientBalance, "insufficient_balance"},
		{models.ErrGameNotBettable, "not_bettable"},
		{models.ErrRecordNotFound, "not_found"},
		{models.ErrInvalidParlayLegs, "invalid_selection"},
		{models.ErrInvalidBetSelection, "invalid_selection"},
	}
	for _, r := range reasons {
		if errors.Is(err, r.target) {
			return r.reason
		}
	}
	return "error"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, ...uuid.UUID) {}
