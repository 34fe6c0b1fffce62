package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/internal/events"
	"github.com/joefazee/sportsbook/internal/logger"
	"github.com/joefazee/sportsbook/internal/metrics"
	"github.com/joefazee/sportsbook/models"
	"gorm.io/gorm"
)

// ServiceDeps carries the optional collaborators of the settlement service.
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
	config    *Config
	publisher events.Publisher
	metrics   metrics.Recorder
	stats     StatsInvalidator
	logger    logger.Logger
	now       func() time.Time
}

// NewService creates a new settlement service
func NewService(db *gorm.DB, repo Repository, ledger *wallet.Ledger, config *Config, deps ServiceDeps) Service {
	s := &service{
		db:        db,
		repo:      repo,
		ledger:    ledger,
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

// SettleGame completes the game with the given winner and resolves every
// pending bet that depends on it. A game can be settled once.
func (s *service) SettleGame(ctx context.Context, gameID, winnerID uuid.UUID, homeScore, awayScore int) (*Result, error) {
	return s.settle(ctx, gameID, homeScore, awayScore, func(game *models.Game) (uuid.UUID, error) {
		if !game.HasTeam(winnerID) {
			return uuid.Nil, models.ErrInvalidWinner
		}
		return winnerID, nil
	})
}

// SettleFromScores picks the winner from the final score; ties go to the
// away team.
func (s *service) SettleFromScores(ctx context.Context, gameID uuid.UUID, homeScore, awayScore int) (*Result, error) {
	return s.settle(ctx, gameID, homeScore, awayScore, func(game *models.Game) (uuid.UUID, error) {
		return game.WinnerFromScores(homeScore, awayScore), nil
	})
}

func (s *service) UpdateStatus(ctx context.Context, gameID uuid.UUID, status models.GameStatus) (*GameStatusResponse, error) {
	if status != models.GameStatusUpcoming && status != models.GameStatusLive {
		return nil, fmt.Errorf("%w: use settlement to complete a game", models.ErrInvalidGameStatus)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.OperationTimeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		game, err := repo.LockGame(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to get game: %w", err)
		}
		if game.IsCompleted() {
			return fmt.Errorf("%w: game #%s", models.ErrAlreadySettled, game.ID)
		}

		game.Status = status
		return repo.UpdateGameStatus(ctx, game)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("game status updated", logger.Fields{"game_id": gameID, "status": status})
	return &GameStatusResponse{GameID: gameID, Status: status}, nil
}

func (s *service) settle(ctx context.Context, gameID uuid.UUID, homeScore, awayScore int, pick func(*models.Game) (uuid.UUID, error)) (*Result, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, models.ErrInvalidScore
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.OperationTimeout)
	defer cancel()

	now := s.now()
	result := &Result{GameID: gameID, HomeScore: homeScore, AwayScore: awayScore, SettledAt: now}
	var resolved []resolution

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		game, err := repo.LockGame(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to get game: %w", err)
		}
		if game.IsCompleted() {
			return fmt.Errorf("%w: game #%s", models.ErrAlreadySettled, game.ID)
		}

		winnerID, err := pick(game)
		if err != nil {
			return err
		}
		game.Complete(winnerID, homeScore, awayScore, now)
		if err := repo.UpdateGameResult(ctx, game); err != nil {
			return fmt.Errorf("failed to complete game: %w", err)
		}
		result.WinnerID = winnerID

		resolved, err = resolveBets(ctx, repo, game, now, result)
		if err != nil {
			return err
		}

		sortByWallet(resolved)
		for _, r := range resolved {
			if _, err := s.ledger.Post(ctx, tx, r.entry); err != nil {
				return fmt.Errorf("failed to post %s for bet %s: %w", r.entry.Type, r.bet.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tally(result, resolved)
	s.afterSettlement(ctx, result, resolved)
	return result, nil
}

// resolveBets settles the game's single bets and parlay legs, then every
// parlay those legs belong to that can now be decided.
func resolveBets(ctx context.Context, repo Repository, game *models.Game, now time.Time, result *Result) ([]resolution, error) {
	singles, err := repo.PendingSingles(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending bets: %w", err)
	}

	out := make([]resolution, 0, len(singles))
	for i := range singles {
		r := resolveSingle(&singles[i], game)
		if err := finalize(ctx, repo, r, now); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	legs, err := repo.PendingLegs(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending legs: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(legs))
	parlayIDs := make([]uuid.UUID, 0, len(legs))
	for i := range legs {
		leg := &legs[i]
		leg.Result = models.BetStatusLost
		if leg.SelectedTeamID == *game.WinnerID {
			leg.Result = models.BetStatusWon
		}
		if err := repo.UpdateLegResult(ctx, leg); err != nil {
			return nil, fmt.Errorf("failed to update leg %s: %w", leg.ID, err)
		}
		result.LegsResolved++

		if _, ok := seen[leg.BetID]; !ok {
			seen[leg.BetID] = struct{}{}
			parlayIDs = append(parlayIDs, leg.BetID)
		}
	}

	sortUUIDs(parlayIDs)
	for _, id := range parlayIDs {
		parlay, err := repo.LockParlay(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to lock parlay %s: %w", id, err)
		}
		// lost on an earlier leg
		if !parlay.IsPending() {
			continue
		}

		r, ok := resolveParlay(parlay)
		if !ok {
			continue
		}
		if err := finalize(ctx, repo, r, now); err != nil {
			return nil, err
		}
		out = append(out, r)
		result.ParlaysResolved++
	}

	return out, nil
}

func finalize(ctx context.Context, repo Repository, r resolution, now time.Time) error {
	if err := r.bet.Resolve(r.won(), now); err != nil {
		return err
	}
	if err := repo.ResolveBet(ctx, r.bet); err != nil {
		return fmt.Errorf("failed to resolve bet %s: %w", r.bet.ID, err)
	}
	return nil
}

func tally(result *Result, resolved []resolution) {
	result.SettledCount = len(resolved)
	for _, r := range resolved {
		if r.won() {
			result.Won++
			result.PaidOut += r.entry.Amount
			continue
		}
		result.Lost++
	}
}

func (s *service) afterSettlement(ctx context.Context, result *Result, resolved []resolution) {
	s.metrics.GameSettled(result.SettledCount)

	batch := make([]events.Event, 0, len(resolved)+1)
	batch = append(batch, events.New(events.GameSettled, result.GameID.String(), result))

	users := make([]uuid.UUID, 0, len(resolved))
	seen := make(map[uuid.UUID]struct{}, len(resolved))
	for _, r := range resolved {
		s.metrics.BetSettled(string(r.bet.Status))
		batch = append(batch, events.New(events.BetSettled, r.bet.UserID.String(), BetSettled{
			BetID:    r.bet.ID,
			UserID:   r.bet.UserID,
			GameID:   result.GameID,
			IsParlay: r.bet.IsParlay,
			Status:   r.bet.Status,
			Payout:   r.entry.Amount,
		}))
		if _, ok := seen[r.bet.UserID]; !ok {
			seen[r.bet.UserID] = struct{}{}
			users = append(users, r.bet.UserID)
		}
	}

	s.stats.Invalidate(ctx, users...)

	if err := s.publisher.Publish(ctx, batch...); err != nil {
		s.logger.Error(err, logger.Fields{"event": events.GameSettled, "game_id": result.GameID})
	}

	s.logger.Info("game settled", logger.Fields{
		"game_id":          result.GameID,
		"winner_id":        result.WinnerID,
		"settled":          result.SettledCount,
		"parlays_resolved": result.ParlaysResolved,
		"paid_out":         result.PaidOut,
	})
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, ...uuid.UUID) {}
