package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/internal/cache"
	"github.com/joefazee/sportsbook/internal/logger"
	"github.com/joefazee/sportsbook/internal/metrics"
	"github.com/joefazee/sportsbook/models"
)

// minGenerationTTL keeps a user's generation alive well past any stats entry
// written under an older one.
const minGenerationTTL = 24 * time.Hour

type service struct {
	repo    Repository
	cache   cache.Cache[BettingStats]
	gens    cache.Cache[string]
	config  *Config
	metrics metrics.Recorder
	logger  logger.Logger
	now     func() time.Time
}

// NewService creates a new stats service. Results are cached per user for
// config.CacheTTL; a zero TTL disables caching. Entries are keyed by the
// user's generation in gens, which Invalidate replaces, so a computation that
// raced an invalidation is written under a key nobody reads again.
func NewService(repo Repository, c cache.Cache[BettingStats], gens cache.Cache[string], config *Config, m metrics.Recorder, log logger.Logger, now func() time.Time) Service {
	if m == nil {
		m = metrics.Nop{}
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, cache: c, gens: gens, config: config, metrics: m, logger: log, now: now}
}

func (s *service) GetStats(ctx context.Context, userID uuid.UUID) (*BettingStats, error) {
	entryKey, useCache := s.entryKey(ctx, userID)
	if useCache {
		if stats, ok := s.lookup(ctx, userID, entryKey); ok {
			return stats, nil
		}
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user #%s: %w", userID, models.ErrRecordNotFound)
	}

	bets, err := s.repo.GetUserBets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}

	sports, err := s.repo.GetSports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sports: %w", err)
	}

	result := Aggregate(bets, sports, s.now(), s.config.ActivityDays)

	if useCache {
		if err := s.cache.Set(ctx, entryKey, *result, s.config.CacheTTL); err != nil {
			s.logger.Error(err, logger.Fields{"user_id": userID, "op": "stats_cache_set"})
		}
	}
	return result, nil
}

// Invalidate drops cached stats so the next read recomputes them. Each user
// moves to a fresh generation and the entries of the old one are deleted.
func (s *service) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	if !s.cacheEnabled() || len(userIDs) == 0 {
		return
	}

	ttl := max(minGenerationTTL, 2*s.config.CacheTTL)
	keys := make([]string, 0, 2*len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, key(id, ""))
		if gen, err := s.gens.Get(ctx, generationKey(id)); err == nil && gen != "" {
			keys = append(keys, key(id, gen))
		}
		if err := s.gens.Set(ctx, generationKey(id), uuid.NewString(), ttl); err != nil {
			s.logger.Error(err, logger.Fields{"user_id": id, "op": "stats_generation_set"})
		}
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Error(err, logger.Fields{"users": len(userIDs), "op": "stats_cache_delete"})
	}
}

// entryKey is the cache key for the user's current generation. A missing
// generation maps to the unversioned key. It reports false when the cache
// must be bypassed, including when the generation cannot be read.
func (s *service) entryKey(ctx context.Context, userID uuid.UUID) (string, bool) {
	if !s.cacheEnabled() {
		return "", false
	}

	gen, err := s.gens.Get(ctx, generationKey(userID))
	switch {
	case errors.Is(err, cache.ErrCacheMiss):
		return key(userID, ""), true
	case err != nil:
		s.logger.Error(err, logger.Fields{"user_id": userID, "op": "stats_generation_get"})
		return "", false
	}
	return key(userID, gen), true
}

func (s *service) lookup(ctx context.Context, userID uuid.UUID, entryKey string) (*BettingStats, bool) {
	cached, err := s.cache.Get(ctx, entryKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Error(err, logger.Fields{"user_id": userID, "op": "stats_cache_get"})
		}
		s.metrics.CacheLookup(false)
		return nil, false
	}

	s.metrics.CacheLookup(true)
	return &cached, true
}

func (s *service) cacheEnabled() bool {
	return s.cache != nil && s.gens != nil && s.config.CacheTTL > 0
}

func key(userID uuid.UUID, gen string) string {
	if gen == "" {
		return "stats:" + userID.String()
	}
	return "stats:" + userID.String() + ":" + gen
}

func generationKey(userID uuid.UUID) string {
	return "stats-gen:" + userID.String()
}
