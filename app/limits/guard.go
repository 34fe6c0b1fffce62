// Package limits enforces per-user responsible-gambling caps on new stakes.
package limits

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/internal/formatter"
	"github.com/joefazee/sportsbook/models"
)

// Name identifies which cap rejected a stake.
type Name string

const (
	Suspension Name = "suspension"
	PerBet     Name = "per_bet"
	Daily      Name = "daily"
	Weekly     Name = "weekly"
)

const weekWindow = 7 * 24 * time.Hour

// HistoryLookup sums the stakes a user placed from since until now.
type HistoryLookup interface {
	StakedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
}

// Violation is returned when a stake breaks a limit. Remaining is what the
// user could still stake under that limit.
type Violation struct {
	Limit     Name
	Cap       int64
	Remaining int64
}

func (v *Violation) Error() string {
	switch v.Limit {
	case Suspension:
		return "Account is suspended"
	case PerBet:
		return fmt.Sprintf("Stake exceeds per-bet limit of %s", formatter.Money(v.Cap))
	case Daily:
		return fmt.Sprintf("Daily limit exceeded. Remaining: %s", formatter.Money(v.Remaining))
	case Weekly:
		return fmt.Sprintf("Weekly limit exceeded. Remaining: %s", formatter.Money(v.Remaining))
	default:
		return "Betting limit exceeded"
	}
}

// Unwrap classifies the violation: suspension is Forbidden, everything else
// is an invalid stake.
func (v *Violation) Unwrap() error {
	if v.Limit == Suspension {
		return models.ErrForbidden
	}
	return models.ErrInvalidStake
}

// Guard checks prospective stakes against a user's limits.
type Guard struct {
	history HistoryLookup
	now     func() time.Time
}

// Option configures a Guard.
type Option func(*Guard)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		g.now = now
	}
}

// NewGuard creates a limits guard backed by history.
func NewGuard(history HistoryLookup, opts ...Option) *Guard {
	g := &Guard{history: history, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithHistory returns a copy of g reading stake history from h, typically a
// repository bound to the caller's transaction.
func (g *Guard) WithHistory(h HistoryLookup) *Guard {
	cp := *g
	cp.history = h
	return &cp
}

// Check returns nil when stake is allowed, a *Violation when a limit rejects
// it, or a wrapped lookup error.
func (g *Guard) Check(ctx context.Context, user *models.User, stake int64) error {
	if !user.CanBet() {
		return &Violation{Limit: Suspension}
	}

	if capAmount, ok := user.PerBetLimit.Cap(); ok && stake > capAmount {
		return &Violation{Limit: PerBet, Cap: capAmount, Remaining: capAmount}
	}

	now := g.now()
	windows := []struct {
		name  Name
		limit models.Limit
		since time.Time
	}{
		{Daily, user.DailyLimit, StartOfDay(now)},
		{Weekly, user.WeeklyLimit, now.Add(-weekWindow)},
	}

	for _, w := range windows {
		capAmount, ok := w.limit.Cap()
		if !ok {
			continue
		}

		staked, err := g.history.StakedSince(ctx, user.ID, w.since)
		if err != nil {
			return fmt.Errorf("failed to sum %s stakes: %w", w.name, err)
		}

		if staked+stake > capAmount {
			return &Violation{Limit: w.name, Cap: capAmount, Remaining: max(capAmount-staked, 0)}
		}
	}

	return nil
}

// StartOfDay returns local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Details is sent to clients alongside the message.
func (v *Violation) Details() interface{} {
	return map[string]interface{}{
		"limit":     v.Limit,
		"remaining": v.Remaining,
	}
}
