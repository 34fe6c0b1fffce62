package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
)

// SettleRequest completes a game. When WinnerTeamID is omitted the winner is
// taken from the scores.
type SettleRequest struct {
	WinnerTeamID *uuid.UUID `json:"winner_team_id"`
	HomeScore    *int       `json:"home_score" binding:"required,min=0"`
	AwayScore    *int       `json:"away_score" binding:"required,min=0"`
}

// UpdateStatusRequest moves a game between upcoming and live.
type UpdateStatusRequest struct {
	Status models.GameStatus `json:"status" binding:"required,oneof=upcoming live"`
}

// Result summarizes one settled game.
type Result struct {
	GameID          uuid.UUID `json:"game_id"`
	WinnerID        uuid.UUID `json:"winner_id"`
	HomeScore       int       `json:"home_score"`
	AwayScore       int       `json:"away_score"`
	SettledCount    int       `json:"settled_count"`
	Won             int       `json:"won"`
	Lost            int       `json:"lost"`
	LegsResolved    int       `json:"legs_resolved"`
	ParlaysResolved int       `json:"parlays_resolved"`
	PaidOut         int64     `json:"paid_out"`
	SettledAt       time.Time `json:"settled_at"`
}

// GameStatusResponse is returned after a status change.
type GameStatusResponse struct {
	GameID uuid.UUID         `json:"game_id"`
	Status models.GameStatus `json:"status"`
}

// BetSettled is the event payload published for every resolved bet.
type BetSettled struct {
	BetID    uuid.UUID        `json:"bet_id"`
	UserID   uuid.UUID        `json:"user_id"`
	GameID   uuid.UUID        `json:"game_id"`
	IsParlay bool             `json:"is_parlay"`
	Status   models.BetStatus `json:"status"`
	Payout   int64            `json:"payout"`
}
