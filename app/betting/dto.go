package betting

import (
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/internal/formatter"
	"github.com/joefazee/sportsbook/models"
)

const (
	KindSingle = "single"
	KindParlay = "parlay"
)

// PlaceSingleRequest places a wager on one side of one game. Stake is in
// minor units.
type PlaceSingleRequest struct {
	GameID         uuid.UUID `json:"game_id" validate:"required"`
	SelectedTeamID uuid.UUID `json:"selected_team_id" validate:"required"`
	Stake          int64     `json:"stake" validate:"required,gt=0"`
}

// Selection is one parlay leg as priced by the client.
type Selection struct {
	GameID         uuid.UUID `json:"game_id" validate:"required"`
	SelectedTeamID uuid.UUID `json:"selected_team_id" validate:"required"`
	Odds           int       `json:"odds" validate:"required"`
}

// PlaceParlayRequest combines several selections under one stake.
type PlaceParlayRequest struct {
	Selections []Selection `json:"selections" validate:"required,min=2,dive"`
	Stake      int64       `json:"stake" validate:"required,gt=0"`
}

// BetFilters narrows the caller's bet history.
type BetFilters struct {
	Status  models.BetStatus `form:"status"`
	Kind    string           `form:"kind"`
	Page    int              `form:"page"`
	PerPage int              `form:"per_page"`
}

func (f *BetFilters) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 20
	}
}

// PlacementResponse is returned once a bet is accepted.
type PlacementResponse struct {
	BetID                  uuid.UUID `json:"bet_id"`
	Odds                   int       `json:"odds"`
	Stake                  int64     `json:"stake"`
	PotentialPayout        int64     `json:"potential_payout"`
	PotentialPayoutDisplay string    `json:"potential_payout_display"`
	CombinedOdds           *int      `json:"combined_odds,omitempty"`
	BalanceAfter           int64     `json:"balance_after"`
}

// LegResponse is one parlay selection.
type LegResponse struct {
	GameID         uuid.UUID        `json:"game_id"`
	SelectedTeamID uuid.UUID        `json:"selected_team_id"`
	Odds           int              `json:"odds"`
	Result         models.BetStatus `json:"result"`
}

// BetResponse represents a bet in API responses
type BetResponse struct {
	ID              uuid.UUID        `json:"id"`
	IsParlay        bool             `json:"is_parlay"`
	GameID          *uuid.UUID       `json:"game_id,omitempty"`
	SelectedTeamID  *uuid.UUID       `json:"selected_team_id,omitempty"`
	Odds            int              `json:"odds"`
	Stake           int64            `json:"stake"`
	PotentialPayout int64            `json:"potential_payout"`
	Status          models.BetStatus `json:"status"`
	PlacedAt        time.Time        `json:"placed_at"`
	SettledAt       *time.Time       `json:"settled_at,omitempty"`
	Legs            []LegResponse    `json:"legs,omitempty"`
}

func ToPlacementResponse(bet *models.Bet, balanceAfter int64) *PlacementResponse {
	resp := &PlacementResponse{
		BetID:                  bet.ID,
		Odds:                   bet.Odds,
		Stake:                  bet.Stake,
		PotentialPayout:        bet.PotentialPayout,
		PotentialPayoutDisplay: formatter.Money(bet.PotentialPayout),
		BalanceAfter:           balanceAfter,
	}
	if bet.IsParlay {
		combined := bet.Odds
		resp.CombinedOdds = &combined
	}
	return resp
}

func ToBetResponse(bet *models.Bet) *BetResponse {
	resp := &BetResponse{
		ID:              bet.ID,
		IsParlay:        bet.IsParlay,
		GameID:          bet.GameID,
		SelectedTeamID:  bet.SelectedTeamID,
		Odds:            bet.Odds,
		Stake:           bet.Stake,
		PotentialPayout: bet.PotentialPayout,
		Status:          bet.Status,
		PlacedAt:        bet.CreatedAt,
		SettledAt:       bet.SettledAt,
	}
	for i := range bet.Legs {
		leg := bet.Legs[i]
		resp.Legs = append(resp.Legs, LegResponse{
			GameID:         leg.GameID,
			SelectedTeamID: leg.SelectedTeamID,
			Odds:           leg.Odds,
			Result:         leg.Result,
		})
	}
	return resp
}
