package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BetStatus represents the status of a bet
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusWon     BetStatus = "won"
	BetStatusLost    BetStatus = "lost"
)

// IsValid reports whether s is a known status.
func (s BetStatus) IsValid() bool {
	switch s {
	case BetStatusPending, BetStatusWon, BetStatusLost:
		return true
	}
	return false
}

// Bet is a single wager or a parlay. Parlays carry no game or team of their
// own; their selections live in Legs and Odds holds the combined price.
type Bet struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_bets_user" json:"user_id"`
	IsParlay        bool       `gorm:"not null;default:false" json:"is_parlay"`
	GameID          *uuid.UUID `gorm:"type:uuid;index:idx_bets_game" json:"game_id,omitempty"`
	SelectedTeamID  *uuid.UUID `gorm:"type:uuid" json:"selected_team_id,omitempty"`
	Odds            int        `gorm:"not null" json:"odds"`
	Stake           int64      `gorm:"not null;check:stake > 0" json:"stake"`
	PotentialPayout int64      `gorm:"not null" json:"potential_payout"`
	Status          BetStatus  `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	SettledAt       *time.Time `gorm:"type:timestamptz" json:"settled_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index:idx_bets_user" json:"created_at"`

	User *User       `gorm:"foreignKey:UserID" json:"-"`
	Game *Game       `gorm:"foreignKey:GameID" json:"game,omitempty"`
	Legs []ParlayLeg `gorm:"foreignKey:BetID" json:"legs,omitempty"`
}

// TableName specifies the table name for Bet model
func (*Bet) TableName() string {
	return "bets"
}

// BeforeCreate sets up the model before creation
func (b *Bet) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BetStatusPending
	}
	return nil
}

// IsPending checks if the bet is still open
func (b *Bet) IsPending() bool {
	return b.Status == BetStatusPending
}

// Resolve moves a pending bet to won or lost. It refuses to touch a bet that
// was already resolved.
func (b *Bet) Resolve(won bool, at time.Time) error {
	if !b.IsPending() {
		return ErrAlreadySettled
	}
	b.Status = BetStatusLost
	if won {
		b.Status = BetStatusWon
	}
	b.SettledAt = &at
	return nil
}

// Description is the ledger text recorded when the stake is taken.
func (b *Bet) Description() string {
	if b.IsParlay {
		return fmt.Sprintf("Parlay bet (%d legs)", len(b.Legs))
	}
	if b.GameID == nil {
		return "Bet"
	}
	return fmt.Sprintf("Bet on game #%s", *b.GameID)
}

// Validate performs validation on the bet model
func (b *Bet) Validate() error {
	if b.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if b.Stake <= 0 {
		return ErrInvalidStake
	}
	if b.Odds == 0 {
		return ErrInvalidOdds
	}
	if b.Status != "" && !b.Status.IsValid() {
		return ErrInvalidBetStatus
	}
	if b.IsParlay {
		if b.GameID != nil || b.SelectedTeamID != nil {
			return ErrInvalidParlayLegs
		}
		return nil
	}
	if b.GameID == nil || b.SelectedTeamID == nil {
		return ErrInvalidGameID
	}
	return nil
}
