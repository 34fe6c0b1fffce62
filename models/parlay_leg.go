package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParlayLeg is one selection inside a parlay bet.
type ParlayLeg struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BetID          uuid.UUID `gorm:"type:uuid;not null;index" json:"bet_id"`
	GameID         uuid.UUID `gorm:"type:uuid;not null;index" json:"game_id"`
	SelectedTeamID uuid.UUID `gorm:"type:uuid;not null" json:"selected_team_id"`
	Odds           int       `gorm:"not null" json:"odds"`
	Result         BetStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"result"`
}

// TableName specifies the table name for ParlayLeg model
func (*ParlayLeg) TableName() string {
	return "parlay_legs"
}

// BeforeCreate sets up the model before creation
func (l *ParlayLeg) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Result == "" {
		l.Result = BetStatusPending
	}
	return nil
}

// ParlayOutcome folds leg results into the parent's status. Any lost leg
// loses the parlay; it wins only once every leg has won.
func ParlayOutcome(legs []ParlayLeg) BetStatus {
	if len(legs) == 0 {
		return BetStatusPending
	}
	allWon := true
	for i := range legs {
		switch legs[i].Result {
		case BetStatusLost:
			return BetStatusLost
		case BetStatusWon:
		default:
			allWon = false
		}
	}
	if allWon {
		return BetStatusWon
	}
	return BetStatusPending
}
