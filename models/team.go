package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SportID      uuid.UUID `gorm:"type:uuid;not null;index" json:"sport_id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	City         string    `gorm:"type:varchar(100)" json:"city,omitempty"`
	Abbreviation string    `gorm:"type:varchar(10)" json:"abbreviation,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Team model
func (*Team) TableName() string {
	return "teams"
}

// BeforeCreate sets up the model before creation
func (t *Team) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// DisplayName joins city and name when a city is known.
func (t *Team) DisplayName() string {
	if t.City == "" {
		return t.Name
	}
	return t.City + " " + t.Name
}

// Validate performs validation on the team model
func (t *Team) Validate() error {
	if t.SportID == uuid.Nil {
		return ErrInvalidSportID
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidTeamName
	}
	return nil
}
