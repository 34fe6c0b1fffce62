package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sport is a catalog entry. SortOrder fixes the catalog iteration order.
type Sport struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Code      string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"code"`
	Icon      string    `gorm:"type:varchar(100)" json:"icon,omitempty"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Sport model
func (*Sport) TableName() string {
	return "sports"
}

// BeforeCreate sets up the model before creation
func (s *Sport) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Validate performs validation on the sport model
func (s *Sport) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalidSportName
	}
	if strings.TrimSpace(s.Code) == "" || len(s.Code) > 20 {
		return ErrInvalidSportCode
	}
	return nil
}
