package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a bettor or a member of staff.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"username"`
	Name        string    `gorm:"type:varchar(255)" json:"name"`
	Role        Role      `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
	Suspended   bool      `gorm:"not null;default:false" json:"suspended"`
	DailyLimit  Limit     `gorm:"type:bigint" json:"daily_limit"`
	WeeklyLimit Limit     `gorm:"type:bigint" json:"weekly_limit"`
	PerBetLimit Limit     `gorm:"type:bigint" json:"per_bet_limit"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Wallet *Wallet `gorm:"foreignKey:UserID" json:"wallet,omitempty"`
}

// TableName specifies the table name for User model
func (*User) TableName() string {
	return "users"
}

// BeforeCreate sets up the model before creation
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// CanBet reports whether the account may place wagers at all.
func (u *User) CanBet() bool {
	return !u.Suspended
}

// Validate performs validation on the user model
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" || len(u.Username) > 64 {
		return ErrInvalidUsername
	}
	if u.Role != "" && !u.Role.IsValid() {
		return ErrInvalidRole
	}
	for _, l := range []Limit{u.DailyLimit, u.WeeklyLimit, u.PerBetLimit} {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}
