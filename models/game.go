package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameStatus represents where a game is in its lifecycle
type GameStatus string

const (
	GameStatusUpcoming  GameStatus = "upcoming"
	GameStatusLive      GameStatus = "live"
	GameStatusCompleted GameStatus = "completed"
)

// IsValid reports whether s is a known status.
func (s GameStatus) IsValid() bool {
	switch s {
	case GameStatusUpcoming, GameStatusLive, GameStatusCompleted:
		return true
	}
	return false
}

// Game is a matchup between two teams priced with American odds.
type Game struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SportID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"sport_id"`
	HomeTeamID  uuid.UUID  `gorm:"type:uuid;not null" json:"home_team_id"`
	AwayTeamID  uuid.UUID  `gorm:"type:uuid;not null" json:"away_team_id"`
	HomeOdds    int        `gorm:"not null" json:"home_odds"`
	AwayOdds    int        `gorm:"not null" json:"away_odds"`
	ScheduledAt time.Time  `gorm:"type:timestamptz;not null;index" json:"scheduled_at"`
	Status      GameStatus `gorm:"type:varchar(16);not null;default:'upcoming';index" json:"status"`
	HomeScore   *int       `json:"home_score,omitempty"`
	AwayScore   *int       `json:"away_score,omitempty"`
	WinnerID    *uuid.UUID `gorm:"type:uuid" json:"winner_id,omitempty"`
	ExternalID  *string    `gorm:"type:varchar(100);uniqueIndex" json:"external_id,omitempty"`
	SettledAt   *time.Time `gorm:"type:timestamptz" json:"settled_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Sport    *Sport `gorm:"foreignKey:SportID" json:"sport,omitempty"`
	HomeTeam *Team  `gorm:"foreignKey:HomeTeamID" json:"home_team,omitempty"`
	AwayTeam *Team  `gorm:"foreignKey:AwayTeamID" json:"away_team,omitempty"`
}

// TableName specifies the table name for Game model
func (*Game) TableName() string {
	return "games"
}

// BeforeCreate sets up the model before creation
func (g *Game) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = GameStatusUpcoming
	}
	return nil
}

// IsBettable reports whether wagers may still be taken at now. A game whose
// start time has passed is closed even if its status was not flipped yet.
func (g *Game) IsBettable(now time.Time) bool {
	return g.Status == GameStatusUpcoming && g.ScheduledAt.After(now)
}

// IsCompleted checks if the game has been settled
func (g *Game) IsCompleted() bool {
	return g.Status == GameStatusCompleted
}

// HasTeam reports whether teamID plays in this game.
func (g *Game) HasTeam(teamID uuid.UUID) bool {
	return teamID == g.HomeTeamID || teamID == g.AwayTeamID
}

// OddsFor returns the listed odds for the selected side.
func (g *Game) OddsFor(teamID uuid.UUID) (int, error) {
	switch teamID {
	case g.HomeTeamID:
		return g.HomeOdds, nil
	case g.AwayTeamID:
		return g.AwayOdds, nil
	default:
		return 0, ErrInvalidBetSelection
	}
}

// WinnerFromScores picks the home team on a strictly higher home score and
// the away team otherwise, ties included.
func (g *Game) WinnerFromScores(home, away int) uuid.UUID {
	if home > away {
		return g.HomeTeamID
	}
	return g.AwayTeamID
}

// Complete records the final result.
func (g *Game) Complete(winnerID uuid.UUID, home, away int, at time.Time) {
	g.Status = GameStatusCompleted
	g.WinnerID = &winnerID
	g.HomeScore = &home
	g.AwayScore = &away
	g.SettledAt = &at
}

// Validate performs validation on the game model
func (g *Game) Validate() error {
	if g.SportID == uuid.Nil {
		return ErrInvalidSportID
	}
	if g.HomeTeamID == uuid.Nil || g.HomeTeamID == g.AwayTeamID {
		return ErrInvalidGameTeams
	}
	if g.HomeOdds == 0 || g.AwayOdds == 0 {
		return ErrInvalidOdds
	}
	if g.ScheduledAt.IsZero() {
		return ErrInvalidScheduleAt
	}
	if g.Status != "" && !g.Status.IsValid() {
		return ErrInvalidGameStatus
	}
	return nil
}
