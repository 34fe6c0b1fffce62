package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/odds"
	"github.com/joefazee/sportsbook/internal/sanitizer"
	"github.com/joefazee/sportsbook/internal/validator"
	"github.com/joefazee/sportsbook/models"
)

// GameFilters defines the query parameters for the game list.
type GameFilters struct {
	Status  string `form:"status"`
	SportID string `form:"sport_id"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`

	sportID uuid.UUID
}

// Validate checks the filters and parses the sport id.
func (f *GameFilters) Validate(v *validator.Validator) {
	v.Check(validator.In(f.Status, "", string(models.GameStatusUpcoming), string(models.GameStatusLive), string(models.GameStatusCompleted)),
		"status", "status must be upcoming, live or completed")

	if f.SportID != "" {
		id, err := uuid.Parse(f.SportID)
		v.Check(err == nil, "sport_id", "sport_id must be a valid UUID")
		f.sportID = id
	}
}

func (f *GameFilters) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 20
	}
}

// CreateGameRequest is the admin request body for listing a new game.
type CreateGameRequest struct {
	SportID     uuid.UUID `json:"sport_id"`
	HomeTeamID  uuid.UUID `json:"home_team_id"`
	AwayTeamID  uuid.UUID `json:"away_team_id"`
	HomeOdds    int       `json:"home_odds"`
	AwayOdds    int       `json:"away_odds"`
	ScheduledAt time.Time `json:"scheduled_at"`
	ExternalID  *string   `json:"external_id,omitempty"`
}

// SanitizeAndValidate cleans free text and checks the request data.
func (r *CreateGameRequest) SanitizeAndValidate(v *validator.Validator, s sanitizer.HTMLStripperer) {
	if r.ExternalID != nil {
		clean := strings.TrimSpace(s.StripHTML(*r.ExternalID))
		r.ExternalID = &clean
		if clean == "" {
			r.ExternalID = nil
		}
		v.Check(validator.MaxRunes(clean, 100), "external_id", "external_id must not exceed 100 characters")
	}

	v.Check(r.SportID != uuid.Nil, "sport_id", "sport_id is required")
	v.Check(r.HomeTeamID != uuid.Nil, "home_team_id", "home_team_id is required")
	v.Check(r.AwayTeamID != uuid.Nil, "away_team_id", "away_team_id is required")
	v.Check(r.HomeTeamID != r.AwayTeamID, "away_team_id", "home and away teams must be different")
	v.Check(r.HomeOdds != 0, "home_odds", "home_odds must be non-zero")
	v.Check(r.AwayOdds != 0, "away_odds", "away_odds must be non-zero")
	v.Check(!r.ScheduledAt.IsZero(), "scheduled_at", "scheduled_at is required")
}

// UpdateOddsRequest reprices an upcoming game.
type UpdateOddsRequest struct {
	HomeOdds int `json:"home_odds"`
	AwayOdds int `json:"away_odds"`
}

// Validate checks the request data.
func (r *UpdateOddsRequest) Validate(v *validator.Validator) {
	v.Check(r.HomeOdds != 0, "home_odds", "home_odds must be non-zero")
	v.Check(r.AwayOdds != 0, "away_odds", "away_odds must be non-zero")
}

// SportResponse is a catalog sport
type SportResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Icon      string    `json:"icon,omitempty"`
	SortOrder int       `json:"sort_order"`
}

// TeamResponse is a catalog team
type TeamResponse struct {
	ID           uuid.UUID `json:"id"`
	SportID      uuid.UUID `json:"sport_id"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	City         string    `json:"city,omitempty"`
	Abbreviation string    `json:"abbreviation,omitempty"`
}

// SideResponse is one team's line in a game.
type SideResponse struct {
	TeamID      uuid.UUID `json:"team_id"`
	Name        string    `json:"name,omitempty"`
	Odds        int       `json:"odds"`
	OddsDisplay string    `json:"odds_display"`
	Implied     float64   `json:"implied_probability"`
	Score       *int      `json:"score,omitempty"`
}

// GameResponse is a game with both sides priced
type GameResponse struct {
	ID          uuid.UUID         `json:"id"`
	SportID     uuid.UUID         `json:"sport_id"`
	SportName   string            `json:"sport_name,omitempty"`
	Home        SideResponse      `json:"home"`
	Away        SideResponse      `json:"away"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	Status      models.GameStatus `json:"status"`
	WinnerID    *uuid.UUID        `json:"winner_id,omitempty"`
	ExternalID  *string           `json:"external_id,omitempty"`
	SettledAt   *time.Time        `json:"settled_at,omitempty"`
}

func ToSportResponse(s *models.Sport) SportResponse {
	return SportResponse{ID: s.ID, Name: s.Name, Code: s.Code, Icon: s.Icon, SortOrder: s.SortOrder}
}

func ToTeamResponse(t *models.Team) TeamResponse {
	return TeamResponse{
		ID:           t.ID,
		SportID:      t.SportID,
		Name:         t.Name,
		DisplayName:  t.DisplayName(),
		City:         t.City,
		Abbreviation: t.Abbreviation,
	}
}

// ToGameResponse converts a game; team and sport names are filled when the
// associations are loaded.
func ToGameResponse(g *models.Game) *GameResponse {
	resp := &GameResponse{
		ID:          g.ID,
		SportID:     g.SportID,
		Home:        side(g.HomeTeamID, g.HomeTeam, g.HomeOdds, g.HomeScore),
		Away:        side(g.AwayTeamID, g.AwayTeam, g.AwayOdds, g.AwayScore),
		ScheduledAt: g.ScheduledAt,
		Status:      g.Status,
		WinnerID:    g.WinnerID,
		ExternalID:  g.ExternalID,
		SettledAt:   g.SettledAt,
	}
	if g.Sport != nil {
		resp.SportName = g.Sport.Name
	}
	return resp
}

func side(teamID uuid.UUID, team *models.Team, price int, score *int) SideResponse {
	s := SideResponse{TeamID: teamID, Odds: price, OddsDisplay: odds.Format(price), Score: score}
	if team != nil {
		s.Name = team.DisplayName()
	}
	s.Implied, _ = odds.ImpliedProbability(price)
	return s
}

func ToGameResponses(games []models.Game) []GameResponse {
	out := make([]GameResponse, len(games))
	for i := range games {
		out[i] = *ToGameResponse(&games[i])
	}
	return out
}
