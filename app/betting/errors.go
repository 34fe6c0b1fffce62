package betting

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/odds"
	"github.com/joefazee/sportsbook/models"
)

// OddsChangedError is returned when a parlay leg was priced by the client at
// odds that no longer match the listed line.
type OddsChangedError struct {
	GameID    uuid.UUID
	TeamID    uuid.UUID
	Submitted int
	Current   int
}

func (e *OddsChangedError) Error() string {
	return fmt.Sprintf("Odds changed for game #%s: submitted %s, now %s",
		e.GameID, odds.Format(e.Submitted), odds.Format(e.Current))
}

func (e *OddsChangedError) Unwrap() error {
	return models.ErrGameNotBettable
}

func (e *OddsChangedError) Details() interface{} {
	return map[string]interface{}{
		"game_id":        e.GameID,
		"team_id":        e.TeamID,
		"submitted_odds": e.Submitted,
		"current_odds":   e.Current,
	}
}

func notBettable(game *models.Game) error {
	if game.Status != models.GameStatusUpcoming {
		return fmt.Errorf("%w: game #%s is %s", models.ErrGameNotBettable, game.ID, game.Status)
	}
	return fmt.Errorf("%w: game #%s has already started", models.ErrGameNotBettable, game.ID)
}
