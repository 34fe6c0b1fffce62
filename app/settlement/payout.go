package settlement

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/models"
)

// resolution is a bet that reached its final status together with the
// ledger entry it owes.
type resolution struct {
	bet   *models.Bet
	entry wallet.Entry
}

// resolveSingle decides a single bet on game. Winners are credited the
// potential payout; losers get a zero-amount marker row.
func resolveSingle(bet *models.Bet, game *models.Game) resolution {
	won := bet.SelectedTeamID != nil && game.WinnerID != nil && *bet.SelectedTeamID == *game.WinnerID

	entry := wallet.Entry{
		UserID:      bet.UserID,
		Type:        models.TransactionTypeBetLost,
		BetID:       &bet.ID,
		Description: fmt.Sprintf("Lost bet on game #%s", game.ID),
	}
	if won {
		entry.Type = models.TransactionTypeBetWon
		entry.Amount = bet.PotentialPayout
		entry.Description = fmt.Sprintf("Won bet on game #%s", game.ID)
	}
	return resolution{bet: bet, entry: entry}
}

// resolveParlay folds leg results. ok is false while the parlay is still
// waiting on legs from other games.
func resolveParlay(bet *models.Bet) (res resolution, ok bool) {
	switch models.ParlayOutcome(bet.Legs) {
	case models.BetStatusWon:
		return resolution{bet: bet, entry: wallet.Entry{
			UserID:      bet.UserID,
			Type:        models.TransactionTypeBetWon,
			Amount:      bet.PotentialPayout,
			BetID:       &bet.ID,
			Description: "Won parlay bet",
		}}, true
	case models.BetStatusLost:
		return resolution{bet: bet, entry: wallet.Entry{
			UserID:      bet.UserID,
			Type:        models.TransactionTypeBetLost,
			BetID:       &bet.ID,
			Description: "Lost parlay bet",
		}}, true
	default:
		return resolution{}, false
	}
}

func (r resolution) won() bool {
	return r.entry.Type == models.TransactionTypeBetWon
}

// sortByWallet orders resolutions by user then bet so every settlement takes
// wallet locks in the same order.
func sortByWallet(rs []resolution) {
	sort.Slice(rs, func(i, j int) bool {
		if c := compareUUID(rs[i].entry.UserID, rs[j].entry.UserID); c != 0 {
			return c < 0
		}
		return compareUUID(rs[i].bet.ID, rs[j].bet.ID) < 0
	})
}

func sortUUIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return compareUUID(ids[i], ids[j]) < 0 })
}

func compareUUID(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
