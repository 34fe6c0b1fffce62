package stats

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/limits"
	"github.com/joefazee/sportsbook/models"
)

// Aggregate builds the stats for bets. sports must be in catalog order; it
// decides the breakdown order and breaks favorite-sport ties. Each bet's Game
// must be loaded for it to count towards a sport.
func Aggregate(bets []models.Bet, sports []models.Sport, now time.Time, days int) *BettingStats {
	s := &BettingStats{TotalBets: len(bets)}

	for i := range bets {
		bet := &bets[i]
		s.TotalStaked += bet.Stake
		switch bet.Status {
		case models.BetStatusWon:
			s.WonBets++
			s.TotalWon += bet.PotentialPayout
		case models.BetStatusLost:
			s.LostBets++
			s.TotalLost += bet.Stake
		default:
			s.PendingBets++
		}
	}
	s.NetProfit = s.TotalWon - s.TotalLost
	s.WinRate = winRate(s.WonBets, s.LostBets)

	s.SportBreakdown, s.FavoriteSport = bySport(bets, sports)
	s.RecentActivity = activity(bets, now, days)
	s.Streaks = streaks(bets)
	return s
}

// winRate is a percentage rounded to one decimal place.
func winRate(won, lost int) float64 {
	if won+lost == 0 {
		return 0
	}
	return math.Round(float64(won)/float64(won+lost)*1000) / 10
}

func bySport(bets []models.Bet, sports []models.Sport) ([]SportBreakdown, *string) {
	counts := make(map[uuid.UUID]*SportBreakdown)
	for i := range bets {
		bet := &bets[i]
		if bet.IsParlay || bet.Game == nil {
			continue
		}
		row, ok := counts[bet.Game.SportID]
		if !ok {
			row = &SportBreakdown{SportID: bet.Game.SportID}
			counts[bet.Game.SportID] = row
		}
		row.Bets++
		switch bet.Status {
		case models.BetStatusWon:
			row.Won++
		case models.BetStatusLost:
			row.Lost++
		}
	}

	breakdown := make([]SportBreakdown, 0, len(counts))
	var favorite *string
	most := 0
	for i := range sports {
		row, ok := counts[sports[i].ID]
		if !ok {
			continue
		}
		row.SportName = sports[i].Name
		row.WinRate = winRate(row.Won, row.Lost)
		breakdown = append(breakdown, *row)

		if row.Bets > most {
			most = row.Bets
			name := sports[i].Name
			favorite = &name
		}
	}
	return breakdown, favorite
}

// activity returns one bucket per local day, oldest first, ending today.
func activity(bets []models.Bet, now time.Time, days int) []DailyActivity {
	today := limits.StartOfDay(now)
	out := make([]DailyActivity, days)
	for i := range out {
		day := today.AddDate(0, 0, i-days+1)
		out[i].Date = day.Format(time.DateOnly)

		next := day.AddDate(0, 0, 1)
		for j := range bets {
			bet := &bets[j]
			placed := bet.CreatedAt.In(now.Location())
			if placed.Before(day) || !placed.Before(next) {
				continue
			}
			out[i].Bets++
			switch bet.Status {
			case models.BetStatusWon:
				out[i].Profit += bet.PotentialPayout
			case models.BetStatusLost:
				out[i].Profit -= bet.Stake
			}
		}
	}
	return out
}

func streaks(bets []models.Bet) Streaks {
	resolved := make([]*models.Bet, 0, len(bets))
	for i := range bets {
		if bets[i].SettledAt != nil && !bets[i].IsPending() {
			resolved = append(resolved, &bets[i])
		}
	}
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].SettledAt.Before(*resolved[j].SettledAt)
	})

	var st Streaks
	run := 0
	for _, bet := range resolved {
		if bet.Status == models.BetStatusWon {
			if run < 0 {
				run = 0
			}
			run++
			st.LongestWin = max(st.LongestWin, run)
		} else {
			if run > 0 {
				run = 0
			}
			run--
			st.LongestLoss = max(st.LongestLoss, -run)
		}
	}
	st.Current = run
	return st
}
