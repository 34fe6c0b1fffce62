package stats

import "github.com/google/uuid"

// BettingStats is a user's betting summary. Amounts are minor units.
type BettingStats struct {
	TotalBets      int              `json:"total_bets"`
	WonBets        int              `json:"won_bets"`
	LostBets       int              `json:"lost_bets"`
	PendingBets    int              `json:"pending_bets"`
	WinRate        float64          `json:"win_rate"`
	TotalStaked    int64            `json:"total_staked"`
	TotalWon       int64            `json:"total_won"`
	TotalLost      int64            `json:"total_lost"`
	NetProfit      int64            `json:"net_profit"`
	FavoriteSport  *string          `json:"favorite_sport"`
	RecentActivity []DailyActivity  `json:"recent_activity"`
	SportBreakdown []SportBreakdown `json:"sport_breakdown"`
	Streaks        Streaks          `json:"streaks"`
}

// DailyActivity buckets the bets placed on one local calendar day.
type DailyActivity struct {
	Date   string `json:"date"`
	Bets   int    `json:"bets"`
	Profit int64  `json:"profit"`
}

// SportBreakdown covers single bets on one sport.
type SportBreakdown struct {
	SportID   uuid.UUID `json:"sport_id"`
	SportName string    `json:"sport_name"`
	Bets      int       `json:"bets"`
	Won       int       `json:"won"`
	Lost      int       `json:"lost"`
	WinRate   float64   `json:"win_rate"`
}

// Streaks over resolved bets in settlement order. Current is positive for a
// run of wins and negative for a run of losses.
type Streaks struct {
	Current     int `json:"current"`
	LongestWin  int `json:"longest_win"`
	LongestLoss int `json:"longest_loss"`
}
