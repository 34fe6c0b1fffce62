package models

import "errors"

var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrInvalidLimit    = errors.New("invalid betting limit")

	ErrInvalidSportName  = errors.New("invalid sport name")
	ErrInvalidSportCode  = errors.New("invalid sport code")
	ErrInvalidTeamName   = errors.New("invalid team name")
	ErrInvalidSportID    = errors.New("invalid sport ID")
	ErrInvalidGameTeams  = errors.New("home and away teams must be different")
	ErrInvalidOdds       = errors.New("odds must be non-zero")
	ErrInvalidGameStatus = errors.New("invalid game status")
	ErrInvalidScheduleAt = errors.New("invalid scheduled start time")
	ErrInvalidGameID     = errors.New("invalid game ID")
	ErrInvalidWinner     = errors.New("winner must be one of the game's teams")
	ErrInvalidScore      = errors.New("scores cannot be negative")

	ErrInvalidBetStatus    = errors.New("invalid bet status")
	ErrInvalidParlayLegs   = errors.New("invalid parlay legs")
	ErrInvalidBetSelection = errors.New("selected team is not playing in this game")

	ErrNegativeBalance = errors.New("balance cannot be negative")

	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")
	ErrInvalidOperationTimeout         = errors.New("invalid operation timeout")
	ErrInvalidMinStake                 = errors.New("minimum stake must be at least one minor unit")
	ErrInvalidParlayLegBounds          = errors.New("invalid parlay leg bounds")
	ErrInvalidOddsTolerance            = errors.New("odds tolerance cannot be negative")
	ErrInvalidCacheTTL                 = errors.New("invalid cache TTL")
	ErrInvalidActivityWindow           = errors.New("invalid activity window")

	ErrRecordNotFound = errors.New("record not found")
	ErrForbidden      = errors.New("forbidden")

	// Betting error kinds. Handlers classify with errors.Is against these.
	ErrInvalidStake        = errors.New("invalid stake")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrGameNotBettable     = errors.New("game is not open for betting")
	ErrAlreadySettled      = errors.New("game is already settled")
)
