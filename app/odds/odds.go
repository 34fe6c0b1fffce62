// Package odds holds the American odds arithmetic used for pricing bets.
package odds

import (
	"errors"
	"math"
	"math/bits"
	"strconv"
)

var (
	ErrZeroOdds    = errors.New("american odds cannot be zero")
	ErrTooFewLegs  = errors.New("a parlay needs at least two legs")
	ErrInvalidOdds = errors.New("decimal odds must be greater than 1")
	ErrOverflow    = errors.New("payout does not fit in int64")
	ErrNegative    = errors.New("stake cannot be negative")
)

// Payout returns the total return of a winning stake, stake included.
// Winnings are floored so the result never rounds in the bettor's favour.
// Stakes whose return would not fit in an int64 fail with ErrOverflow.
func Payout(stake int64, american int) (int64, error) {
	if stake < 0 {
		return 0, ErrNegative
	}

	var num, den uint64
	switch {
	case american > 0:
		num, den = uint64(american), 100
	case american < 0:
		num, den = 100, uint64(-int64(american))
	default:
		return 0, ErrZeroOdds
	}

	hi, lo := bits.Mul64(uint64(stake), num)
	if hi >= den {
		return 0, ErrOverflow
	}
	winnings, _ := bits.Div64(hi, lo, den)
	if winnings > math.MaxInt64-uint64(stake) {
		return 0, ErrOverflow
	}
	return stake + int64(winnings), nil
}

// AmericanToDecimal converts American odds to decimal odds.
func AmericanToDecimal(american int) (float64, error) {
	switch {
	case american > 0:
		return float64(american)/100 + 1, nil
	case american < 0:
		return 100/math.Abs(float64(american)) + 1, nil
	default:
		return 0, ErrZeroOdds
	}
}

// DecimalToAmerican converts decimal odds back to the nearest American odds.
func DecimalToAmerican(dec float64) (int, error) {
	if dec <= 1 {
		return 0, ErrInvalidOdds
	}
	if dec >= 2 {
		return int(math.Round((dec - 1) * 100)), nil
	}
	return int(math.Round(-100 / (dec - 1))), nil
}

// CombineParlayOdds multiplies the decimal odds of every leg and returns the
// product as American odds.
func CombineParlayOdds(legs []int) (int, error) {
	if len(legs) < 2 {
		return 0, ErrTooFewLegs
	}

	product := 1.0
	for _, american := range legs {
		dec, err := AmericanToDecimal(american)
		if err != nil {
			return 0, err
		}
		product *= dec
	}

	return DecimalToAmerican(product)
}

// ImpliedProbability is the break-even win probability for the odds, in [0,1].
func ImpliedProbability(american int) (float64, error) {
	dec, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1 / dec, nil
}

// Format renders American odds the way books print them: "+150", "-110".
func Format(american int) string {
	if american > 0 {
		return "+" + strconv.Itoa(american)
	}
	return strconv.Itoa(american)
}
