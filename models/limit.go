package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LimitMode tells how a betting limit applies.
type LimitMode string

const (
	LimitUnlimited LimitMode = "unlimited"
	LimitBlocked   LimitMode = "blocked"
	LimitCapped    LimitMode = "capped"
)

// Limit is a per-user betting cap in minor units.
//
// It is stored as a nullable bigint: NULL is unlimited, 0 is blocked and any
// positive value is a cap.
type Limit struct {
	Mode   LimitMode `json:"mode"`
	Amount int64     `json:"amount,omitempty"`
}

// Unlimited returns a limit that never rejects.
func Unlimited() Limit { return Limit{Mode: LimitUnlimited} }

// Blocked returns a limit that rejects every stake.
func Blocked() Limit { return Limit{Mode: LimitBlocked} }

// Capped returns a limit of amount minor units.
func Capped(amount int64) Limit {
	if amount <= 0 {
		return Blocked()
	}
	return Limit{Mode: LimitCapped, Amount: amount}
}

// LegacyLimit converts the older nullable-number form where both null and 0
// meant "no limit".
func LegacyLimit(amount *int64) Limit {
	if amount == nil || *amount == 0 {
		return Unlimited()
	}
	return Capped(*amount)
}

// IsUnlimited reports whether the limit never rejects.
func (l Limit) IsUnlimited() bool {
	return l.Mode == "" || l.Mode == LimitUnlimited
}

// Cap returns the effective cap. ok is false for unlimited limits.
func (l Limit) Cap() (amount int64, ok bool) {
	switch l.Mode {
	case LimitBlocked:
		return 0, true
	case LimitCapped:
		return l.Amount, true
	default:
		return 0, false
	}
}

// Validate checks the mode and amount agree.
func (l Limit) Validate() error {
	switch l.Mode {
	case "", LimitUnlimited, LimitBlocked:
		return nil
	case LimitCapped:
		if l.Amount <= 0 {
			return ErrInvalidLimit
		}
		return nil
	default:
		return ErrInvalidLimit
	}
}

// Value implements driver.Valuer interface
func (l Limit) Value() (driver.Value, error) {
	amount, ok := l.Cap()
	if !ok {
		return nil, nil
	}
	return amount, nil
}

// Scan implements sql.Scanner interface
func (l *Limit) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = Unlimited()
	case int64:
		*l = Capped(v)
	case int32:
		*l = Capped(int64(v))
	case []byte:
		var n int64
		if err := json.Unmarshal(v, &n); err != nil {
			return fmt.Errorf("scan limit: %w", err)
		}
		*l = Capped(n)
	default:
		return fmt.Errorf("scan limit: unsupported type %T", value)
	}
	return nil
}
