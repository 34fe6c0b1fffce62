package admin

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/app/betting"
	"github.com/joefazee/sportsbook/app/wallet"
	"github.com/joefazee/sportsbook/internal/formatter"
	"github.com/joefazee/sportsbook/internal/sanitizer"
	"github.com/joefazee/sportsbook/internal/validator"
	"github.com/joefazee/sportsbook/models"
)

const recentItems = 10

// UserFilters defines the query parameters for filtering the user list.
type UserFilters struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	Role      string `form:"role"`
	Suspended string `form:"suspended"`
}

// SanitizeAndValidate cleans and validates the filter inputs.
func (f *UserFilters) SanitizeAndValidate(v *validator.Validator, s sanitizer.HTMLStripperer) {
	f.Search = strings.TrimSpace(s.StripHTML(f.Search))

	v.Check(validator.In(models.Role(f.Role), "", models.RoleUser, models.RoleAgent, models.RoleOwner), "role", "role must be user, agent or owner")
	v.Check(validator.In(f.Suspended, "", "true", "false"), "suspended", "suspended must be true or false")
	v.Check(validator.MaxRunes(f.Search, 64), "search", "search must not exceed 64 characters")
}

// BetFilters narrows the back-office bet list.
type BetFilters struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Status  string `form:"status"`
	UserID  string `form:"user_id"`
	GameID  string `form:"game_id"`

	userID uuid.UUID
	gameID uuid.UUID
}

// Validate checks the filters and parses the ids.
func (f *BetFilters) Validate(v *validator.Validator) {
	v.Check(f.Status == "" || models.BetStatus(f.Status).IsValid(), "status", "status must be pending, won or lost")
	f.userID = parseOptionalID(v, "user_id", f.UserID)
	f.gameID = parseOptionalID(v, "game_id", f.GameID)
}

// TransactionFilters narrows the back-office ledger view.
type TransactionFilters struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Type    string `form:"type"`
	UserID  string `form:"user_id"`

	userID uuid.UUID
}

// Validate checks the filters and parses the user id.
func (f *TransactionFilters) Validate(v *validator.Validator) {
	v.Check(validator.In(models.TransactionType(f.Type), "",
		models.TransactionTypeDeposit, models.TransactionTypeWithdrawal,
		models.TransactionTypeBetPlaced, models.TransactionTypeBetWon, models.TransactionTypeBetLost),
		"type", "unknown transaction type")
	f.userID = parseOptionalID(v, "user_id", f.UserID)
}

func parseOptionalID(v *validator.Validator, key, raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	v.Check(err == nil, key, key+" must be a valid UUID")
	return id
}

func normalizePage(page, perPage *int) {
	if *page < 1 {
		*page = 1
	}
	if *perPage < 1 || *perPage > 100 {
		*perPage = 20
	}
}

// LimitInput accepts either the explicit form {"mode": "...", "amount": n}
// or the legacy number form, where null and 0 both mean unlimited.
type LimitInput struct {
	Limit models.Limit
	Set   bool
}

func (in *LimitInput) UnmarshalJSON(data []byte) error {
	in.Set = true

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		in.Limit = models.LegacyLimit(nil)
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var l models.Limit
		if err := json.Unmarshal(trimmed, &l); err != nil {
			return err
		}
		if l.Mode == "" {
			return models.ErrInvalidLimit
		}
		in.Limit = l
		return l.Validate()
	}

	var amount int64
	if err := json.Unmarshal(trimmed, &amount); err != nil {
		return models.ErrInvalidLimit
	}
	if amount < 0 {
		return models.ErrInvalidLimit
	}
	in.Limit = models.LegacyLimit(&amount)
	return nil
}

// UpdateLimitsRequest changes any subset of a user's limits.
type UpdateLimitsRequest struct {
	DailyLimit  LimitInput `json:"daily_limit"`
	WeeklyLimit LimitInput `json:"weekly_limit"`
	PerBetLimit LimitInput `json:"per_bet_limit"`
}

// Validate checks the request data.
func (r *UpdateLimitsRequest) Validate(v *validator.Validator) {
	v.Check(r.DailyLimit.Set || r.WeeklyLimit.Set || r.PerBetLimit.Set, "limits", "at least one limit is required")
}

// SuspendRequest is the request body for suspending or reinstating a user.
type SuspendRequest struct {
	Suspended *bool `json:"suspended"`
}

// Validate checks the request data.
func (r *SuspendRequest) Validate(v *validator.Validator) {
	v.Check(r.Suspended != nil, "suspended", "suspended is a required field")
}

// UpdateRoleRequest is the request body for changing a user's role.
type UpdateRoleRequest struct {
	Role models.Role `json:"role"`
}

// Validate checks the request data.
func (r *UpdateRoleRequest) Validate(v *validator.Validator) {
	v.Check(r.Role.IsValid(), "role", "role must be user, agent or owner")
}

// SetBalanceRequest overrides a wallet balance, in minor units.
type SetBalanceRequest struct {
	Balance *int64 `json:"balance"`
}

// Validate checks the request data.
func (r *SetBalanceRequest) Validate(v *validator.Validator) {
	v.Check(r.Balance != nil, "balance", "balance is required")
	v.Check(r.Balance == nil || *r.Balance >= 0, "balance", "balance cannot be negative")
}

// AdjustBalanceRequest credits (positive) or debits (negative) a wallet.
type AdjustBalanceRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// SanitizeAndValidate cleans the reason and checks the request data.
func (r *AdjustBalanceRequest) SanitizeAndValidate(v *validator.Validator, s sanitizer.HTMLStripperer) {
	r.Reason = strings.TrimSpace(s.StripHTML(r.Reason))

	v.Check(r.Amount != 0, "amount", "amount must be non-zero")
	v.Check(validator.NotBlank(r.Reason), "reason", "reason is required")
	v.Check(validator.MaxRunes(r.Reason, 255), "reason", "reason must not exceed 255 characters")
}

// UserResponse is a user row in the back office.
type UserResponse struct {
	ID             uuid.UUID    `json:"id"`
	Username       string       `json:"username"`
	Name           string       `json:"name,omitempty"`
	Role           models.Role  `json:"role"`
	Suspended      bool         `json:"suspended"`
	DailyLimit     models.Limit `json:"daily_limit"`
	WeeklyLimit    models.Limit `json:"weekly_limit"`
	PerBetLimit    models.Limit `json:"per_bet_limit"`
	Balance        int64        `json:"balance"`
	BalanceDisplay string       `json:"balance_display"`
	CreatedAt      time.Time    `json:"created_at"`
}

// UserDetailResponse is everything an agent sees on a user's page.
type UserDetailResponse struct {
	User               UserResponse                 `json:"user"`
	Wallet             *wallet.Response             `json:"wallet,omitempty"`
	RecentBets         []betting.BetResponse        `json:"recent_bets"`
	RecentTransactions []wallet.TransactionResponse `json:"recent_transactions"`
}

// BalanceResponse reports a balance override or adjustment.
type BalanceResponse struct {
	UserID         uuid.UUID                   `json:"user_id"`
	Balance        int64                       `json:"balance"`
	BalanceDisplay string                      `json:"balance_display"`
	Delta          int64                       `json:"delta"`
	Transaction    *wallet.TransactionResponse `json:"transaction,omitempty"`
}

// AdminBetResponse is a bet with its owner.
type AdminBetResponse struct {
	betting.BetResponse
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username,omitempty"`
}

// AdminTransactionResponse is a ledger row with its owner.
type AdminTransactionResponse struct {
	wallet.TransactionResponse
	UserID uuid.UUID `json:"user_id"`
}

func ToUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Role:        u.Role,
		Suspended:   u.Suspended,
		DailyLimit:  u.DailyLimit,
		WeeklyLimit: u.WeeklyLimit,
		PerBetLimit: u.PerBetLimit,
		CreatedAt:   u.CreatedAt,
	}
	if u.Wallet != nil {
		resp.Balance = u.Wallet.Balance
	}
	resp.BalanceDisplay = formatter.Money(resp.Balance)
	return resp
}

func toBalanceResponse(userID uuid.UUID, balance, delta int64, txn *models.Transaction) *BalanceResponse {
	resp := &BalanceResponse{
		UserID:         userID,
		Balance:        balance,
		BalanceDisplay: formatter.Money(balance),
		Delta:          delta,
	}
	if txn != nil {
		resp.Transaction = wallet.ToTransactionResponse(txn)
	}
	return resp
}
