package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/models"
)

// Detailer is implemented by errors that carry extra data for the client,
// such as a remaining limit allowance.
type Detailer interface {
	Details() interface{}
}

type errorKind struct {
	target error
	status int
	code   string
}

var errorKinds = []errorKind{
	{models.ErrRecordNotFound, http.StatusNotFound, "NOT_FOUND"},
	{models.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{models.ErrInvalidStake, http.StatusUnprocessableEntity, "INVALID_STAKE"},
	{models.ErrInvalidTransactionAmount, http.StatusUnprocessableEntity, "INVALID_STAKE"},
	{models.ErrInsufficientBalance, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"},
	{models.ErrGameNotBettable, http.StatusConflict, "GAME_NOT_BETTABLE"},
	{models.ErrAlreadySettled, http.StatusConflict, "ALREADY_SETTLED"},
	{models.ErrInvalidLimit, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidParlayLegs, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidBetSelection, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidRole, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidOdds, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidGameTeams, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidGameStatus, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidScheduleAt, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrNegativeBalance, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidBetStatus, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidSportID, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidGameID, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidWinner, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidScore, http.StatusBadRequest, "VALIDATION_ERROR"},
	{models.ErrInvalidUsername, http.StatusBadRequest, "VALIDATION_ERROR"},
}

// HandleError writes the response for a service error. Known error kinds
// keep their message; anything else becomes a generic internal error.
func HandleError(c *gin.Context, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			var details interface{}
			var d Detailer
			if errors.As(err, &d) {
				details = d.Details()
			}
			ErrorResponse(c, k.status, k.code, err.Error(), details)
			return
		}
	}
	_ = c.Error(err)
	InternalErrorResponse(c, "Something went wrong, please try again")
}
