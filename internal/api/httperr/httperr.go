// Package httperr - соответствие доменных ошибок HTTP-статусам.
package httperr

import (
	"errors"
	"net/http"

	"roulette_backend/internal/model"
)

// Status - HTTP-статус для доменной ошибки. Неизвестные ошибки
// считаются внутренними.
func Status(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthorized),
		errors.Is(err, model.ErrAdminOnly):
		return http.StatusForbidden

	case errors.Is(err, model.ErrSessionNotFound),
		errors.Is(err, model.ErrVaultNotFound),
		errors.Is(err, model.ErrProviderNotFound),
		errors.Is(err, model.ErrTokenAccountNotFound),
		errors.Is(err, model.ErrNoWinningsFound):
		return http.StatusNotFound

	case errors.Is(err, model.ErrAlreadyInitialized),
		errors.Is(err, model.ErrVaultAlreadyExists),
		errors.Is(err, model.ErrAlreadyClaimed),
		errors.Is(err, model.ErrRoundInProgress):
		return http.StatusConflict

	case errors.Is(err, model.ErrInvalidBet),
		errors.Is(err, model.ErrBetAmountExceedsLimit),
		errors.Is(err, model.ErrInvalidNumberOfBets),
		errors.Is(err, model.ErrVaultMismatch),
		errors.Is(err, model.ErrAmountMustBeGreaterThanZero),
		errors.Is(err, model.ErrBetsRoundMismatch),
		errors.Is(err, model.ErrClaimRoundMismatchOrNotCompleted):
		return http.StatusBadRequest

	case errors.Is(err, model.ErrBetsNotAccepted),
		errors.Is(err, model.ErrCannotCloseBetsWithoutBets),
		errors.Is(err, model.ErrRandomBeforeClosing),
		errors.Is(err, model.ErrNoBetsPlacedInRound),
		errors.Is(err, model.ErrTooEarlyToClose),
		errors.Is(err, model.ErrTooEarlyToGetRandom),
		errors.Is(err, model.ErrTooEarlyToStartNewRound):
		return http.StatusUnprocessableEntity

	case errors.Is(err, model.ErrInsufficientFunds),
		errors.Is(err, model.ErrInsufficientLiquidity),
		errors.Is(err, model.ErrNoReward):
		return http.StatusPaymentRequired

	default:
		return http.StatusInternalServerError
	}
}
