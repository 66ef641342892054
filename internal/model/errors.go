package model

import "errors"

// Ошибки доменной логики. Сервисы возвращают их как есть,
// API-слой конвертирует в HTTP-статусы.
var (
	ErrArithmeticOverflow = errors.New("arithmetic overflow during calculation")

	ErrUnauthorized = errors.New("signer does not have the required permissions")
	ErrAdminOnly    = errors.New("only the game authority can perform this operation")

	ErrAlreadyInitialized = errors.New("game session is already initialized")
	ErrSessionNotFound    = errors.New("game session not found or not initialized")

	ErrRoundInProgress            = errors.New("cannot start a new round while one is in progress")
	ErrBetsNotAccepted            = errors.New("round is not in the accepting-bets status")
	ErrCannotCloseBetsWithoutBets = errors.New("cannot close bets if no bets were placed in the round")
	ErrRandomBeforeClosing        = errors.New("cannot draw the winning number before bets are closed")
	ErrNoBetsPlacedInRound        = errors.New("no bets were placed in this round")
	ErrTooEarlyToClose            = errors.New("minimum round duration has not elapsed yet")
	ErrTooEarlyToGetRandom        = errors.New("minimum settle delay after closing has not elapsed yet")
	ErrTooEarlyToStartNewRound    = errors.New("minimum pause between rounds has not elapsed yet")

	ErrInvalidBet            = errors.New("invalid bet type, amount or numbers")
	ErrBetAmountExceedsLimit = errors.New("bet amount exceeds the maximum limit")
	ErrInvalidNumberOfBets   = errors.New("maximum number of bets per round reached")
	ErrVaultMismatch         = errors.New("vault does not match the one recorded for this round")

	ErrVaultNotFound      = errors.New("vault not found")
	ErrVaultAlreadyExists = errors.New("vault for this mint already exists")
	ErrProviderNotFound   = errors.New("provider state not found")

	ErrAmountMustBeGreaterThanZero = errors.New("amount must be greater than zero")
	ErrInsufficientFunds           = errors.New("insufficient funds in the source token account")
	ErrInsufficientLiquidity       = errors.New("insufficient vault liquidity to cover the operation")
	ErrNoReward                    = errors.New("no reward available for withdrawal")

	ErrClaimRoundMismatchOrNotCompleted = errors.New("round is not claimable: not the last completed round")
	ErrBetsRoundMismatch                = errors.New("player bets belong to a different round")
	ErrAlreadyClaimed                   = errors.New("winnings for this round were already claimed")
	ErrNoWinningsFound                  = errors.New("no winnings found for the player in this round")

	ErrTokenAccountNotFound = errors.New("token account not found")
)
