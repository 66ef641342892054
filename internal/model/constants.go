package model

import "math/big"

const (
	// MaxBetsPerRound - максимум ставок одного игрока за раунд
	MaxBetsPerRound = 8

	// ProviderDivisor - делитель для расчета дохода провайдеров ликвидности (~1.4% от ставки)
	ProviderDivisor uint64 = 71
	// OwnerDivisor - делитель для расчета дохода владельца (~0.8% от ставки)
	OwnerDivisor uint64 = 125

	// MaxBetPercentDivisor - делитель процента максимальной ставки
	MaxBetPercentDivisor uint64 = 100

	// BetTypeMax - максимальный допустимый код типа ставки
	BetTypeMax uint8 = 15

	// WheelNumbers - количество секторов колеса (0-36, европейская рулетка)
	WheelNumbers uint8 = 37
)

// RewardPrecision - точность fixed-point индекса наград провайдеров (10^12)
var RewardPrecision = big.NewInt(1_000_000_000_000)
