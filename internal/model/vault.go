package model

import (
	"math/big"

	"roulette_backend/pkg/safemath"
)

// Vault - пул ликвидности одного токена.
// Инвариант: TotalLiquidity >= TotalProviderCapital; разница - резерв выплат
// плюс еще не выплаченные награды.
type Vault struct {
	Mint                 string
	TokenAccountID       string
	TotalLiquidity       uint64
	TotalProviderCapital uint64
	OwnerReward          uint64
	// RewardPerShareIndex - монотонно неубывающий fixed-point индекс
	// (точность RewardPrecision). 128-битное значение, поэтому big.Int.
	RewardPerShareIndex *big.Int
}

// ProviderState - учет одного провайдера ликвидности в хранилище.
type ProviderState struct {
	Mint             string
	Provider         int
	Amount           uint64
	UnclaimedRewards uint64
	// LastClaimedIndex - значение индекса на момент последнего расчета наград
	LastClaimedIndex *big.Int
}

// NewVault - пустое хранилище с нулевым индексом
func NewVault(mint, tokenAccountID string) *Vault {
	return &Vault{
		Mint:                mint,
		TokenAccountID:      tokenAccountID,
		RewardPerShareIndex: big.NewInt(0),
	}
}

// MaxBetAmount - максимальная ставка: floor(TotalLiquidity * percent / 100).
// Ограничивает риск хранилища на одну ставку.
func (v *Vault) MaxBetAmount(percent uint64) uint64 {
	maxBet, ok := safemath.MulDiv(v.TotalLiquidity, percent, MaxBetPercentDivisor)
	if !ok {
		return 0
	}
	return maxBet
}

// AccrueProviderRevenue - увеличивает индекс наград на
// floor(revenue * RewardPrecision / TotalProviderCapital).
// При нулевом капитале провайдеров индекс не меняется: доход теряется,
// это явная политика для пустого пула, а не ошибка.
func (v *Vault) AccrueProviderRevenue(revenue uint64) {
	if v.TotalProviderCapital == 0 || revenue == 0 {
		return
	}

	inc := new(big.Int).SetUint64(revenue)
	inc.Mul(inc, RewardPrecision)
	inc.Quo(inc, new(big.Int).SetUint64(v.TotalProviderCapital))

	v.RewardPerShareIndex = new(big.Int).Add(v.RewardPerShareIndex, inc)
}

// PayoutReserve - накопленный излишек сверх капитала провайдеров
func (v *Vault) PayoutReserve() (uint64, error) {
	reserve, ok := safemath.Sub(v.TotalLiquidity, v.TotalProviderCapital)
	if !ok {
		// нарушение инварианта TotalLiquidity >= TotalProviderCapital
		return 0, ErrArithmeticOverflow
	}
	return reserve, nil
}

// NewlyEarnedRewards - награда провайдера, накопленная с последнего расчета:
// floor((currentIndex - LastClaimedIndex) * Amount / RewardPrecision).
func (p *ProviderState) NewlyEarnedRewards(currentIndex *big.Int) (uint64, error) {
	if p.Amount == 0 || p.LastClaimedIndex.Cmp(currentIndex) >= 0 {
		return 0, nil
	}

	delta := new(big.Int).Sub(currentIndex, p.LastClaimedIndex)
	delta.Mul(delta, new(big.Int).SetUint64(p.Amount))
	delta.Quo(delta, RewardPrecision)

	if !delta.IsUint64() {
		return 0, ErrArithmeticOverflow
	}
	return delta.Uint64(), nil
}

// Settle - переносит накопленную награду в UnclaimedRewards
// и двигает чекпоинт на текущий индекс. Вызывается строго до изменения Amount,
// иначе расчет дельты будет искажен.
func (p *ProviderState) Settle(currentIndex *big.Int) error {
	earned, err := p.NewlyEarnedRewards(currentIndex)
	if err != nil {
		return err
	}

	unclaimed, ok := safemath.Add(p.UnclaimedRewards, earned)
	if !ok {
		return ErrArithmeticOverflow
	}

	p.UnclaimedRewards = unclaimed
	p.LastClaimedIndex = new(big.Int).Set(currentIndex)
	return nil
}
