package model

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVault_MaxBetAmount(t *testing.T) {
	v := &Vault{TotalLiquidity: 1000}

	assert.Equal(t, uint64(40), v.MaxBetAmount(4))
	assert.Equal(t, uint64(110), v.MaxBetAmount(11))

	// пустое хранилище - ставки запрещены
	empty := &Vault{}
	assert.Equal(t, uint64(0), empty.MaxBetAmount(11))
}

func TestVault_AccrueProviderRevenue(t *testing.T) {
	v := NewVault("CHIP", "acc-1")
	v.TotalProviderCapital = 10_000

	// floor(100 * 1e12 / 10000) = 1e10
	v.AccrueProviderRevenue(100)
	assert.Equal(t, big.NewInt(10_000_000_000), v.RewardPerShareIndex)

	// индекс монотонно растет
	v.AccrueProviderRevenue(100)
	assert.Equal(t, big.NewInt(20_000_000_000), v.RewardPerShareIndex)
}

func TestVault_AccrueProviderRevenue_NoCapital(t *testing.T) {
	v := NewVault("CHIP", "acc-1")

	// при нулевом капитале доход теряется, индекс не меняется
	v.AccrueProviderRevenue(500)
	assert.Equal(t, big.NewInt(0), v.RewardPerShareIndex)
}

func TestVault_PayoutReserve(t *testing.T) {
	v := &Vault{TotalLiquidity: 1200, TotalProviderCapital: 1000}

	reserve, err := v.PayoutReserve()
	require.NoError(t, err)
	assert.Equal(t, uint64(200), reserve)

	// нарушенный инвариант - ошибка, а не паника
	broken := &Vault{TotalLiquidity: 10, TotalProviderCapital: 20}
	_, err = broken.PayoutReserve()
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestProviderState_NewlyEarnedRewards(t *testing.T) {
	p := &ProviderState{
		Amount:           10_000,
		LastClaimedIndex: big.NewInt(0),
	}

	// floor(1e10 * 10000 / 1e12) = 100
	earned, err := p.NewlyEarnedRewards(big.NewInt(10_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, uint64(100), earned)

	// нулевой принципал ничего не зарабатывает
	idle := &ProviderState{LastClaimedIndex: big.NewInt(0)}
	earned, err = idle.NewlyEarnedRewards(big.NewInt(10_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), earned)
}

func TestProviderState_Settle(t *testing.T) {
	p := &ProviderState{
		Amount:           10_000,
		LastClaimedIndex: big.NewInt(0),
	}

	idx := big.NewInt(10_000_000_000)
	require.NoError(t, p.Settle(idx))
	assert.Equal(t, uint64(100), p.UnclaimedRewards)
	assert.Equal(t, idx, p.LastClaimedIndex)

	// повторный расчет по тому же индексу ничего не добавляет
	require.NoError(t, p.Settle(idx))
	assert.Equal(t, uint64(100), p.UnclaimedRewards)
}

// Независимость от порядка: N начислений и промежуточные расчеты дают ту же
// итоговую награду, что и один расчет в конце.
func TestProviderState_SettlementOrderIndependence(t *testing.T) {
	const capital = 10_000

	run := func(settleEvery int) uint64 {
		v := NewVault("CHIP", "acc-1")
		v.TotalProviderCapital = capital
		p := &ProviderState{Amount: capital, LastClaimedIndex: big.NewInt(0)}

		for i := 1; i <= 10; i++ {
			v.AccrueProviderRevenue(137)
			if settleEvery > 0 && i%settleEvery == 0 {
				require.NoError(t, p.Settle(v.RewardPerShareIndex))
			}
		}
		require.NoError(t, p.Settle(v.RewardPerShareIndex))
		return p.UnclaimedRewards
	}

	settledOnce := run(0)
	assert.Equal(t, settledOnce, run(1))
	assert.Equal(t, settledOnce, run(3))
}
