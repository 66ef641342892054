package bet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette_backend/internal/config"
	"roulette_backend/internal/event"
	"roulette_backend/internal/model"
	"roulette_backend/internal/repository/memory"
	"roulette_backend/internal/service"
	"roulette_backend/internal/service/game"
	"roulette_backend/internal/service/vault"
	"roulette_backend/pkg/oracle"
)

const (
	admin    = 1
	provider = 2
	player   = 3
)

type testConfig struct {
	maxBetPercent uint64
}

func (c testConfig) MinRoundDuration() time.Duration         { return 0 }
func (c testConfig) MinBetsClosedDuration() time.Duration    { return 0 }
func (c testConfig) MinStartNewRoundDuration() time.Duration { return 0 }
func (c testConfig) AdminOnly() bool                         { return false }
func (c testConfig) MaxBetPercent() uint64                   { return c.maxBetPercent }
func (c testConfig) CreateVaultFee() uint64                  { return 0 }
func (c testConfig) FeeMint() string                         { return "SOL" }
func (c testConfig) TreasuryUserID() int                     { return admin }
func (c testConfig) FaucetMint() string                      { return "CHIP" }
func (c testConfig) FaucetAmount() uint64                    { return 0 }

var _ config.GameConfig = testConfig{}

// fixture - полный игровой стенд: сервисы раундов, хранилищ и ставок
// поверх общих репозиториев в памяти
type fixture struct {
	gameRepo     *memory.GameRepo
	vaultRepo    *memory.VaultRepo
	providerRepo *memory.ProviderRepo
	betsRepo     *memory.PlayerBetsRepo
	tokenRepo    *memory.TokenRepo
	clock        *oracle.ManualClock
	recorder     *event.Recorder

	gameServ  service.GameService
	vaultServ service.VaultService
	betServ   service.BetService
}

func newFixture(t *testing.T, cfg testConfig) *fixture {
	t.Helper()

	f := &fixture{
		gameRepo:     memory.NewGameRepo(),
		vaultRepo:    memory.NewVaultRepo(),
		providerRepo: memory.NewProviderRepo(),
		betsRepo:     memory.NewPlayerBetsRepo(),
		tokenRepo:    memory.NewTokenRepo(),
		clock:        oracle.NewManualClock(time.Unix(1_700_000_000, 0)),
		recorder:     event.NewRecorder(),
	}
	tx := memory.TxManager{}

	f.gameServ = game.NewGameService(f.gameRepo, tx, f.clock, f.recorder, cfg)
	f.vaultServ = vault.NewVaultService(
		f.vaultRepo, f.providerRepo, f.gameRepo, f.tokenRepo, tx, f.clock, f.recorder, cfg)
	f.betServ = NewBetService(
		f.gameRepo, f.vaultRepo, f.betsRepo, f.tokenRepo, tx, f.clock, f.recorder, cfg)

	return f
}

func (f *fixture) fund(t *testing.T, userID int, mint string, amount uint64) {
	t.Helper()

	acc, err := f.tokenRepo.GetOrCreateAccount(context.Background(), userID, mint)
	require.NoError(t, err)
	require.NoError(t, f.tokenRepo.Deposit(context.Background(), acc.ID, amount))
}

func (f *fixture) balance(t *testing.T, userID int, mint string) uint64 {
	t.Helper()

	acc, err := f.tokenRepo.GetOrCreateAccount(context.Background(), userID, mint)
	require.NoError(t, err)
	return f.tokenRepo.Balance(acc.ID)
}

// startGame - сессия, хранилище CHIP с указанной ликвидностью, открытый раунд
func (f *fixture) startGame(t *testing.T, liquidity uint64) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.gameServ.InitializeSession(ctx, admin))

	f.fund(t, provider, "CHIP", liquidity)
	_, err := f.vaultServ.CreateVault(ctx, provider, "CHIP", liquidity)
	require.NoError(t, err)

	_, err = f.gameServ.StartNewRound(ctx, admin)
	require.NoError(t, err)
}

// drawRound - закрывает ставки и разыгрывает число
func (f *fixture) drawRound(t *testing.T) uint8 {
	t.Helper()
	ctx := context.Background()

	_, err := f.gameServ.CloseBets(ctx, admin)
	require.NoError(t, err)
	session, err := f.gameServ.GetRandom(ctx, admin)
	require.NoError(t, err)
	require.NotNil(t, session.WinningNumber)
	return *session.WinningNumber
}

func straight(amount uint64, number uint8) model.Bet {
	return model.Bet{Amount: amount, BetType: model.BetStraight, Numbers: [4]uint8{number}}
}

func TestPlaceBet_PhaseGate(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	require.NoError(t, f.gameServ.InitializeSession(ctx, admin))
	f.fund(t, provider, "CHIP", 10_000)
	_, err := f.vaultServ.CreateVault(ctx, provider, "CHIP", 10_000)
	require.NoError(t, err)

	f.fund(t, player, "CHIP", 1_000)

	// раунд не открыт
	err = f.betServ.PlaceBet(ctx, player, "CHIP", straight(100, 7))
	assert.ErrorIs(t, err, model.ErrBetsNotAccepted)
}

func TestPlaceBet_MaxBetBoundary(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 4})
	ctx := context.Background()

	f.startGame(t, 1_000)
	f.fund(t, player, "CHIP", 1_000)

	// floor(1000 * 4 / 100) = 40: ровно на границе проходит
	err := f.betServ.PlaceBet(ctx, player, "CHIP", straight(41, 7))
	assert.ErrorIs(t, err, model.ErrBetAmountExceedsLimit)

	require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(40, 7)))
}

func TestPlaceBet_Validation(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 10_000)
	f.fund(t, player, "CHIP", 1_000)

	err := f.betServ.PlaceBet(ctx, player, "CHIP", straight(0, 7))
	assert.ErrorIs(t, err, model.ErrInvalidBet)

	err = f.betServ.PlaceBet(ctx, player, "CHIP", model.Bet{Amount: 10, BetType: 16})
	assert.ErrorIs(t, err, model.ErrInvalidBet)
}

func TestPlaceBet_InsufficientFunds(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 10_000)
	f.fund(t, player, "CHIP", 50)

	err := f.betServ.PlaceBet(ctx, player, "CHIP", straight(100, 7))
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)
}

func TestPlaceBet_HouseEdge(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 10_000)
	f.fund(t, player, "CHIP", 1_000)

	require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(1_000, 7)))

	v, err := f.vaultServ.VaultState(ctx, "CHIP")
	require.NoError(t, err)

	// ставка целиком ушла в ликвидность
	assert.Equal(t, uint64(11_000), v.TotalLiquidity)
	// доход владельца: 1000 / 125 = 8
	assert.Equal(t, uint64(8), v.OwnerReward)

	// доход провайдеров: 1000 / 71 = 14, доступен после расчета
	rewards, err := f.vaultServ.UnclaimedRewards(ctx, provider, "CHIP")
	require.NoError(t, err)
	assert.Equal(t, uint64(14), rewards)

	// последний беттор записан в сессию
	session, err := f.gameServ.SessionState(ctx)
	require.NoError(t, err)
	require.NotNil(t, session.LastBettor)
	assert.Equal(t, player, *session.LastBettor)
}

func TestPlaceBet_MaxBetsPerRound(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 10_000)
	f.fund(t, player, "CHIP", 1_000)

	for i := 0; i < model.MaxBetsPerRound; i++ {
		require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(10, uint8(i))))
	}

	err := f.betServ.PlaceBet(ctx, player, "CHIP", straight(10, 9))
	assert.ErrorIs(t, err, model.ErrInvalidNumberOfBets)
}

func TestPlaceBet_VaultMismatch(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 10_000)

	f.fund(t, provider, "GOLD", 10_000)
	_, err := f.vaultServ.CreateVault(ctx, provider, "GOLD", 10_000)
	require.NoError(t, err)

	f.fund(t, player, "CHIP", 1_000)
	f.fund(t, player, "GOLD", 1_000)

	require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(100, 7)))

	// смена хранилища внутри раунда запрещена
	err = f.betServ.PlaceBet(ctx, player, "GOLD", straight(100, 7))
	assert.ErrorIs(t, err, model.ErrVaultMismatch)
}

// Первая ставка нового раунда очищает список и позволяет сменить хранилище
func TestPlaceBet_RoundRebind(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 10_000)

	f.fund(t, provider, "GOLD", 10_000)
	_, err := f.vaultServ.CreateVault(ctx, provider, "GOLD", 10_000)
	require.NoError(t, err)

	f.fund(t, player, "CHIP", 1_000)
	f.fund(t, player, "GOLD", 1_000)

	require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(100, 7)))
	f.drawRound(t)

	_, err = f.gameServ.StartNewRound(ctx, admin)
	require.NoError(t, err)

	require.NoError(t, f.betServ.PlaceBet(ctx, player, "GOLD", straight(50, 12)))

	playerBets, err := f.betServ.MyBets(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, "GOLD", playerBets.Mint)
	assert.Len(t, playerBets.Bets, 1)
	assert.Equal(t, uint64(50), playerBets.Bets[0].Amount)
}

// Выигрышное число зависит только от последнего беттора, времени и слота.
// Пробный раунд показывает, какое число выпадет, перевод часов назад
// воспроизводит тот же розыгрыш в следующем раунде.
func (f *fixture) probeWinningNumber(t *testing.T) uint8 {
	t.Helper()
	ctx := context.Background()

	probeTime, probeSlot := f.clock.Time, f.clock.Cur

	require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(1, 0)))
	winning := f.drawRound(t)

	_, err := f.gameServ.StartNewRound(ctx, admin)
	require.NoError(t, err)

	f.clock.Time, f.clock.Cur = probeTime, probeSlot
	return winning
}

func TestClaimWinnings_WinningBet(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 10_000)
	f.fund(t, player, "CHIP", 1_000)

	winning := f.probeWinningNumber(t)

	// ставим на число, которое гарантированно выпадет
	require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(100, winning)))
	require.Equal(t, winning, f.drawRound(t))

	session, err := f.gameServ.SessionState(ctx)
	require.NoError(t, err)

	payout, err := f.betServ.ClaimWinnings(ctx, player, session.LastCompletedRound)
	require.NoError(t, err)
	assert.Equal(t, uint64(3_600), payout)

	claimed, ok := f.recorder.Last("winnings_claimed").(event.WinningsClaimed)
	require.True(t, ok)
	assert.Equal(t, uint64(3_600), claimed.Amount)
	assert.False(t, claimed.Capped)

	// повторная заявка отклоняется
	_, err = f.betServ.ClaimWinnings(ctx, player, session.LastCompletedRound)
	assert.ErrorIs(t, err, model.ErrAlreadyClaimed)
}

func TestClaimWinnings_NoWinnings(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 10_000)
	f.fund(t, player, "CHIP", 1_000)

	winning := f.probeWinningNumber(t)

	// ставим на заведомо проигрышное число
	losing := (winning + 1) % model.WheelNumbers
	require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(100, losing)))
	require.Equal(t, winning, f.drawRound(t))

	session, err := f.gameServ.SessionState(ctx)
	require.NoError(t, err)

	balanceBefore := f.balance(t, player, "CHIP")

	_, err = f.betServ.ClaimWinnings(ctx, player, session.LastCompletedRound)
	assert.ErrorIs(t, err, model.ErrNoWinningsFound)
	assert.Equal(t, balanceBefore, f.balance(t, player, "CHIP"))

	// пустая заявка тоже расходует право
	_, err = f.betServ.ClaimWinnings(ctx, player, session.LastCompletedRound)
	assert.ErrorIs(t, err, model.ErrAlreadyClaimed)
}

func TestClaimWinnings_RoundChecks(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 10_000)
	f.fund(t, player, "CHIP", 1_000)

	// до первого розыгрыша заявлять нечего
	_, err := f.betServ.ClaimWinnings(ctx, player, 1)
	assert.ErrorIs(t, err, model.ErrClaimRoundMismatchOrNotCompleted)

	require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(100, 7)))
	f.drawRound(t)

	// чужой раунд
	_, err = f.betServ.ClaimWinnings(ctx, player, 2)
	assert.ErrorIs(t, err, model.ErrClaimRoundMismatchOrNotCompleted)

	// игрок без ставок в заявленном раунде
	f.fund(t, 99, "CHIP", 1)
	_, err = f.betServ.ClaimWinnings(ctx, 99, 1)
	assert.ErrorIs(t, err, model.ErrBetsRoundMismatch)
}

// Выплата срезается до остатка ликвидности хранилища
func TestClaimWinnings_CappedByLiquidity(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 1_000)
	f.fund(t, player, "CHIP", 1_000)

	winning := f.probeWinningNumber(t)

	// ставка 110 на выигрышное число: причитается 3960 при ликвидности 1111
	require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(110, winning)))
	require.Equal(t, winning, f.drawRound(t))

	session, err := f.gameServ.SessionState(ctx)
	require.NoError(t, err)

	v, err := f.vaultServ.VaultState(ctx, "CHIP")
	require.NoError(t, err)
	available := v.TotalLiquidity

	payout, err := f.betServ.ClaimWinnings(ctx, player, session.LastCompletedRound)
	require.NoError(t, err)
	assert.Equal(t, available, payout)
	assert.Less(t, payout, uint64(110*36))

	claimed, ok := f.recorder.Last("winnings_claimed").(event.WinningsClaimed)
	require.True(t, ok)
	assert.True(t, claimed.Capped)
	assert.Equal(t, uint64(110*36), claimed.TotalPayout)

	v, err = f.vaultServ.VaultState(ctx, "CHIP")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v.TotalLiquidity)
}

// Сценарий из конца в конец: пул 10000, ставка 100 на число
func TestEndToEndRound(t *testing.T) {
	f := newFixture(t, testConfig{maxBetPercent: 11})
	ctx := context.Background()

	f.startGame(t, 10_000)
	f.fund(t, player, "CHIP", 100)

	require.NoError(t, f.betServ.PlaceBet(ctx, player, "CHIP", straight(100, 7)))
	winning := f.drawRound(t)

	session, err := f.gameServ.SessionState(ctx)
	require.NoError(t, err)

	payout, err := f.betServ.ClaimWinnings(ctx, player, session.LastCompletedRound)
	if winning == 7 {
		require.NoError(t, err)
		assert.Equal(t, uint64(3_600), payout)
		assert.Equal(t, uint64(3_600), f.balance(t, player, "CHIP"))
	} else {
		assert.ErrorIs(t, err, model.ErrNoWinningsFound)
		assert.Equal(t, uint64(0), f.balance(t, player, "CHIP"))
	}

	// капитал провайдеров не затронут выплатой
	v, err := f.vaultServ.VaultState(ctx, "CHIP")
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), v.TotalProviderCapital)
	assert.GreaterOrEqual(t, v.TotalLiquidity+3_600, uint64(10_000))
}
