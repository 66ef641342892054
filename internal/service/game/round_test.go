package game

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
	"roulette_backend/pkg/oracle"
)

type testConfig struct {
	minRoundDuration time.Duration
	minBetsClosed    time.Duration
	minStartNewRound time.Duration
	adminOnly        bool
	maxBetPercent    uint64
}

func (c testConfig) MinRoundDuration() time.Duration         { return c.minRoundDuration }
func (c testConfig) MinBetsClosedDuration() time.Duration    { return c.minBetsClosed }
func (c testConfig) MinStartNewRoundDuration() time.Duration { return c.minStartNewRound }
func (c testConfig) AdminOnly() bool                         { return c.adminOnly }
func (c testConfig) MaxBetPercent() uint64                   { return c.maxBetPercent }
func (c testConfig) CreateVaultFee() uint64                  { return 0 }
func (c testConfig) FeeMint() string                         { return "SOL" }
func (c testConfig) TreasuryUserID() int                     { return 1 }
func (c testConfig) FaucetMint() string                      { return "CHIP" }
func (c testConfig) FaucetAmount() uint64                    { return 0 }

var _ config.GameConfig = testConfig{}

type fixture struct {
	gameRepo *memory.GameRepo
	clock    *oracle.ManualClock
	recorder *event.Recorder
	serv     *serv
}

func newFixture(t *testing.T, cfg testConfig) *fixture {
	t.Helper()

	f := &fixture{
		gameRepo: memory.NewGameRepo(),
		clock:    oracle.NewManualClock(time.Unix(1_700_000_000, 0)),
		recorder: event.NewRecorder(),
	}
	f.serv = NewGameService(f.gameRepo, memory.TxManager{}, f.clock, f.recorder, cfg).(*serv)
	return f
}

// setLastBettor - эмулирует принятую ставку, которую в проде записывает
// сервис ставок
func (f *fixture) setLastBettor(t *testing.T, player int) {
	t.Helper()

	session, err := f.gameRepo.GetSession(context.Background())
	require.NoError(t, err)
	session.LastBettor = &player
	require.NoError(t, f.gameRepo.UpdateSession(context.Background(), session))
}

func TestInitializeSession(t *testing.T) {
	f := newFixture(t, testConfig{})
	ctx := context.Background()

	require.NoError(t, f.serv.InitializeSession(ctx, 42))

	session, err := f.serv.SessionState(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RoundNotStarted, session.RoundStatus)
	assert.Equal(t, uint64(0), session.CurrentRound)
	assert.Equal(t, 42, session.Authority)

	// повторная инициализация запрещена
	assert.ErrorIs(t, f.serv.InitializeSession(ctx, 42), model.ErrAlreadyInitialized)
}

func TestStartNewRound(t *testing.T) {
	f := newFixture(t, testConfig{})
	ctx := context.Background()

	require.NoError(t, f.serv.InitializeSession(ctx, 42))

	session, err := f.serv.StartNewRound(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), session.CurrentRound)
	assert.Equal(t, model.RoundAcceptingBets, session.RoundStatus)
	assert.Nil(t, session.WinningNumber)
	assert.Nil(t, session.LastBettor)

	started, ok := f.recorder.Last("round_started").(event.RoundStarted)
	require.True(t, ok)
	assert.Equal(t, uint64(1), started.Round)
	assert.Equal(t, 42, started.Starter)

	// из AcceptingBets новый раунд не стартует
	_, err = f.serv.StartNewRound(ctx, 42)
	assert.ErrorIs(t, err, model.ErrRoundInProgress)
}

func TestStartNewRound_AdminOnly(t *testing.T) {
	f := newFixture(t, testConfig{adminOnly: true})
	ctx := context.Background()

	require.NoError(t, f.serv.InitializeSession(ctx, 42))

	_, err := f.serv.StartNewRound(ctx, 7)
	assert.ErrorIs(t, err, model.ErrAdminOnly)

	_, err = f.serv.StartNewRound(ctx, 42)
	assert.NoError(t, err)
}

func TestCloseBets(t *testing.T) {
	f := newFixture(t, testConfig{minRoundDuration: time.Minute})
	ctx := context.Background()

	require.NoError(t, f.serv.InitializeSession(ctx, 42))
	_, err := f.serv.StartNewRound(ctx, 42)
	require.NoError(t, err)

	// без единой ставки раунд не закрывается
	f.clock.Advance(time.Minute)
	_, err = f.serv.CloseBets(ctx, 42)
	assert.ErrorIs(t, err, model.ErrCannotCloseBetsWithoutBets)

	f.setLastBettor(t, 7)

	session, err := f.serv.CloseBets(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, model.RoundBetsClosed, session.RoundStatus)
	assert.Equal(t, f.clock.Now().Unix(), session.BetsClosedTime)
}

func TestCloseBets_TooEarly(t *testing.T) {
	f := newFixture(t, testConfig{minRoundDuration: time.Minute})
	ctx := context.Background()

	require.NoError(t, f.serv.InitializeSession(ctx, 42))
	_, err := f.serv.StartNewRound(ctx, 42)
	require.NoError(t, err)
	f.setLastBettor(t, 7)

	f.clock.Advance(59 * time.Second)
	_, err = f.serv.CloseBets(ctx, 42)
	assert.ErrorIs(t, err, model.ErrTooEarlyToClose)

	f.clock.Advance(time.Second)
	_, err = f.serv.CloseBets(ctx, 42)
	assert.NoError(t, err)
}

func TestGetRandom(t *testing.T) {
	f := newFixture(t, testConfig{minBetsClosed: 5 * time.Second})
	ctx := context.Background()

	require.NoError(t, f.serv.InitializeSession(ctx, 42))
	_, err := f.serv.StartNewRound(ctx, 42)
	require.NoError(t, err)
	f.setLastBettor(t, 7)
	_, err = f.serv.CloseBets(ctx, 42)
	require.NoError(t, err)

	// пауза после закрытия ставок обязательна
	_, err = f.serv.GetRandom(ctx, 42)
	assert.ErrorIs(t, err, model.ErrTooEarlyToGetRandom)

	f.clock.Advance(5 * time.Second)
	session, err := f.serv.GetRandom(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, model.RoundCompleted, session.RoundStatus)
	require.NotNil(t, session.WinningNumber)
	assert.Less(t, *session.WinningNumber, uint8(37))
	assert.Equal(t, session.CurrentRound, session.LastCompletedRound)

	generated, ok := f.recorder.Last("random_generated").(event.RandomGenerated)
	require.True(t, ok)
	assert.Equal(t, *session.WinningNumber, generated.WinningNumber)
	assert.Equal(t, 7, generated.LastBettor)
	assert.NotZero(t, generated.HashPrefix)
	assert.Equal(t, uint8(generated.HashPrefix%37), generated.WinningNumber)

	// повторный розыгрыш того же раунда невозможен
	_, err = f.serv.GetRandom(ctx, 42)
	assert.ErrorIs(t, err, model.ErrRandomBeforeClosing)
}

// Число детерминировано входами: тот же беттор, время и слот дают то же число
func TestWinningNumber_Deterministic(t *testing.T) {
	digest1, prefix1, n1 := winningNumber(7, 1_700_000_000, 123)
	digest2, prefix2, n2 := winningNumber(7, 1_700_000_000, 123)
	assert.Equal(t, digest1, digest2)
	assert.Equal(t, prefix1, prefix2)
	assert.Equal(t, n1, n2)

	// смена любого входа меняет дайджест
	otherDigest, _, _ := winningNumber(8, 1_700_000_000, 123)
	assert.NotEqual(t, digest1, otherDigest)
}

func TestRoundLifecycle_ForwardOnly(t *testing.T) {
	f := newFixture(t, testConfig{minStartNewRound: 15 * time.Second})
	ctx := context.Background()

	require.NoError(t, f.serv.InitializeSession(ctx, 42))
	_, err := f.serv.StartNewRound(ctx, 42)
	require.NoError(t, err)
	f.setLastBettor(t, 7)
	_, err = f.serv.CloseBets(ctx, 42)
	require.NoError(t, err)

	// из BetsClosed закрыть повторно нельзя
	_, err = f.serv.CloseBets(ctx, 42)
	assert.ErrorIs(t, err, model.ErrBetsNotAccepted)

	_, err = f.serv.GetRandom(ctx, 42)
	require.NoError(t, err)

	// из Completed ни закрытие, ни розыгрыш не проходят
	_, err = f.serv.CloseBets(ctx, 42)
	assert.ErrorIs(t, err, model.ErrBetsNotAccepted)
	_, err = f.serv.GetRandom(ctx, 42)
	assert.ErrorIs(t, err, model.ErrRandomBeforeClosing)

	// новый раунд только после паузы
	_, err = f.serv.StartNewRound(ctx, 42)
	assert.ErrorIs(t, err, model.ErrTooEarlyToStartNewRound)

	f.clock.Advance(15 * time.Second)
	session, err := f.serv.StartNewRound(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), session.CurrentRound)
}
