package service

import (
	"context"

	"roulette_backend/internal/model"
)

// GameService - жизненный цикл раундов
type GameService interface {
	InitializeSession(ctx context.Context, authority int) error
	StartNewRound(ctx context.Context, starter int) (*model.GameSession, error)
	CloseBets(ctx context.Context, closer int) (*model.GameSession, error)
	GetRandom(ctx context.Context, initiator int) (*model.GameSession, error)
	SessionState(ctx context.Context) (*model.GameSession, error)
}

// VaultService - пул ликвидности и учет наград
type VaultService interface {
	CreateVault(ctx context.Context, provider int, mint string, amount uint64) (*model.Vault, error)
	ProvideLiquidity(ctx context.Context, provider int, mint string, amount uint64) error
	WithdrawLiquidity(ctx context.Context, provider int, mint string) (uint64, error)
	WithdrawProviderRevenue(ctx context.Context, provider int, mint string) (uint64, error)
	WithdrawOwnerRevenue(ctx context.Context, authority int, mint string) (uint64, error)
	DistributePayoutReserve(ctx context.Context, authority int, mint string) (uint64, error)
	VaultState(ctx context.Context, mint string) (*model.Vault, error)
	UnclaimedRewards(ctx context.Context, provider int, mint string) (uint64, error)
}

// BetService - прием ставок и выплата выигрышей
type BetService interface {
	PlaceBet(ctx context.Context, player int, mint string, bet model.Bet) error
	ClaimWinnings(ctx context.Context, player int, roundToClaim uint64) (uint64, error)
	MyBets(ctx context.Context, player int) (*model.PlayerBets, error)
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
