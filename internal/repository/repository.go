package repository

import (
	"context"

	"roulette_backend/internal/model"
)

// GameRepository - единственная запись игровой сессии.
// Методы *ForUpdate берут блокировку строки до конца транзакции:
// так эмулируется эксклюзивный доступ к аккаунту на время операции.
type GameRepository interface {
	CreateSession(ctx context.Context, s *model.GameSession) error
	GetSession(ctx context.Context) (*model.GameSession, error)
	GetSessionForUpdate(ctx context.Context) (*model.GameSession, error)
	UpdateSession(ctx context.Context, s *model.GameSession) error
}

type VaultRepository interface {
	Create(ctx context.Context, v *model.Vault) error
	Get(ctx context.Context, mint string) (*model.Vault, error)
	GetForUpdate(ctx context.Context, mint string) (*model.Vault, error)
	Update(ctx context.Context, v *model.Vault) error
}

type ProviderRepository interface {
	Get(ctx context.Context, mint string, provider int) (*model.ProviderState, error)
	GetForUpdate(ctx context.Context, mint string, provider int) (*model.ProviderState, error)
	Upsert(ctx context.Context, p *model.ProviderState) error
	Delete(ctx context.Context, mint string, provider int) error
}

type PlayerBetsRepository interface {
	Get(ctx context.Context, player int) (*model.PlayerBets, error)
	GetForUpdate(ctx context.Context, player int) (*model.PlayerBets, error)
	Upsert(ctx context.Context, pb *model.PlayerBets) error
}

// TokenRepository - счета хранения токенов и атомарные переводы между ними.
// Transfer либо выполняется целиком, либо падает с ErrInsufficientFunds,
// откатывая объемлющую транзакцию.
type TokenRepository interface {
	GetOrCreateAccount(ctx context.Context, ownerID int, mint string) (*model.TokenAccount, error)
	CreateVaultAccount(ctx context.Context, mint string) (*model.TokenAccount, error)
	GetAccount(ctx context.Context, id string) (*model.TokenAccount, error)
	Transfer(ctx context.Context, fromID, toID string, amount uint64) error
	Deposit(ctx context.Context, accountID string, amount uint64) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}
