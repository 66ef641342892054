// Package memory - реализации репозиториев в памяти.
// Используются в тестах сервисов вместо Postgres; семантика повторяет
// pg-реализации (клонирование моделей, те же доменные ошибки).
package memory

import (
	"context"
	"math/big"
	"strconv"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"
)

// TxManager - тривиальный trm.Manager: просто вызывает fn.
// Сериализацию в тестах обеспечивает их последовательность.
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---------------------------------------------------------------------------

type GameRepo struct {
	session *model.GameSession
}

func NewGameRepo() *GameRepo {
	return &GameRepo{}
}

func (r *GameRepo) CreateSession(_ context.Context, s *model.GameSession) error {
	if r.session != nil {
		return model.ErrAlreadyInitialized
	}
	r.session = cloneSession(s)
	return nil
}

func (r *GameRepo) GetSession(_ context.Context) (*model.GameSession, error) {
	if r.session == nil {
		return nil, model.ErrSessionNotFound
	}
	return cloneSession(r.session), nil
}

func (r *GameRepo) GetSessionForUpdate(ctx context.Context) (*model.GameSession, error) {
	return r.GetSession(ctx)
}

func (r *GameRepo) UpdateSession(_ context.Context, s *model.GameSession) error {
	if r.session == nil {
		return model.ErrSessionNotFound
	}
	r.session = cloneSession(s)
	return nil
}

func cloneSession(s *model.GameSession) *model.GameSession {
	c := *s
	if s.WinningNumber != nil {
		n := *s.WinningNumber
		c.WinningNumber = &n
	}
	if s.LastBettor != nil {
		b := *s.LastBettor
		c.LastBettor = &b
	}
	return &c
}

// ---------------------------------------------------------------------------

type VaultRepo struct {
	vaults map[string]*model.Vault
}

func NewVaultRepo() *VaultRepo {
	return &VaultRepo{vaults: make(map[string]*model.Vault)}
}

func (r *VaultRepo) Create(_ context.Context, v *model.Vault) error {
	if _, ok := r.vaults[v.Mint]; ok {
		return model.ErrVaultAlreadyExists
	}
	r.vaults[v.Mint] = cloneVault(v)
	return nil
}

func (r *VaultRepo) Get(_ context.Context, mint string) (*model.Vault, error) {
	v, ok := r.vaults[mint]
	if !ok {
		return nil, model.ErrVaultNotFound
	}
	return cloneVault(v), nil
}

func (r *VaultRepo) GetForUpdate(ctx context.Context, mint string) (*model.Vault, error) {
	return r.Get(ctx, mint)
}

func (r *VaultRepo) Update(_ context.Context, v *model.Vault) error {
	if _, ok := r.vaults[v.Mint]; !ok {
		return model.ErrVaultNotFound
	}
	r.vaults[v.Mint] = cloneVault(v)
	return nil
}

func cloneVault(v *model.Vault) *model.Vault {
	c := *v
	c.RewardPerShareIndex = new(big.Int).Set(v.RewardPerShareIndex)
	return &c
}

// ---------------------------------------------------------------------------

type ProviderRepo struct {
	states map[string]*model.ProviderState
}

func NewProviderRepo() *ProviderRepo {
	return &ProviderRepo{states: make(map[string]*model.ProviderState)}
}

func providerKey(mint string, provider int) string {
	return mint + "/" + strconv.Itoa(provider)
}

func (r *ProviderRepo) Get(_ context.Context, mint string, provider int) (*model.ProviderState, error) {
	p, ok := r.states[providerKey(mint, provider)]
	if !ok {
		return nil, model.ErrProviderNotFound
	}
	return cloneProvider(p), nil
}

func (r *ProviderRepo) GetForUpdate(ctx context.Context, mint string, provider int) (*model.ProviderState, error) {
	return r.Get(ctx, mint, provider)
}

func (r *ProviderRepo) Upsert(_ context.Context, p *model.ProviderState) error {
	r.states[providerKey(p.Mint, p.Provider)] = cloneProvider(p)
	return nil
}

func (r *ProviderRepo) Delete(_ context.Context, mint string, provider int) error {
	delete(r.states, providerKey(mint, provider))
	return nil
}

// All - все состояния провайдеров (для проверки инвариантов в тестах)
func (r *ProviderRepo) All() []*model.ProviderState {
	out := make([]*model.ProviderState, 0, len(r.states))
	for _, p := range r.states {
		out = append(out, cloneProvider(p))
	}
	return out
}

func cloneProvider(p *model.ProviderState) *model.ProviderState {
	c := *p
	c.LastClaimedIndex = new(big.Int).Set(p.LastClaimedIndex)
	return &c
}

// ---------------------------------------------------------------------------

type PlayerBetsRepo struct {
	bets map[int]*model.PlayerBets
}

func NewPlayerBetsRepo() *PlayerBetsRepo {
	return &PlayerBetsRepo{bets: make(map[int]*model.PlayerBets)}
}

func (r *PlayerBetsRepo) Get(_ context.Context, player int) (*model.PlayerBets, error) {
	pb, ok := r.bets[player]
	if !ok {
		return &model.PlayerBets{Player: player}, nil
	}
	return clonePlayerBets(pb), nil
}

func (r *PlayerBetsRepo) GetForUpdate(ctx context.Context, player int) (*model.PlayerBets, error) {
	return r.Get(ctx, player)
}

func (r *PlayerBetsRepo) Upsert(_ context.Context, pb *model.PlayerBets) error {
	r.bets[pb.Player] = clonePlayerBets(pb)
	return nil
}

func clonePlayerBets(pb *model.PlayerBets) *model.PlayerBets {
	c := *pb
	c.Bets = append([]model.Bet(nil), pb.Bets...)
	return &c
}

// ---------------------------------------------------------------------------

type TokenRepo struct {
	accounts map[string]*model.TokenAccount
	nextID   int
}

func NewTokenRepo() *TokenRepo {
	return &TokenRepo{accounts: make(map[string]*model.TokenAccount)}
}

func (r *TokenRepo) GetOrCreateAccount(_ context.Context, ownerID int, mint string) (*model.TokenAccount, error) {
	for _, acc := range r.accounts {
		if acc.OwnerID != nil && *acc.OwnerID == ownerID && acc.Mint == mint {
			return cloneAccount(acc), nil
		}
	}
	owner := ownerID
	acc := &model.TokenAccount{
		ID:      r.newID(),
		OwnerID: &owner,
		Mint:    mint,
	}
	r.accounts[acc.ID] = acc
	return cloneAccount(acc), nil
}

func (r *TokenRepo) CreateVaultAccount(_ context.Context, mint string) (*model.TokenAccount, error) {
	acc := &model.TokenAccount{
		ID:   r.newID(),
		Mint: mint,
	}
	r.accounts[acc.ID] = acc
	return cloneAccount(acc), nil
}

func (r *TokenRepo) GetAccount(_ context.Context, id string) (*model.TokenAccount, error) {
	acc, ok := r.accounts[id]
	if !ok {
		return nil, model.ErrTokenAccountNotFound
	}
	return cloneAccount(acc), nil
}

func (r *TokenRepo) Transfer(_ context.Context, fromID, toID string, amount uint64) error {
	from, ok := r.accounts[fromID]
	if !ok {
		return model.ErrTokenAccountNotFound
	}
	to, ok := r.accounts[toID]
	if !ok {
		return model.ErrTokenAccountNotFound
	}
	if from.Balance < amount {
		return model.ErrInsufficientFunds
	}
	from.Balance -= amount
	to.Balance += amount
	return nil
}

func (r *TokenRepo) Deposit(_ context.Context, accountID string, amount uint64) error {
	acc, ok := r.accounts[accountID]
	if !ok {
		return model.ErrTokenAccountNotFound
	}
	acc.Balance += amount
	return nil
}

// Balance - текущий баланс счета (хелпер для тестов)
func (r *TokenRepo) Balance(id string) uint64 {
	if acc, ok := r.accounts[id]; ok {
		return acc.Balance
	}
	return 0
}

func (r *TokenRepo) newID() string {
	r.nextID++
	return "acc-" + strconv.Itoa(r.nextID)
}

func cloneAccount(acc *model.TokenAccount) *model.TokenAccount {
	c := *acc
	if acc.OwnerID != nil {
		o := *acc.OwnerID
		c.OwnerID = &o
	}
	return &c
}

// компиляционные проверки соответствия интерфейсам
var (
	_ repository.GameRepository       = (*GameRepo)(nil)
	_ repository.VaultRepository      = (*VaultRepo)(nil)
	_ repository.ProviderRepository   = (*ProviderRepo)(nil)
	_ repository.PlayerBetsRepository = (*PlayerBetsRepo)(nil)
	_ repository.TokenRepository      = (*TokenRepo)(nil)
)
