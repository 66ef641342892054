package vault

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"roulette_backend/internal/config"
	"roulette_backend/internal/event"
	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/service"
	"roulette_backend/pkg/oracle"
)

type serv struct {
	vaultRepo    repository.VaultRepository
	providerRepo repository.ProviderRepository
	gameRepo     repository.GameRepository
	tokenRepo    repository.TokenRepository
	txManager    trm.Manager
	clock        oracle.Clock
	emitter      event.Emitter
	cfg          config.GameConfig
}

// NewVaultService - сервис пулов ликвидности
func NewVaultService(
	vaultRepo repository.VaultRepository,
	providerRepo repository.ProviderRepository,
	gameRepo repository.GameRepository,
	tokenRepo repository.TokenRepository,
	txManager trm.Manager,
	clock oracle.Clock,
	emitter event.Emitter,
	cfg config.GameConfig,
) service.VaultService {
	return &serv{
		vaultRepo:    vaultRepo,
		providerRepo: providerRepo,
		gameRepo:     gameRepo,
		tokenRepo:    tokenRepo,
		txManager:    txManager,
		clock:        clock,
		emitter:      emitter,
		cfg:          cfg,
	}
}

// requireAuthority - операции владельца доступны только авторитету сессии
func (s *serv) requireAuthority(sessionAuthority, caller int) error {
	if caller != sessionAuthority {
		return model.ErrAdminOnly
	}
	return nil
}
