package bet

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"roulette_backend/internal/config"
	"roulette_backend/internal/event"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/service"
	"roulette_backend/pkg/oracle"
)

type serv struct {
	gameRepo  repository.GameRepository
	vaultRepo repository.VaultRepository
	betsRepo  repository.PlayerBetsRepository
	tokenRepo repository.TokenRepository
	txManager trm.Manager
	clock     oracle.Clock
	emitter   event.Emitter
	cfg       config.GameConfig
}

// NewBetService - сервис приема ставок и выплат
func NewBetService(
	gameRepo repository.GameRepository,
	vaultRepo repository.VaultRepository,
	betsRepo repository.PlayerBetsRepository,
	tokenRepo repository.TokenRepository,
	txManager trm.Manager,
	clock oracle.Clock,
	emitter event.Emitter,
	cfg config.GameConfig,
) service.BetService {
	return &serv{
		gameRepo:  gameRepo,
		vaultRepo: vaultRepo,
		betsRepo:  betsRepo,
		tokenRepo: tokenRepo,
		txManager: txManager,
		clock:     clock,
		emitter:   emitter,
		cfg:       cfg,
	}
}
