package game

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
	txManager trm.Manager
	clock     oracle.Clock
	emitter   event.Emitter
	cfg       config.GameConfig
}

// NewGameService - сервис жизненного цикла раундов
func NewGameService(
	gameRepo repository.GameRepository,
	txManager trm.Manager,
	clock oracle.Clock,
	emitter event.Emitter,
	cfg config.GameConfig,
) service.GameService {
	return &serv{
		gameRepo:  gameRepo,
		txManager: txManager,
		clock:     clock,
		emitter:   emitter,
		cfg:       cfg,
	}
}
