package auth

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"

	"roulette_backend/internal/config"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/service"
)

type serv struct {
	txManager  trm.Manager
	userRepo   repository.UserRepository
	authRepo   repository.AuthRepository
	tokenRepo  repository.TokenRepository
	jwtConfig  config.JWTConfig
	gameConfig config.GameConfig
}

// NewAuthService - сервис регистрации и входа
func NewAuthService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	tokenRepo repository.TokenRepository,
	jwtConfig config.JWTConfig,
	gameConfig config.GameConfig,
) service.AuthService {
	return &serv{
		txManager:  txManager,
		userRepo:   userRepo,
		authRepo:   authRepo,
		tokenRepo:  tokenRepo,
		jwtConfig:  jwtConfig,
		gameConfig: gameConfig,
	}
}

func generateSessionID() string {
	return uuid.NewString()
}
