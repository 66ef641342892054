package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// GameConfig - параметры рулетки: тайминги фаз, политика доступа,
// лимит ставки и комиссия за создание хранилища
type GameConfig interface {
	// Минимальная длительность приема ставок
	MinRoundDuration() time.Duration
	// Минимальная пауза между закрытием ставок и розыгрышем
	MinBetsClosedDuration() time.Duration
	// Минимальная пауза между розыгрышем и новым раундом
	MinStartNewRoundDuration() time.Duration
	// Если true, start/close/draw доступны только авторитету сессии
	AdminOnly() bool
	// Максимальная ставка как процент от ликвидности хранилища
	MaxBetPercent() uint64
	// Комиссия за создание хранилища и минт, в котором она взимается
	CreateVaultFee() uint64
	FeeMint() string
	// Пользователь-казна: получает комиссии и доход владельца
	TreasuryUserID() int
	// Стартовый баланс новых игроков (демо-кран)
	FaucetMint() string
	FaucetAmount() uint64
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}
