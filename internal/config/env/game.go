package env

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"roulette_backend/internal/config"
)

// gameYAML - секция game из config.yaml.
// Длительности заданы строками вида "60s", yaml.v3 сам их не разбирает.
type gameYAML struct {
	Game struct {
		MinRoundDuration         string `yaml:"min_round_duration"`
		MinBetsClosedDuration    string `yaml:"min_bets_closed_duration"`
		MinStartNewRoundDuration string `yaml:"min_start_new_round_duration"`
		AdminOnly                bool   `yaml:"admin_only"`
		MaxBetPercent            uint64 `yaml:"max_bet_percent"`
		CreateVaultFee           uint64 `yaml:"create_vault_fee"`
		FeeMint                  string `yaml:"fee_mint"`
		TreasuryUserID           int    `yaml:"treasury_user_id"`
		FaucetMint               string `yaml:"faucet_mint"`
		FaucetAmount             uint64 `yaml:"faucet_amount"`
	} `yaml:"game"`
}

type gameConfig struct {
	raw              gameYAML
	minRoundDuration time.Duration
	minBetsClosed    time.Duration
	minStartNewRound time.Duration
}

// NewGameConfigFromYAML - читает параметры игры из config.yaml
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var raw gameYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if raw.Game.MaxBetPercent == 0 {
		raw.Game.MaxBetPercent = 11
	}
	if raw.Game.MaxBetPercent > 100 {
		return nil, fmt.Errorf("max_bet_percent must be within [1, 100]")
	}
	if raw.Game.FeeMint == "" {
		return nil, fmt.Errorf("fee_mint is required")
	}

	cfg := &gameConfig{raw: raw}
	cfg.minRoundDuration, err = parseDuration(raw.Game.MinRoundDuration)
	if err != nil {
		return nil, fmt.Errorf("min_round_duration: %w", err)
	}
	cfg.minBetsClosed, err = parseDuration(raw.Game.MinBetsClosedDuration)
	if err != nil {
		return nil, fmt.Errorf("min_bets_closed_duration: %w", err)
	}
	cfg.minStartNewRound, err = parseDuration(raw.Game.MinStartNewRoundDuration)
	if err != nil {
		return nil, fmt.Errorf("min_start_new_round_duration: %w", err)
	}

	return cfg, nil
}

// parseDuration - пустая строка означает нулевую длительность
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func (c *gameConfig) MinRoundDuration() time.Duration {
	return c.minRoundDuration
}

func (c *gameConfig) MinBetsClosedDuration() time.Duration {
	return c.minBetsClosed
}

func (c *gameConfig) MinStartNewRoundDuration() time.Duration {
	return c.minStartNewRound
}

func (c *gameConfig) AdminOnly() bool {
	return c.raw.Game.AdminOnly
}

func (c *gameConfig) MaxBetPercent() uint64 {
	return c.raw.Game.MaxBetPercent
}

func (c *gameConfig) CreateVaultFee() uint64 {
	return c.raw.Game.CreateVaultFee
}

func (c *gameConfig) FeeMint() string {
	return c.raw.Game.FeeMint
}

func (c *gameConfig) TreasuryUserID() int {
	return c.raw.Game.TreasuryUserID
}

func (c *gameConfig) FaucetMint() string {
	return c.raw.Game.FaucetMint
}

func (c *gameConfig) FaucetAmount() uint64 {
	return c.raw.Game.FaucetAmount
}
