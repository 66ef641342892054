package app

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	authAPI "roulette_backend/internal/api/auth"
	betAPI "roulette_backend/internal/api/bet"
	gameAPI "roulette_backend/internal/api/game"
	vaultAPI "roulette_backend/internal/api/vault"
	"roulette_backend/internal/config"
	"roulette_backend/internal/config/env"
	"roulette_backend/internal/event"
	"roulette_backend/internal/middleware"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/repository/auth_repo"
	"roulette_backend/internal/repository/bets_repo"
	"roulette_backend/internal/repository/game_repo"
	"roulette_backend/internal/repository/provider_repo"
	"roulette_backend/internal/repository/token_repo"
	"roulette_backend/internal/repository/user_repo"
	"roulette_backend/internal/repository/vault_repo"
	"roulette_backend/internal/service"
	"roulette_backend/internal/service/auth"
	"roulette_backend/internal/service/bet"
	"roulette_backend/internal/service/game"
	"roulette_backend/internal/service/vault"
	"roulette_backend/pkg/oracle"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Общие зависимости
	clock   oracle.Clock
	emitter event.Emitter

	// Auth bits
	jwtConfig config.JWTConfig
	authRepo  repository.AuthRepository
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	authServ  service.AuthService
	authHand  *authAPI.Handler

	// Game bits
	gameCfg  config.GameConfig
	gameRepo repository.GameRepository
	gameServ service.GameService
	gameHand *gameAPI.Handler

	// Vault bits
	vaultRepo    repository.VaultRepository
	providerRepo repository.ProviderRepository
	vaultServ    service.VaultService
	vaultHand    *vaultAPI.Handler

	// Bet bits
	betsRepo repository.PlayerBetsRepository
	betServ  service.BetService
	betHand  *betAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) Clock() oracle.Clock {
	if sp.clock == nil {
		sp.clock = oracle.SystemClock{}
	}
	return sp.clock
}

func (sp *ServiceProvider) Emitter() event.Emitter {
	if sp.emitter == nil {
		sp.emitter = event.NewLogEmitter()
	}
	return sp.emitter
}

func (sp *ServiceProvider) JWTConfig() config.JWTConfig {
	if sp.jwtConfig == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtConfig = cfg
	}
	return sp.jwtConfig
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.userRepo
}

func (sp *ServiceProvider) TokenRepo(ctx context.Context) repository.TokenRepository {
	if sp.tokenRepo == nil {
		sp.tokenRepo = token_repo.NewTokenRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.tokenRepo
}

func (sp *ServiceProvider) GameRepo(ctx context.Context) repository.GameRepository {
	if sp.gameRepo == nil {
		sp.gameRepo = game_repo.NewGameRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.gameRepo
}

func (sp *ServiceProvider) VaultRepo(ctx context.Context) repository.VaultRepository {
	if sp.vaultRepo == nil {
		sp.vaultRepo = vault_repo.NewVaultRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.vaultRepo
}

func (sp *ServiceProvider) ProviderRepo(ctx context.Context) repository.ProviderRepository {
	if sp.providerRepo == nil {
		sp.providerRepo = provider_repo.NewProviderRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.providerRepo
}

func (sp *ServiceProvider) BetsRepo(ctx context.Context) repository.PlayerBetsRepository {
	if sp.betsRepo == nil {
		sp.betsRepo = bets_repo.NewPlayerBetsRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.betsRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.TokenRepo(ctx),
			sp.JWTConfig(),
			sp.GameCfg(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(
			sp.GameRepo(ctx),
			sp.TXManager(ctx),
			sp.Clock(),
			sp.Emitter(),
			sp.GameCfg(),
		)
	}
	return sp.gameServ
}

func (sp *ServiceProvider) VaultService(ctx context.Context) service.VaultService {
	if sp.vaultServ == nil {
		sp.vaultServ = vault.NewVaultService(
			sp.VaultRepo(ctx),
			sp.ProviderRepo(ctx),
			sp.GameRepo(ctx),
			sp.TokenRepo(ctx),
			sp.TXManager(ctx),
			sp.Clock(),
			sp.Emitter(),
			sp.GameCfg(),
		)
	}
	return sp.vaultServ
}

func (sp *ServiceProvider) BetService(ctx context.Context) service.BetService {
	if sp.betServ == nil {
		sp.betServ = bet.NewBetService(
			sp.GameRepo(ctx),
			sp.VaultRepo(ctx),
			sp.BetsRepo(ctx),
			sp.TokenRepo(ctx),
			sp.TXManager(ctx),
			sp.Clock(),
			sp.Emitter(),
			sp.GameCfg(),
		)
	}
	return sp.betServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{Serv: sp.GameService(ctx)})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) VaultHandler(ctx context.Context) *vaultAPI.Handler {
	if sp.vaultHand == nil {
		sp.vaultHand = vaultAPI.NewHandler(vaultAPI.HandlerDeps{Serv: sp.VaultService(ctx)})
	}
	return sp.vaultHand
}

func (sp *ServiceProvider) BetHandler(ctx context.Context) *betAPI.Handler {
	if sp.betHand == nil {
		sp.betHand = betAPI.NewHandler(betAPI.HandlerDeps{Serv: sp.BetService(ctx)})
	}
	return sp.betHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/logout", authHandler.Logout)

		authMiddleware := middleware.Auth(sp.JWTConfig())

		// Game endpoints
		gameHandler := sp.GameHandler(ctx)
		r.Route("/game", func(rr chi.Router) {
			rr.Get("/session", gameHandler.Session)
			rr.Group(func(g chi.Router) {
				g.Use(authMiddleware)
				g.Post("/initialize", gameHandler.Initialize)
				g.Post("/start-round", gameHandler.StartRound)
				g.Post("/close-bets", gameHandler.CloseBets)
				g.Post("/draw", gameHandler.Draw)
			})
		})

		// Vault endpoints
		vaultHandler := sp.VaultHandler(ctx)
		r.Route("/vault", func(rr chi.Router) {
			rr.Get("/{mint}", vaultHandler.State)
			rr.Group(func(g chi.Router) {
				g.Use(authMiddleware)
				g.Post("/", vaultHandler.Create)
				g.Post("/provide", vaultHandler.Provide)
				g.Post("/{mint}/withdraw", vaultHandler.Withdraw)
				g.Post("/{mint}/withdraw-revenue", vaultHandler.WithdrawRevenue)
				g.Post("/{mint}/withdraw-owner-revenue", vaultHandler.WithdrawOwnerRevenue)
				g.Post("/{mint}/distribute-reserve", vaultHandler.DistributeReserve)
				g.Get("/{mint}/rewards", vaultHandler.Rewards)
			})
		})

		// Bet endpoints
		betHandler := sp.BetHandler(ctx)
		r.Route("/bet", func(rr chi.Router) {
			rr.Use(authMiddleware)
			rr.Post("/place", betHandler.Place)
			rr.Post("/claim", betHandler.Claim)
			rr.Get("/my", betHandler.MyBets)
		})

		sp.router = r
	}

	return sp.router
}
