// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	router "wallet-ledger/internal/api"
	"wallet-ledger/internal/api/handler"
	"wallet-ledger/internal/auth"
	"wallet-ledger/internal/config"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/repository/postgres"
	"wallet-ledger/internal/service"
	"wallet-ledger/internal/util"
	"wallet-ledger/pkg/cache"
	"wallet-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client // nil when REDIS_ADDR is not set

	// Repositories
	UserRepository        repository.UserRepository
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository

	// Services
	WalletService  service.WalletService
	AccountService service.AccountService
	Tokens         *auth.TokenManager

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
// Extra service options (e.g. a custom clock) are applied to both services.
func (app *Application) Initialize(ctx context.Context, opts ...service.Option) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.", "driver", app.Config.DB.Driver)

	if app.Config.DBMigrate {
		if err := db.Migrate(ctx, app.DB); err != nil {
			return err
		}
		app.Logger.Info("Database schema applied.")
	}

	// 4. Connect to Redis (optional) and build the token manager
	var denylist auth.Denylist = auth.NopDenylist{}
	if app.Config.Redis.Addr != "" {
		client, err := cache.ConnectRedis(ctx, app.Config.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.Redis = client
		denylist = auth.NewRedisDenylist(client)
		app.Logger.Info("Redis connection established.", "addr", app.Config.Redis.Addr)
	} else {
		app.Logger.Warn("REDIS_ADDR not set; rotated refresh tokens will not be revoked.")
	}
	app.Tokens = auth.NewTokenManager(
		app.Config.Auth.JWTSecret,
		app.Config.Auth.AccessTokenTTL,
		app.Config.Auth.RefreshTokenTTL,
		denylist,
	)

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository()
	app.WalletRepository = postgres.NewWalletRepository()
	app.TransactionRepository = postgres.NewTransactionRepository()
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	serviceOpts := append([]service.Option{service.WithTxTimeout(app.Config.TxTimeout)}, opts...)
	app.WalletService = service.NewWalletService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.WalletRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		serviceOpts...,
	)
	app.AccountService = service.NewAccountService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.WalletRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		serviceOpts...,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	walletHandler := handler.NewWalletHandler(app.WalletService, app.Logger)
	authHandler := handler.NewAuthHandler(app.AccountService, app.Tokens, app.Logger)
	app.HTTPHandler = router.NewRouter(walletHandler, authHandler, app.Tokens, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("Failed to close redis connection", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
