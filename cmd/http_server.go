package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/auth"
	authPostgres "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/auth/postgres"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/events"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/loto"
	lotoPostgres "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/loto/postgres"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/notification"
	notificationPostgres "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/notification/postgres"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/report"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/settings"
	settingsPostgres "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/settings/postgres"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/tool"
	toolPostgres "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/tool/postgres"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/transport/rest"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/user"
	userPostgres "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/user/postgres"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	SqlxDB   *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Worker   *overdueWorker
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.SqlxDB.DB, deps.Handlers, deps.Logger)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go deps.Worker.Run(workerCtx)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		stopWorker()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.SqlxDB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		stopWorker()
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	log := logger.LoggerWrapper()

	gormDB, sqlxDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewEventBus(log)

	// Repositories
	toolRepo := toolPostgres.NewToolRepository(gormDB)
	lotoRepo := lotoPostgres.NewDeviceRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)
	authRepo := authPostgres.NewRepository(gormDB)
	notificationRepo := notificationPostgres.NewNotificationRepository(gormDB)
	settingsRepo := settingsPostgres.NewSettingsRepository(gormDB)

	// Services
	userService := user.NewService(userRepo, config.Security.BCryptCost, log)
	toolService := tool.NewService(toolRepo, userService, bus, log)
	lotoService := loto.NewService(lotoRepo, userService, bus, log)
	settingsService := settings.NewService(settingsRepo, log)
	notificationService := notification.NewService(notificationRepo, log)
	reportService := report.NewService(toolRepo, userService, settingsService, log)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen)

	// Notification side effects are driven off the event bus.
	notification.NewEventHandler(notificationService, log).RegisterEventHandlers(bus)

	worker := newOverdueWorker(toolRepo, userService, bus, config.Inventory.OverdueScanInterval, log)

	return &Dependencies{
		Config: config,
		Logger: log,
		DB:     gormDB,
		SqlxDB: sqlxDB,
		Router: chi.NewRouter(),
		Worker: worker,
		Handlers: rest.Handlers{
			Auth:         auth.NewHandler(authService),
			User:         user.NewHandler(userService),
			Tool:         tool.NewHandler(toolService),
			Loto:         loto.NewHandler(lotoService),
			Report:       report.NewHandler(reportService),
			Notification: notification.NewHandler(notificationService),
			Settings:     settings.NewHandler(settingsService),
		},
	}, nil
}

// initDB opens the GORM connection the repositories use plus an sqlx handle
// over the same pool for health checks and raw queries.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = gormSqlite.Open(cfg.Source)
	default:
		dialector = gormPostgres.Open(cfg.Source)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access db pool: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gormDB, sqlx.NewDb(sqlDB, cfg.Driver), nil
}
