package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/events"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/notification"
	notificationPostgres "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/notification/postgres"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/tool"
	toolPostgres "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/tool/postgres"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/user"
	userPostgres "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/user/postgres"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers like the overdue loan scanner`,
}

var overdueWorkerCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Start the overdue loan scanner",
	Long:  `Scan open loans on an interval and raise overdue notifications`,
	Run: func(cmd *cobra.Command, args []string) {
		startOverdueWorker()
	},
}

var scanInterval time.Duration

func startOverdueWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	log := logger.LoggerWrapper()

	gormDB, sqlxDB, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer sqlxDB.Close()

	bus := events.NewEventBus(log)

	toolRepo := toolPostgres.NewToolRepository(gormDB)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), config.Security.BCryptCost, log)
	notificationService := notification.NewService(notificationPostgres.NewNotificationRepository(gormDB), log)
	notification.NewEventHandler(notificationService, log).RegisterEventHandlers(bus)

	interval := config.Inventory.OverdueScanInterval
	if scanInterval > 0 {
		interval = scanInterval
	}

	worker := newOverdueWorker(toolRepo, userService, bus, interval, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go worker.Run(ctx)

	sig := <-sigChan
	log.Info("received signal, stopping overdue scanner", "signal", sig.String())
	cancel()
}

func init() {
	overdueWorkerCmd.Flags().DurationVar(&scanInterval, "interval", 0, "Scan interval (overrides config)")

	workerCmd.AddCommand(overdueWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}

// overdueWorker periodically scans the open loans and publishes an overdue
// event for every loan past its estimated return. The notification layer
// dedupes per loan, so re-publishing on every scan is harmless.
type overdueWorker struct {
	repo     tool.Repository
	users    tool.UserDirectory
	bus      *events.EventBus
	interval time.Duration
	logger   *slog.Logger
}

func newOverdueWorker(repo tool.Repository, users tool.UserDirectory, bus *events.EventBus, interval time.Duration, logger *slog.Logger) *overdueWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &overdueWorker{
		repo:     repo,
		users:    users,
		bus:      bus,
		interval: interval,
		logger:   logger,
	}
}

func (w *overdueWorker) Run(ctx context.Context) {
	w.logger.Info("overdue scanner started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("overdue scanner stopped")
			return
		case <-ticker.C:
			w.scan(ctx, time.Now())
		}
	}
}

func (w *overdueWorker) scan(ctx context.Context, now time.Time) {
	loans, err := w.repo.ListLoans(tool.LoanFilter{OnlyOpen: true})
	if err != nil {
		w.logger.Error("overdue scan: listing open loans failed", "error", err)
		return
	}

	flagged := 0
	for _, loan := range loans {
		t, err := w.repo.GetTool(loan.ToolID)
		if err != nil {
			w.logger.Error("overdue scan: tool lookup failed", "tool_id", loan.ToolID, "error", err)
			continue
		}
		if !t.IsOverdue(now) {
			continue
		}

		userName, err := w.users.Lookup(loan.UserID)
		if err != nil {
			userName = loan.UserID
		}

		event := events.NewLoanOverdueEvent(
			loan.ID, t.ID, t.Name, loan.UserID, userName, t.Custody.EstimatedReturnAt)
		if err := w.bus.PublishSync(ctx, event); err != nil {
			w.logger.Error("overdue scan: publish failed", "loan_id", loan.ID, "error", err)
			continue
		}
		flagged++
	}

	if flagged > 0 {
		w.logger.Info("overdue scan complete", "open_loans", len(loans), "overdue", flagged)
	}
}
