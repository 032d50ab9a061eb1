package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/doorasi/closingbot/internal/api"
	"github.com/doorasi/closingbot/internal/application/intake"
	"github.com/doorasi/closingbot/internal/application/report"
	"github.com/doorasi/closingbot/internal/infrastructure/config"
	"github.com/doorasi/closingbot/internal/infrastructure/logging"
	"github.com/doorasi/closingbot/internal/infrastructure/msgstore"
	"github.com/doorasi/closingbot/internal/infrastructure/sheets"
	"github.com/doorasi/closingbot/internal/infrastructure/telegram"
)

// RunServe runs the webhook server and the job scheduler.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewSystemLogger(loggingCfg, "bot")

	if flags.Port != 0 {
		cfg.Server.Port = flags.Port
	}

	// All date arithmetic (ledger rows, report windows, reminder hours) runs
	// in the business timezone, not the server's.
	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", cfg.Server.Timezone, err)
	}
	localNow := func() time.Time { return time.Now().In(loc) }

	ctx := context.Background()

	client, err := sheets.NewClient(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsFile)
	if err != nil {
		return fmt.Errorf("connecting to sheets: %w", err)
	}
	regular := client.Ledger(cfg.Sheets.ClosingSheet)
	marketplace := client.Ledger(cfg.Sheets.ClosingMPSheet)
	roster := client.Roster(cfg.Sheets.AgentSheet)

	messenger := telegram.NewClient(cfg.Telegram.Token, logging.NewSystemLogger(loggingCfg, "telegram"))
	agg := report.NewAggregator(regular, marketplace, logging.NewSystemLogger(loggingCfg, "report"))

	svc := intake.NewService(regular, marketplace, roster, messenger, agg,
		cfg.Telegram, logging.NewSystemLogger(loggingCfg, "intake")).
		WithClock(localNow)

	store := msgstore.New(cfg.Jobs.MessageIDStore)
	jobs := report.NewJobs(agg, roster, messenger, store,
		cfg.Telegram, logging.NewSystemLogger(loggingCfg, "jobs")).
		WithClock(localNow)

	scheduler := cron.New(cron.WithLocation(loc))
	schedule := []struct {
		name string
		spec string
		fn   func(context.Context) error
	}{
		{"sales-report", cfg.Jobs.SalesReport, jobs.SendSalesReport},
		{"agent-list", cfg.Jobs.AgentList, jobs.SendAgentList},
		{"closing-reminder", cfg.Jobs.ClosingReminder, jobs.SendClosingReminder},
	}
	for _, job := range schedule {
		if _, err := scheduler.AddFunc(job.spec, jobs.Runner(job.name, job.fn)); err != nil {
			return fmt.Errorf("scheduling %s (%q): %w", job.name, job.spec, err)
		}
		logger.Info("job scheduled", "job", job.name, "spec", job.spec)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := api.NewServer(api.Config{Port: cfg.Server.Port}, svc, logger)

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
