package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/doorasi/closingbot/internal/application/report"
	"github.com/doorasi/closingbot/internal/infrastructure/config"
	"github.com/doorasi/closingbot/internal/infrastructure/logging"
	"github.com/doorasi/closingbot/internal/infrastructure/msgstore"
	"github.com/doorasi/closingbot/internal/infrastructure/sheets"
	"github.com/doorasi/closingbot/internal/infrastructure/telegram"
)

// RunReport builds today's sales report and sends it to the sales group, or
// prints it to stdout with -dry-run. Useful for re-sending a report outside
// the nightly schedule.
func RunReport(cfg *config.Config, flags *ReportFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewSystemLogger(loggingCfg, "report")

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

	agg := report.NewAggregator(regular, marketplace, logger)

	if flags.DryRun {
		text, err := agg.SalesReport(ctx, localNow())
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}

	messenger := telegram.NewClient(cfg.Telegram.Token, logging.NewSystemLogger(loggingCfg, "telegram"))
	store := msgstore.New(cfg.Jobs.MessageIDStore)
	jobs := report.NewJobs(agg, client.Roster(cfg.Sheets.AgentSheet), messenger, store,
		cfg.Telegram, logger).
		WithClock(localNow)

	return jobs.SendSalesReport(ctx)
}
