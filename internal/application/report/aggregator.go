package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/doorasi/closingbot/internal/domain/order"
	"github.com/doorasi/closingbot/internal/infrastructure/sheets"
)

// Aggregator reads both order ledgers and produces report content. It keeps
// no state between runs; every report is rebuilt from the rows as persisted.
type Aggregator struct {
	regular     sheets.Ledger
	marketplace sheets.Ledger
	logger      *slog.Logger
}

// NewAggregator creates an aggregator over the regular and marketplace
// ledgers.
func NewAggregator(regular, marketplace sheets.Ledger, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{regular: regular, marketplace: marketplace, logger: logger}
}

// SalesReport reads both ledgers and renders the ranked sales report. A read
// failure on either ledger fails the whole report; a half-built ranking
// would misrank operators.
func (a *Aggregator) SalesReport(ctx context.Context, now time.Time) (string, error) {
	var rows []order.Row
	for _, ledger := range []sheets.Ledger{a.regular, a.marketplace} {
		r, err := ledger.ReadAllRows(ctx)
		if err != nil {
			return "", fmt.Errorf("building sales report: %w", err)
		}
		rows = append(rows, r...)
	}

	daily, weekly, monthly := Aggregate(rows, now)
	return BuildSalesReport(daily, weekly, monthly, now), nil
}

// Stats returns today's combined totals, optionally restricted to one
// operator. A ledger that cannot be read contributes nothing: confirmation
// receipts are best-effort and must not block order intake.
func (a *Aggregator) Stats(ctx context.Context, operator string, now time.Time) Stats {
	var stats Stats
	for _, ledger := range []sheets.Ledger{a.regular, a.marketplace} {
		rows, err := ledger.ReadAllRows(ctx)
		if err != nil {
			a.logger.Error("reading ledger for stats", "error", err)
			continue
		}
		s := CombinedStats(rows, operator, now)
		stats.Invoices += s.Invoices
		stats.Box += s.Box
		stats.Sachet += s.Sachet
	}
	return stats
}
