// Package sheets talks to the Google Spreadsheet that acts as the order
// ledger. The bot treats the spreadsheet as an eventually-consistent external
// store: appends and reads can fail at any call and are surfaced as errors,
// never retried into blocking loops.
package sheets

import (
	"context"

	"github.com/doorasi/closingbot/internal/domain/order"
)

// Ledger is one worksheet holding persisted order rows. The first sheet row
// is the header; ReadAllRows returns every data row keyed by header name.
type Ledger interface {
	// AppendRow appends one ordered row of cell values.
	AppendRow(ctx context.Context, values []string) error

	// ReadAllRows reads every persisted row.
	ReadAllRows(ctx context.Context) ([]order.Row, error)
}

// Roster lists the registered reseller agent codes.
type Roster interface {
	// AgentCodes returns the code column of the agent registry, without the
	// header, in sheet order.
	AgentCodes(ctx context.Context) ([]string, error)
}
