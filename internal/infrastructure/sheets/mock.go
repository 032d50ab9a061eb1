package sheets

import (
	"context"
	"sync"

	"github.com/doorasi/closingbot/internal/domain/order"
)

// MockLedger is an in-memory Ledger for testing.
type MockLedger struct {
	mu   sync.Mutex
	Rows []order.Row

	// AppendedRows records every AppendRow call in order.
	AppendedRows [][]string

	// Error injection for testing failure paths.
	AppendErr error
	ReadErr   error
}

// Compile-time check that MockLedger implements Ledger.
var _ Ledger = (*MockLedger)(nil)

// NewMockLedger creates a mock ledger pre-seeded with rows.
func NewMockLedger(rows ...order.Row) *MockLedger {
	return &MockLedger{Rows: rows}
}

// AppendRow records the appended values and mirrors them into Rows so that
// subsequent reads observe the write.
func (m *MockLedger) AppendRow(_ context.Context, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.AppendedRows = append(m.AppendedRows, values)

	row := make(order.Row, len(order.Columns))
	for i, col := range order.Columns {
		if i < len(values) {
			row[col] = values[i]
		}
	}
	m.Rows = append(m.Rows, row)
	return nil
}

// ReadAllRows returns the current rows.
func (m *MockLedger) ReadAllRows(context.Context) ([]order.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make([]order.Row, len(m.Rows))
	copy(out, m.Rows)
	return out, nil
}

// MockRoster is an in-memory Roster for testing.
type MockRoster struct {
	Codes []string
	Err   error
}

var _ Roster = (*MockRoster)(nil)

// AgentCodes returns the configured codes or the injected error.
func (m *MockRoster) AgentCodes(context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Codes, nil
}
