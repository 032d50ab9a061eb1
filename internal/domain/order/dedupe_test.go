package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doorasi/closingbot/internal/domain/order"
)

var dedupeNow = time.Date(2026, time.August, 31, 14, 0, 0, 0, time.UTC)

func ledgerRow(phone, address, inputDate string) order.Row {
	return order.Row{
		order.ColPhone:     phone,
		order.ColAddress:   address,
		order.ColInputDate: inputDate,
	}
}

func TestFindDuplicate(t *testing.T) {
	rows := []order.Row{
		ledgerRow("08123456789", "Jl. Melati No 3", "31/08/2026 09:12:00"),
		ledgerRow("0899000111", "Jl. Kenanga 12", "30/08/2026 18:45:00"),
	}

	t.Run("matches same-day phone", func(t *testing.T) {
		row, found := order.FindDuplicate("628123456789", "alamat lain", rows, dedupeNow)
		require.True(t, found)
		assert.Equal(t, "08123456789", row[order.ColPhone])
	})

	t.Run("matches same-day address case-insensitively", func(t *testing.T) {
		_, found := order.FindDuplicate("620000000", "  jl. melati no 3 ", rows, dedupeNow)
		assert.True(t, found)
	})

	t.Run("address match alone is sufficient", func(t *testing.T) {
		_, found := order.FindDuplicate("", "Jl. Melati No 3", rows, dedupeNow)
		assert.True(t, found)
	})

	t.Run("ignores rows from other days", func(t *testing.T) {
		_, found := order.FindDuplicate("62899000111", "Jl. Kenanga 12", rows, dedupeNow)
		assert.False(t, found)
	})

	t.Run("no match", func(t *testing.T) {
		_, found := order.FindDuplicate("628000000000", "Jl. Baru 1", rows, dedupeNow)
		assert.False(t, found)
	})
}

func TestHasRepeatOverride(t *testing.T) {
	assert.True(t, order.HasRepeatOverride("SALES 1 #RO\nNama: Ibu Sari"))
	assert.True(t, order.HasRepeatOverride("pesanan ulang #ro"))
	assert.False(t, order.HasRepeatOverride("SALES 1\nNama: Ibu Sari"))
}

func TestAgentCode(t *testing.T) {
	t.Run("extracts leading code", func(t *testing.T) {
		code, ok := order.AgentCode("Agen Budi Santoso#12\nkirim siang")
		require.True(t, ok)
		assert.Equal(t, "Agen Budi Santoso#12", code)
	})

	t.Run("case-insensitive prefix", func(t *testing.T) {
		code, ok := order.AgentCode("agen siti#7")
		require.True(t, ok)
		assert.Equal(t, "agen siti#7", code)
	})

	t.Run("code must lead the notes", func(t *testing.T) {
		_, ok := order.AgentCode("titip Agen Budi#12")
		assert.False(t, ok)
	})

	t.Run("empty notes carry no code", func(t *testing.T) {
		_, ok := order.AgentCode("")
		assert.False(t, ok)
	})
}
