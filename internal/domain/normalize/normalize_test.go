package normalize_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/doorasi/closingbot/internal/domain/normalize"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"rp with k suffix", "Rp 50k", 50000},
		{"uppercase K", "RP 50K", 50000},
		{"dot thousands separator", "Rp 12.500", 12500},
		{"comma separator", "Rp 1,250", 1250},
		{"mixed separators", "Rp 1.250,000", 1250000},
		{"no rp prefix", "175.000", 175000},
		{"first numeric token wins", "pesan 2 Box - Rp 350.000", 2},
		{"k must be adjacent", "350k free ongkir", 350000},
		{"no digits", "tidak ada angka", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.ExtractAmount(tt.input))
		})
	}
}

func TestExtractAmount_Idempotent(t *testing.T) {
	// Re-extracting from the decimal rendering of a previous result must
	// reproduce the same integer.
	for _, input := range []string{"Rp 50k", "Rp 12.500", "350000"} {
		first := normalize.ExtractAmount(input)
		second := normalize.ExtractAmount(fmt.Sprintf("%d", first))
		assert.Equal(t, first, second, "input %q", input)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"08123456789", "628123456789"},
		{"628123456789", "628123456789"},
		{"8123456789", "628123456789"},
		{"+62 812-3456-789", "628123456789"},
		{"0812 3456 789", "628123456789"},
		{"", ""},
		{"no digits here", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.Phone(tt.input), "input %q", tt.input)
	}
}

func TestExpedition(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"jnt", "J&T Express"},
		{"J&T", "J&T Express"},
		{"  JNE  ", "JNE"},
		{"idx", "ID Express"},
		{"Id Express", "ID Express"},
		{"SiCepat", "SiCepat"}, // unknown passes through
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.Expedition(tt.input), "input %q", tt.input)
	}
}

func TestFormatDate(t *testing.T) {
	// 2026-08-31 is a Monday.
	monday := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "31/08/2026", normalize.FormatDate(monday, normalize.LayoutShort))
	assert.Equal(t, "Senin, 31 Agustus 2026", normalize.FormatDate(monday, normalize.LayoutLong))

	sunday := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Minggu, 6 September 2026", normalize.FormatDate(sunday, normalize.LayoutLong))

	// unknown layout falls back to the short form
	assert.Equal(t, "31/08/2026", normalize.FormatDate(monday, "yyyy"))
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, time.January, 2, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "02/01/2026 09:05:07", normalize.FormatTimestamp(ts))
}
