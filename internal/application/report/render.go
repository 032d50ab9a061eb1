package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/doorasi/closingbot/internal/domain/normalize"
)

// noDataLine is rendered instead of an empty ranking list.
const noDataLine = "Tidak ada data."

// BuildSalesReport renders the full daily/weekly/monthly sales ranking
// message from the combined ledger rows.
func BuildSalesReport(daily, weekly, monthly *Tally, now time.Time) string {
	today := normalize.FormatDate(now, normalize.LayoutShort)
	weekStart := normalize.FormatDate(now.AddDate(0, 0, -6), normalize.LayoutShort)

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 Laporan Penjualan CS\n📅 Tanggal: %s\n\n", normalize.FormatDate(now, normalize.LayoutLong))
	b.WriteString(renderSection("▶︎ Daily ("+today+")", daily))
	b.WriteString(renderSection("▶︎ Mingguan (7 Hari Terakhir) ("+weekStart+" - "+today+")", weekly))
	b.WriteString(renderSection("▶︎ Bulanan ("+normalize.MonthName(now.Month())+")", monthly))

	return strings.TrimSpace(b.String())
}

// renderSection renders one window as a numbered ranking plus a totals line.
func renderSection(title string, t *Tally) string {
	if t.Empty() {
		return title + "\n" + noDataLine + "\n\n"
	}

	var total Ranked
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	for i, r := range Rank(t) {
		fmt.Fprintf(&b, "%d. %s | %d Box - %d Sachet (%d Inv)\n", i+1, r.Operator, r.Box, r.Sachet, r.Invoices)
		total.Box += r.Box
		total.Sachet += r.Sachet
		total.Invoices += r.Invoices
	}
	fmt.Fprintf(&b, "TOTAL: %d Invoice | %d Box | %d Sachet\n\n", total.Invoices, total.Box, total.Sachet)

	return b.String()
}

// BuildAgentList renders the daily roster broadcast.
func BuildAgentList(codes []string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Daftar Agen Tersedia\n📅 Tanggal: %s\n\n", normalize.FormatDate(now, normalize.LayoutLong))
	for i, code := range codes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, code)
	}
	fmt.Fprintf(&b, "\nTotal: %d Agen", len(codes))
	return b.String()
}

// ReminderText returns the closing-input reminder for the given hour, or ""
// when the hour has no reminder scheduled.
func ReminderText(hour int) string {
	switch hour {
	case 11:
		return "⏰ Segera input SEMUA Closingan Pagi ini sebelum Jam 12:00 Siang!"
	case 14:
		return "⏰ Segera input SEMUA Closingan Siang ini sebelum Jam 15:00 Sore!"
	case 18:
		return "⏰ Segera input SEMUA Closingan Sore ini sebelum Jam 19:00 Malam!"
	default:
		return ""
	}
}
