// Package report rebuilds sales statistics from the persisted ledgers and
// renders the ranked operator reports sent to the sales group.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/doorasi/closingbot/internal/domain/normalize"
	"github.com/doorasi/closingbot/internal/domain/order"
)

// operatorPrefix is stripped from the raw CUSTOMER SERVICE label before
// grouping, so "DOORASI Sari" and "Sari" land in the same bucket.
const operatorPrefix = "DOORASI "

// Bucket accumulates one operator's raw totals inside one time window.
// Sachets stay unconverted here; the 5:1 box conversion happens at render
// time only.
type Bucket struct {
	Box      int
	Sachet   int
	Invoices int
}

// Tally holds per-operator buckets for one time window, remembering insertion
// order so that ranking ties resolve deterministically.
type Tally struct {
	buckets map[string]*Bucket
	order   []string
}

func newTally() *Tally {
	return &Tally{buckets: map[string]*Bucket{}}
}

func (t *Tally) add(operator string, box, sachet int) {
	b, ok := t.buckets[operator]
	if !ok {
		b = &Bucket{}
		t.buckets[operator] = b
		t.order = append(t.order, operator)
	}
	b.Box += box
	b.Sachet += sachet
	b.Invoices++
}

// Empty reports whether no operator contributed to this window.
func (t *Tally) Empty() bool {
	return len(t.order) == 0
}

// Operators returns the operator names in insertion order.
func (t *Tally) Operators() []string {
	return t.order
}

// Bucket returns the accumulated totals of one operator.
func (t *Tally) Bucket(operator string) Bucket {
	if b, ok := t.buckets[operator]; ok {
		return *b
	}
	return Bucket{}
}

// Aggregate groups ledger rows into daily, weekly (trailing 7 days) and
// month-to-date tallies relative to now. Rows whose TANGGAL cell does not
// parse are skipped.
func Aggregate(rows []order.Row, now time.Time) (daily, weekly, monthly *Tally) {
	daily, weekly, monthly = newTally(), newTally(), newTally()

	today := dateOnly(now)
	weekStart := today.AddDate(0, 0, -6)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	for _, row := range rows {
		rowDate, err := time.ParseInLocation("02/01/2006", row[order.ColDate], now.Location())
		if err != nil {
			continue
		}

		operator := strings.TrimSpace(strings.ReplaceAll(row[order.ColOperator], operatorPrefix, ""))
		if operator == "" {
			operator = "Unknown"
		}
		box := atoiOrZero(row[order.ColBoxQty])
		sachet := atoiOrZero(row[order.ColSachetQty])

		if rowDate.Equal(today) {
			daily.add(operator, box, sachet)
		}
		if !rowDate.Before(weekStart) && !rowDate.After(today) {
			weekly.add(operator, box, sachet)
		}
		if !rowDate.Before(monthStart) && !rowDate.After(today) {
			monthly.add(operator, box, sachet)
		}
	}

	return daily, weekly, monthly
}

// Ranked is one operator's line in a rendered report, after the 5-sachet
// conversion.
type Ranked struct {
	Operator string
	Box      int // raw boxes plus sachet//5
	Sachet   int // sachet%5 remainder
	Invoices int
}

// Rank converts and sorts a tally's operators descending by (box, sachet).
// The sort is stable, so ties keep ledger insertion order.
func Rank(t *Tally) []Ranked {
	ranked := make([]Ranked, 0, len(t.order))
	for _, operator := range t.order {
		b := t.buckets[operator]
		ranked = append(ranked, Ranked{
			Operator: operator,
			Box:      b.Box + b.Sachet/5,
			Sachet:   b.Sachet % 5,
			Invoices: b.Invoices,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Box != ranked[j].Box {
			return ranked[i].Box > ranked[j].Box
		}
		return ranked[i].Sachet > ranked[j].Sachet
	})
	return ranked
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Stats are the same-day raw totals used for per-submission confirmation
// receipts. No sachet conversion is applied.
type Stats struct {
	Invoices int
	Box      int
	Sachet   int
}

// CombinedStats sums today's rows, optionally restricted to one operator
// (empty operator means everyone). The TANGGAL INPUT timestamp decides what
// counts as today.
func CombinedStats(rows []order.Row, operator string, now time.Time) Stats {
	today := normalize.FormatDate(now, normalize.LayoutShort)

	var stats Stats
	for _, row := range rows {
		if !strings.HasPrefix(row[order.ColInputDate], today) {
			continue
		}
		if operator != "" && row[order.ColOperator] != operator {
			continue
		}
		stats.Invoices++
		stats.Box += atoiOrZero(row[order.ColBoxQty])
		stats.Sachet += atoiOrZero(row[order.ColSachetQty])
	}
	return stats
}
