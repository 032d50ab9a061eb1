package order

import (
	"regexp"
	"strings"
	"time"

	"github.com/doorasi/closingbot/internal/domain/normalize"
)

// RepeatOverrideTag marks a message as a deliberate repeat order, which
// bypasses duplicate detection entirely.
const RepeatOverrideTag = "#ro"

// HasRepeatOverride reports whether the raw message opts out of the
// duplicate check.
func HasRepeatOverride(text string) bool {
	return strings.Contains(strings.ToLower(text), RepeatOverrideTag)
}

// FindDuplicate scans rows persisted on the calendar day of now for an entry
// with the same normalized phone number or the same address. Either match
// alone counts. The returned row is the first hit in ledger order.
func FindDuplicate(phone, address string, rows []Row, now time.Time) (Row, bool) {
	today := normalize.FormatDate(now, normalize.LayoutShort)
	wantAddr := strings.ToLower(strings.TrimSpace(address))

	for _, row := range rows {
		if !strings.HasPrefix(row[ColInputDate], today) {
			continue
		}
		rowPhone := normalize.Phone(row[ColPhone])
		rowAddr := strings.ToLower(strings.TrimSpace(row[ColAddress]))
		if rowPhone == phone || rowAddr == wantAddr {
			return row, true
		}
	}
	return nil, false
}

// agentCodePattern matches a roster code at the start of the notes, e.g.
// "Agen Budi Santoso#12".
var agentCodePattern = regexp.MustCompile(`(?i)^Agen\s+[\w\s]+#\d+`)

// AgentCode extracts the agent code leading the notes of an order. ok is
// false when the notes carry no code at all, which callers treat as "nothing
// to verify".
func AgentCode(notes string) (code string, ok bool) {
	m := agentCodePattern.FindString(notes)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}
