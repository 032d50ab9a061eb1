// Package normalize provides cleanup helpers for the free-text values that
// arrive in chat order messages: rupiah amounts, phone numbers, expedition
// names and Indonesian-locale dates.
//
// All functions are pure. They return zero values instead of errors so the
// parser can stay total over malformed input.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var amountPattern = regexp.MustCompile(`(?i)(?:Rp)?\s*([\d.,]+)\s*k?`)

// ExtractAmount finds the first currency-like token in s and returns it as a
// whole rupiah amount. "Rp" prefixes are optional, '.' and ',' are treated as
// thousands separators, and a trailing 'k' multiplies by 1000.
// Returns 0 when no numeric token is present.
func ExtractAmount(s string) int {
	if s == "" {
		return 0
	}
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	cleaned := strings.NewReplacer(".", "", ",", "").Replace(m[1])
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if strings.Contains(strings.ToLower(m[0]), "k") {
		n *= 1000
	}
	return int(n)
}

var nonDigit = regexp.MustCompile(`\D`)

// Phone strips all non-digit characters and normalizes the result to the 62
// country-code format used across the ledgers. Empty input stays empty.
func Phone(raw string) string {
	cleaned := nonDigit.ReplaceAllString(raw, "")
	if cleaned == "" {
		return ""
	}
	if strings.HasPrefix(cleaned, "0") {
		return "62" + cleaned[1:]
	}
	if !strings.HasPrefix(cleaned, "62") {
		return "62" + cleaned
	}
	return cleaned
}

// expeditionLookup maps the shorthand couriers type into chat onto canonical
// expedition names.
var expeditionLookup = map[string]string{
	"id":         "ID Express",
	"idx":        "ID Express",
	"id express": "ID Express",
	"sap":        "SAP Logistic",
	"ninja":      "Ninja Xpress",
	"jne":        "JNE",
	"jnt":        "J&T Express",
	"j&t":        "J&T Express",
	"spx":        "SPX",
}

// Expedition canonicalizes a courier token case-insensitively. Unknown tokens
// pass through trimmed but otherwise untouched.
func Expedition(token string) string {
	trimmed := strings.TrimSpace(token)
	if canonical, ok := expeditionLookup[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Date layouts understood by FormatDate.
const (
	LayoutShort = "dd/MM/yyyy"
	LayoutLong  = "EEEE, dd MMMM yyyy"
)

// Monday-first, matching time.Time.Weekday() shifted by one.
var dayNames = []string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu", "Minggu"}

var monthNames = []string{
	"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDate renders t using one of the fixed layouts above. LayoutLong uses
// Indonesian day and month names. Unknown layouts fall back to dd/MM/yyyy.
func FormatDate(t time.Time, layout string) string {
	switch layout {
	case LayoutLong:
		// time.Weekday is Sunday-based; the name table is Monday-based.
		day := dayNames[(int(t.Weekday())+6)%7]
		return fmt.Sprintf("%s, %d %s %d", day, t.Day(), monthNames[t.Month()], t.Year())
	default:
		return t.Format("02/01/2006")
	}
}

// MonthName returns the Indonesian name of m.
func MonthName(m time.Month) string {
	return monthNames[m]
}

// FormatTimestamp renders the "DD/MM/YYYY HH:MM:SS" input timestamp written
// into the last ledger column.
func FormatTimestamp(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}
