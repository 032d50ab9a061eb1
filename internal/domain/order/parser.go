package order

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/doorasi/closingbot/internal/domain/normalize"
)

var (
	marketplacePattern = regexp.MustCompile(`(?i)SALES\s+\d+\s*-\s*(SHOPEE|LAZADA|TIKTOK|TIK TOK)`)
	boxQtyPattern      = regexp.MustCompile(`(?i)(\d+)\s+Box`)
	sachetQtyPattern   = regexp.MustCompile(`(?i)(\d+)\s+Sachet`)
)

// Platform reports the marketplace a message was sold through, detected from
// its "SALES <n> - <PLATFORM>" header. ok is false for regular orders.
func Platform(text string) (platform string, ok bool) {
	m := marketplacePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

// Parse converts a raw order message into a Record. It is total: malformed
// input degrades to zero-valued fields, unrecognized keyed lines land in
// Extra, and keyless lines either continue the previous address field or
// accumulate into Notes.
func Parse(text string) Record {
	rec := Record{Extra: map[string]string{}}
	lines := strings.Split(text, "\n")

	_, marketplace := Platform(text)
	if marketplace && len(lines) > 1 {
		// The line after the SALES header carries the marketplace invoice.
		rec.OrderID = strings.TrimSpace(lines[1])
		lines = append(lines[:1], lines[2:]...)
	}

	var notes []string
	currentKey := ""

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, val, keyed := strings.Cut(line, ":")
		if !keyed {
			// Continuation line: extend the address field in progress, or
			// collect as a note.
			text := strings.TrimSpace(line)
			switch currentKey {
			case "alamat jalan":
				rec.Address += "\n" + text
			case "desa/kelurahan":
				rec.Subdistrict += "\n" + text
			case "kecamatan":
				rec.District += "\n" + text
			case "kab/kota":
				rec.City += "\n" + text
			default:
				notes = append(notes, text)
			}
			continue
		}

		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		currentKey = key

		switch key {
		case "doorasi":
			rec.BoxQty = firstInt(boxQtyPattern, val)
			rec.SachetQty = firstInt(sachetQtyPattern, val)
			rec.Price = normalize.ExtractAmount(val)
		case "sku":
			rec.SKU = val
		case "total pembayaran":
			rec.TotalPayment = normalize.ExtractAmount(val)
		case "ongkir":
			rec.ShippingFee = normalize.ExtractAmount(val)
		case "ekspedisi":
			courier, payment, found := strings.Cut(val, "-")
			rec.Expedition = normalize.Expedition(courier)
			if found {
				rec.PaymentMethod = strings.TrimSpace(payment)
			} else {
				rec.PaymentMethod = "-"
			}
		case "nama":
			rec.CustomerName = val
		case "no hp":
			rec.Phone = normalize.Phone(val)
		case "alamat jalan":
			rec.Address = val
		case "desa/kelurahan":
			rec.Subdistrict = val
		case "kecamatan":
			rec.District = val
		case "kab/kota":
			rec.City = val
		case "kode pos":
			rec.PostalCode = val
		default:
			rec.Extra[key] = val
		}
	}

	if !marketplace && len(notes) > 0 {
		rec.Notes = strings.Join(notes, "\n")
	}

	return rec
}

// firstInt returns the first captured integer of p in s, or 0.
func firstInt(p *regexp.Regexp, s string) int {
	m := p.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
