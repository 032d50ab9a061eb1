package order

import (
	"strconv"
	"strings"
)

// requiredMarkers are the field labels every regular order message must
// contain, checked case-insensitively against the raw text.
var requiredMarkers = []string{
	"Doorasi:", "SKU:", "Ongkir:", "Total Pembayaran:",
	"Nama:", "No HP:", "Alamat Jalan:", "Desa/Kelurahan:",
}

// Validate checks a regular order message against the intake rules and
// returns one human-readable message per failure. All checks run; nothing
// short-circuits. An empty slice means the order may be persisted.
//
// text is the raw message and rec the Record obtained by parsing it.
func Validate(text string, rec Record) []string {
	var errs []string

	lowered := strings.ToLower(text)
	for _, marker := range requiredMarkers {
		if !strings.Contains(lowered, strings.ToLower(marker)) {
			errs = append(errs, "🚨 Missing '"+marker+"'")
		}
	}

	if rec.SKU == "" {
		errs = append(errs, "🚨 Invalid SKU format")
	}

	// DRSBOX-N / DRSA-N encode the expected quantity in the SKU itself.
	if n, ok := skuQty(rec.SKU, "DRSBOX-"); ok && rec.BoxQty != n {
		errs = append(errs, "🚨 Box qty mismatch")
	} else if n, ok := skuQty(rec.SKU, "DRSA-"); ok && rec.SachetQty != n {
		errs = append(errs, "🚨 Sachet qty mismatch")
	}

	switch strings.ToUpper(rec.PaymentMethod) {
	case "COD", "TRANSFER":
	default:
		errs = append(errs, "🚨 Invalid payment method. Must be COD or TRANSFER.")
	}

	return errs
}

// skuQty extracts the trailing quantity of a SKU with the given prefix.
func skuQty(sku, prefix string) (int, bool) {
	if !strings.HasPrefix(sku, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(sku, prefix))
	if err != nil {
		return 0, false
	}
	return n, true
}
