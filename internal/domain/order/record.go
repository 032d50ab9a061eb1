// Package order contains the parsing, validation and duplicate-detection
// logic for chat order messages. A message comes in as free text following a
// line-based "Key: value" grammar and leaves as a fully populated Record
// ready to be appended to a ledger.
package order

import (
	"strconv"
	"time"

	"github.com/doorasi/closingbot/internal/domain/normalize"
)

// Record is the structured result of parsing one order message. Every field
// is populated after Parse, with zero values standing in for anything the
// message did not provide. Parse never fails; problems surface through
// Validate instead.
type Record struct {
	// OrderID is the externally supplied invoice ID of a marketplace order.
	// Empty for regular orders, which get an ID synthesized at persist time.
	OrderID string

	CustomerService string
	CustomerName    string
	Phone           string // normalized 62-prefixed digits
	Address         string
	Subdistrict     string // desa/kelurahan
	District        string // kecamatan
	City            string // kab/kota
	PostalCode      string

	SKU          string
	BoxQty       int
	SachetQty    int
	Price        int // amount found on the Doorasi line, informational
	TotalPayment int
	ShippingFee  int

	Expedition    string
	PaymentMethod string // second segment of the Ekspedisi line, "-" when absent

	// Notes holds continuation lines that did not belong to an address
	// field. Marketplace orders never carry notes.
	Notes string

	// Extra keeps unrecognized "Key: value" lines verbatim.
	Extra map[string]string
}

// Ledger column headers, in persisted order. ReadAllRows returns rows keyed
// by these names; LedgerRow emits values in this order.
const (
	ColInvoiceID    = "INVOICE ID"
	ColDate         = "TANGGAL"
	ColOperator     = "CUSTOMER SERVICE"
	ColCustomer     = "NAMA"
	ColPhone        = "WHATSAPP"
	ColAddress      = "ALAMAT"
	ColSubdistrict  = "DESA/KELURAHAN"
	ColDistrict     = "KECAMATAN"
	ColCity         = "KAB/KOTA"
	ColPostalCode   = "KODE POS"
	ColCategory     = "KATEGORI"
	ColSKU          = "SKU"
	ColBoxQty       = "QTY BOX"
	ColSachetQty    = "QTY SACHET"
	ColTotalPayment = "TOTAL PEMBAYARAN"
	ColShippingFee  = "ONGKIR"
	ColExpedition   = "EKSPEDISI"
	ColPayment      = "PEMBAYARAN"
	ColNotes        = "CATATAN"
	ColInputDate    = "TANGGAL INPUT"
)

// Columns lists all ledger headers in persisted order.
var Columns = []string{
	ColInvoiceID, ColDate, ColOperator, ColCustomer, ColPhone,
	ColAddress, ColSubdistrict, ColDistrict, ColCity, ColPostalCode,
	ColCategory, ColSKU, ColBoxQty, ColSachetQty, ColTotalPayment,
	ColShippingFee, ColExpedition, ColPayment, ColNotes, ColInputDate,
}

// CategoryTag is the literal product category written into every row.
const CategoryTag = "DOORASI"

// Row is one persisted ledger row keyed by column header. Values are the raw
// cell strings as stored.
type Row map[string]string

// LedgerRow renders the record as the 20 ordered cell values of one ledger
// row. payment is the value of the PEMBAYARAN column: the payment method for
// regular orders, the platform name for marketplace orders.
func (r *Record) LedgerRow(invoiceID, payment string, now time.Time) []string {
	return []string{
		invoiceID,
		normalize.FormatDate(now, normalize.LayoutShort),
		r.CustomerService,
		r.CustomerName,
		r.Phone,
		r.Address,
		r.Subdistrict,
		r.District,
		r.City,
		r.PostalCode,
		CategoryTag,
		r.SKU,
		strconv.Itoa(r.BoxQty),
		strconv.Itoa(r.SachetQty),
		strconv.Itoa(r.TotalPayment),
		strconv.Itoa(r.ShippingFee),
		r.Expedition,
		payment,
		r.Notes,
		normalize.FormatTimestamp(now),
	}
}
