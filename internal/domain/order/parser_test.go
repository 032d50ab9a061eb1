package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doorasi/closingbot/internal/domain/order"
)

const regularOrderText = `SALES 1
Doorasi: 5 Box
SKU: DRSBOX-5
Total Pembayaran: Rp 370.000
Ongkir: Rp 20k
Ekspedisi: jnt - COD
Nama: Ibu Sari
No HP: 08123456789
Alamat Jalan: Jl. Melati No 3
RT 02 RW 05
Desa/Kelurahan: Sukamaju
Kecamatan: Cilodong
Kab/Kota: Depok
Kode Pos: 16415
Agen Budi Santoso#12`

func TestParse_RegularOrder(t *testing.T) {
	rec := order.Parse(regularOrderText)

	assert.Equal(t, 5, rec.BoxQty)
	assert.Equal(t, 0, rec.SachetQty)
	assert.Equal(t, "DRSBOX-5", rec.SKU)
	assert.Equal(t, 370000, rec.TotalPayment)
	assert.Equal(t, 20000, rec.ShippingFee)
	assert.Equal(t, "J&T Express", rec.Expedition)
	assert.Equal(t, "COD", rec.PaymentMethod)
	assert.Equal(t, "Ibu Sari", rec.CustomerName)
	assert.Equal(t, "628123456789", rec.Phone)
	assert.Equal(t, "Jl. Melati No 3\nRT 02 RW 05", rec.Address)
	assert.Equal(t, "Sukamaju", rec.Subdistrict)
	assert.Equal(t, "Cilodong", rec.District)
	assert.Equal(t, "Depok", rec.City)
	assert.Equal(t, "16415", rec.PostalCode)
	assert.Equal(t, "Agen Budi Santoso#12", rec.Notes)
	assert.Empty(t, rec.OrderID)
}

func TestParse_MarketplaceOrder(t *testing.T) {
	text := "SALES 2 - SHOPEE\n2508315TYBRX0\nDoorasi: 1 Box\nSKU: DRSBOX-1\nNama: Pembeli Shopee\nNo HP: 0811222333\ncatatan lepas"

	rec := order.Parse(text)

	assert.Equal(t, "2508315TYBRX0", rec.OrderID)
	assert.Equal(t, 1, rec.BoxQty)
	assert.Equal(t, "Pembeli Shopee", rec.CustomerName)
	// Marketplace orders never accumulate notes, even from stray lines.
	assert.Empty(t, rec.Notes)
}

func TestParse_MarketplaceHeaderWithoutInvoiceLine(t *testing.T) {
	rec := order.Parse("SALES 3 - LAZADA")
	assert.Empty(t, rec.OrderID)
}

func TestParse_ContinuationLines(t *testing.T) {
	t.Run("address continuation keeps current key", func(t *testing.T) {
		text := "Alamat Jalan: Jl. Anggrek 7\nBlok C2\ndepan warung bu Eni\nKecamatan: Beji"
		rec := order.Parse(text)

		assert.Equal(t, "Jl. Anggrek 7\nBlok C2\ndepan warung bu Eni", rec.Address)
		assert.Equal(t, "Beji", rec.District)
	})

	t.Run("non-address continuation becomes notes", func(t *testing.T) {
		text := "Nama: Ibu Sari\nkirim siang saja\njangan lupa bubble wrap"
		rec := order.Parse(text)

		assert.Equal(t, "kirim siang saja\njangan lupa bubble wrap", rec.Notes)
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		text := "Nama: Ibu Sari\n\n\nSKU: DRSA-10"
		rec := order.Parse(text)

		assert.Equal(t, "Ibu Sari", rec.CustomerName)
		assert.Equal(t, "DRSA-10", rec.SKU)
		assert.Empty(t, rec.Notes)
	})
}

func TestParse_DoorasiLine(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		box       int
		sachet    int
	}{
		{"box only", "Doorasi: 5 Box", 5, 0},
		{"sachet only", "Doorasi: 10 Sachet", 0, 10},
		{"box and sachet", "Doorasi: 2 Box 3 Sachet", 2, 3},
		{"lowercase units", "doorasi: 4 box 1 sachet", 4, 1},
		{"no quantities", "Doorasi: promo", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := order.Parse(tt.value)
			assert.Equal(t, tt.box, rec.BoxQty)
			assert.Equal(t, tt.sachet, rec.SachetQty)
		})
	}
}

func TestParse_EkspedisiLine(t *testing.T) {
	t.Run("courier and payment", func(t *testing.T) {
		rec := order.Parse("Ekspedisi: id - TRANSFER")
		assert.Equal(t, "ID Express", rec.Expedition)
		assert.Equal(t, "TRANSFER", rec.PaymentMethod)
	})

	t.Run("missing payment segment", func(t *testing.T) {
		rec := order.Parse("Ekspedisi: JNE")
		assert.Equal(t, "JNE", rec.Expedition)
		assert.Equal(t, "-", rec.PaymentMethod)
	})

	t.Run("unknown courier passes through", func(t *testing.T) {
		rec := order.Parse("Ekspedisi: SiCepat - COD")
		assert.Equal(t, "SiCepat", rec.Expedition)
	})
}

func TestParse_UnrecognizedKeyGoesToExtra(t *testing.T) {
	rec := order.Parse("Patokan: dekat masjid\nNama: Ibu Sari")

	require.Contains(t, rec.Extra, "patokan")
	assert.Equal(t, "dekat masjid", rec.Extra["patokan"])
}

func TestParse_ValueKeepsFurtherColons(t *testing.T) {
	rec := order.Parse("Nama: Ibu Sari: Toko Melati")
	assert.Equal(t, "Ibu Sari: Toko Melati", rec.CustomerName)
}

func TestPlatform(t *testing.T) {
	tests := []struct {
		text     string
		platform string
		ok       bool
	}{
		{"SALES 2 - SHOPEE", "SHOPEE", true},
		{"sales 12 - lazada", "LAZADA", true},
		{"SALES 3 - TIK TOK", "TIK TOK", true},
		{"SALES 4-TIKTOK", "TIKTOK", true},
		{"SALES 1", "", false},
		{"SALES - SHOPEE", "", false}, // header requires a number
	}

	for _, tt := range tests {
		platform, ok := order.Platform(tt.text)
		assert.Equal(t, tt.ok, ok, "text %q", tt.text)
		assert.Equal(t, tt.platform, platform, "text %q", tt.text)
	}
}
