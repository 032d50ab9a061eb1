package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doorasi/closingbot/internal/api"
	"github.com/doorasi/closingbot/internal/application/intake"
	"github.com/doorasi/closingbot/internal/application/report"
	"github.com/doorasi/closingbot/internal/infrastructure/config"
	"github.com/doorasi/closingbot/internal/infrastructure/sheets"
	"github.com/doorasi/closingbot/internal/infrastructure/telegram"
)

func newTestServer(t *testing.T) (*api.Server, *sheets.MockLedger, *telegram.MockMessenger) {
	t.Helper()

	regular := sheets.NewMockLedger()
	marketplace := sheets.NewMockLedger()
	messenger := telegram.NewMockMessenger()

	agg := report.NewAggregator(regular, marketplace, nil)
	svc := intake.NewService(regular, marketplace, &sheets.MockRoster{}, messenger, agg,
		config.TelegramConfig{AdminChatID: "admin"}, nil)

	return api.NewServer(api.Config{Port: 5000}, svc, nil), regular, messenger
}

func TestHealthEndpoint(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestWebhook(t *testing.T) {
	t.Run("processes an order message", func(t *testing.T) {
		server, regular, messenger := newTestServer(t)

		payload := `{
			"update_id": 1,
			"message": {
				"message_id": 10,
				"from": {"id": 1, "first_name": "Sari"},
				"chat": {"id": -100123, "type": "supergroup"},
				"text": "SALES\nDoorasi: 1 Box\nSKU: DRSBOX-1\nTotal Pembayaran: 150k\nOngkir: 10k\nEkspedisi: jne - COD\nNama: Budi\nNo HP: 0812000111\nAlamat Jalan: Jl. Mawar 1\nDesa/Kelurahan: Sukamaju\nKecamatan: Beji\nKab/Kota: Depok"
			}
		}`

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, regular.AppendedRows, 1)
		assert.Contains(t, messenger.LastSent().Text, "✅ Success! Budi berhasil diinput")
	})

	t.Run("acknowledges an edited message", func(t *testing.T) {
		server, regular, _ := newTestServer(t)

		payload := `{"update_id": 2, "edited_message": {"message_id": 11, "from": {"id": 1, "first_name": "Sari"}, "chat": {"id": -100123}, "text": "halo"}}`

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, regular.AppendedRows)
	})

	t.Run("malformed payload still returns 200", func(t *testing.T) {
		server, _, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		server, regular, messenger := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"update_id": 3}`))
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, regular.AppendedRows)
		assert.Empty(t, messenger.Sent)
	})
}
