package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/doorasi/closingbot/internal/api/dto"
	"github.com/doorasi/closingbot/internal/application/intake"
	"github.com/doorasi/closingbot/internal/infrastructure/telegram"
)

// WebhookHandler receives Telegram update deliveries and hands them to the
// intake pipeline.
type WebhookHandler struct {
	intake *intake.Service
	logger *slog.Logger
}

// NewWebhookHandler creates a webhook handler over the intake service.
func NewWebhookHandler(svc *intake.Service, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{intake: svc, logger: logger}
}

// ServeHTTP processes one update. It always acknowledges with 200: a non-2xx
// response makes Telegram redeliver the update, and a malformed or already
// handled payload does not get better on retry.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn("decoding webhook payload", "error", err)
		writeJSON(w, http.StatusOK, dto.WebhookResponse{Status: "ok"})
		return
	}

	msg := update.Message
	if msg == nil {
		msg = update.EditedMessage
	}
	h.intake.HandleMessage(r.Context(), msg)

	writeJSON(w, http.StatusOK, dto.WebhookResponse{Status: "ok"})
}
