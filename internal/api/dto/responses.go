package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse returns a healthy response stamped with the current time.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// WebhookResponse acknowledges a webhook delivery. The status is always "ok";
// returning anything else would make Telegram redeliver the update.
type WebhookResponse struct {
	Status string `json:"status"`
}
