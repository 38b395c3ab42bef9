package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

type healthHandlers struct {
	DB       DatabaseStatus
	clockNow func() time.Time
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{
		DB:       deps.DB,
		clockNow: time.Now,
	}
}

// Health is intentionally cheap so uptime pings can call it frequently.
func (h *healthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	db := "not_configured"
	if h.DB != nil && h.DB.Ready() {
		db = "client_initialized"
	}

	payload := dto.HealthResponse{
		Status:    "ok",
		Database:  db,
		Timestamp: h.clockNow().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode health response", "error", err)
	}
}

func (h *healthHandlers) Info(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"message": "Welcome to AI Expense Tracker API",
		"endpoints": map[string]string{
			"add_expense":   "/expenses/add [POST]",
			"list_expenses": "/expenses/list/{user_id} [GET]",
			"scan_receipt":  "/expenses/scan-receipt [POST]",
			"health":        "/health [GET]",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode info response", "error", err)
	}
}
