package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", e.Message)

	case *errs.MissingFieldError:
		log.Warn("model response incomplete", "fields", e.Fields)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", e.Message)

	case *errs.InvalidAmountError:
		log.Warn("invalid amount", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", e.Message)

	case *errs.ParseError:
		log.Warn("expense parsing failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "parse_failed",
			"Parsing failed. Check server logs for details.")

	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", e.Message)

	case *errs.ScanError:
		log.Error("receipt scan failed", "error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "scan_failed", e.Message)

	case *errs.DatabaseUnavailableError:
		log.Error("database unavailable", "error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "database_unavailable", e.Message)

	case *errs.DatabaseError:
		log.Error("database error",
			"operation", e.Operation,
			"error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	case *errs.QuotaError:
		log.Warn("provider quota exhausted", "error", e.Message)
		h.WriteError(w, r, http.StatusServiceUnavailable, "service_unavailable",
			"Service temporarily unavailable")

	case *errs.ExternalServiceError:
		if e.Transient {
			log.Warn("external service error",
				"service", e.Service,
				"transient", true,
				"error", e.Message)
			h.WriteError(w, r, http.StatusServiceUnavailable, "service_unavailable",
				"Service temporarily unavailable")
			return
		}
		log.Error("external service error",
			"service", e.Service,
			"error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "external_service_error", e.Message)

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
