package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/middleware"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/internal/response"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

type expenseHandlers struct {
	ResponseHandler response.ResponseHandler
	ExpenseSvc      ExpenseService
	AuthRequired    bool
}

func NewExpenseHandlers(deps *Deps) *expenseHandlers {
	return &expenseHandlers{
		ResponseHandler: deps.ResponseHandler,
		ExpenseSvc:      deps.ExpenseSvc,
		AuthRequired:    deps.AuthRequired,
	}
}

func (h *expenseHandlers) ExpenseRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/add", h.Add)
	r.Get("/list/{userID}", h.List)
	r.Post("/scan-receipt", h.ScanReceipt)
	r.Delete("/{userID}/{expenseID}", h.Delete)
	return r
}

func (h *expenseHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var body dto.AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("Invalid JSON format"))
		return
	}
	if body.UserID == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("Missing user_id"))
		return
	}
	if err := h.checkIdentity(r, body.UserID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	var (
		stored models.Expense
		err    error
	)
	if body.Text != "" {
		stored, err = h.ExpenseSvc.AddFromText(r.Context(), body.UserID, body.Text)
	} else {
		if body.Amount == nil || body.Category == "" || body.Date == "" || body.Description == "" {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("Missing required fields"))
			return
		}
		stored, err = h.ExpenseSvc.AddDirect(r.Context(), body.UserID, body)
	}
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, stored)
}

// List writes a bare JSON array, not the success envelope; that is the wire
// contract of the original API.
func (h *expenseHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "userID")

	expenses, err := h.ExpenseSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(expenses); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode expense list", "error", err)
	}
}

func (h *expenseHandlers) ScanReceipt(w http.ResponseWriter, r *http.Request) {
	var body dto.ScanReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("Invalid JSON format"))
		return
	}
	if body.Image == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("No image data provided"))
		return
	}
	if body.Save {
		if err := h.checkIdentity(r, body.UserID); err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
	}

	result, err := h.ExpenseSvc.ScanReceipt(r.Context(), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	if result.Expense != nil {
		h.ResponseHandler.WriteSuccess(w, http.StatusOK, result)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, result.Parsed)
}

func (h *expenseHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "userID")
	id := chi.URLParam(r, "expenseID")

	if err := h.checkIdentity(r, uid); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.ExpenseSvc.Delete(r.Context(), uid, id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, http.StatusOK, map[string]string{"deleted": id})
}

// checkIdentity enforces that, when auth is on, the verified token UID
// matches the user the request claims to act for.
func (h *expenseHandlers) checkIdentity(r *http.Request, uid string) error {
	if !h.AuthRequired {
		return nil
	}
	if authUID := middleware.UID(r.Context()); authUID != uid {
		return errs.NewValidationError("user_id does not match authenticated user")
	}
	return nil
}
