package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/middleware"
	"github.com/GregMSThompson/expense-backend/internal/models"
)

type stubExpenseService struct {
	addTextCalled bool
	addTextUID    string
	addTextText   string

	addDirectCalled bool
	addDirectReq    dto.AddExpenseRequest

	listResp []models.Expense
	listErr  error

	scanCalled bool
	scanReq    dto.ScanReceiptRequest
	scanResult dto.ScanReceiptResult

	deleteCalled  bool
	deleteUID, id string

	err error
}

func (s *stubExpenseService) AddFromText(_ context.Context, uid, text string) (models.Expense, error) {
	s.addTextCalled = true
	s.addTextUID = uid
	s.addTextText = text
	if s.err != nil {
		return models.Expense{}, s.err
	}
	return models.Expense{ID: "exp-1", UserID: uid, RawText: text}, nil
}

func (s *stubExpenseService) AddDirect(_ context.Context, uid string, req dto.AddExpenseRequest) (models.Expense, error) {
	s.addDirectCalled = true
	s.addDirectReq = req
	if s.err != nil {
		return models.Expense{}, s.err
	}
	return models.Expense{ID: "exp-1", UserID: uid}, nil
}

func (s *stubExpenseService) List(_ context.Context, uid string) ([]models.Expense, error) {
	return s.listResp, s.listErr
}

func (s *stubExpenseService) ScanReceipt(_ context.Context, req dto.ScanReceiptRequest) (dto.ScanReceiptResult, error) {
	s.scanCalled = true
	s.scanReq = req
	if s.err != nil {
		return dto.ScanReceiptResult{}, s.err
	}
	return s.scanResult, nil
}

func (s *stubExpenseService) Delete(_ context.Context, uid, id string) error {
	s.deleteCalled = true
	s.deleteUID = uid
	s.id = id
	return s.err
}

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

func newTestHandlers(svc ExpenseService, resp *stubResponseHandler) *expenseHandlers {
	return NewExpenseHandlers(&Deps{
		ResponseHandler: resp,
		ExpenseSvc:      svc,
	})
}

func TestAddTextPath(t *testing.T) {
	svc := &stubExpenseService{}
	resp := &stubResponseHandler{}
	h := newTestHandlers(svc, resp)

	body := `{"user_id":"user-1","text":"Spent 500 rupees on car"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses/add", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Add(rr, req)

	if !svc.addTextCalled {
		t.Fatalf("expected AddFromText to be called")
	}
	if svc.addDirectCalled {
		t.Fatalf("AddDirect should not run when text is present")
	}
	if svc.addTextUID != "user-1" || svc.addTextText != "Spent 500 rupees on car" {
		t.Fatalf("service received wrong args: uid=%q text=%q", svc.addTextUID, svc.addTextText)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("WriteSuccess not called with status 200")
	}
}

func TestAddDirectPath(t *testing.T) {
	svc := &stubExpenseService{}
	resp := &stubResponseHandler{}
	h := newTestHandlers(svc, resp)

	body := `{"user_id":"user-1","amount":42.5,"category":"Food","date":"2025-03-10","description":"Lunch"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses/add", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Add(rr, req)

	if !svc.addDirectCalled {
		t.Fatalf("expected AddDirect to be called")
	}
	if svc.addTextCalled {
		t.Fatalf("AddFromText should not run on the direct path")
	}
	if !resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess not called")
	}
}

func TestAddInvalidJSON(t *testing.T) {
	svc := &stubExpenseService{}
	resp := &stubResponseHandler{}
	h := newTestHandlers(svc, resp)

	req := httptest.NewRequest(http.MethodPost, "/expenses/add", strings.NewReader("not-json"))
	rr := httptest.NewRecorder()

	h.Add(rr, req)

	if svc.addTextCalled || svc.addDirectCalled {
		t.Fatalf("service should not be called on malformed JSON")
	}
	var validation *errs.ValidationError
	if !errors.As(resp.handleError, &validation) {
		t.Fatalf("expected validation error, got %v", resp.handleError)
	}
	if validation.Message != "Invalid JSON format" {
		t.Fatalf("message mismatch: %q", validation.Message)
	}
}

func TestAddMissingUserID(t *testing.T) {
	svc := &stubExpenseService{}
	resp := &stubResponseHandler{}
	h := newTestHandlers(svc, resp)

	req := httptest.NewRequest(http.MethodPost, "/expenses/add", strings.NewReader(`{"text":"coffee 5"}`))
	rr := httptest.NewRecorder()

	h.Add(rr, req)

	var validation *errs.ValidationError
	if !errors.As(resp.handleError, &validation) {
		t.Fatalf("expected validation error, got %v", resp.handleError)
	}
	if validation.Message != "Missing user_id" {
		t.Fatalf("message mismatch: %q", validation.Message)
	}
}

func TestAddDirectMissingFields(t *testing.T) {
	svc := &stubExpenseService{}
	resp := &stubResponseHandler{}
	h := newTestHandlers(svc, resp)

	// no text, no category: neither ingest shape is complete
	body := `{"user_id":"user-1","amount":10,"date":"2025-03-10","description":"Lunch"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses/add", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Add(rr, req)

	if svc.addDirectCalled {
		t.Fatalf("AddDirect should not run with incomplete fields")
	}
	var validation *errs.ValidationError
	if !errors.As(resp.handleError, &validation) {
		t.Fatalf("expected validation error, got %v", resp.handleError)
	}
	if validation.Message != "Missing required fields" {
		t.Fatalf("message mismatch: %q", validation.Message)
	}
}

func TestAddIdentityMismatch(t *testing.T) {
	svc := &stubExpenseService{}
	resp := &stubResponseHandler{}
	h := NewExpenseHandlers(&Deps{
		ResponseHandler: resp,
		ExpenseSvc:      svc,
		AuthRequired:    true,
	})

	body := `{"user_id":"someone-else","text":"coffee 5"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses/add", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), middleware.UIDKey, "user-1"))
	rr := httptest.NewRecorder()

	h.Add(rr, req)

	if svc.addTextCalled {
		t.Fatalf("service should not run when identities do not match")
	}
	if !resp.handleErrorCalled {
		t.Fatalf("expected an identity error")
	}
}

func TestListWritesBareArray(t *testing.T) {
	svc := &stubExpenseService{
		listResp: []models.Expense{{ID: "a", UserID: "user-1"}, {ID: "b", UserID: "user-1"}},
	}
	h := newTestHandlers(svc, &stubResponseHandler{})

	rr := httptest.NewRecorder()
	h.ExpenseRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/list/user-1", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var expenses []models.Expense
	if err := json.Unmarshal(rr.Body.Bytes(), &expenses); err != nil {
		t.Fatalf("list response is not a bare array: %v (%s)", err, rr.Body.String())
	}
	if len(expenses) != 2 || expenses[0].ID != "a" {
		t.Fatalf("list mismatch: %+v", expenses)
	}
}

func TestListEmptyIsArrayNotNull(t *testing.T) {
	svc := &stubExpenseService{listResp: nil}
	h := newTestHandlers(svc, &stubResponseHandler{})

	rr := httptest.NewRecorder()
	h.ExpenseRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/list/user-1", nil))

	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestScanReceiptWithoutImage(t *testing.T) {
	svc := &stubExpenseService{}
	resp := &stubResponseHandler{}
	h := newTestHandlers(svc, resp)

	req := httptest.NewRequest(http.MethodPost, "/expenses/scan-receipt", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	h.ScanReceipt(rr, req)

	if svc.scanCalled {
		t.Fatalf("service should not be called without image data")
	}
	var validation *errs.ValidationError
	if !errors.As(resp.handleError, &validation) {
		t.Fatalf("expected validation error, got %v", resp.handleError)
	}
	if validation.Message != "No image data provided" {
		t.Fatalf("message mismatch: %q", validation.Message)
	}
}

func TestScanReceiptParseOnly(t *testing.T) {
	parsed := dto.ParsedExpense{Amount: 12, Category: "Food", Date: "2025-03-10", Description: "Cafe"}
	svc := &stubExpenseService{scanResult: dto.ScanReceiptResult{Parsed: parsed}}
	resp := &stubResponseHandler{}
	h := newTestHandlers(svc, resp)

	req := httptest.NewRequest(http.MethodPost, "/expenses/scan-receipt", strings.NewReader(`{"image":"aW1n"}`))
	rr := httptest.NewRecorder()

	h.ScanReceipt(rr, req)

	if !resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess not called")
	}
	// without save the payload is the parsed record alone
	if got, ok := resp.writeSuccessData.(dto.ParsedExpense); !ok || got != parsed {
		t.Fatalf("payload mismatch: %#v", resp.writeSuccessData)
	}
}

func TestScanReceiptSaved(t *testing.T) {
	expense := models.Expense{ID: "exp-1", UserID: "user-1"}
	receipt := models.Receipt{ID: "rcpt-1", ExpenseID: "exp-1"}
	svc := &stubExpenseService{
		scanResult: dto.ScanReceiptResult{
			Parsed:  dto.ParsedExpense{Amount: 12},
			Expense: &expense,
			Receipt: &receipt,
		},
	}
	resp := &stubResponseHandler{}
	h := newTestHandlers(svc, resp)

	body := `{"image":"aW1n","user_id":"user-1","save":true}`
	req := httptest.NewRequest(http.MethodPost, "/expenses/scan-receipt", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.ScanReceipt(rr, req)

	if !svc.scanCalled || !svc.scanReq.Save {
		t.Fatalf("service did not receive the save flag")
	}
	result, ok := resp.writeSuccessData.(dto.ScanReceiptResult)
	if !ok {
		t.Fatalf("payload mismatch: %#v", resp.writeSuccessData)
	}
	if result.Expense == nil || result.Receipt == nil {
		t.Fatalf("saved scan should include expense and receipt: %+v", result)
	}
}

func TestScanReceiptServiceError(t *testing.T) {
	svc := &stubExpenseService{err: errs.NewScanError(errors.New("unreadable"))}
	resp := &stubResponseHandler{}
	h := newTestHandlers(svc, resp)

	req := httptest.NewRequest(http.MethodPost, "/expenses/scan-receipt", strings.NewReader(`{"image":"aW1n"}`))
	rr := httptest.NewRecorder()

	h.ScanReceipt(rr, req)

	var scanErr *errs.ScanError
	if !errors.As(resp.handleError, &scanErr) {
		t.Fatalf("expected *errs.ScanError, got %v", resp.handleError)
	}
	if resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess should not be called on error")
	}
}

func TestDeleteRoute(t *testing.T) {
	svc := &stubExpenseService{}
	resp := &stubResponseHandler{}
	h := newTestHandlers(svc, resp)

	rr := httptest.NewRecorder()
	h.ExpenseRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/user-1/exp-9", nil))

	if !svc.deleteCalled {
		t.Fatalf("expected Delete to be called")
	}
	if svc.deleteUID != "user-1" || svc.id != "exp-9" {
		t.Fatalf("wrong identifiers: uid=%q id=%q", svc.deleteUID, svc.id)
	}
	if !resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess not called")
	}
}
