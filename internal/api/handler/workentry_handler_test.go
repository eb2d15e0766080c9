package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workledger/timesheet-service/internal/core/domain"
	"github.com/workledger/timesheet-service/internal/core/ports"
)

// stubService lets each test inject just the method under exercise.
type stubService struct {
	createFn          func(input ports.CreateWorkEntryInput) (*ports.CreateWorkEntryResult, error)
	updateFn          func(id string, input ports.UpdateWorkEntryInput) (*ports.WorkEntryDetail, error)
	getFn             func(id string) (*ports.WorkEntryDetail, error)
	listAllFn         func(input ports.ListWorkEntriesInput) (*ports.WorkEntryPage, error)
	listByDateRangeFn func(start, end time.Time, page, size int) (*ports.WorkEntryPage, error)
	listByStatusFn    func(status string, page, size int) (*ports.WorkEntryPage, error)
	listByDateFn      func(date time.Time) ([]ports.WorkEntrySummary, error)
	submitFn          func(id string) (*ports.WorkEntryDetail, error)
	lockFn            func(id string) (*ports.WorkEntryDetail, error)
	deleteFn          func(id string) error
	sumHoursFn        func(start, end time.Time) (float64, error)
	canModifyFn       func(id string) (bool, error)
}

func (s *stubService) Create(_ context.Context, input ports.CreateWorkEntryInput) (*ports.CreateWorkEntryResult, error) {
	return s.createFn(input)
}

func (s *stubService) Update(_ context.Context, id string, input ports.UpdateWorkEntryInput) (*ports.WorkEntryDetail, error) {
	return s.updateFn(id, input)
}

func (s *stubService) GetByID(_ context.Context, id string) (*ports.WorkEntryDetail, error) {
	return s.getFn(id)
}

func (s *stubService) ListAll(_ context.Context, input ports.ListWorkEntriesInput) (*ports.WorkEntryPage, error) {
	return s.listAllFn(input)
}

func (s *stubService) ListByDateRange(_ context.Context, start, end time.Time, page, size int) (*ports.WorkEntryPage, error) {
	return s.listByDateRangeFn(start, end, page, size)
}

func (s *stubService) ListByStatus(_ context.Context, status string, page, size int) (*ports.WorkEntryPage, error) {
	return s.listByStatusFn(status, page, size)
}

func (s *stubService) ListByDate(_ context.Context, date time.Time) ([]ports.WorkEntrySummary, error) {
	return s.listByDateFn(date)
}

func (s *stubService) Submit(_ context.Context, id string) (*ports.WorkEntryDetail, error) {
	return s.submitFn(id)
}

func (s *stubService) Lock(_ context.Context, id string) (*ports.WorkEntryDetail, error) {
	return s.lockFn(id)
}

func (s *stubService) Delete(_ context.Context, id string) error {
	return s.deleteFn(id)
}

func (s *stubService) SumHours(_ context.Context, start, end time.Time) (float64, error) {
	return s.sumHoursFn(start, end)
}

func (s *stubService) CanModify(_ context.Context, id string) (bool, error) {
	return s.canModifyFn(id)
}

func sampleDetail() ports.WorkEntryDetail {
	return ports.WorkEntryDetail{
		ID:               "abc123",
		WorkDate:         time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		ProgramType:      "CLIENT",
		ProgramReference: "ACME-ROLLOUT",
		TicketID:         "PROJ-42",
		HoursSpent:       7.5,
		Status:           "DRAFT",
		CreatedAt:        time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	}
}

func newTestContext(method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return envelope
}

// --- Create ---

func TestCreateHandler_Success(t *testing.T) {
	var received ports.CreateWorkEntryInput
	svc := &stubService{
		createFn: func(input ports.CreateWorkEntryInput) (*ports.CreateWorkEntryResult, error) {
			received = input
			return &ports.CreateWorkEntryResult{Entry: sampleDetail()}, nil
		},
	}
	h := NewWorkEntryHandler(svc)

	body := `{"work_date":"2026-08-28","program_type":"CLIENT","program_reference":"ACME-ROLLOUT","ticket_id":"PROJ-42","hours_spent":7.5}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/work-entries", body)
	c.Request().Header.Set("Idempotency-Key", "req-7")

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status: want 201, got %d", rec.Code)
	}
	if received.IdempotencyKey != "req-7" {
		t.Errorf("idempotency key not forwarded: %q", received.IdempotencyKey)
	}
	if !received.WorkDate.Equal(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("work date not parsed: %v", received.WorkDate)
	}

	envelope := decodeEnvelope(t, rec)
	if envelope["success"] != true {
		t.Error("expected success=true")
	}
	data := envelope["data"].(map[string]any)
	if data["id"] != "abc123" || data["hours_spent"] != 7.5 {
		t.Errorf("unexpected data: %v", data)
	}
}

func TestCreateHandler_IdempotentReplayReturnsOK(t *testing.T) {
	svc := &stubService{
		createFn: func(ports.CreateWorkEntryInput) (*ports.CreateWorkEntryResult, error) {
			return &ports.CreateWorkEntryResult{Entry: sampleDetail(), AlreadyExisted: true}, nil
		},
	}
	h := NewWorkEntryHandler(svc)

	body := `{"work_date":"2026-08-28","program_type":"CLIENT","program_reference":"ACME","hours_spent":8}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/work-entries", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("replay must return 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope["message"] != "work entry already created" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
}

func TestCreateHandler_RequestShapeRejections(t *testing.T) {
	svc := &stubService{
		createFn: func(ports.CreateWorkEntryInput) (*ports.CreateWorkEntryResult, error) {
			t.Fatal("service must not be reached on a bad request")
			return nil, nil
		},
	}
	h := NewWorkEntryHandler(svc)

	cases := []struct {
		name string
		body string
	}{
		{"missing program_type", `{"work_date":"2026-08-28","program_reference":"ACME","hours_spent":8}`},
		{"hours above request ceiling", `{"work_date":"2026-08-28","program_type":"CLIENT","program_reference":"ACME","hours_spent":9.5}`},
		{"zero hours", `{"work_date":"2026-08-28","program_type":"CLIENT","program_reference":"ACME","hours_spent":0}`},
		{"bad date format", `{"work_date":"28-08-2026","program_type":"CLIENT","program_reference":"ACME","hours_spent":8}`},
		{"unknown program type", `{"work_date":"2026-08-28","program_type":"VACATION","program_reference":"ACME","hours_spent":8}`},
		{"malformed json", `{"work_date":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/api/v1/work-entries", tc.body)

			err := h.Create(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) {
				t.Fatalf("expected echo.HTTPError, got %v", err)
			}
			if he.Code != http.StatusBadRequest {
				t.Errorf("status: want 400, got %d", he.Code)
			}
		})
	}
}

func TestCreateHandler_ServiceErrorPassesThrough(t *testing.T) {
	wantErr := domain.NewValidationError("work date cannot be more than 60 days in the past")
	svc := &stubService{
		createFn: func(ports.CreateWorkEntryInput) (*ports.CreateWorkEntryResult, error) {
			return nil, wantErr
		},
	}
	h := NewWorkEntryHandler(svc)

	body := `{"work_date":"2026-01-01","program_type":"CLIENT","program_reference":"ACME","hours_spent":8}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/work-entries", body)

	err := h.Create(c)
	if !errors.Is(err, wantErr) {
		t.Errorf("service error must pass through untouched, got %v", err)
	}
}

// --- Update ---

func TestUpdateHandler_ForwardsPatchFields(t *testing.T) {
	var receivedID string
	var received ports.UpdateWorkEntryInput
	svc := &stubService{
		updateFn: func(id string, input ports.UpdateWorkEntryInput) (*ports.WorkEntryDetail, error) {
			receivedID = id
			received = input
			d := sampleDetail()
			return &d, nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/api/v1/work-entries/abc123", `{"hours_spent":6.5}`)
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: want 200, got %d", rec.Code)
	}
	if receivedID != "abc123" {
		t.Errorf("id not forwarded: %q", receivedID)
	}
	if received.HoursSpent == nil || *received.HoursSpent != 6.5 {
		t.Errorf("hours not forwarded: %v", received.HoursSpent)
	}
	if received.WorkDate != nil || received.ProgramType != nil || received.TicketID != nil {
		t.Error("absent fields must stay nil")
	}
}

func TestUpdateHandler_NotFoundPassesThrough(t *testing.T) {
	svc := &stubService{
		updateFn: func(string, ports.UpdateWorkEntryInput) (*ports.WorkEntryDetail, error) {
			return nil, domain.NewNotFoundError("WorkEntry", "id", "missing1")
		},
	}
	h := NewWorkEntryHandler(svc)

	c, _ := newTestContext(http.MethodPut, "/api/v1/work-entries/missing1", `{"hours_spent":2}`)
	c.SetParamNames("id")
	c.SetParamValues("missing1")

	err := h.Update(c)
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError pass-through, got %v", err)
	}
}

// --- Get / lifecycle ---

func TestGetHandler_RendersDetail(t *testing.T) {
	svc := &stubService{
		getFn: func(id string) (*ports.WorkEntryDetail, error) {
			d := sampleDetail()
			return &d, nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/v1/work-entries/abc123", "")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	if data["work_date"] != "2026-08-28" {
		t.Errorf("work_date must render as YYYY-MM-DD, got %v", data["work_date"])
	}
	if data["status"] != "DRAFT" || data["ticket_id"] != "PROJ-42" {
		t.Errorf("unexpected data: %v", data)
	}
}

func TestSubmitHandler(t *testing.T) {
	svc := &stubService{
		submitFn: func(id string) (*ports.WorkEntryDetail, error) {
			d := sampleDetail()
			d.Status = "SUBMITTED"
			return &d, nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodPatch, "/api/v1/work-entries/abc123/submit", "")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := h.Submit(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: want 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	if data["status"] != "SUBMITTED" {
		t.Errorf("unexpected status: %v", data["status"])
	}
}

func TestLockHandler_ConflictPassesThrough(t *testing.T) {
	svc := &stubService{
		lockFn: func(id string) (*ports.WorkEntryDetail, error) {
			return nil, &domain.InvalidStateError{
				Message:  "cannot lock work entry in DRAFT state",
				Current:  "DRAFT",
				Expected: "SUBMITTED",
			}
		},
	}
	h := NewWorkEntryHandler(svc)

	c, _ := newTestContext(http.MethodPatch, "/api/v1/work-entries/abc123/lock", "")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	err := h.Lock(c)
	var stateErr *domain.InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Errorf("expected InvalidStateError pass-through, got %v", err)
	}
}

func TestDeleteHandler(t *testing.T) {
	deleted := ""
	svc := &stubService{
		deleteFn: func(id string) error {
			deleted = id
			return nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/api/v1/work-entries/abc123", "")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "abc123" {
		t.Errorf("id not forwarded: %q", deleted)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: want 200, got %d", rec.Code)
	}
}

// --- Lists ---

func TestListHandler_ForwardsQueryParams(t *testing.T) {
	var received ports.ListWorkEntriesInput
	svc := &stubService{
		listAllFn: func(input ports.ListWorkEntriesInput) (*ports.WorkEntryPage, error) {
			received = input
			return ports.NewWorkEntryPage(nil, input.Page, input.Size, 0), nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/v1/work-entries?page=2&size=50&sortBy=hoursSpent&direction=ASC", "")

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: want 200, got %d", rec.Code)
	}
	if received.Page != 2 || received.Size != 50 || received.SortBy != "hoursSpent" || received.Direction != "ASC" {
		t.Errorf("query params not forwarded: %+v", received)
	}
}

func TestListHandler_DefaultsAndBadPage(t *testing.T) {
	var received ports.ListWorkEntriesInput
	svc := &stubService{
		listAllFn: func(input ports.ListWorkEntriesInput) (*ports.WorkEntryPage, error) {
			received = input
			return ports.NewWorkEntryPage(nil, input.Page, input.Size, 0), nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, _ := newTestContext(http.MethodGet, "/api/v1/work-entries", "")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.Page != 0 || received.Size != 20 {
		t.Errorf("defaults: want page=0 size=20, got %+v", received)
	}

	c, _ = newTestContext(http.MethodGet, "/api/v1/work-entries?page=abc", "")
	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("non-integer page must 400, got %v", err)
	}
}

func TestListHandler_RendersPageEnvelope(t *testing.T) {
	svc := &stubService{
		listAllFn: func(input ports.ListWorkEntriesInput) (*ports.WorkEntryPage, error) {
			items := []ports.WorkEntrySummary{
				{ID: "a1", WorkDate: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), ProgramType: "CLIENT", ProgramReference: "ACME", HoursSpent: 8, Status: "DRAFT"},
			}
			return ports.NewWorkEntryPage(items, 0, 3, 5), nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/v1/work-entries?size=3", "")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	if data["totalElements"] != float64(5) || data["totalPages"] != float64(2) {
		t.Errorf("pagination metadata: %v", data)
	}
	if data["first"] != true || data["last"] != false || data["hasNext"] != true {
		t.Errorf("pagination flags: %v", data)
	}
	content := data["content"].([]any)
	if len(content) != 1 {
		t.Fatalf("content: want 1 item, got %d", len(content))
	}
	item := content[0].(map[string]any)
	if item["work_date"] != "2026-08-28" {
		t.Errorf("summary work_date: %v", item["work_date"])
	}
	if _, hasTicket := item["ticket_id"]; hasTicket {
		t.Error("summaries must not carry ticket_id")
	}
}

func TestListByDateRangeHandler(t *testing.T) {
	var gotStart, gotEnd time.Time
	svc := &stubService{
		listByDateRangeFn: func(start, end time.Time, page, size int) (*ports.WorkEntryPage, error) {
			gotStart, gotEnd = start, end
			return ports.NewWorkEntryPage(nil, page, size, 0), nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/v1/work-entries/date-range?startDate=2026-08-01&endDate=2026-08-28", "")
	if err := h.ListByDateRange(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: want 200, got %d", rec.Code)
	}
	if gotStart.Format(dateLayout) != "2026-08-01" || gotEnd.Format(dateLayout) != "2026-08-28" {
		t.Errorf("dates not forwarded: %v %v", gotStart, gotEnd)
	}

	// Missing and malformed params must 400 before touching the service.
	for _, target := range []string{
		"/api/v1/work-entries/date-range?endDate=2026-08-28",
		"/api/v1/work-entries/date-range?startDate=2026-08-01",
		"/api/v1/work-entries/date-range?startDate=bogus&endDate=2026-08-28",
	} {
		c, _ := newTestContext(http.MethodGet, target, "")
		err := h.ListByDateRange(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %v", target, err)
		}
	}
}

func TestListByDateHandler(t *testing.T) {
	svc := &stubService{
		listByDateFn: func(date time.Time) ([]ports.WorkEntrySummary, error) {
			return []ports.WorkEntrySummary{}, nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/v1/work-entries/date/2026-08-28", "")
	c.SetParamNames("date")
	c.SetParamValues("2026-08-28")

	if err := h.ListByDate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: want 200, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodGet, "/api/v1/work-entries/date/not-a-date", "")
	c.SetParamNames("date")
	c.SetParamValues("not-a-date")

	err := h.ListByDate(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("bad date must 400, got %v", err)
	}
}

func TestListByStatusHandler(t *testing.T) {
	var gotStatus string
	svc := &stubService{
		listByStatusFn: func(status string, page, size int) (*ports.WorkEntryPage, error) {
			gotStatus = status
			return ports.NewWorkEntryPage(nil, page, size, 0), nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/v1/work-entries/status/SUBMITTED", "")
	c.SetParamNames("status")
	c.SetParamValues("SUBMITTED")

	if err := h.ListByStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || gotStatus != "SUBMITTED" {
		t.Errorf("status=%d forwarded=%q", rec.Code, gotStatus)
	}
}

// --- Aggregation / modifiability ---

func TestTotalHoursHandler(t *testing.T) {
	svc := &stubService{
		sumHoursFn: func(start, end time.Time) (float64, error) {
			return 13.5, nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/v1/work-entries/hours/total?startDate=2026-08-01&endDate=2026-08-28", "")
	if err := h.TotalHours(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	if data["total_hours"] != 13.5 {
		t.Errorf("total_hours: %v", data["total_hours"])
	}
	if data["start_date"] != "2026-08-01" || data["end_date"] != "2026-08-28" {
		t.Errorf("range echo: %v", data)
	}
}

func TestCanModifyHandler(t *testing.T) {
	svc := &stubService{
		canModifyFn: func(id string) (bool, error) {
			return false, nil
		},
	}
	h := NewWorkEntryHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/v1/work-entries/abc123/can-modify", "")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := h.CanModify(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	if data["can_modify"] != false || data["id"] != "abc123" {
		t.Errorf("unexpected data: %v", data)
	}
}
