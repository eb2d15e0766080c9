package handler

import (
	"time"

	"github.com/workledger/timesheet-service/internal/core/ports"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// apiResponse is the standard success/error envelope for every endpoint.
type apiResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  any       `json:"metadata,omitempty"`
}

func envelope(data any, message string) apiResponse {
	return apiResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// --- Request types ---

// The hours ceiling here (lte=9) is the request-shape policy bound. The
// domain validator separately enforces a 24-hour ceiling; both run, the
// tighter one governs observable behaviour.
type createWorkEntryRequest struct {
	WorkDate         string  `json:"work_date"         validate:"required,datetime=2006-01-02"`
	ProgramType      string  `json:"program_type"      validate:"required,oneof=CLIENT INTERNAL SELF_LEARNING"`
	ProgramReference string  `json:"program_reference" validate:"required"`
	TicketID         string  `json:"ticket_id"         validate:"omitempty"`
	Description      *string `json:"description"       validate:"omitempty,max=2000"`
	HoursSpent       float64 `json:"hours_spent"       validate:"required,gt=0,lte=9"`
	Status           string  `json:"status"            validate:"omitempty,oneof=DRAFT SUBMITTED LOCKED"`
}

// updateWorkEntryRequest is a patch: absent fields leave the entry untouched.
type updateWorkEntryRequest struct {
	WorkDate         *string  `json:"work_date"         validate:"omitempty,datetime=2006-01-02"`
	ProgramType      *string  `json:"program_type"      validate:"omitempty,oneof=CLIENT INTERNAL SELF_LEARNING"`
	ProgramReference *string  `json:"program_reference" validate:"omitempty"`
	TicketID         *string  `json:"ticket_id"`
	Description      *string  `json:"description"       validate:"omitempty,max=2000"`
	HoursSpent       *float64 `json:"hours_spent"       validate:"omitempty,gt=0,lte=9"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

// workEntryResponse is the full projection for single-entity reads and mutations.
type workEntryResponse struct {
	ID               string    `json:"id"`
	WorkDate         string    `json:"work_date"`
	ProgramType      string    `json:"program_type"`
	ProgramReference string    `json:"program_reference"`
	TicketID         string    `json:"ticket_id,omitempty"`
	Description      string    `json:"description,omitempty"`
	HoursSpent       float64   `json:"hours_spent"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// workEntrySummaryResponse is the reduced projection for list views.
type workEntrySummaryResponse struct {
	ID               string  `json:"id"`
	WorkDate         string  `json:"work_date"`
	ProgramType      string  `json:"program_type"`
	ProgramReference string  `json:"program_reference"`
	HoursSpent       float64 `json:"hours_spent"`
	Status           string  `json:"status"`
}

// pageResponse is the pagination envelope. Field names follow the public
// API contract; pageNumber is 0-based.
type pageResponse struct {
	Content          []workEntrySummaryResponse `json:"content"`
	PageNumber       int                        `json:"pageNumber"`
	PageSize         int                        `json:"pageSize"`
	TotalElements    int64                      `json:"totalElements"`
	TotalPages       int                        `json:"totalPages"`
	First            bool                       `json:"first"`
	Last             bool                       `json:"last"`
	HasNext          bool                       `json:"hasNext"`
	HasPrevious      bool                       `json:"hasPrevious"`
	NumberOfElements int                        `json:"numberOfElements"`
	Empty            bool                       `json:"empty"`
}

// canModifyResponse reports whether an entry may still be edited.
type canModifyResponse struct {
	ID        string `json:"id"`
	CanModify bool   `json:"can_modify"`
}

// totalHoursResponse carries an hours aggregation result.
type totalHoursResponse struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalHours float64 `json:"total_hours"`
}

func (r createWorkEntryRequest) toInput(idempotencyKey string) (ports.CreateWorkEntryInput, error) {
	workDate, err := time.Parse(dateLayout, r.WorkDate)
	if err != nil {
		return ports.CreateWorkEntryInput{}, err
	}
	return ports.CreateWorkEntryInput{
		WorkDate:         workDate,
		ProgramType:      r.ProgramType,
		ProgramReference: r.ProgramReference,
		TicketID:         r.TicketID,
		Description:      r.Description,
		HoursSpent:       r.HoursSpent,
		Status:           r.Status,
		IdempotencyKey:   idempotencyKey,
	}, nil
}

func (r updateWorkEntryRequest) toInput() (ports.UpdateWorkEntryInput, error) {
	in := ports.UpdateWorkEntryInput{
		ProgramType:      r.ProgramType,
		ProgramReference: r.ProgramReference,
		TicketID:         r.TicketID,
		Description:      r.Description,
		HoursSpent:       r.HoursSpent,
	}
	if r.WorkDate != nil {
		workDate, err := time.Parse(dateLayout, *r.WorkDate)
		if err != nil {
			return ports.UpdateWorkEntryInput{}, err
		}
		in.WorkDate = &workDate
	}
	return in, nil
}
