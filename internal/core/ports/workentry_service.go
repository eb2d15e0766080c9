package ports

import (
	"context"
	"time"
)

// CreateWorkEntryInput carries all data needed to create a new work entry.
// Status is optional and defaults to DRAFT; the state machine does not gate
// seeding a SUBMITTED or LOCKED entry at creation time.
type CreateWorkEntryInput struct {
	WorkDate         time.Time
	ProgramType      string
	ProgramReference string
	TicketID         string
	Description      *string
	HoursSpent       float64
	Status           string
	// IdempotencyKey, when non-empty, makes a replayed create return the
	// originally created entry without side effects.
	IdempotencyKey string
}

// UpdateWorkEntryInput is a field patch: nil fields are left untouched.
// At least one field must be present.
type UpdateWorkEntryInput struct {
	WorkDate         *time.Time
	ProgramType      *string
	ProgramReference *string
	TicketID         *string
	Description      *string
	HoursSpent       *float64
}

// ListWorkEntriesInput carries pagination and sorting for the unfiltered list.
type ListWorkEntriesInput struct {
	Page      int
	Size      int
	SortBy    string // workDate | createdAt | hoursSpent | status; defaults to workDate
	Direction string // ASC | DESC; defaults to DESC
}

// WorkEntryDetail is the full projection returned for single-entity reads
// and mutations.
type WorkEntryDetail struct {
	ID               string
	WorkDate         time.Time
	ProgramType      string
	ProgramReference string
	TicketID         string
	Description      string
	HoursSpent       float64
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// WorkEntrySummary is the reduced projection used in list views. It omits
// ticket id, description and timestamps.
type WorkEntrySummary struct {
	ID               string
	WorkDate         time.Time
	ProgramType      string
	ProgramReference string
	HoursSpent       float64
	Status           string
}

// CreateWorkEntryResult wraps the created entry. AlreadyExisted is true when
// the Idempotency-Key matched a previously created entry.
type CreateWorkEntryResult struct {
	Entry          WorkEntryDetail
	AlreadyExisted bool
}

// WorkEntryPage is one page of summaries plus full pagination metadata.
// PageNumber is 0-based.
type WorkEntryPage struct {
	Items            []WorkEntrySummary
	PageNumber       int
	PageSize         int
	TotalElements    int64
	TotalPages       int
	First            bool
	Last             bool
	HasNext          bool
	HasPrevious      bool
	NumberOfElements int
	Empty            bool
}

// NewWorkEntryPage derives the full pagination metadata from one page of
// items and the total element count.
func NewWorkEntryPage(items []WorkEntrySummary, page, size int, total int64) *WorkEntryPage {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &WorkEntryPage{
		Items:            items,
		PageNumber:       page,
		PageSize:         size,
		TotalElements:    total,
		TotalPages:       totalPages,
		First:            page == 0,
		Last:             page >= totalPages-1,
		HasNext:          page < totalPages-1,
		HasPrevious:      page > 0,
		NumberOfElements: len(items),
		Empty:            len(items) == 0,
	}
}

// WorkEntryService defines the use-case operations for work entries.
type WorkEntryService interface {
	Create(ctx context.Context, input CreateWorkEntryInput) (*CreateWorkEntryResult, error)
	Update(ctx context.Context, id string, input UpdateWorkEntryInput) (*WorkEntryDetail, error)
	GetByID(ctx context.Context, id string) (*WorkEntryDetail, error)
	ListAll(ctx context.Context, input ListWorkEntriesInput) (*WorkEntryPage, error)
	ListByDateRange(ctx context.Context, start, end time.Time, page, size int) (*WorkEntryPage, error)
	ListByStatus(ctx context.Context, status string, page, size int) (*WorkEntryPage, error)
	ListByDate(ctx context.Context, date time.Time) ([]WorkEntrySummary, error)
	Submit(ctx context.Context, id string) (*WorkEntryDetail, error)
	Lock(ctx context.Context, id string) (*WorkEntryDetail, error)
	Delete(ctx context.Context, id string) error
	// SumHours returns the total hours over [start, end] inclusive; 0.0 when
	// no entries match.
	SumHours(ctx context.Context, start, end time.Time) (float64, error)
	// CanModify reports whether the entry may still be edited, without
	// raising InvalidStateError for a LOCKED entry.
	CanModify(ctx context.Context, id string) (bool, error)
}
