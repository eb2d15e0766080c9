package ports

import (
	"context"
	"time"

	"github.com/workledger/timesheet-service/internal/core/domain"
)

// PageRequest carries pagination and sorting for repository queries.
// Page is 0-based; SortField names a persisted column.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	SortAsc   bool
}

// Offset returns the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// WorkEntryRepository defines persistence operations for work entries.
// Lookups that miss return a *domain.NotFoundError.
type WorkEntryRepository interface {
	Insert(ctx context.Context, e *domain.WorkEntry) error
	Update(ctx context.Context, e *domain.WorkEntry) error
	FindByID(ctx context.Context, id string) (*domain.WorkEntry, error)
	// FindAll returns one page of entries plus the total count across all pages.
	FindAll(ctx context.Context, page PageRequest) ([]*domain.WorkEntry, int64, error)
	// FindByDateRange matches work_date in [start, end] inclusive.
	FindByDateRange(ctx context.Context, start, end time.Time, page PageRequest) ([]*domain.WorkEntry, int64, error)
	FindByStatus(ctx context.Context, status domain.Status, page PageRequest) ([]*domain.WorkEntry, int64, error)
	// FindByWorkDate returns all entries for one exact calendar date, unpaged.
	FindByWorkDate(ctx context.Context, date time.Time) ([]*domain.WorkEntry, error)
	Delete(ctx context.Context, id string) error
	// SumHoursInRange sums hours_spent over work_date in [start, end]
	// inclusive. An empty range yields 0, never an error.
	SumHoursInRange(ctx context.Context, start, end time.Time) (float64, error)
}
