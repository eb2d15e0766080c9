package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/workledger/timesheet-service/internal/core/domain"
)

func assertValidationError(t *testing.T, err error, context string) {
	t.Helper()
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("%s: expected ValidationError, got %v", context, err)
	}
}

func daysAgo(n int) time.Time {
	now := time.Now().UTC()
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.AddDate(0, 0, -n)
}

func TestWorkDate_Window(t *testing.T) {
	if err := WorkDate(daysAgo(0)); err != nil {
		t.Errorf("today must be valid: %v", err)
	}
	if err := WorkDate(daysAgo(1)); err != nil {
		t.Errorf("yesterday must be valid: %v", err)
	}
	// The 60-day cutoff is exclusive: exactly 60 days old passes.
	if err := WorkDate(daysAgo(60)); err != nil {
		t.Errorf("60-day-old date must be valid: %v", err)
	}
	assertValidationError(t, WorkDate(daysAgo(61)), "61-day-old date")
	assertValidationError(t, WorkDate(daysAgo(-1)), "future date")
	assertValidationError(t, WorkDate(time.Time{}), "zero date")
}

func TestHoursSpent_Bounds(t *testing.T) {
	for _, hours := range []float64{0.25, 8, 24} {
		if err := HoursSpent(hours); err != nil {
			t.Errorf("HoursSpent(%v): %v", hours, err)
		}
	}
	for _, hours := range []float64{0, -1, 24.5, 25} {
		assertValidationError(t, HoursSpent(hours), "out-of-bounds hours")
	}
}

func TestTicketID_Shape(t *testing.T) {
	for _, id := range []string{"PROJ-123", "A-1", "WORKLEDGER-9999"} {
		if err := TicketID(id); err != nil {
			t.Errorf("TicketID(%s): %v", id, err)
		}
	}
	// Optional field: blank passes.
	if err := TicketID(""); err != nil {
		t.Errorf("blank ticket id must pass: %v", err)
	}
	if err := TicketID("   "); err != nil {
		t.Errorf("whitespace ticket id must pass: %v", err)
	}
	for _, id := range []string{"proj-123", "PROJ123", "PROJ-", "-123", "PROJ-12a"} {
		assertValidationError(t, TicketID(id), "malformed ticket id "+id)
	}
}

func TestEmail(t *testing.T) {
	if err := Email("dev@workledger.io"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
	for _, email := range []string{"", "not-an-email", "a@b", "@workledger.io"} {
		assertValidationError(t, Email(email), "bad email "+email)
	}
}

func TestPaginationParams(t *testing.T) {
	if err := PaginationParams(0, 20); err != nil {
		t.Errorf("default pagination rejected: %v", err)
	}
	if err := PaginationParams(5, 100); err != nil {
		t.Errorf("max page size rejected: %v", err)
	}
	assertValidationError(t, PaginationParams(-1, 20), "negative page")
	assertValidationError(t, PaginationParams(0, 0), "zero size")
	assertValidationError(t, PaginationParams(0, -5), "negative size")
	assertValidationError(t, PaginationParams(0, 101), "oversized page")
}

func TestDescription(t *testing.T) {
	if err := Description(nil); err != nil {
		t.Errorf("absent description must pass: %v", err)
	}

	ok := "worked on ingestion pipeline"
	if err := Description(&ok); err != nil {
		t.Errorf("valid description rejected: %v", err)
	}

	blank := "   "
	assertValidationError(t, Description(&blank), "blank description")

	long := string(make([]byte, MaxDescriptionLength+1))
	assertValidationError(t, Description(&long), "oversized description")
}

func TestRequireNonEmpty(t *testing.T) {
	if err := RequireNonEmpty("ACME", "program reference"); err != nil {
		t.Errorf("non-empty value rejected: %v", err)
	}
	assertValidationError(t, RequireNonEmpty("", "program reference"), "empty value")
	assertValidationError(t, RequireNonEmpty("  ", "program reference"), "whitespace value")
}

func TestRequireAtLeastOneSet(t *testing.T) {
	if err := RequireAtLeastOneSet("nothing to update", false, true, false); err != nil {
		t.Errorf("one present flag must pass: %v", err)
	}
	err := RequireAtLeastOneSet("nothing to update", false, false)
	assertValidationError(t, err, "all absent")
	if err.Error() != "nothing to update" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestDateRange(t *testing.T) {
	start := daysAgo(5)
	end := daysAgo(1)
	if err := DateRange(start, end); err != nil {
		t.Errorf("ordered range rejected: %v", err)
	}
	if err := DateRange(start, start); err != nil {
		t.Errorf("single-day range rejected: %v", err)
	}
	assertValidationError(t, DateRange(end, start), "inverted range")
}

func TestNotFutureAndNotPastDate(t *testing.T) {
	if err := NotFutureDate(daysAgo(1), "work date"); err != nil {
		t.Errorf("past date rejected by NotFutureDate: %v", err)
	}
	assertValidationError(t, NotFutureDate(daysAgo(-1), "work date"), "future date")

	if err := NotPastDate(daysAgo(-1), "due date"); err != nil {
		t.Errorf("future date rejected by NotPastDate: %v", err)
	}
	assertValidationError(t, NotPastDate(daysAgo(1), "due date"), "past date")
}

func TestRangeAndMaxLength(t *testing.T) {
	if err := Range(5, "hours", 0, 9); err != nil {
		t.Errorf("in-range value rejected: %v", err)
	}
	assertValidationError(t, Range(9.5, "hours", 0, 9), "above max")
	assertValidationError(t, Range(-0.5, "hours", 0, 9), "below min")

	if err := MaxLength("abc", "field", 3); err != nil {
		t.Errorf("at-limit value rejected: %v", err)
	}
	assertValidationError(t, MaxLength("abcd", "field", 3), "over limit")
}
