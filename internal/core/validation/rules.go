// Package validation holds the pure business validation rules shared by the
// create and update paths. Every rule fails fast with a
// *domain.ValidationError on the first violated constraint.
package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/workledger/timesheet-service/internal/core/domain"
)

const (
	// MaxDescriptionLength bounds the free-text description field.
	MaxDescriptionLength = 2000
	// MaxHoursPerDay is the domain-level ceiling on hours in a single entry.
	// The request-shape layer enforces a tighter 9-hour ceiling on top.
	MaxHoursPerDay = 24.0
	// MaxWorkDateAgeDays is how far back a work date may lie. A date exactly
	// this old is still accepted.
	MaxWorkDateAgeDays = 60
	// MaxPageSize caps a single page of list results.
	MaxPageSize = 100
)

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	ticketIDPattern = regexp.MustCompile(`^[A-Z]+-\d+$`)
)

// RequireNonEmpty fails when value is blank or whitespace-only.
func RequireNonEmpty(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError("%s cannot be empty", fieldName)
	}
	return nil
}

// NotFutureDate fails when date lies after today.
func NotFutureDate(date time.Time, fieldName string) error {
	if date.After(today()) {
		return domain.NewValidationError("%s cannot be in the future", fieldName)
	}
	return nil
}

// NotPastDate fails when date lies before today.
func NotPastDate(date time.Time, fieldName string) error {
	if date.Before(today()) {
		return domain.NewValidationError("%s cannot be in the past", fieldName)
	}
	return nil
}

// Range fails when value falls outside the inclusive [min, max] bounds.
func Range(value float64, fieldName string, min, max float64) error {
	if value < min || value > max {
		return domain.NewValidationError("%s must be between %v and %v (current: %v)", fieldName, min, max, value)
	}
	return nil
}

// HoursSpent enforces the domain hours bound: 0 < hours <= 24.
func HoursSpent(hours float64) error {
	if err := Range(hours, "hours spent", 0, MaxHoursPerDay); err != nil {
		return err
	}
	if hours <= 0 {
		return domain.NewValidationError("hours spent must be greater than 0")
	}
	return nil
}

// WorkDate fails for zero, future, or too-old dates. The cutoff is
// today minus MaxWorkDateAgeDays; a date exactly on the cutoff passes.
func WorkDate(workDate time.Time) error {
	if workDate.IsZero() {
		return domain.NewValidationError("work date cannot be empty")
	}
	if err := NotFutureDate(workDate, "work date"); err != nil {
		return err
	}
	cutoff := today().AddDate(0, 0, -MaxWorkDateAgeDays)
	if workDate.Before(cutoff) {
		return domain.NewValidationError("work date cannot be older than %d days", MaxWorkDateAgeDays)
	}
	return nil
}

// Email fails when the address does not match a basic mailbox shape.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return domain.NewValidationError("invalid email address")
	}
	return nil
}

// TicketID checks the UPPERCASE-DIGITS shape (e.g. PROJ-123). A blank value
// passes: the field is optional.
func TicketID(ticketID string) error {
	if strings.TrimSpace(ticketID) == "" {
		return nil
	}
	if !ticketIDPattern.MatchString(ticketID) {
		return domain.NewValidationError("invalid ticket ID format, expected PREFIX-NUMBER (e.g. PROJ-123)")
	}
	return nil
}

// MaxLength fails when value exceeds maxLength characters.
func MaxLength(value, fieldName string, maxLength int) error {
	if len(value) > maxLength {
		return domain.NewValidationError("%s must not exceed %d characters (current: %d)", fieldName, maxLength, len(value))
	}
	return nil
}

// PaginationParams enforces page >= 0 and 0 < size <= MaxPageSize.
func PaginationParams(page, size int) error {
	if page < 0 {
		return domain.NewValidationError("page number cannot be negative")
	}
	if size <= 0 {
		return domain.NewValidationError("page size must be positive")
	}
	if size > MaxPageSize {
		return domain.NewValidationError("page size cannot exceed %d", MaxPageSize)
	}
	return nil
}

// Description is a no-op for an absent description; a present one must be
// non-blank and within MaxDescriptionLength.
func Description(description *string) error {
	if description == nil {
		return nil
	}
	if err := MaxLength(*description, "description", MaxDescriptionLength); err != nil {
		return err
	}
	if strings.TrimSpace(*description) == "" {
		return domain.NewValidationError("description cannot be empty")
	}
	return nil
}

// RequireAtLeastOneSet fails with the given message when none of the supplied
// presence flags is true. Used to reject update requests that patch nothing.
func RequireAtLeastOneSet(message string, present ...bool) error {
	for _, p := range present {
		if p {
			return nil
		}
	}
	return domain.NewValidationError("%s", message)
}

// DateRange fails when start lies after end.
func DateRange(start, end time.Time) error {
	if start.After(end) {
		return domain.NewValidationError("start date cannot be after end date")
	}
	return nil
}

// today returns the current calendar date at UTC midnight. Work dates are
// plain calendar dates; comparisons must not depend on the time of day.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
