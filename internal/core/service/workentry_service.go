package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/workledger/timesheet-service/internal/core/domain"
	"github.com/workledger/timesheet-service/internal/core/ports"
	"github.com/workledger/timesheet-service/internal/core/validation"
)

// IdempotencyStore abstracts the create-replay store (Redis). Get returns the
// previously created entry id for a key, or "" when the key is unseen.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, entryID string) error
}

// sortFields maps API sort names to persisted field names. Anything else is
// rejected as a validation error.
var sortFields = map[string]string{
	"workDate":   "work_date",
	"createdAt":  "created_at",
	"hoursSpent": "hours_spent",
	"status":     "status",
}

const (
	defaultSortBy   = "workDate"
	defaultPageSize = 20
)

// WorkEntryService orchestrates all work entry use cases: it validates
// inputs, loads entities, applies the state machine, persists, and maps
// entities into response projections.
type WorkEntryService struct {
	repo   ports.WorkEntryRepository
	idem   IdempotencyStore
	logger zerolog.Logger
}

// NewWorkEntryService builds a WorkEntryService. idem may be nil, in which
// case Idempotency-Key replay is disabled.
func NewWorkEntryService(repo ports.WorkEntryRepository, idem IdempotencyStore, logger zerolog.Logger) *WorkEntryService {
	return &WorkEntryService{repo: repo, idem: idem, logger: logger}
}

// Create validates and persists a new work entry. The status defaults to
// DRAFT when unspecified; an explicit initial status is accepted as-is.
// A replayed Idempotency-Key returns the original entry without side effects.
func (s *WorkEntryService) Create(ctx context.Context, input ports.CreateWorkEntryInput) (*ports.CreateWorkEntryResult, error) {
	if s.idem != nil && input.IdempotencyKey != "" {
		existingID, err := s.idem.Get(ctx, input.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if existingID != "" {
			existing, err := s.repo.FindByID(ctx, existingID)
			if err == nil {
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("id", existingID).Msg("idempotent replay")
				return &ports.CreateWorkEntryResult{Entry: toDetail(existing), AlreadyExisted: true}, nil
			}
		}
	}

	if err := s.validateEntryFields(input.WorkDate, input.HoursSpent); err != nil {
		return nil, err
	}
	if err := validation.RequireNonEmpty(input.ProgramReference, "program reference"); err != nil {
		return nil, err
	}
	programType := domain.ProgramType(input.ProgramType)
	if !programType.IsValid() {
		return nil, domain.NewValidationError("invalid program type: %s", input.ProgramType)
	}
	if err := validation.TicketID(input.TicketID); err != nil {
		return nil, err
	}
	if err := validation.Description(input.Description); err != nil {
		return nil, err
	}

	status := domain.StatusDraft
	if input.Status != "" {
		parsed, err := domain.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	now := time.Now().UTC()
	entry := &domain.WorkEntry{
		WorkDate:         normalizeDate(input.WorkDate),
		ProgramType:      programType,
		ProgramReference: input.ProgramReference,
		TicketID:         input.TicketID,
		HoursSpent:       input.HoursSpent,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if input.Description != nil {
		entry.Description = *input.Description
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error().Err(err).Msg("failed to create work entry")
		return nil, err
	}

	if s.idem != nil && input.IdempotencyKey != "" {
		if err := s.idem.Put(ctx, input.IdempotencyKey, entry.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to record idempotency key")
		}
	}

	s.logger.Info().Str("id", entry.ID).Str("status", string(entry.Status)).Msg("work entry created")
	return &ports.CreateWorkEntryResult{Entry: toDetail(entry)}, nil
}

// Update applies a field patch to a modifiable entry. The status field is
// untouched; an empty patch is rejected.
func (s *WorkEntryService) Update(ctx context.Context, id string, input ports.UpdateWorkEntryInput) (*ports.WorkEntryDetail, error) {
	if err := validation.RequireAtLeastOneSet(
		"at least one field must be provided for update",
		input.WorkDate != nil,
		input.ProgramType != nil,
		input.ProgramReference != nil,
		input.TicketID != nil,
		input.Description != nil,
		input.HoursSpent != nil,
	); err != nil {
		return nil, err
	}

	if input.WorkDate != nil {
		if err := validation.WorkDate(*input.WorkDate); err != nil {
			return nil, err
		}
	}
	if input.HoursSpent != nil {
		if err := validation.HoursSpent(*input.HoursSpent); err != nil {
			return nil, err
		}
	}
	if input.ProgramReference != nil {
		if err := validation.RequireNonEmpty(*input.ProgramReference, "program reference"); err != nil {
			return nil, err
		}
	}
	if input.TicketID != nil {
		if err := validation.TicketID(*input.TicketID); err != nil {
			return nil, err
		}
	}
	if err := validation.Description(input.Description); err != nil {
		return nil, err
	}

	patch := domain.WorkEntryPatch{
		ProgramReference: input.ProgramReference,
		TicketID:         input.TicketID,
		Description:      input.Description,
		HoursSpent:       input.HoursSpent,
	}
	if input.WorkDate != nil {
		d := normalizeDate(*input.WorkDate)
		patch.WorkDate = &d
	}
	if input.ProgramType != nil {
		pt := domain.ProgramType(*input.ProgramType)
		if !pt.IsValid() {
			return nil, domain.NewValidationError("invalid program type: %s", *input.ProgramType)
		}
		patch.ProgramType = &pt
	}

	entry, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := entry.CanModify(); err != nil {
		return nil, err
	}

	updated := domain.ApplyPatch(*entry, patch)
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update work entry")
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("work entry updated")
	return detailPtr(&updated), nil
}

// GetByID returns the full projection of one entry.
func (s *WorkEntryService) GetByID(ctx context.Context, id string) (*ports.WorkEntryDetail, error) {
	entry, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return detailPtr(entry), nil
}

// ListAll returns one page of summaries across all entries, sorted by a
// whitelisted field (default: workDate descending).
func (s *WorkEntryService) ListAll(ctx context.Context, input ports.ListWorkEntriesInput) (*ports.WorkEntryPage, error) {
	page, err := s.pageRequest(input.Page, input.Size, input.SortBy, input.Direction)
	if err != nil {
		return nil, err
	}

	entries, total, err := s.repo.FindAll(ctx, page)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list work entries")
		return nil, err
	}
	return ports.NewWorkEntryPage(toSummaries(entries), page.Page, page.Size, total), nil
}

// ListByDateRange returns one page of summaries with work_date in
// [start, end] inclusive. An inverted range is a validation error.
func (s *WorkEntryService) ListByDateRange(ctx context.Context, start, end time.Time, pageNum, size int) (*ports.WorkEntryPage, error) {
	page, err := s.pageRequest(pageNum, size, defaultSortBy, "DESC")
	if err != nil {
		return nil, err
	}
	if err := validation.DateRange(start, end); err != nil {
		return nil, err
	}

	entries, total, err := s.repo.FindByDateRange(ctx, normalizeDate(start), normalizeDate(end), page)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list work entries by date range")
		return nil, err
	}
	return ports.NewWorkEntryPage(toSummaries(entries), page.Page, page.Size, total), nil
}

// ListByStatus returns one page of summaries with the given status.
func (s *WorkEntryService) ListByStatus(ctx context.Context, status string, pageNum, size int) (*ports.WorkEntryPage, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	page, err := s.pageRequest(pageNum, size, defaultSortBy, "DESC")
	if err != nil {
		return nil, err
	}

	entries, total, err := s.repo.FindByStatus(ctx, parsed, page)
	if err != nil {
		s.logger.Error().Err(err).Str("status", status).Msg("failed to list work entries by status")
		return nil, err
	}
	return ports.NewWorkEntryPage(toSummaries(entries), page.Page, page.Size, total), nil
}

// ListByDate returns all summaries for one exact calendar date; the list may
// be empty.
func (s *WorkEntryService) ListByDate(ctx context.Context, date time.Time) ([]ports.WorkEntrySummary, error) {
	entries, err := s.repo.FindByWorkDate(ctx, normalizeDate(date))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list work entries by date")
		return nil, err
	}
	return toSummaries(entries), nil
}

// Submit transitions a DRAFT entry to SUBMITTED and persists the change.
func (s *WorkEntryService) Submit(ctx context.Context, id string) (*ports.WorkEntryDetail, error) {
	entry, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	submitted, err := entry.Submit()
	if err != nil {
		return nil, err
	}
	submitted.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &submitted); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to submit work entry")
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("work entry submitted")
	return detailPtr(&submitted), nil
}

// Lock transitions a SUBMITTED entry to LOCKED and persists the change.
func (s *WorkEntryService) Lock(ctx context.Context, id string) (*ports.WorkEntryDetail, error) {
	entry, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	locked, err := entry.Lock()
	if err != nil {
		return nil, err
	}
	locked.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &locked); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to lock work entry")
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("work entry locked")
	return detailPtr(&locked), nil
}

// Delete removes a modifiable entry from storage. A LOCKED entry cannot be
// deleted.
func (s *WorkEntryService) Delete(ctx context.Context, id string) error {
	entry, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if err := entry.CanModify(); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete work entry")
		return err
	}

	s.logger.Info().Str("id", id).Msg("work entry deleted")
	return nil
}

// SumHours totals hours spent over [start, end] inclusive, returning 0.0
// when no entries fall in range.
func (s *WorkEntryService) SumHours(ctx context.Context, start, end time.Time) (float64, error) {
	if err := validation.DateRange(start, end); err != nil {
		return 0, err
	}
	total, err := s.repo.SumHoursInRange(ctx, normalizeDate(start), normalizeDate(end))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sum hours")
		return 0, err
	}
	return total, nil
}

// CanModify reports whether the entry may still be edited. The underlying
// state machine check is failure-based; this converts it to a boolean
// instead of propagating InvalidStateError. A missing entry still fails.
func (s *WorkEntryService) CanModify(ctx context.Context, id string) (bool, error) {
	entry, err := s.findByID(ctx, id)
	if err != nil {
		return false, err
	}
	return entry.CanModify() == nil, nil
}

// --- helpers ---

func (s *WorkEntryService) findByID(ctx context.Context, id string) (*domain.WorkEntry, error) {
	if id == "" {
		return nil, domain.NewValidationError("work entry id cannot be empty")
	}
	return s.repo.FindByID(ctx, id)
}

// validateEntryFields is the shared validation pass for the create and
// update paths: work date window plus domain hours ceiling.
func (s *WorkEntryService) validateEntryFields(workDate time.Time, hoursSpent float64) error {
	if err := validation.WorkDate(workDate); err != nil {
		return err
	}
	return validation.HoursSpent(hoursSpent)
}

func (s *WorkEntryService) pageRequest(page, size int, sortBy, direction string) (ports.PageRequest, error) {
	if size == 0 {
		size = defaultPageSize
	}
	if err := validation.PaginationParams(page, size); err != nil {
		return ports.PageRequest{}, err
	}

	if sortBy == "" {
		sortBy = defaultSortBy
	}
	field, ok := sortFields[sortBy]
	if !ok {
		return ports.PageRequest{}, domain.NewValidationError("invalid sort field: %s", sortBy)
	}

	asc := false
	switch direction {
	case "", "DESC", "desc":
	case "ASC", "asc":
		asc = true
	default:
		return ports.PageRequest{}, domain.NewValidationError("invalid sort direction: %s (expected ASC or DESC)", direction)
	}

	return ports.PageRequest{Page: page, Size: size, SortField: field, SortAsc: asc}, nil
}

// normalizeDate truncates a timestamp to its UTC calendar date. Work dates
// are plain dates; equality and range checks must ignore the time of day.
func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toDetail(e *domain.WorkEntry) ports.WorkEntryDetail {
	return ports.WorkEntryDetail{
		ID:               e.ID,
		WorkDate:         e.WorkDate,
		ProgramType:      string(e.ProgramType),
		ProgramReference: e.ProgramReference,
		TicketID:         e.TicketID,
		Description:      e.Description,
		HoursSpent:       e.HoursSpent,
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func detailPtr(e *domain.WorkEntry) *ports.WorkEntryDetail {
	d := toDetail(e)
	return &d
}

func toSummaries(entries []*domain.WorkEntry) []ports.WorkEntrySummary {
	out := make([]ports.WorkEntrySummary, len(entries))
	for i, e := range entries {
		out[i] = ports.WorkEntrySummary{
			ID:               e.ID,
			WorkDate:         e.WorkDate,
			ProgramType:      string(e.ProgramType),
			ProgramReference: e.ProgramReference,
			HoursSpent:       e.HoursSpent,
			Status:           string(e.Status),
		}
	}
	return out
}
