package domain

import "time"

// Status represents the lifecycle state of a work entry.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusLocked    Status = "LOCKED"
)

// validTransitions defines the allowed state machine transitions.
// The lifecycle is strictly forward: DRAFT → SUBMITTED → LOCKED.
var validTransitions = map[Status]Status{
	StatusDraft:     StatusSubmitted,
	StatusSubmitted: StatusLocked,
}

// IsValid reports whether s is one of the three known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusLocked:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", NewValidationError("invalid status: %s (expected DRAFT, SUBMITTED or LOCKED)", raw)
	}
	return s, nil
}

// ProgramType categorises what the work is billed or attributed against.
type ProgramType string

const (
	ProgramClient       ProgramType = "CLIENT"
	ProgramInternal     ProgramType = "INTERNAL"
	ProgramSelfLearning ProgramType = "SELF_LEARNING"
)

// IsValid reports whether p is a known program type.
func (p ProgramType) IsValid() bool {
	switch p {
	case ProgramClient, ProgramInternal, ProgramSelfLearning:
		return true
	}
	return false
}

// WorkEntry is the sole domain entity: one record of time spent on a
// program on a given date. Transition methods are value-based and return a
// modified copy, so a failed transition never leaves a half-mutated entity.
type WorkEntry struct {
	ID               string      `json:"id" bson:"_id,omitempty"`
	WorkDate         time.Time   `json:"work_date" bson:"work_date"`
	ProgramType      ProgramType `json:"program_type" bson:"program_type"`
	ProgramReference string      `json:"program_reference" bson:"program_reference"`
	TicketID         string      `json:"ticket_id,omitempty" bson:"ticket_id,omitempty"`
	Description      string      `json:"description,omitempty" bson:"description,omitempty"`
	HoursSpent       float64     `json:"hours_spent" bson:"hours_spent"`
	Status           Status      `json:"status" bson:"status"`
	CreatedAt        time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" bson:"updated_at"`
}

// CanModify returns nil when the entry may still be edited or deleted
// (DRAFT or SUBMITTED) and an InvalidStateError once it is LOCKED.
func (e WorkEntry) CanModify() error {
	if e.Status == StatusLocked {
		return &InvalidStateError{
			Message:  "cannot modify work entry in LOCKED status",
			Current:  string(e.Status),
			Expected: "DRAFT or SUBMITTED",
		}
	}
	return nil
}

// Submit transitions a DRAFT entry to SUBMITTED. Any other current status,
// including an already SUBMITTED or LOCKED entry, fails with InvalidStateError.
func (e WorkEntry) Submit() (WorkEntry, error) {
	if e.Status != StatusDraft {
		return e, &InvalidStateError{
			Message:  "only DRAFT work entries can be submitted",
			Current:  string(e.Status),
			Expected: string(StatusDraft),
		}
	}
	e.Status = validTransitions[StatusDraft]
	return e, nil
}

// Lock transitions a SUBMITTED entry to LOCKED, the terminal state. A DRAFT
// entry must be submitted first; repeated lock attempts fail.
func (e WorkEntry) Lock() (WorkEntry, error) {
	if e.Status != StatusSubmitted {
		return e, &InvalidStateError{
			Message:  "only SUBMITTED work entries can be locked",
			Current:  string(e.Status),
			Expected: string(StatusSubmitted),
		}
	}
	e.Status = validTransitions[StatusSubmitted]
	return e, nil
}

// WorkEntryPatch carries a partial update. Nil fields are left untouched by
// ApplyPatch; status is deliberately absent and only moves via Submit/Lock.
type WorkEntryPatch struct {
	WorkDate         *time.Time
	ProgramType      *ProgramType
	ProgramReference *string
	TicketID         *string
	Description      *string
	HoursSpent       *float64
}

// IsEmpty reports whether the patch carries no fields at all.
func (p WorkEntryPatch) IsEmpty() bool {
	return p.WorkDate == nil &&
		p.ProgramType == nil &&
		p.ProgramReference == nil &&
		p.TicketID == nil &&
		p.Description == nil &&
		p.HoursSpent == nil
}

// ApplyPatch returns a copy of e with the patch's non-nil fields applied.
// ID, Status, CreatedAt and UpdatedAt are never touched here; the service
// owns timestamp refresh.
func ApplyPatch(e WorkEntry, p WorkEntryPatch) WorkEntry {
	if p.WorkDate != nil {
		e.WorkDate = *p.WorkDate
	}
	if p.ProgramType != nil {
		e.ProgramType = *p.ProgramType
	}
	if p.ProgramReference != nil {
		e.ProgramReference = *p.ProgramReference
	}
	if p.TicketID != nil {
		e.TicketID = *p.TicketID
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.HoursSpent != nil {
		e.HoursSpent = *p.HoursSpent
	}
	return e
}
