package handler

import (
	"github.com/workledger/timesheet-service/internal/core/ports"
)

// --- Service result → HTTP response ---

func toWorkEntryResponse(d *ports.WorkEntryDetail) workEntryResponse {
	return workEntryResponse{
		ID:               d.ID,
		WorkDate:         d.WorkDate.Format(dateLayout),
		ProgramType:      d.ProgramType,
		ProgramReference: d.ProgramReference,
		TicketID:         d.TicketID,
		Description:      d.Description,
		HoursSpent:       d.HoursSpent,
		Status:           d.Status,
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
}

func toSummaryResponse(s ports.WorkEntrySummary) workEntrySummaryResponse {
	return workEntrySummaryResponse{
		ID:               s.ID,
		WorkDate:         s.WorkDate.Format(dateLayout),
		ProgramType:      s.ProgramType,
		ProgramReference: s.ProgramReference,
		HoursSpent:       s.HoursSpent,
		Status:           s.Status,
	}
}

func toSummaryResponses(items []ports.WorkEntrySummary) []workEntrySummaryResponse {
	out := make([]workEntrySummaryResponse, len(items))
	for i, s := range items {
		out[i] = toSummaryResponse(s)
	}
	return out
}

func toPageResponse(p *ports.WorkEntryPage) pageResponse {
	return pageResponse{
		Content:          toSummaryResponses(p.Items),
		PageNumber:       p.PageNumber,
		PageSize:         p.PageSize,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		First:            p.First,
		Last:             p.Last,
		HasNext:          p.HasNext,
		HasPrevious:      p.HasPrevious,
		NumberOfElements: p.NumberOfElements,
		Empty:            p.Empty,
	}
}
