package handler

import (
	"time"

	"medgate/internal/medadmin/models"
)

// AttemptResponse is the HTTP response for POST /administrations.
type AttemptResponse struct {
	AttemptID    string                `json:"attempt_id"`
	Disposition  string                `json:"disposition"`
	Decision     string                `json:"decision"`
	Confidence   float64               `json:"confidence"`
	Verdicts     []models.StageVerdict `json:"verdicts"`
	AuditEntryID string                `json:"audit_entry_id"`
}

// FromResult converts a domain AdministrationResult to an HTTP response.
func FromResult(result *models.AdministrationResult) *AttemptResponse {
	return &AttemptResponse{
		AttemptID:    result.AttemptID.String(),
		Disposition:  string(result.Disposition),
		Decision:     string(result.Outcome.Decision),
		Confidence:   result.Outcome.Confidence,
		Verdicts:     result.Outcome.Verdicts,
		AuditEntryID: result.AuditEntryID.String(),
	}
}

// AuditEntryResponse is one audit trail entry in the HTTP response for
// GET /residents/{residentID}/administrations.
type AuditEntryResponse struct {
	ID          string                `json:"id"`
	AttemptID   string                `json:"attempt_id"`
	Disposition string                `json:"disposition"`
	Decision    string                `json:"decision"`
	Confidence  float64               `json:"confidence"`
	Verdicts    []models.StageVerdict `json:"verdicts"`
	RecordedAt  time.Time             `json:"recorded_at"`
}

// AuditTrailResponse wraps the resident's audit trail.
type AuditTrailResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

// FromEntries converts audit entries to the HTTP response, newest first.
func FromEntries(entries []models.AuditEntry) *AuditTrailResponse {
	out := &AuditTrailResponse{Entries: make([]AuditEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		out.Entries = append(out.Entries, AuditEntryResponse{
			ID:          entry.ID.String(),
			AttemptID:   entry.AttemptID.String(),
			Disposition: string(entry.Disposition),
			Decision:    string(entry.Outcome.Decision),
			Confidence:  entry.Outcome.Confidence,
			Verdicts:    entry.Outcome.Verdicts,
			RecordedAt:  entry.RecordedAt,
		})
	}
	return out
}
