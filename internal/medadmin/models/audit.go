package models

import (
	"time"

	"github.com/google/uuid"

	id "medgate/pkg/domain"
)

// Disposition is the final state of an administration attempt.
type Disposition string

const (
	DispositionAdministered Disposition = "administered"
	DispositionBlocked      Disposition = "blocked"
	DispositionAborted      Disposition = "aborted"
)

// AuditEntry is the append-only record of one administration attempt. It is
// never updated or deleted; retention is governed by regulatory policy in the
// audit store's backing system.
//
// Invariants:
//   - exactly one entry exists per attempt
//   - a Disposition of administered implies the outcome holds no Block verdict
type AuditEntry struct {
	ID          uuid.UUID             `json:"id"`
	AttemptID   id.AttemptID          `json:"attempt_id"`
	Request     AdministrationRequest `json:"request"`
	Outcome     VerificationOutcome   `json:"outcome"`
	Disposition Disposition           `json:"disposition"`
	RecordedAt  time.Time             `json:"recorded_at"`
}

// AdministrationResult is what the caller receives after an attempt has been
// verified and audited. The caller persists the actual dose-given record only
// when Disposition is administered.
type AdministrationResult struct {
	AttemptID    id.AttemptID
	Disposition  Disposition
	Outcome      VerificationOutcome
	AuditEntryID uuid.UUID
}
