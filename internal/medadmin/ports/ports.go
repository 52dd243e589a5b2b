// Package ports defines shared interfaces for the medadmin module.
// The service depends on these rather than on concrete collaborator
// implementations; in-memory, postgres, and redis implementations live in
// their own packages.
package ports

import (
	"context"
	"time"

	"medgate/internal/medadmin/models"
	id "medgate/pkg/domain"
)

// ResidentDirectory is the external resident record system.
type ResidentDirectory interface {
	GetResidentSnapshot(ctx context.Context, residentID id.ResidentID) (*models.ResidentSnapshot, error)
}

// MedicationCatalog is the external medication product catalog.
type MedicationCatalog interface {
	GetMedicationSnapshot(ctx context.Context, medicationID id.MedicationID) (*models.MedicationSnapshot, error)
}

// PrescriptionStore is the external prescription system of record.
type PrescriptionStore interface {
	GetActivePrescription(ctx context.Context, residentID id.ResidentID, medicationID id.MedicationID) (*models.PrescriptionSnapshot, error)
}

// InteractionDatabase is the external drug interaction knowledge base.
type InteractionDatabase interface {
	CheckInteractions(ctx context.Context, medicationID id.MedicationID, activeMedicationIDs []id.MedicationID) ([]models.Interaction, error)
}

// StaffRegistry resolves staff identities and qualifications.
type StaffRegistry interface {
	GetStaffSnapshot(ctx context.Context, staffID id.StaffID) (*models.StaffSnapshot, error)
}

// AuditStore is the durable, append-only audit trail. Append must be atomic:
// either the entry is fully persisted or the attempt fails.
type AuditStore interface {
	// Append persists an audit entry. Returns sentinel.ErrConflict when an
	// entry for the same attempt already exists.
	Append(ctx context.Context, entry models.AuditEntry) error

	// ListAdministered returns administered entries for the key recorded
	// at or after since, used to derive dose history.
	ListAdministered(ctx context.Context, key models.AdministrationKey, since time.Time) ([]models.AuditEntry, error)

	// ListByResident returns all entries for a resident, newest first.
	ListByResident(ctx context.Context, residentID id.ResidentID) ([]models.AuditEntry, error)
}

// AuditPublisher fans committed audit entries out to downstream consumers.
// Publishing is best-effort; the durable store is the source of truth.
type AuditPublisher interface {
	Publish(ctx context.Context, entry models.AuditEntry) error
}

// LockManager serializes attempts per resident/medication key. WithLock runs
// fn only while holding the exclusive lock and returns
// sentinel.ErrLockTimeout when the lock cannot be acquired within the
// configured wait bound.
type LockManager interface {
	WithLock(ctx context.Context, key models.AdministrationKey, fn func(ctx context.Context) error) error
}
