package models

import "time"

// EvidenceSource names the external collaborators the pipeline loads from.
type EvidenceSource string

const (
	SourceResidentDirectory   EvidenceSource = "resident_directory"
	SourceMedicationCatalog   EvidenceSource = "medication_catalog"
	SourcePrescriptionStore   EvidenceSource = "prescription_store"
	SourceInteractionDatabase EvidenceSource = "interaction_database"
	SourceStaffRegistry       EvidenceSource = "staff_registry"
	SourceAuditStore          EvidenceSource = "audit_store"
)

// Evidence is the fully-loaded, read-only input bundle for one verification
// run. All I/O happens before stage evaluation; the stages themselves are
// pure functions over this value.
//
// A nil snapshot means the source did not yield it; Unavailable records why.
// Stages that need an absent source return a fail-closed Block rather than an
// error, so the outcome always carries all ten verdicts.
type Evidence struct {
	Request AdministrationRequest

	Resident     *ResidentSnapshot
	Medication   *MedicationSnapshot
	Prescription *PrescriptionSnapshot
	Staff        *StaffSnapshot
	Witness      *StaffSnapshot

	Interactions        []Interaction
	InteractionsChecked bool

	Prior       []PriorAdministration
	PriorLoaded bool

	Unavailable map[EvidenceSource]string

	GatheredAt time.Time
}

// MarkUnavailable records that a source could not supply its snapshot.
func (e *Evidence) MarkUnavailable(source EvidenceSource, reason string) {
	if e.Unavailable == nil {
		e.Unavailable = make(map[EvidenceSource]string)
	}
	e.Unavailable[source] = reason
}

// UnavailableReason returns the recorded failure reason for a source, if any.
func (e Evidence) UnavailableReason(source EvidenceSource) (string, bool) {
	reason, ok := e.Unavailable[source]
	return reason, ok
}
