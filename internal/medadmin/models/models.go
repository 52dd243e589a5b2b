// Package models defines the value types flowing through the medication
// administration verification pipeline.
//
// Snapshots are read-only projections fetched fresh per attempt from their
// owning systems; the pipeline never mutates them. Keeping them as plain
// values (no behavior beyond derived accessors) keeps every stage a pure
// function of its inputs.
package models

import (
	"math"
	"strings"
	"time"

	id "medgate/pkg/domain"
)

// Route is the administration route of a dose.
type Route string

const (
	RouteOral          Route = "oral"
	RouteSublingual    Route = "sublingual"
	RouteTopical       Route = "topical"
	RouteIntravenous   Route = "intravenous"
	RouteIntramuscular Route = "intramuscular"
	RouteSubcutaneous  Route = "subcutaneous"
	RouteInhaled       Route = "inhaled"
	RouteRectal        Route = "rectal"
	RouteTransdermal   Route = "transdermal"
)

// Dose is an amount in a clinical unit (mg, ml, mcg, units).
type Dose struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// IsZero reports whether the dose is unset.
func (d Dose) IsZero() bool {
	return d.Amount == 0 && d.Unit == ""
}

// SameUnit reports whether both doses use the same unit (case-insensitive).
func (d Dose) SameUnit(other Dose) bool {
	return strings.EqualFold(d.Unit, other.Unit)
}

// Equal reports whether two doses are the same amount in the same unit.
// Amounts are compared with a small epsilon to absorb decimal entry noise.
func (d Dose) Equal(other Dose) bool {
	return d.SameUnit(other) && math.Abs(d.Amount-other.Amount) < 1e-9
}

// AdministrationRequest is the immutable per-attempt input. The Claimed*
// fields are what the administering staff member read off the dispensed
// product and the resident's wristband; the pipeline corroborates them
// against the authoritative snapshots.
type AdministrationRequest struct {
	ResidentID     id.ResidentID
	MedicationID   id.MedicationID
	PrescriptionID id.PrescriptionID
	StaffID        id.StaffID
	// WitnessStaffID is the co-verifying staff member for controlled
	// substances. Nil when no witness was attached.
	WitnessStaffID *id.StaffID

	ScheduledTime time.Time
	AttemptTime   time.Time

	ClaimedDose  Dose
	ClaimedRoute Route

	// Resident identity corroboration entered at the point of care.
	ClaimedNHI         string
	ClaimedDateOfBirth string // YYYY-MM-DD
	ClaimedFullName    string

	// Product label values read from the dispensed medication.
	ClaimedMedicationName string
	ClaimedStrength       string
	ClaimedForm           string
	ClaimedManufacturer   string
	ClaimedBatchNumber    string
}

// Key returns the serialization key for this request's resident/medication pair.
func (r AdministrationRequest) Key() AdministrationKey {
	return AdministrationKey{ResidentID: r.ResidentID, MedicationID: r.MedicationID}
}

// Allergy is a recorded allergen with clinical severity.
type Allergy struct {
	Allergen string `json:"allergen"`
	Severity string `json:"severity"` // mild, moderate, severe
}

// ResidentSnapshot is the read-only projection from the resident directory.
// Fetched fresh per attempt; clinical state changes between attempts.
type ResidentSnapshot struct {
	ID                  id.ResidentID
	NHI                 string // national health identifier
	FullName            string
	DateOfBirth         string // YYYY-MM-DD
	Allergies           []Allergy
	Conditions          []string
	ActiveMedicationIDs []id.MedicationID
	RenalImpairment     bool
	HepaticImpairment   bool
	SwallowingImpaired  bool
	VascularAccess      bool
	WeightKg            float64
	FetchedAt           time.Time
}

// AgeYears returns the resident's age in whole years at the given time. The
// second return is false when the recorded date of birth does not parse.
func (r ResidentSnapshot) AgeYears(at time.Time) (int, bool) {
	dob, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return 0, false
	}
	years := at.Year() - dob.Year()
	if at.Before(dob.AddDate(years, 0, 0)) {
		years--
	}
	return years, true
}

// MedicationSnapshot is the read-only projection from the medication catalog.
type MedicationSnapshot struct {
	ID           id.MedicationID
	Name         string
	GenericName  string
	Strength     string
	Form         string
	Manufacturer string

	BatchNumber   string
	BatchRecalled bool
	ExpiryDate    time.Time

	DrugClass  string
	Controlled bool

	// LASAConflicts is the configured look-alike/sound-alike conflict set
	// for this product.
	LASAConflicts []string

	// Contraindications lists resident conditions that make this
	// medication unsafe.
	Contraindications []string

	// Indications lists the conditions this medication is accepted for.
	Indications []string

	MaxDailyDose Dose
	MaxDosePerKg float64 // in MaxDailyDose units per kg; 0 = not weight-limited
	// GeriatricMaxDose caps a single dose for residents at or past the
	// configured geriatric age. Zero means no age-specific cap.
	GeriatricMaxDose  Dose
	RenalAdjustment   bool
	HepaticAdjustment bool

	FetchedAt time.Time
}

// Prescriber identifies who issued a prescription and what they may prescribe.
type Prescriber struct {
	Name                string
	Authorized          bool
	ControlledAuthority bool
}

// PrescriptionSnapshot is the read-only projection from the prescription store.
type PrescriptionSnapshot struct {
	ID           id.PrescriptionID
	ResidentID   id.ResidentID
	MedicationID id.MedicationID

	Dose        Dose
	Route       Route
	DosesPerDay int
	// MinimumInterval overrides the frequency-derived inter-dose interval
	// when set.
	MinimumInterval time.Duration

	Prescriber Prescriber
	ValidFrom  time.Time
	ValidUntil time.Time

	Instructions     string
	Indication       string
	StartedAt        time.Time
	MaxTreatmentDays int

	// WitnessRequired forces a second staff identity even for
	// non-controlled medications.
	WitnessRequired bool

	FetchedAt time.Time
}

// MinInterval returns the minimum inter-dose interval. When no explicit
// interval is prescribed, it derives one from the daily frequency with a
// one hour floor.
func (p PrescriptionSnapshot) MinInterval() time.Duration {
	if p.MinimumInterval > 0 {
		return p.MinimumInterval
	}
	if p.DosesPerDay <= 0 {
		return 0
	}
	derived := 24 * time.Hour / time.Duration(p.DosesPerDay)
	if derived < time.Hour {
		return time.Hour
	}
	return derived
}

// StaffSnapshot is the read-only projection from the staff registry.
type StaffSnapshot struct {
	ID                  id.StaffID
	Name                string
	Role                string
	Active              bool
	MedicationQualified bool
	ControlledQualified bool
	FetchedAt           time.Time
}

// InteractionSeverity classifies a pairwise drug interaction.
type InteractionSeverity string

const (
	SeverityNone            InteractionSeverity = "none"
	SeverityMinor           InteractionSeverity = "minor"
	SeverityModerate        InteractionSeverity = "moderate"
	SeverityMajor           InteractionSeverity = "major"
	SeverityContraindicated InteractionSeverity = "contraindicated"
)

// Interaction is one pairwise interaction between the claimed medication and
// one of the resident's active medications.
type Interaction struct {
	WithMedicationID   id.MedicationID     `json:"with_medication_id"`
	WithMedicationName string              `json:"with_medication_name"`
	Severity           InteractionSeverity `json:"severity"`
	Description        string              `json:"description,omitempty"`
	// ManagementDocumented reports whether a clinical management strategy
	// for this interaction is on file.
	ManagementDocumented bool `json:"management_documented"`
}

// PriorAdministration is one earlier administered dose for the same
// resident/medication pair, derived from the audit trail.
type PriorAdministration struct {
	Timestamp time.Time
	Dose      Dose
}
