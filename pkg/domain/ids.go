// Package domain holds shared identifier types used across modules.
//
// IDs are distinct uuid-backed types so the compiler rejects cross-type
// assignment (a StaffID can never be passed where a ResidentID is expected).
// Construct via the Parse helpers at trust boundaries; direct casting
// bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "medgate/pkg/domain-errors"
)

// ResidentID identifies a care-home resident.
type ResidentID uuid.UUID

// MedicationID identifies a catalog medication product.
type MedicationID uuid.UUID

// PrescriptionID identifies an active prescription.
type PrescriptionID uuid.UUID

// StaffID identifies a staff member.
type StaffID uuid.UUID

// AttemptID identifies a single administration attempt.
type AttemptID uuid.UUID

func (id ResidentID) String() string     { return uuid.UUID(id).String() }
func (id MedicationID) String() string   { return uuid.UUID(id).String() }
func (id PrescriptionID) String() string { return uuid.UUID(id).String() }
func (id StaffID) String() string        { return uuid.UUID(id).String() }
func (id AttemptID) String() string      { return uuid.UUID(id).String() }

func (id ResidentID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id MedicationID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id PrescriptionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id StaffID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id AttemptID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

// NewAttemptID allocates a fresh attempt identifier.
func NewAttemptID() AttemptID { return AttemptID(uuid.New()) }

// Text marshaling renders IDs as canonical UUID strings in JSON and logs.
// Defined types do not inherit uuid.UUID's methods, so each ID implements
// the encoding.Text interfaces explicitly.

func (id ResidentID) MarshalText() ([]byte, error)     { return marshalID(uuid.UUID(id)) }
func (id MedicationID) MarshalText() ([]byte, error)   { return marshalID(uuid.UUID(id)) }
func (id PrescriptionID) MarshalText() ([]byte, error) { return marshalID(uuid.UUID(id)) }
func (id StaffID) MarshalText() ([]byte, error)        { return marshalID(uuid.UUID(id)) }
func (id AttemptID) MarshalText() ([]byte, error)      { return marshalID(uuid.UUID(id)) }

func (id *ResidentID) UnmarshalText(b []byte) error {
	return unmarshalID(b, (*uuid.UUID)(id))
}

func (id *MedicationID) UnmarshalText(b []byte) error {
	return unmarshalID(b, (*uuid.UUID)(id))
}

func (id *PrescriptionID) UnmarshalText(b []byte) error {
	return unmarshalID(b, (*uuid.UUID)(id))
}

func (id *StaffID) UnmarshalText(b []byte) error {
	return unmarshalID(b, (*uuid.UUID)(id))
}

func (id *AttemptID) UnmarshalText(b []byte) error {
	return unmarshalID(b, (*uuid.UUID)(id))
}

func marshalID(u uuid.UUID) ([]byte, error) {
	return []byte(u.String()), nil
}

func unmarshalID(b []byte, dst *uuid.UUID) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*dst = u
	return nil
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be empty", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a valid UUID", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be the nil UUID", what)
	}
	return u, nil
}

// ParseResidentID constructs a ResidentID from external input.
func ParseResidentID(s string) (ResidentID, error) {
	u, err := parseUUID(s, "resident id")
	return ResidentID(u), err
}

// ParseMedicationID constructs a MedicationID from external input.
func ParseMedicationID(s string) (MedicationID, error) {
	u, err := parseUUID(s, "medication id")
	return MedicationID(u), err
}

// ParsePrescriptionID constructs a PrescriptionID from external input.
func ParsePrescriptionID(s string) (PrescriptionID, error) {
	u, err := parseUUID(s, "prescription id")
	return PrescriptionID(u), err
}

// ParseStaffID constructs a StaffID from external input.
func ParseStaffID(s string) (StaffID, error) {
	u, err := parseUUID(s, "staff id")
	return StaffID(u), err
}

// ParseAttemptID constructs an AttemptID from external input.
func ParseAttemptID(s string) (AttemptID, error) {
	u, err := parseUUID(s, "attempt id")
	return AttemptID(u), err
}
