package models

import (
	dErrors "medgate/pkg/domain-errors"
)

// Validate checks structural completeness of an administration request.
// Clinical checks belong to the stage verifiers; this only rejects requests
// the pipeline could not meaningfully evaluate.
func (r AdministrationRequest) Validate() error {
	switch {
	case r.ResidentID.IsNil():
		return dErrors.New(dErrors.CodeInvalidInput, "resident id is required")
	case r.MedicationID.IsNil():
		return dErrors.New(dErrors.CodeInvalidInput, "medication id is required")
	case r.PrescriptionID.IsNil():
		return dErrors.New(dErrors.CodeInvalidInput, "prescription id is required")
	case r.StaffID.IsNil():
		return dErrors.New(dErrors.CodeInvalidInput, "staff id is required")
	case r.ScheduledTime.IsZero():
		return dErrors.New(dErrors.CodeInvalidInput, "scheduled time is required")
	case r.AttemptTime.IsZero():
		return dErrors.New(dErrors.CodeInvalidInput, "attempt time is required")
	case r.ClaimedDose.IsZero():
		return dErrors.New(dErrors.CodeInvalidInput, "claimed dose is required")
	case r.ClaimedRoute == "":
		return dErrors.New(dErrors.CodeInvalidInput, "claimed route is required")
	}
	if r.WitnessStaffID != nil && r.WitnessStaffID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "witness staff id cannot be the nil UUID")
	}
	return nil
}
