package handler

import (
	"strings"
	"time"

	"medgate/internal/medadmin/models"
	id "medgate/pkg/domain"
	dErrors "medgate/pkg/domain-errors"
)

// AttemptRequest is the HTTP request body for POST /administrations.
type AttemptRequest struct {
	ResidentID     string `json:"resident_id"`
	MedicationID   string `json:"medication_id"`
	PrescriptionID string `json:"prescription_id"`
	StaffID        string `json:"staff_id"`
	WitnessStaffID string `json:"witness_staff_id,omitempty"`

	ScheduledTime time.Time `json:"scheduled_time"`
	AttemptTime   time.Time `json:"attempt_time"`

	Dose  DoseRequest `json:"dose"`
	Route string      `json:"route"`

	Resident ResidentClaims `json:"resident"`
	Label    LabelClaims    `json:"label"`

	// Parsed values (populated by Validate)
	parsedResidentID     id.ResidentID
	parsedMedicationID   id.MedicationID
	parsedPrescriptionID id.PrescriptionID
	parsedStaffID        id.StaffID
	parsedWitnessID      *id.StaffID
}

// DoseRequest is the dose the staff member is about to give.
type DoseRequest struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// ResidentClaims is the identity information read at the point of care.
type ResidentClaims struct {
	NHI         string `json:"nhi"`
	DateOfBirth string `json:"date_of_birth"`
	FullName    string `json:"full_name"`
}

// LabelClaims is the product information read off the dispensed medication.
type LabelClaims struct {
	MedicationName string `json:"medication_name"`
	Strength       string `json:"strength"`
	Form           string `json:"form"`
	Manufacturer   string `json:"manufacturer"`
	BatchNumber    string `json:"batch_number"`
}

// Validate validates and parses the request.
// Implements the Validator interface for httputil.DecodeAndPrepare.
func (r *AttemptRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	residentID, err := id.ParseResidentID(strings.TrimSpace(r.ResidentID))
	if err != nil {
		return err
	}
	r.parsedResidentID = residentID

	medicationID, err := id.ParseMedicationID(strings.TrimSpace(r.MedicationID))
	if err != nil {
		return err
	}
	r.parsedMedicationID = medicationID

	prescriptionID, err := id.ParsePrescriptionID(strings.TrimSpace(r.PrescriptionID))
	if err != nil {
		return err
	}
	r.parsedPrescriptionID = prescriptionID

	staffID, err := id.ParseStaffID(strings.TrimSpace(r.StaffID))
	if err != nil {
		return err
	}
	r.parsedStaffID = staffID

	if witness := strings.TrimSpace(r.WitnessStaffID); witness != "" {
		witnessID, err := id.ParseStaffID(witness)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInvalidInput, "witness staff id must be a valid UUID")
		}
		r.parsedWitnessID = &witnessID
	}

	switch {
	case r.ScheduledTime.IsZero():
		return dErrors.New(dErrors.CodeInvalidInput, "scheduled_time is required")
	case r.AttemptTime.IsZero():
		return dErrors.New(dErrors.CodeInvalidInput, "attempt_time is required")
	case r.Dose.Amount <= 0:
		return dErrors.New(dErrors.CodeInvalidInput, "dose.amount must be positive")
	case strings.TrimSpace(r.Dose.Unit) == "":
		return dErrors.New(dErrors.CodeInvalidInput, "dose.unit is required")
	case strings.TrimSpace(r.Route) == "":
		return dErrors.New(dErrors.CodeInvalidInput, "route is required")
	}

	return nil
}

// ToDomain converts the validated request to the domain input.
func (r *AttemptRequest) ToDomain() models.AdministrationRequest {
	return models.AdministrationRequest{
		ResidentID:     r.parsedResidentID,
		MedicationID:   r.parsedMedicationID,
		PrescriptionID: r.parsedPrescriptionID,
		StaffID:        r.parsedStaffID,
		WitnessStaffID: r.parsedWitnessID,

		ScheduledTime: r.ScheduledTime,
		AttemptTime:   r.AttemptTime,

		ClaimedDose:  models.Dose{Amount: r.Dose.Amount, Unit: strings.TrimSpace(r.Dose.Unit)},
		ClaimedRoute: models.Route(strings.ToLower(strings.TrimSpace(r.Route))),

		ClaimedNHI:         strings.TrimSpace(r.Resident.NHI),
		ClaimedDateOfBirth: strings.TrimSpace(r.Resident.DateOfBirth),
		ClaimedFullName:    strings.TrimSpace(r.Resident.FullName),

		ClaimedMedicationName: strings.TrimSpace(r.Label.MedicationName),
		ClaimedStrength:       strings.TrimSpace(r.Label.Strength),
		ClaimedForm:           strings.TrimSpace(r.Label.Form),
		ClaimedManufacturer:   strings.TrimSpace(r.Label.Manufacturer),
		ClaimedBatchNumber:    strings.TrimSpace(r.Label.BatchNumber),
	}
}
