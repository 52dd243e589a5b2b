package stages

import (
	"fmt"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// Authorization corroborates the claimed prescription against the active one
// on file, then validates its validity window and prescriber authority, and
// the administering staff member's qualification. Controlled
// substances additionally require a second, distinct staff identity attached
// as witness.
func Authorization(ev models.Evidence, _ config.VerificationConfig) models.StageVerdict {
	if v, ok := missing(ev, models.StageAuthorization,
		requirement{models.SourcePrescriptionStore, ev.Prescription != nil},
		requirement{models.SourceMedicationCatalog, ev.Medication != nil},
		requirement{models.SourceStaffRegistry, ev.Staff != nil},
	); ok {
		return v
	}

	rx := ev.Prescription
	med := ev.Medication
	req := ev.Request

	if rx.ID != req.PrescriptionID {
		return models.Block(models.StageAuthorization,
			"claimed prescription does not match the active prescription on file",
			models.CodeMissingAuthorization,
		)
	}

	at := req.AttemptTime
	if at.Before(rx.ValidFrom) || (!rx.ValidUntil.IsZero() && at.After(rx.ValidUntil)) {
		return models.Block(models.StageAuthorization,
			fmt.Sprintf("prescription is not valid at the attempt time (valid %s to %s)",
				rx.ValidFrom.Format("2006-01-02"), rx.ValidUntil.Format("2006-01-02")),
			models.CodeMissingAuthorization,
		)
	}
	if rx.ResidentID != req.ResidentID || rx.MedicationID != req.MedicationID {
		return models.Block(models.StageAuthorization,
			"prescription does not cover this resident/medication pair",
			models.CodeMissingAuthorization,
		)
	}
	if !rx.Prescriber.Authorized {
		return models.Block(models.StageAuthorization,
			fmt.Sprintf("prescriber %s is not an authorized prescriber", rx.Prescriber.Name),
			models.CodeMissingAuthorization,
		)
	}
	if med.Controlled && !rx.Prescriber.ControlledAuthority {
		return models.Block(models.StageAuthorization,
			fmt.Sprintf("prescriber %s lacks controlled-substance authority", rx.Prescriber.Name),
			models.CodeMissingAuthorization,
		)
	}

	staff := ev.Staff
	if !staff.Active {
		return models.Block(models.StageAuthorization,
			"administering staff member is not active",
			models.CodeMissingAuthorization,
		)
	}
	if !staff.MedicationQualified {
		return models.Block(models.StageAuthorization,
			"administering staff member is not qualified to give medication",
			models.CodeMissingAuthorization,
		)
	}
	if med.Controlled && !staff.ControlledQualified {
		return models.Block(models.StageAuthorization,
			"administering staff member is not qualified for controlled substances",
			models.CodeMissingAuthorization,
		)
	}

	if med.Controlled || rx.WitnessRequired {
		if req.WitnessStaffID == nil {
			return models.Block(models.StageAuthorization,
				"witness required: a second staff identity must co-verify this administration",
				models.CodeWitnessRequired,
			)
		}
		if *req.WitnessStaffID == req.StaffID {
			return models.Block(models.StageAuthorization,
				"witness required: the witness must be distinct from the administering staff member",
				models.CodeWitnessRequired,
			)
		}
		if v, ok := missing(ev, models.StageAuthorization,
			requirement{models.SourceStaffRegistry, ev.Witness != nil},
		); ok {
			return v
		}
		if !ev.Witness.Active || (med.Controlled && !ev.Witness.ControlledQualified) {
			return models.Block(models.StageAuthorization,
				"witness is not qualified to co-verify this administration",
				models.CodeWitnessRequired,
			)
		}
	}

	return models.Pass(models.StageAuthorization)
}
