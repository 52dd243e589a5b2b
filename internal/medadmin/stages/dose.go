package stages

import (
	"fmt"
	"time"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// Dose compares the claimed dose to the prescribed dose, then validates it
// against the weight-adjusted bound, the geriatric single-dose cap, and the
// maximum daily aggregate computed from the same day's administered history.
// Renal or hepatic impairment paired with a medication that needs adjustment
// warns for clinical review rather than blocking.
func Dose(ev models.Evidence, cfg config.VerificationConfig) models.StageVerdict {
	if v, ok := missing(ev, models.StageDose,
		requirement{models.SourcePrescriptionStore, ev.Prescription != nil},
		requirement{models.SourceResidentDirectory, ev.Resident != nil},
		requirement{models.SourceMedicationCatalog, ev.Medication != nil},
		requirement{models.SourceAuditStore, ev.PriorLoaded},
	); ok {
		return v
	}

	req := ev.Request
	prescribed := ev.Prescription.Dose
	claimed := req.ClaimedDose

	if !claimed.SameUnit(prescribed) {
		return models.Block(models.StageDose,
			fmt.Sprintf("claimed dose unit %q differs from prescribed unit %q", claimed.Unit, prescribed.Unit),
			models.CodeDoseMismatch,
		)
	}
	if !claimed.Equal(prescribed) {
		return models.Block(models.StageDose,
			fmt.Sprintf("claimed dose %g %s differs from prescribed %g %s",
				claimed.Amount, claimed.Unit, prescribed.Amount, prescribed.Unit),
			models.CodeDoseMismatch,
		)
	}

	med := ev.Medication
	resident := ev.Resident

	if med.MaxDosePerKg > 0 && resident.WeightKg > 0 {
		limit := med.MaxDosePerKg * resident.WeightKg
		if claimed.Amount > limit {
			return models.Block(models.StageDose,
				fmt.Sprintf("dose %g %s exceeds weight-adjusted limit %g %s for %.1f kg",
					claimed.Amount, claimed.Unit, limit, claimed.Unit, resident.WeightKg),
				models.CodeDoseLimitExceeded,
			)
		}
	}

	if !med.GeriatricMaxDose.IsZero() && claimed.SameUnit(med.GeriatricMaxDose) {
		if age, ok := resident.AgeYears(req.AttemptTime); ok && age >= cfg.GeriatricAgeYears {
			if claimed.Amount > med.GeriatricMaxDose.Amount {
				return models.Block(models.StageDose,
					fmt.Sprintf("dose %g %s exceeds geriatric limit %g %s for a %d year old resident",
						claimed.Amount, claimed.Unit, med.GeriatricMaxDose.Amount, med.GeriatricMaxDose.Unit, age),
					models.CodeDoseLimitExceeded,
				)
			}
		}
	}

	if !med.MaxDailyDose.IsZero() && claimed.SameUnit(med.MaxDailyDose) {
		total := claimed.Amount
		for _, prior := range ev.Prior {
			if sameDay(prior.Timestamp, req.AttemptTime) && prior.Dose.SameUnit(claimed) {
				total += prior.Dose.Amount
			}
		}
		if total > med.MaxDailyDose.Amount {
			return models.Block(models.StageDose,
				fmt.Sprintf("daily total %g %s would exceed maximum %g %s",
					total, claimed.Unit, med.MaxDailyDose.Amount, med.MaxDailyDose.Unit),
				models.CodeDoseLimitExceeded,
			)
		}
	}

	if (resident.RenalImpairment && med.RenalAdjustment) ||
		(resident.HepaticImpairment && med.HepaticAdjustment) {
		return models.Warn(models.StageDose,
			"organ impairment on record; dose adjustment requires clinical review")
	}

	return models.Pass(models.StageDose)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
