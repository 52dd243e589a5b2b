package stages

import (
	"fmt"
	"strings"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// MedicationIdentity compares the dispensed product the staff member is
// holding against the catalog entry: name, strength, form, manufacturer, and
// batch. A
// recalled or expired batch blocks. Name proximity to the product's
// look-alike/sound-alike conflict set warns or blocks depending on the
// configured similarity thresholds.
func MedicationIdentity(ev models.Evidence, cfg config.VerificationConfig) models.StageVerdict {
	if v, ok := missing(ev, models.StageMedicationIdentity,
		requirement{models.SourceMedicationCatalog, ev.Medication != nil},
	); ok {
		return v
	}

	med := ev.Medication
	req := ev.Request

	claimedName := strings.TrimSpace(req.ClaimedMedicationName)
	if claimedName != "" &&
		!strings.EqualFold(claimedName, med.Name) &&
		!strings.EqualFold(claimedName, med.GenericName) {
		return models.Block(models.StageMedicationIdentity,
			fmt.Sprintf("medication name %q does not match catalog entry %q", claimedName, med.Name),
			models.CodeMedicationMismatch,
		)
	}
	if req.ClaimedStrength != "" && !strings.EqualFold(strings.TrimSpace(req.ClaimedStrength), med.Strength) {
		return models.Block(models.StageMedicationIdentity,
			fmt.Sprintf("strength %q does not match catalog strength %q", req.ClaimedStrength, med.Strength),
			models.CodeMedicationMismatch,
		)
	}
	if req.ClaimedForm != "" && !strings.EqualFold(strings.TrimSpace(req.ClaimedForm), med.Form) {
		return models.Block(models.StageMedicationIdentity,
			fmt.Sprintf("form %q does not match catalog form %q", req.ClaimedForm, med.Form),
			models.CodeMedicationMismatch,
		)
	}
	if req.ClaimedManufacturer != "" && !strings.EqualFold(strings.TrimSpace(req.ClaimedManufacturer), med.Manufacturer) {
		return models.Block(models.StageMedicationIdentity,
			fmt.Sprintf("manufacturer %q does not match catalog manufacturer %q", req.ClaimedManufacturer, med.Manufacturer),
			models.CodeMedicationMismatch,
		)
	}
	if req.ClaimedBatchNumber != "" && req.ClaimedBatchNumber != med.BatchNumber {
		return models.Block(models.StageMedicationIdentity,
			fmt.Sprintf("batch %q does not match catalog batch %q", req.ClaimedBatchNumber, med.BatchNumber),
			models.CodeMedicationMismatch,
		)
	}

	if med.BatchRecalled {
		return models.Block(models.StageMedicationIdentity,
			fmt.Sprintf("batch %s has been recalled", med.BatchNumber),
			models.CodeMedicationRecalled,
		)
	}
	if !med.ExpiryDate.IsZero() && med.ExpiryDate.Before(req.AttemptTime) {
		return models.Block(models.StageMedicationIdentity,
			fmt.Sprintf("batch %s expired on %s", med.BatchNumber, med.ExpiryDate.Format("2006-01-02")),
			models.CodeMedicationExpired,
		)
	}

	// LASA proximity: score the label name against the conflict set. An
	// exact or near-exact hit on a conflicting product means the wrong
	// box is likely in hand.
	name := claimedName
	if name == "" {
		name = med.Name
	}
	for _, conflict := range med.LASAConflicts {
		sim := nameSimilarity(name, conflict)
		if sim >= cfg.LASABlockSimilarity {
			return models.Block(models.StageMedicationIdentity,
				fmt.Sprintf("name %q is confusable with %q", name, conflict),
				models.CodeLookAlikeConflict,
			)
		}
		if sim >= cfg.LASAWarnSimilarity {
			return models.Warn(models.StageMedicationIdentity,
				fmt.Sprintf("name %q resembles look-alike/sound-alike product %q; double-check the label", name, conflict),
			)
		}
	}

	return models.Pass(models.StageMedicationIdentity)
}
