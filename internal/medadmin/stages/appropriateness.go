package stages

import (
	"fmt"
	"strings"
	"time"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// Appropriateness validates the medication against the prescription's stated
// indication and the treatment-duration bound. Inconclusive evidence warns
// rather than blocks: this judgment call should reach a human reviewer, not
// silently stop an administration.
func Appropriateness(ev models.Evidence, _ config.VerificationConfig) models.StageVerdict {
	if v, ok := missing(ev, models.StageAppropriateness,
		requirement{models.SourcePrescriptionStore, ev.Prescription != nil},
		requirement{models.SourceMedicationCatalog, ev.Medication != nil},
	); ok {
		return v
	}

	rx := ev.Prescription
	med := ev.Medication

	if rx.Indication == "" {
		return models.Warn(models.StageAppropriateness,
			"no documented indication on the prescription")
	}
	if len(med.Indications) > 0 && !containsFold(med.Indications, rx.Indication) {
		return models.Warn(models.StageAppropriateness,
			fmt.Sprintf("indication %q is not among the accepted indications for %s", rx.Indication, med.Name))
	}
	if rx.MaxTreatmentDays > 0 && !rx.StartedAt.IsZero() {
		elapsed := ev.Request.AttemptTime.Sub(rx.StartedAt)
		if elapsed > time24h(rx.MaxTreatmentDays) {
			return models.Warn(models.StageAppropriateness,
				fmt.Sprintf("treatment has run %d days beyond the %d-day bound; review before continuing",
					int(elapsed.Hours()/24)-rx.MaxTreatmentDays, rx.MaxTreatmentDays))
		}
	}

	return models.Pass(models.StageAppropriateness)
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}

func time24h(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
