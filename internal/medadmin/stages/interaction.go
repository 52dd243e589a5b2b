package stages

import (
	"fmt"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// Interaction classifies the pairwise interactions between the claimed
// medication and the resident's active medication list. Any contraindicated
// pairing blocks. Major interactions block once more of them lack a
// documented management strategy than the configured tolerance; otherwise
// major and moderate findings warn for clinical awareness.
func Interaction(ev models.Evidence, cfg config.VerificationConfig) models.StageVerdict {
	if v, ok := missing(ev, models.StageInteraction,
		requirement{models.SourceInteractionDatabase, ev.InteractionsChecked},
	); ok {
		return v
	}

	var unmanagedMajors, majors, moderates int
	for _, ix := range ev.Interactions {
		switch ix.Severity {
		case models.SeverityContraindicated:
			return models.Block(models.StageInteraction,
				fmt.Sprintf("contraindicated interaction with %s: %s", ix.WithMedicationName, ix.Description),
				models.CodeInteractionSeverity,
			)
		case models.SeverityMajor:
			majors++
			if !ix.ManagementDocumented {
				unmanagedMajors++
			}
		case models.SeverityModerate:
			moderates++
		}
	}

	if unmanagedMajors > cfg.MaxMajorInteractions {
		return models.Block(models.StageInteraction,
			fmt.Sprintf("%d major interactions without a documented management strategy (limit %d)",
				unmanagedMajors, cfg.MaxMajorInteractions),
			models.CodeInteractionSeverity,
		)
	}
	if majors > 0 {
		return models.Warn(models.StageInteraction,
			fmt.Sprintf("%d major interaction(s) on record; management strategy documented", majors))
	}
	if moderates > 0 {
		return models.Warn(models.StageInteraction,
			fmt.Sprintf("%d moderate interaction(s) on record", moderates))
	}

	return models.Pass(models.StageInteraction)
}
