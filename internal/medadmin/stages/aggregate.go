package stages

import (
	"fmt"
	"strings"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// Aggregate is the tenth stage. It recomputes the confidence score over the
// nine prior verdicts and requires both zero Block verdicts and a score at
// or above the configured threshold. It runs as a verifier itself so its
// result lands in the audit trail like any other stage.
//
// The binding rule is fail-closed-on-any-Block; the numeric score is an
// auxiliary signal and can only tighten the decision, never loosen it.
func Aggregate(prior []models.StageVerdict, cfg config.VerificationConfig) models.StageVerdict {
	var blocked []string
	for _, v := range prior {
		if v.Blocking() {
			blocked = append(blocked, string(v.Stage))
		}
	}
	if len(blocked) > 0 {
		return models.Block(models.StageAggregate,
			fmt.Sprintf("blocking verdicts from: %s", strings.Join(blocked, ", ")),
			models.CodeBlockingStagesPresent,
		)
	}

	score := models.ConfidenceScore(prior)
	if score < cfg.ConfidenceThreshold {
		return models.Block(models.StageAggregate,
			fmt.Sprintf("confidence %.3f below threshold %.2f", score, cfg.ConfidenceThreshold),
			models.CodeConfidenceThreshold,
		)
	}

	return models.Pass(models.StageAggregate)
}
