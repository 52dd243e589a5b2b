// Package pipeline sequences the ten verification stages and aggregates
// their verdicts into a single outcome.
package pipeline

import (
	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
	"medgate/internal/medadmin/stages"
)

// Verify runs all ten stages in fixed order over a fully-loaded evidence
// bundle. Every stage always executes — a Block never short-circuits the
// rest — so the audit trail carries a complete picture even for blocked
// attempts. Pure and deterministic: identical inputs yield the identical
// outcome.
func Verify(ev models.Evidence, cfg config.VerificationConfig) models.VerificationOutcome {
	ordered := stages.Ordered()
	verdicts := make([]models.StageVerdict, 0, len(ordered)+1)
	for _, stage := range ordered {
		verdicts = append(verdicts, stage(ev, cfg))
	}

	// The confidence score covers the nine data stages; the aggregate
	// verdict is appended afterwards as the tenth entry.
	confidence := models.ConfidenceScore(verdicts)
	aggregate := stages.Aggregate(verdicts, cfg)
	verdicts = append(verdicts, aggregate)

	decision := models.DecisionProceed
	if aggregate.Blocking() {
		decision = models.DecisionBlocked
	}

	return models.VerificationOutcome{
		Verdicts:   verdicts,
		Decision:   decision,
		Confidence: confidence,
	}
}
