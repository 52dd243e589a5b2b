// Package stages implements the ten verification stages as pure functions.
//
// Each stage takes the fully-loaded evidence bundle and the pipeline
// configuration and returns a StageVerdict. No stage performs I/O or keeps
// state; all data loading happens before evaluation. A stage whose required
// source is absent returns a fail-closed Block rather than an error, so the
// orchestrator can always produce a complete outcome.
package stages

import (
	"fmt"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// Func is a single stage verifier.
type Func func(ev models.Evidence, cfg config.VerificationConfig) models.StageVerdict

// Ordered returns the nine data stages in their fixed evaluation order.
// The tenth stage, Aggregate, consumes their verdicts and is run by the
// orchestrator after them.
func Ordered() []Func {
	return []Func{
		ResidentIdentity,
		MedicationIdentity,
		Dose,
		Route,
		Timing,
		Allergy,
		Interaction,
		Appropriateness,
		Authorization,
	}
}

// requirement pairs an evidence source with whether it delivered.
type requirement struct {
	source  models.EvidenceSource
	present bool
}

// missing returns a fail-closed Block for the first unsatisfied requirement,
// carrying the recorded failure reason when one exists.
func missing(ev models.Evidence, stage models.Stage, reqs ...requirement) (models.StageVerdict, bool) {
	for _, req := range reqs {
		if req.present {
			continue
		}
		reason := "snapshot not loaded"
		if recorded, ok := ev.UnavailableReason(req.source); ok {
			reason = recorded
		}
		return models.Block(stage,
			fmt.Sprintf("%s unavailable: %s", req.source, reason),
			models.CodeDataUnavailable,
		), true
	}
	return models.StageVerdict{}, false
}
