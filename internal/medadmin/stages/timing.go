package stages

import (
	"fmt"
	"time"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// Timing checks the attempt time against the scheduled time window and the
// minimum inter-dose interval. An interval violation blocks (double-dosing
// hazard); being outside the window with the interval respected only warns,
// since late rounds are an operational reality.
func Timing(ev models.Evidence, cfg config.VerificationConfig) models.StageVerdict {
	if v, ok := missing(ev, models.StageTiming,
		requirement{models.SourcePrescriptionStore, ev.Prescription != nil},
		requirement{models.SourceAuditStore, ev.PriorLoaded},
	); ok {
		return v
	}

	req := ev.Request

	if interval := ev.Prescription.MinInterval(); interval > 0 {
		if last, ok := lastAdministered(ev.Prior); ok {
			elapsed := req.AttemptTime.Sub(last)
			if elapsed < interval {
				return models.Block(models.StageTiming,
					fmt.Sprintf("only %s since the previous dose; minimum interval is %s",
						elapsed.Round(time.Minute), interval),
					models.CodeIntervalViolation,
				)
			}
		}
	}

	deviation := req.AttemptTime.Sub(req.ScheduledTime)
	if deviation < 0 {
		deviation = -deviation
	}
	if deviation > cfg.TimingWindow {
		return models.Warn(models.StageTiming,
			fmt.Sprintf("attempt is %s from the scheduled time, outside the ±%s window",
				deviation.Round(time.Minute), cfg.TimingWindow),
		)
	}

	return models.Pass(models.StageTiming)
}

func lastAdministered(prior []models.PriorAdministration) (time.Time, bool) {
	var last time.Time
	for _, p := range prior {
		if p.Timestamp.After(last) {
			last = p.Timestamp
		}
	}
	return last, !last.IsZero()
}
