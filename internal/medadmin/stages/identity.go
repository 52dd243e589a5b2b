package stages

import (
	"strings"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// ResidentIdentity confirms the resident targeted by the request against at
// least two independent identifiers read at the point of care: national
// health identifier, date of birth, and full name. Fewer than two
// corroborating identifiers blocks the attempt.
func ResidentIdentity(ev models.Evidence, _ config.VerificationConfig) models.StageVerdict {
	if v, ok := missing(ev, models.StageResidentIdentity,
		requirement{models.SourceResidentDirectory, ev.Resident != nil},
	); ok {
		return v
	}

	resident := ev.Resident
	req := ev.Request

	matches := 0
	if req.ClaimedNHI != "" && strings.EqualFold(strings.TrimSpace(req.ClaimedNHI), resident.NHI) {
		matches++
	}
	if req.ClaimedDateOfBirth != "" && strings.TrimSpace(req.ClaimedDateOfBirth) == resident.DateOfBirth {
		matches++
	}
	if req.ClaimedFullName != "" && equalNames(req.ClaimedFullName, resident.FullName) {
		matches++
	}

	if matches < 2 {
		return models.Block(models.StageResidentIdentity,
			"fewer than two resident identifiers corroborated",
			models.CodeIdentityMismatch,
		)
	}
	return models.Pass(models.StageResidentIdentity)
}

// equalNames compares full names ignoring case and interior whitespace noise.
func equalNames(a, b string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(a), " "), strings.Join(strings.Fields(b), " "))
}
