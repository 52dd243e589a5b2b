package stages

import (
	"fmt"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// Route compares the claimed route to the prescribed route and checks the
// route-specific preconditions recorded on the resident: swallowing capacity
// for enteral routes, vascular access for intravenous.
func Route(ev models.Evidence, _ config.VerificationConfig) models.StageVerdict {
	if v, ok := missing(ev, models.StageRoute,
		requirement{models.SourcePrescriptionStore, ev.Prescription != nil},
		requirement{models.SourceResidentDirectory, ev.Resident != nil},
	); ok {
		return v
	}

	claimed := ev.Request.ClaimedRoute
	prescribed := ev.Prescription.Route

	if claimed != prescribed {
		return models.Block(models.StageRoute,
			fmt.Sprintf("claimed route %q differs from prescribed route %q", claimed, prescribed),
			models.CodeRouteMismatch,
		)
	}

	resident := ev.Resident
	switch claimed {
	case models.RouteOral, models.RouteSublingual:
		if resident.SwallowingImpaired {
			return models.Block(models.StageRoute,
				"resident has a swallowing impairment on record; oral route precondition failed",
				models.CodeRoutePrecondition,
			)
		}
	case models.RouteIntravenous:
		if !resident.VascularAccess {
			return models.Block(models.StageRoute,
				"no vascular access on record; intravenous route precondition failed",
				models.CodeRoutePrecondition,
			)
		}
	}

	return models.Pass(models.StageRoute)
}
