package models

import (
	"fmt"

	id "medgate/pkg/domain"
)

// AdministrationKey identifies the resident/medication pair an attempt
// targets. All attempts for the same key are serialized by the lock manager
// so two callers cannot both administer the same scheduled dose.
type AdministrationKey struct {
	ResidentID   id.ResidentID
	MedicationID id.MedicationID
}

// String renders the lock key. Stable format; the Redis lock uses it verbatim.
func (k AdministrationKey) String() string {
	return fmt.Sprintf("medadmin:lock:%s:%s", k.ResidentID, k.MedicationID)
}
