package directory

import (
	"time"

	"github.com/google/uuid"

	"medgate/internal/medadmin/models"
	id "medgate/pkg/domain"
)

// SeedFixtures holds the identifiers of the demo records so main can log
// them and operators can exercise the API without the surrounding systems.
type SeedFixtures struct {
	ResidentID     id.ResidentID
	MedicationID   id.MedicationID
	PrescriptionID id.PrescriptionID
	StaffID        id.StaffID
	WitnessID      id.StaffID
}

// SeedDemo populates the in-memory collaborators with one resident on a
// twice-daily amoxicillin prescription and two qualified staff members.
func SeedDemo(
	residents *InMemoryResidentDirectory,
	medications *InMemoryMedicationCatalog,
	prescriptions *InMemoryPrescriptionStore,
	staff *InMemoryStaffRegistry,
) SeedFixtures {
	now := time.Now()
	fixtures := SeedFixtures{
		ResidentID:     id.ResidentID(uuid.New()),
		MedicationID:   id.MedicationID(uuid.New()),
		PrescriptionID: id.PrescriptionID(uuid.New()),
		StaffID:        id.StaffID(uuid.New()),
		WitnessID:      id.StaffID(uuid.New()),
	}

	residents.Put(models.ResidentSnapshot{
		ID:             fixtures.ResidentID,
		NHI:            "NHI-4821-0937",
		FullName:       "Margaret Holloway",
		DateOfBirth:    "1941-03-05",
		Allergies:      []models.Allergy{{Allergen: "latex", Severity: "moderate"}},
		Conditions:     []string{"hypertension", "chest infection"},
		VascularAccess: false,
		WeightKg:       61.5,
		FetchedAt:      now,
	})

	medications.Put(models.MedicationSnapshot{
		ID:            fixtures.MedicationID,
		Name:          "Amoxicillin",
		GenericName:   "amoxicillin",
		Strength:      "500 mg",
		Form:          "capsule",
		Manufacturer:  "Hexal",
		BatchNumber:   "AMX-2026-118",
		ExpiryDate:    now.AddDate(1, 0, 0),
		DrugClass:     "penicillin",
		LASAConflicts: []string{"amoxapine"},
		Indications:   []string{"chest infection", "urinary tract infection"},
		MaxDailyDose:  models.Dose{Amount: 3000, Unit: "mg"},
		FetchedAt:     now,
	})

	prescriptions.Put(models.PrescriptionSnapshot{
		ID:           fixtures.PrescriptionID,
		ResidentID:   fixtures.ResidentID,
		MedicationID: fixtures.MedicationID,
		Dose:         models.Dose{Amount: 500, Unit: "mg"},
		Route:        models.RouteOral,
		DosesPerDay:  2,
		Prescriber:   models.Prescriber{Name: "Dr. E. Naidoo", Authorized: true},
		ValidFrom:    now.AddDate(0, 0, -3),
		ValidUntil:   now.AddDate(0, 0, 4),
		Indication:   "chest infection",
		StartedAt:    now.AddDate(0, 0, -3),
		FetchedAt:    now,
	})

	staff.Put(models.StaffSnapshot{
		ID:                  fixtures.StaffID,
		Name:                "Priya Raman",
		Role:                "registered nurse",
		Active:              true,
		MedicationQualified: true,
		ControlledQualified: true,
		FetchedAt:           now,
	})
	staff.Put(models.StaffSnapshot{
		ID:                  fixtures.WitnessID,
		Name:                "Tom Okafor",
		Role:                "registered nurse",
		Active:              true,
		MedicationQualified: true,
		ControlledQualified: true,
		FetchedAt:           now,
	})

	return fixtures
}
