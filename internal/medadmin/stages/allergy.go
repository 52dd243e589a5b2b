package stages

import (
	"fmt"
	"strings"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
)

// Allergy cross-references the medication and its drug class against the
// resident's recorded allergies, and the medication's absolute
// contraindications against the resident's active conditions. Any match
// blocks; there is no warn path through this stage.
func Allergy(ev models.Evidence, _ config.VerificationConfig) models.StageVerdict {
	if v, ok := missing(ev, models.StageAllergy,
		requirement{models.SourceResidentDirectory, ev.Resident != nil},
		requirement{models.SourceMedicationCatalog, ev.Medication != nil},
	); ok {
		return v
	}

	med := ev.Medication
	for _, allergy := range ev.Resident.Allergies {
		allergen := strings.TrimSpace(allergy.Allergen)
		if allergen == "" {
			continue
		}
		if strings.EqualFold(allergen, med.Name) || strings.EqualFold(allergen, med.GenericName) {
			return models.Block(models.StageAllergy,
				fmt.Sprintf("known allergy: %s", allergen),
				models.CodeAllergyMatch,
			)
		}
		if med.DrugClass != "" && strings.EqualFold(allergen, med.DrugClass) {
			return models.Block(models.StageAllergy,
				fmt.Sprintf("cross-allergy: %s class", med.DrugClass),
				models.CodeAllergyMatch,
			)
		}
	}

	for _, contraindicated := range med.Contraindications {
		for _, condition := range ev.Resident.Conditions {
			if strings.EqualFold(strings.TrimSpace(contraindicated), strings.TrimSpace(condition)) {
				return models.Block(models.StageAllergy,
					fmt.Sprintf("absolute contraindication: %s", condition),
					models.CodeContraindication,
				)
			}
		}
	}

	return models.Pass(models.StageAllergy)
}
