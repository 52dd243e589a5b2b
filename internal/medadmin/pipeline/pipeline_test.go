package pipeline

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/models"
	id "medgate/pkg/domain"
)

type PipelineSuite struct {
	suite.Suite
	cfg  config.VerificationConfig
	base time.Time
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func (s *PipelineSuite) SetupTest() {
	s.cfg = config.DefaultConfig()
	s.base = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
}

func (s *PipelineSuite) evidence() models.Evidence {
	residentID := id.ResidentID(uuid.New())
	medicationID := id.MedicationID(uuid.New())
	prescriptionID := id.PrescriptionID(uuid.New())
	staffID := id.StaffID(uuid.New())

	return models.Evidence{
		Request: models.AdministrationRequest{
			ResidentID:     residentID,
			MedicationID:   medicationID,
			PrescriptionID: prescriptionID,
			StaffID:        staffID,

			ScheduledTime: s.base,
			AttemptTime:   s.base,

			ClaimedDose:  models.Dose{Amount: 500, Unit: "mg"},
			ClaimedRoute: models.RouteOral,

			ClaimedNHI:         "NHI-4821-0937",
			ClaimedDateOfBirth: "1941-03-05",
			ClaimedFullName:    "Margaret Holloway",

			ClaimedMedicationName: "Amoxicillin",
			ClaimedStrength:       "500 mg",
			ClaimedForm:           "capsule",
			ClaimedBatchNumber:    "AMX-118",
		},
		Resident: &models.ResidentSnapshot{
			ID:          residentID,
			NHI:         "NHI-4821-0937",
			FullName:    "Margaret Holloway",
			DateOfBirth: "1941-03-05",
			Conditions:  []string{"chest infection"},
			WeightKg:    61.5,
		},
		Medication: &models.MedicationSnapshot{
			ID:           medicationID,
			Name:         "Amoxicillin",
			GenericName:  "amoxicillin",
			Strength:     "500 mg",
			Form:         "capsule",
			BatchNumber:  "AMX-118",
			ExpiryDate:   s.base.AddDate(1, 0, 0),
			DrugClass:    "penicillin",
			Indications:  []string{"chest infection"},
			MaxDailyDose: models.Dose{Amount: 3000, Unit: "mg"},
		},
		Prescription: &models.PrescriptionSnapshot{
			ID:           prescriptionID,
			ResidentID:   residentID,
			MedicationID: medicationID,
			Dose:         models.Dose{Amount: 500, Unit: "mg"},
			Route:        models.RouteOral,
			DosesPerDay:  2,
			Prescriber:   models.Prescriber{Name: "Dr. E. Naidoo", Authorized: true},
			ValidFrom:    s.base.AddDate(0, 0, -3),
			ValidUntil:   s.base.AddDate(0, 0, 4),
			Indication:   "chest infection",
			StartedAt:    s.base.AddDate(0, 0, -3),
		},
		Staff: &models.StaffSnapshot{
			ID:                  staffID,
			Active:              true,
			MedicationQualified: true,
		},
		InteractionsChecked: true,
		PriorLoaded:         true,
		GatheredAt:          s.base,
	}
}

func (s *PipelineSuite) TestCleanAttemptProceeds() {
	outcome := Verify(s.evidence(), s.cfg)

	s.Equal(models.DecisionProceed, outcome.Decision)
	s.InDelta(1.0, outcome.Confidence, 1e-9)
	s.Len(outcome.Verdicts, 10)
	s.Empty(outcome.Blockers())
}

func (s *PipelineSuite) TestVerdictsFollowTheFixedOrder() {
	outcome := Verify(s.evidence(), s.cfg)

	expected := models.Stages()
	s.Require().Len(outcome.Verdicts, len(expected))
	for i, v := range outcome.Verdicts {
		s.Equal(expected[i], v.Stage)
	}
}

func (s *PipelineSuite) TestBlockNeverShortCircuits() {
	ev := s.evidence()
	ev.Resident.Allergies = []models.Allergy{{Allergen: "penicillin", Severity: "severe"}}
	// A second, independent hazard later in the order.
	ev.Interactions = []models.Interaction{{
		WithMedicationName: "Methotrexate",
		Severity:           models.SeverityContraindicated,
	}}

	outcome := Verify(ev, s.cfg)

	s.Equal(models.DecisionBlocked, outcome.Decision)
	s.Len(outcome.Verdicts, 10)

	blockers := outcome.Blockers()
	s.Require().Len(blockers, 3)
	s.Equal(models.StageAllergy, blockers[0].Stage)
	s.Equal(models.StageInteraction, blockers[1].Stage)
	s.Equal(models.StageAggregate, blockers[2].Stage)
}

func (s *PipelineSuite) TestSingleWarnBlocksOnConfidence() {
	ev := s.evidence()
	ev.Request.AttemptTime = s.base.Add(45 * time.Minute)

	outcome := Verify(ev, s.cfg)

	s.Equal(models.DecisionBlocked, outcome.Decision)
	s.InDelta(8.5/9.0, outcome.Confidence, 1e-9)

	aggregate, ok := outcome.Verdict(models.StageAggregate)
	s.Require().True(ok)
	s.Equal(models.CodeConfidenceThreshold, aggregate.Code)
}

func (s *PipelineSuite) TestUnavailableSourceFailsClosed() {
	ev := s.evidence()
	ev.Medication = nil
	ev.MarkUnavailable(models.SourceMedicationCatalog, "catalog timeout")

	outcome := Verify(ev, s.cfg)

	s.Equal(models.DecisionBlocked, outcome.Decision)
	for _, stage := range []models.Stage{
		models.StageMedicationIdentity,
		models.StageDose,
		models.StageAllergy,
		models.StageAppropriateness,
		models.StageAuthorization,
	} {
		v, ok := outcome.Verdict(stage)
		s.Require().True(ok, "missing verdict for %s", stage)
		s.Equal(models.VerdictBlock, v.Kind, "stage %s", stage)
		s.Equal(models.CodeDataUnavailable, v.Code, "stage %s", stage)
	}
}

func (s *PipelineSuite) TestDeterministic() {
	ev := s.evidence()
	ev.Request.AttemptTime = s.base.Add(10 * time.Minute)

	first := Verify(ev, s.cfg)
	second := Verify(ev, s.cfg)

	s.Equal(first, second)
}
