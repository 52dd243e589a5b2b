package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "medgate/pkg/domain"
	dErrors "medgate/pkg/domain-errors"
)

func validRequest() AdministrationRequest {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	return AdministrationRequest{
		ResidentID:     id.ResidentID(uuid.New()),
		MedicationID:   id.MedicationID(uuid.New()),
		PrescriptionID: id.PrescriptionID(uuid.New()),
		StaffID:        id.StaffID(uuid.New()),
		ScheduledTime:  now,
		AttemptTime:    now,
		ClaimedDose:    Dose{Amount: 500, Unit: "mg"},
		ClaimedRoute:   RouteOral,
	}
}

func TestDoseEqual(t *testing.T) {
	assert.True(t, Dose{Amount: 500, Unit: "mg"}.Equal(Dose{Amount: 500, Unit: "MG"}))
	assert.True(t, Dose{Amount: 0.1, Unit: "mg"}.Equal(Dose{Amount: 0.1, Unit: "mg"}))
	assert.False(t, Dose{Amount: 500, Unit: "mg"}.Equal(Dose{Amount: 500, Unit: "ml"}))
	assert.False(t, Dose{Amount: 500, Unit: "mg"}.Equal(Dose{Amount: 250, Unit: "mg"}))
}

func TestPrescriptionMinInterval(t *testing.T) {
	tests := []struct {
		name string
		rx   PrescriptionSnapshot
		want time.Duration
	}{
		{"explicit interval wins", PrescriptionSnapshot{MinimumInterval: 4 * time.Hour, DosesPerDay: 2}, 4 * time.Hour},
		{"twice daily derives 12h", PrescriptionSnapshot{DosesPerDay: 2}, 12 * time.Hour},
		{"four times daily derives 6h", PrescriptionSnapshot{DosesPerDay: 4}, 6 * time.Hour},
		{"high frequency floors at 1h", PrescriptionSnapshot{DosesPerDay: 48}, time.Hour},
		{"no frequency means no interval", PrescriptionSnapshot{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rx.MinInterval())
		})
	}
}

func TestResidentAgeYears(t *testing.T) {
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	r := ResidentSnapshot{DateOfBirth: "1941-03-05"}
	age, ok := r.AgeYears(at)
	require.True(t, ok)
	assert.Equal(t, 85, age)

	r.DateOfBirth = "1941-03-15" // birthday later in the month
	age, ok = r.AgeYears(at)
	require.True(t, ok)
	assert.Equal(t, 84, age)

	r.DateOfBirth = "unknown"
	_, ok = r.AgeYears(at)
	assert.False(t, ok)
}

func TestConfidenceScore(t *testing.T) {
	all := func(kind VerdictKind, n int) []StageVerdict {
		out := make([]StageVerdict, n)
		for i := range out {
			out[i] = StageVerdict{Stage: StageDose, Kind: kind}
		}
		return out
	}

	assert.InDelta(t, 1.0, ConfidenceScore(all(VerdictPass, 9)), 1e-9)
	assert.InDelta(t, 0.5, ConfidenceScore(all(VerdictWarn, 9)), 1e-9)
	assert.InDelta(t, 0.0, ConfidenceScore(all(VerdictBlock, 9)), 1e-9)
	assert.Zero(t, ConfidenceScore(nil))

	mixed := all(VerdictPass, 8)
	mixed = append(mixed, Warn(StageTiming, "late"))
	assert.InDelta(t, 8.5/9.0, ConfidenceScore(mixed), 1e-9)
}

func TestOutcomeBlockers(t *testing.T) {
	outcome := VerificationOutcome{Verdicts: []StageVerdict{
		Pass(StageResidentIdentity),
		Block(StageAllergy, "known allergy", CodeAllergyMatch),
		Warn(StageTiming, "late"),
		Block(StageAggregate, "blocking verdicts", CodeBlockingStagesPresent),
	}}

	blockers := outcome.Blockers()
	require.Len(t, blockers, 2)
	assert.Equal(t, StageAllergy, blockers[0].Stage)
	assert.Equal(t, StageAggregate, blockers[1].Stage)

	v, ok := outcome.Verdict(StageTiming)
	require.True(t, ok)
	assert.Equal(t, VerdictWarn, v.Kind)

	_, ok = outcome.Verdict(StageDose)
	assert.False(t, ok)
}

func TestStagesOrder(t *testing.T) {
	stages := Stages()
	require.Len(t, stages, 10)
	assert.Equal(t, StageResidentIdentity, stages[0])
	assert.Equal(t, StageAggregate, stages[9])
}

func TestRequestValidate(t *testing.T) {
	valid := validRequest()
	require.NoError(t, valid.Validate())

	t.Run("missing resident id", func(t *testing.T) {
		req := validRequest()
		req.ResidentID = id.ResidentID{}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("missing dose", func(t *testing.T) {
		req := validRequest()
		req.ClaimedDose = Dose{}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("missing route", func(t *testing.T) {
		req := validRequest()
		req.ClaimedRoute = ""
		assert.Error(t, req.Validate())
	})
}
