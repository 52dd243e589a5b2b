package models

// Stage names the ten verification stages in their fixed evaluation order.
type Stage string

const (
	StageResidentIdentity   Stage = "resident_identity"
	StageMedicationIdentity Stage = "medication_identity"
	StageDose               Stage = "dose"
	StageRoute              Stage = "route"
	StageTiming             Stage = "timing"
	StageAllergy            Stage = "allergy"
	StageInteraction        Stage = "interaction"
	StageAppropriateness    Stage = "clinical_appropriateness"
	StageAuthorization      Stage = "authorization"
	StageAggregate          Stage = "final_aggregation"
)

// Stages returns the fixed evaluation order.
func Stages() []Stage {
	return []Stage{
		StageResidentIdentity,
		StageMedicationIdentity,
		StageDose,
		StageRoute,
		StageTiming,
		StageAllergy,
		StageInteraction,
		StageAppropriateness,
		StageAuthorization,
		StageAggregate,
	}
}

// VerdictKind is the outcome class of a single stage.
type VerdictKind string

const (
	VerdictPass  VerdictKind = "pass"
	VerdictWarn  VerdictKind = "warn"
	VerdictBlock VerdictKind = "block"
)

// Block codes surfaced to callers so staff can see exactly what must be
// resolved. CodeDataUnavailable marks fail-closed blocks where required
// safety data could not be obtained.
const (
	CodeDataUnavailable       = "data_unavailable"
	CodeIdentityMismatch      = "identity_not_corroborated"
	CodeMedicationMismatch    = "medication_mismatch"
	CodeMedicationRecalled    = "medication_recalled"
	CodeMedicationExpired     = "medication_expired"
	CodeLookAlikeConflict     = "look_alike_sound_alike"
	CodeDoseMismatch          = "dose_mismatch"
	CodeDoseLimitExceeded     = "dose_limit_exceeded"
	CodeRouteMismatch         = "route_mismatch"
	CodeRoutePrecondition     = "route_precondition_failed"
	CodeIntervalViolation     = "minimum_interval_violation"
	CodeAllergyMatch          = "allergy_match"
	CodeContraindication      = "contraindication"
	CodeInteractionSeverity   = "interaction_severity"
	CodeMissingAuthorization  = "missing_authorization"
	CodeWitnessRequired       = "witness_required"
	CodeConfidenceThreshold   = "confidence_below_threshold"
	CodeBlockingStagesPresent = "blocking_stages_present"
)

// StageVerdict is the immutable outcome of one stage. Block verdicts carry a
// machine-readable code in addition to the human-readable reason.
type StageVerdict struct {
	Stage  Stage       `json:"stage"`
	Kind   VerdictKind `json:"verdict"`
	Reason string      `json:"reason,omitempty"`
	Code   string      `json:"code,omitempty"`
}

// Pass constructs a passing verdict.
func Pass(stage Stage) StageVerdict {
	return StageVerdict{Stage: stage, Kind: VerdictPass}
}

// Warn constructs a warning verdict. Warnings do not block administration but
// lower the aggregate confidence score.
func Warn(stage Stage, reason string) StageVerdict {
	return StageVerdict{Stage: stage, Kind: VerdictWarn, Reason: reason}
}

// Block constructs a blocking verdict.
func Block(stage Stage, reason, code string) StageVerdict {
	return StageVerdict{Stage: stage, Kind: VerdictBlock, Reason: reason, Code: code}
}

// Blocking reports whether this verdict forbids administration.
func (v StageVerdict) Blocking() bool {
	return v.Kind == VerdictBlock
}

// Score maps the verdict to its contribution to the confidence score.
func (v StageVerdict) Score() float64 {
	switch v.Kind {
	case VerdictPass:
		return 1.0
	case VerdictWarn:
		return 0.5
	default:
		return 0.0
	}
}

// ConfidenceScore averages the stage scores. The numeric score is an
// auxiliary signal only; the binding rule for the aggregate decision is
// zero Block verdicts.
func ConfidenceScore(verdicts []StageVerdict) float64 {
	if len(verdicts) == 0 {
		return 0
	}
	var sum float64
	for _, v := range verdicts {
		sum += v.Score()
	}
	return sum / float64(len(verdicts))
}

// Decision is the aggregate outcome of an attempt's verification.
type Decision string

const (
	DecisionProceed Decision = "proceed"
	DecisionBlocked Decision = "blocked"
)

// VerificationOutcome is the ordered sequence of the ten stage verdicts plus
// the aggregate decision. Created once per attempt; immutable.
type VerificationOutcome struct {
	Verdicts   []StageVerdict `json:"verdicts"`
	Decision   Decision       `json:"decision"`
	Confidence float64        `json:"confidence"`
}

// Blockers returns the blocking verdicts, in stage order.
func (o VerificationOutcome) Blockers() []StageVerdict {
	var out []StageVerdict
	for _, v := range o.Verdicts {
		if v.Blocking() {
			out = append(out, v)
		}
	}
	return out
}

// Verdict returns the verdict for a named stage.
func (o VerificationOutcome) Verdict(stage Stage) (StageVerdict, bool) {
	for _, v := range o.Verdicts {
		if v.Stage == stage {
			return v, true
		}
	}
	return StageVerdict{}, false
}
