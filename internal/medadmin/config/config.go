// Package config holds the tunable clinical constants of the verification
// pipeline. The defaults mirror common care-home policy; deployments override
// them rather than editing stage code.
package config

import "time"

// VerificationConfig parameterizes the stage verifiers and the orchestrator.
type VerificationConfig struct {
	// TimingWindow is the tolerated deviation either side of the scheduled
	// time before the timing stage warns.
	TimingWindow time.Duration

	// ConfidenceThreshold is the minimum aggregate confidence score for a
	// Proceed decision. The score is auxiliary; zero Block verdicts is the
	// binding rule regardless of this value.
	ConfidenceThreshold float64

	// LASAWarnSimilarity and LASABlockSimilarity bound the normalized name
	// similarity against a medication's look-alike/sound-alike conflict
	// set. At or above the warn level the medication identity stage warns;
	// at or above the block level it blocks.
	LASAWarnSimilarity  float64
	LASABlockSimilarity float64

	// GeriatricAgeYears is the age at which a medication's geriatric dose
	// cap starts to apply.
	GeriatricAgeYears int

	// MaxMajorInteractions is how many major interactions without a
	// documented management strategy are tolerated before the interaction
	// stage blocks.
	MaxMajorInteractions int

	// FetchTimeout bounds each external snapshot fetch. A timeout marks
	// the source unavailable and the dependent stages block (fail closed).
	FetchTimeout time.Duration

	// LockWait bounds how long an attempt waits for the per-key
	// administration lock before surfacing a retryable error.
	LockWait time.Duration

	// LockTTL is the expiry on the distributed lock, guarding against a
	// crashed holder wedging the key.
	LockTTL time.Duration

	// PriorLookback is how far back administered-dose history is loaded
	// for the daily-maximum and minimum-interval checks.
	PriorLookback time.Duration
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() VerificationConfig {
	return VerificationConfig{
		TimingWindow:         30 * time.Minute,
		ConfidenceThreshold:  0.95,
		LASAWarnSimilarity:   0.72,
		LASABlockSimilarity:  0.90,
		GeriatricAgeYears:    65,
		MaxMajorInteractions: 1,
		FetchTimeout:         2 * time.Second,
		LockWait:             5 * time.Second,
		LockTTL:              30 * time.Second,
		PriorLookback:        7 * 24 * time.Hour,
	}
}
