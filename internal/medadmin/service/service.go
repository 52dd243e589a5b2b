// Package service coordinates a medication administration attempt end to
// end: per-key serialization, fresh evidence gathering, the ten-stage
// verification pipeline, and the mandatory audit write.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"medgate/internal/medadmin/config"
	"medgate/internal/medadmin/metrics"
	"medgate/internal/medadmin/models"
	"medgate/internal/medadmin/pipeline"
	"medgate/internal/medadmin/ports"
	id "medgate/pkg/domain"
	dErrors "medgate/pkg/domain-errors"
	"medgate/pkg/platform/sentinel"
	"medgate/pkg/requestcontext"
)

// Service verifies and audits administration attempts. All verdict logic
// lives in the stage verifiers; the service owns only orchestration.
type Service struct {
	residents     ports.ResidentDirectory
	medications   ports.MedicationCatalog
	prescriptions ports.PrescriptionStore
	interactions  ports.InteractionDatabase
	staff         ports.StaffRegistry
	audits        ports.AuditStore
	locks         ports.LockManager

	publisher ports.AuditPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	cfg       config.VerificationConfig
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the service metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher sets a best-effort downstream audit publisher.
func WithPublisher(p ports.AuditPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithConfig overrides the default verification configuration.
func WithConfig(cfg config.VerificationConfig) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// New creates a Service. All seven collaborators are required; logger,
// metrics, publisher, and config are optional.
func New(
	residents ports.ResidentDirectory,
	medications ports.MedicationCatalog,
	prescriptions ports.PrescriptionStore,
	interactions ports.InteractionDatabase,
	staff ports.StaffRegistry,
	audits ports.AuditStore,
	locks ports.LockManager,
	opts ...Option,
) (*Service, error) {
	switch {
	case residents == nil:
		return nil, errors.New("resident directory is required")
	case medications == nil:
		return nil, errors.New("medication catalog is required")
	case prescriptions == nil:
		return nil, errors.New("prescription store is required")
	case interactions == nil:
		return nil, errors.New("interaction database is required")
	case staff == nil:
		return nil, errors.New("staff registry is required")
	case audits == nil:
		return nil, errors.New("audit store is required")
	case locks == nil:
		return nil, errors.New("lock manager is required")
	}

	s := &Service{
		residents:     residents,
		medications:   medications,
		prescriptions: prescriptions,
		interactions:  interactions,
		staff:         staff,
		audits:        audits,
		locks:         locks,
		cfg:           config.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AttemptAdministration runs one attempt under the per-resident/medication
// lock. The returned result is authoritative only after its audit entry is
// durably persisted; an audit failure fails the whole attempt.
//
// A lock wait that exceeds the configured bound returns a retryable
// unavailable error without touching the audit trail.
func (s *Service) AttemptAdministration(ctx context.Context, req models.AdministrationRequest) (*models.AdministrationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	var result *models.AdministrationResult
	err := s.locks.WithLock(ctx, req.Key(), func(ctx context.Context) error {
		var runErr error
		result, runErr = s.run(ctx, req)
		return runErr
	})
	s.metrics.ObserveAttemptLatency(time.Since(start))

	if err != nil {
		if errors.Is(err, sentinel.ErrLockTimeout) {
			s.metrics.IncrementLockTimeouts()
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable,
				"another attempt for this resident and medication is in progress")
		}
		return nil, err
	}
	return result, nil
}

// AuditTrail returns the resident's full administration attempt history,
// newest first.
func (s *Service) AuditTrail(ctx context.Context, residentID id.ResidentID) ([]models.AuditEntry, error) {
	entries, err := s.audits.ListByResident(ctx, residentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit trail unavailable")
	}
	return entries, nil
}

func (s *Service) run(ctx context.Context, req models.AdministrationRequest) (*models.AdministrationResult, error) {
	// Once the lock is held the attempt runs to completion. A caller
	// disconnect must not leave a verified attempt unaudited.
	ctx = context.WithoutCancel(ctx)

	attemptID := id.NewAttemptID()
	ev := s.gather(ctx, req)
	outcome := pipeline.Verify(ev, s.cfg)

	for _, v := range outcome.Verdicts {
		s.metrics.IncrementStageVerdict(string(v.Stage), string(v.Kind))
	}

	disposition := models.DispositionAdministered
	if outcome.Decision == models.DecisionBlocked {
		disposition = models.DispositionBlocked
	}

	entry := models.AuditEntry{
		ID:          uuid.New(),
		AttemptID:   attemptID,
		Request:     req,
		Outcome:     outcome,
		Disposition: disposition,
		RecordedAt:  requestcontext.Now(ctx),
	}
	if err := s.audits.Append(ctx, entry); err != nil {
		s.metrics.IncrementAuditFailures()
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "audit persistence failed, attempt rejected",
				"attempt_id", attemptID,
				"resident_id", req.ResidentID,
				"medication_id", req.MedicationID,
				"error", err,
			)
		}
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "an audit entry for this attempt already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "audit entry could not be persisted")
	}

	// The durable store is the source of truth; fan-out is best effort.
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, entry); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "audit publish failed",
				"attempt_id", attemptID,
				"error", err,
			)
		}
	}

	s.metrics.IncrementOutcome(string(disposition))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "administration attempt verified",
			"attempt_id", attemptID,
			"resident_id", req.ResidentID,
			"medication_id", req.MedicationID,
			"disposition", disposition,
			"confidence", outcome.Confidence,
		)
	}

	return &models.AdministrationResult{
		AttemptID:    attemptID,
		Disposition:  disposition,
		Outcome:      outcome,
		AuditEntryID: entry.ID,
	}, nil
}
