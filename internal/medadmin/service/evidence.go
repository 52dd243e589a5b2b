package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"medgate/internal/medadmin/models"
	"medgate/pkg/requestcontext"
)

// gather loads all external snapshots for one attempt in parallel. Fetch
// failures never abort the attempt: the source is marked unavailable and the
// dependent stages block (fail closed), so the outcome still carries all ten
// verdicts.
func (s *Service) gather(ctx context.Context, req models.AdministrationRequest) models.Evidence {
	ev := models.Evidence{
		Request:    req,
		GatheredAt: requestcontext.Now(ctx),
	}

	var mu sync.Mutex
	unavailable := func(source models.EvidenceSource, err error) {
		mu.Lock()
		defer mu.Unlock()
		ev.MarkUnavailable(source, err.Error())
		if s.logger != nil {
			s.logger.WarnContext(ctx, "evidence source unavailable",
				"source", source,
				"error", err,
			)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.timed(gctx, models.SourceResidentDirectory, func(ctx context.Context) error {
			snapshot, err := s.residents.GetResidentSnapshot(ctx, req.ResidentID)
			if err != nil {
				return err
			}
			ev.Resident = snapshot
			return nil
		})
		if err != nil {
			unavailable(models.SourceResidentDirectory, err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.timed(gctx, models.SourceMedicationCatalog, func(ctx context.Context) error {
			snapshot, err := s.medications.GetMedicationSnapshot(ctx, req.MedicationID)
			if err != nil {
				return err
			}
			ev.Medication = snapshot
			return nil
		})
		if err != nil {
			unavailable(models.SourceMedicationCatalog, err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.timed(gctx, models.SourcePrescriptionStore, func(ctx context.Context) error {
			snapshot, err := s.prescriptions.GetActivePrescription(ctx, req.ResidentID, req.MedicationID)
			if err != nil {
				return err
			}
			ev.Prescription = snapshot
			return nil
		})
		if err != nil {
			unavailable(models.SourcePrescriptionStore, err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.timed(gctx, models.SourceStaffRegistry, func(ctx context.Context) error {
			snapshot, err := s.staff.GetStaffSnapshot(ctx, req.StaffID)
			if err != nil {
				return err
			}
			ev.Staff = snapshot

			if req.WitnessStaffID != nil {
				witness, err := s.staff.GetStaffSnapshot(ctx, *req.WitnessStaffID)
				if err != nil {
					return err
				}
				ev.Witness = witness
			}
			return nil
		})
		if err != nil {
			unavailable(models.SourceStaffRegistry, err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.timed(gctx, models.SourceAuditStore, func(ctx context.Context) error {
			since := requestcontext.Now(ctx).Add(-s.cfg.PriorLookback)
			entries, err := s.audits.ListAdministered(ctx, req.Key(), since)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				ev.Prior = append(ev.Prior, models.PriorAdministration{
					Timestamp: entry.RecordedAt,
					Dose:      entry.Request.ClaimedDose,
				})
			}
			ev.PriorLoaded = true
			return nil
		})
		if err != nil {
			unavailable(models.SourceAuditStore, err)
		}
		return nil
	})

	// Fetch goroutines always return nil; a slow source must not cancel its
	// siblings.
	_ = g.Wait()

	// The interaction check needs the resident's active medication list, so
	// it runs after the snapshot fetches settle.
	if ev.Resident == nil {
		ev.MarkUnavailable(models.SourceInteractionDatabase, "resident snapshot required to resolve active medications")
		return ev
	}
	err := s.timed(ctx, models.SourceInteractionDatabase, func(ctx context.Context) error {
		found, err := s.interactions.CheckInteractions(ctx, req.MedicationID, ev.Resident.ActiveMedicationIDs)
		if err != nil {
			return err
		}
		ev.Interactions = found
		ev.InteractionsChecked = true
		return nil
	})
	if err != nil {
		unavailable(models.SourceInteractionDatabase, err)
	}

	return ev
}

// timed runs one snapshot fetch under the configured per-source timeout and
// records its latency.
func (s *Service) timed(ctx context.Context, source models.EvidenceSource, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	s.metrics.ObserveSnapshotLatency(string(source), time.Since(start))
	return err
}
