// Package audit provides the durable, append-only store for administration
// audit entries. Entries are never updated or deleted.
package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"medgate/internal/medadmin/models"
	id "medgate/pkg/domain"
	"medgate/pkg/platform/sentinel"
)

// InMemoryStore keeps audit entries in memory. Used in tests and when the
// service runs without a configured postgres URL.
type InMemoryStore struct {
	mu       sync.RWMutex
	entries  []models.AuditEntry
	attempts map[id.AttemptID]struct{}
}

// NewInMemoryStore creates an empty in-memory audit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{attempts: make(map[id.AttemptID]struct{})}
}

// Append stores an entry. Returns sentinel.ErrConflict when an entry for the
// same attempt already exists (exactly one entry per attempt).
func (s *InMemoryStore) Append(_ context.Context, entry models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.attempts[entry.AttemptID]; exists {
		return sentinel.ErrConflict
	}
	s.attempts[entry.AttemptID] = struct{}{}
	s.entries = append(s.entries, entry)
	return nil
}

// ListAdministered returns administered entries for the key recorded at or
// after since.
func (s *InMemoryStore) ListAdministered(_ context.Context, key models.AdministrationKey, since time.Time) ([]models.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AuditEntry
	for _, e := range s.entries {
		if e.Disposition != models.DispositionAdministered {
			continue
		}
		if e.Request.Key() != key {
			continue
		}
		if e.RecordedAt.Before(since) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// ListByResident returns all entries for a resident, newest first.
func (s *InMemoryStore) ListByResident(_ context.Context, residentID id.ResidentID) ([]models.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AuditEntry
	for _, e := range s.entries {
		if e.Request.ResidentID == residentID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, nil
}
