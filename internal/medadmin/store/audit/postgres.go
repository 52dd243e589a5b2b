package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"medgate/internal/medadmin/models"
	id "medgate/pkg/domain"
	"medgate/pkg/platform/sentinel"
)

// Schema is the audit trail table. The request and outcome are stored as
// JSON alongside the indexed columns used for dose-history queries.
const Schema = `
CREATE TABLE IF NOT EXISTS administration_audit (
	id            UUID PRIMARY KEY,
	attempt_id    UUID NOT NULL UNIQUE,
	resident_id   UUID NOT NULL,
	medication_id UUID NOT NULL,
	staff_id      UUID NOT NULL,
	disposition   TEXT NOT NULL,
	recorded_at   TIMESTAMPTZ NOT NULL,
	request       JSONB NOT NULL,
	outcome       JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS administration_audit_key_idx
	ON administration_audit (resident_id, medication_id, recorded_at);
`

// PostgresStore persists audit entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed audit store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the audit table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

// Append inserts an audit entry. The unique constraint on attempt_id
// enforces exactly one entry per attempt; violations surface as
// sentinel.ErrConflict.
func (s *PostgresStore) Append(ctx context.Context, entry models.AuditEntry) error {
	requestJSON, err := json.Marshal(entry.Request)
	if err != nil {
		return fmt.Errorf("marshal audit request: %w", err)
	}
	outcomeJSON, err := json.Marshal(entry.Outcome)
	if err != nil {
		return fmt.Errorf("marshal audit outcome: %w", err)
	}

	query := `
		INSERT INTO administration_audit (
			id, attempt_id, resident_id, medication_id, staff_id,
			disposition, recorded_at, request, outcome
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		entry.ID,
		entry.AttemptID.String(),
		entry.Request.ResidentID.String(),
		entry.Request.MedicationID.String(),
		entry.Request.StaffID.String(),
		string(entry.Disposition),
		entry.RecordedAt,
		requestJSON,
		outcomeJSON,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListAdministered returns administered entries for the key recorded at or
// after since.
func (s *PostgresStore) ListAdministered(ctx context.Context, key models.AdministrationKey, since time.Time) ([]models.AuditEntry, error) {
	query := `
		SELECT id, attempt_id, disposition, recorded_at, request, outcome
		FROM administration_audit
		WHERE resident_id = $1 AND medication_id = $2
		  AND disposition = $3 AND recorded_at >= $4
		ORDER BY recorded_at
	`
	rows, err := s.db.QueryContext(ctx, query,
		key.ResidentID.String(),
		key.MedicationID.String(),
		string(models.DispositionAdministered),
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("query administered entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListByResident returns all entries for a resident, newest first.
func (s *PostgresStore) ListByResident(ctx context.Context, residentID id.ResidentID) ([]models.AuditEntry, error) {
	query := `
		SELECT id, attempt_id, disposition, recorded_at, request, outcome
		FROM administration_audit
		WHERE resident_id = $1
		ORDER BY recorded_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, residentID.String())
	if err != nil {
		return nil, fmt.Errorf("query resident entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	for rows.Next() {
		var (
			entry       models.AuditEntry
			attemptID   string
			disposition string
			requestRaw  []byte
			outcomeRaw  []byte
		)
		if err := rows.Scan(&entry.ID, &attemptID, &disposition, &entry.RecordedAt, &requestRaw, &outcomeRaw); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		parsed, err := id.ParseAttemptID(attemptID)
		if err != nil {
			return nil, fmt.Errorf("parse stored attempt id: %w", err)
		}
		entry.AttemptID = parsed
		entry.Disposition = models.Disposition(disposition)
		if err := json.Unmarshal(requestRaw, &entry.Request); err != nil {
			return nil, fmt.Errorf("unmarshal audit request: %w", err)
		}
		if err := json.Unmarshal(outcomeRaw, &entry.Outcome); err != nil {
			return nil, fmt.Errorf("unmarshal audit outcome: %w", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}
