//go:build integration

package audit_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"medgate/internal/medadmin/models"
	audit "medgate/internal/medadmin/store/audit"
	id "medgate/pkg/domain"
	"medgate/pkg/platform/sentinel"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *sql.DB
	store     *audit.PostgresStore
	base      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("medgate"),
		tcpostgres.WithUsername("medgate"),
		tcpostgres.WithPassword("medgate"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = sql.Open("postgres", dsn)
	s.Require().NoError(err)
	s.Require().NoError(s.db.PingContext(ctx))

	s.store = audit.NewPostgresStore(s.db)
	s.Require().NoError(s.store.EnsureSchema(ctx))

	s.base = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.db.Exec("TRUNCATE administration_audit")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newEntry(key models.AdministrationKey, disposition models.Disposition, recordedAt time.Time) models.AuditEntry {
	return models.AuditEntry{
		ID:        uuid.New(),
		AttemptID: id.NewAttemptID(),
		Request: models.AdministrationRequest{
			ResidentID:   key.ResidentID,
			MedicationID: key.MedicationID,
			StaffID:      id.StaffID(uuid.New()),
			ClaimedDose:  models.Dose{Amount: 500, Unit: "mg"},
			ClaimedRoute: models.RouteOral,
		},
		Outcome: models.VerificationOutcome{
			Verdicts: []models.StageVerdict{
				models.Pass(models.StageResidentIdentity),
			},
			Decision:   models.DecisionProceed,
			Confidence: 1,
		},
		Disposition: disposition,
		RecordedAt:  recordedAt,
	}
}

func newAdministrationKey() models.AdministrationKey {
	return models.AdministrationKey{
		ResidentID:   id.ResidentID(uuid.New()),
		MedicationID: id.MedicationID(uuid.New()),
	}
}

func (s *PostgresStoreSuite) TestAppendAndRoundTrip() {
	ctx := context.Background()
	key := newAdministrationKey()
	entry := s.newEntry(key, models.DispositionAdministered, s.base)

	s.Require().NoError(s.store.Append(ctx, entry))

	entries, err := s.store.ListByResident(ctx, key.ResidentID)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)

	got := entries[0]
	s.Equal(entry.AttemptID, got.AttemptID)
	s.Equal(entry.Disposition, got.Disposition)
	s.Equal(entry.Request.ClaimedDose, got.Request.ClaimedDose)
	s.Equal(entry.Outcome.Decision, got.Outcome.Decision)
	s.Require().Len(got.Outcome.Verdicts, 1)
	s.Equal(models.StageResidentIdentity, got.Outcome.Verdicts[0].Stage)
}

func (s *PostgresStoreSuite) TestDuplicateAttemptConflicts() {
	ctx := context.Background()
	key := newAdministrationKey()
	entry := s.newEntry(key, models.DispositionBlocked, s.base)

	s.Require().NoError(s.store.Append(ctx, entry))

	dup := entry
	dup.ID = uuid.New()
	s.ErrorIs(s.store.Append(ctx, dup), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestListAdministeredFilters() {
	ctx := context.Background()
	key := newAdministrationKey()

	s.Require().NoError(s.store.Append(ctx, s.newEntry(key, models.DispositionAdministered, s.base.Add(-30*time.Hour))))
	s.Require().NoError(s.store.Append(ctx, s.newEntry(key, models.DispositionAdministered, s.base.Add(-6*time.Hour))))
	s.Require().NoError(s.store.Append(ctx, s.newEntry(key, models.DispositionBlocked, s.base.Add(-time.Hour))))
	s.Require().NoError(s.store.Append(ctx, s.newEntry(newAdministrationKey(), models.DispositionAdministered, s.base)))

	entries, err := s.store.ListAdministered(ctx, key, s.base.Add(-24*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(models.DispositionAdministered, entries[0].Disposition)

	entries, err = s.store.ListAdministered(ctx, key, s.base.Add(-48*time.Hour))
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *PostgresStoreSuite) TestListByResidentOrder() {
	ctx := context.Background()
	key := newAdministrationKey()

	s.Require().NoError(s.store.Append(ctx, s.newEntry(key, models.DispositionAdministered, s.base.Add(-2*time.Hour))))
	s.Require().NoError(s.store.Append(ctx, s.newEntry(key, models.DispositionBlocked, s.base)))

	entries, err := s.store.ListByResident(ctx, key.ResidentID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.True(entries[0].RecordedAt.After(entries[1].RecordedAt))
}
