package lims

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchforge/labtrail/internal/sqlite"
	"github.com/benchforge/labtrail/pkg/types"
)

// newService builds a Service on a fresh store with the clock pinned inside
// 2025 so minted identifiers are deterministic.
func newService(t *testing.T) *Service {
	t.Helper()
	store, err := sqlite.Open(t.TempDir(), time.UTC)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	store.SetClock(func() time.Time {
		return time.Date(2025, 8, 26, 10, 0, 0, 0, time.UTC)
	})
	return New(store, nil)
}

// lastAudit returns the newest audit record.
func lastAudit(t *testing.T, s *Service) types.AuditRecord {
	t.Helper()
	recs, err := s.FindAudit(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	return recs[0]
}

// auditCount returns the total number of audit records.
func auditCount(t *testing.T, s *Service) int {
	t.Helper()
	recs, err := s.FindAudit(context.Background(), "")
	require.NoError(t, err)
	return len(recs)
}

func TestRegisterSampleMintsSequentialIDs(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	first, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme", Matrix: types.MatrixWater})
	require.NoError(t, err)
	assert.Equal(t, "S-2025-0001", first.ID)

	second, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme", Matrix: types.MatrixWater})
	require.NoError(t, err)
	assert.Equal(t, "S-2025-0002", second.ID)
}

func TestRegisterSampleRoundTrip(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	draft := types.Sample{
		Client:      "Acme",
		Project:     "Pit expansion",
		Matrix:      types.MatrixSoil,
		Description: "core section 12-14m",
		ReceivedAt:  "2025-08-20",
		DueAt:       "2025-09-15",
		Priority:    types.PriorityHigh,
		Location:    "shelf A1",
	}
	created, err := s.RegisterSample(ctx, "maria", draft)
	require.NoError(t, err)

	got, err := s.GetSample(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.Client, got.Client)
	assert.Equal(t, draft.Project, got.Project)
	assert.Equal(t, draft.Matrix, got.Matrix)
	assert.Equal(t, draft.Description, got.Description)
	assert.Equal(t, draft.ReceivedAt, got.ReceivedAt)
	assert.Equal(t, draft.DueAt, got.DueAt)
	assert.Equal(t, draft.Priority, got.Priority)
	assert.Equal(t, draft.Location, got.Location)
	assert.Equal(t, types.SampleStatusRegistered, got.Status)
	assert.Equal(t, "maria", got.CreatedBy)
}

func TestRegisterSampleDefaultsAndSideEffects(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, types.SampleStatusRegistered, created.Status)
	assert.Equal(t, types.PriorityNormal, created.Priority)
	assert.Equal(t, types.MatrixOther, created.Matrix)
	assert.Equal(t, "2025-08-26", created.ReceivedAt)

	// Registration opens the chain of custody.
	coc, err := s.CocForSample(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, coc, 1)
	assert.Equal(t, cocRegistration, coc[0].Event)
	assert.Equal(t, "maria", coc[0].ByUser)

	// Exactly one audit record, for the sample creation.
	rec := lastAudit(t, s)
	assert.Equal(t, types.EntitySample, rec.Entity)
	assert.Equal(t, created.ID, rec.EntityID)
	assert.Equal(t, types.ActionCreate, rec.Action)
	assert.Equal(t, "maria", rec.ByUser)
	assert.Equal(t, "Acme", rec.Details["client"])
	assert.Equal(t, 1, auditCount(t, s))
}

func TestRegisterSampleValidation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		draft   types.Sample
		wantErr error
	}{
		{"missing client", types.Sample{}, types.ErrValidation},
		{"bad status", types.Sample{Client: "A", Status: "lost"}, types.ErrInvalidStatus},
		{"bad priority", types.Sample{Client: "A", Priority: "asap"}, types.ErrInvalidPriority},
		{"bad matrix", types.Sample{Client: "A", Matrix: "air"}, types.ErrInvalidMatrix},
		{"bad due date", types.Sample{Client: "A", DueAt: "next week"}, types.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.RegisterSample(ctx, "maria", tt.draft)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Validation failures must not write anything.
	assert.Equal(t, 0, auditCount(t, s))
	counts, err := s.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.TotalSamples)
}

func TestRegisterSampleBlankActorRecordsAnon(t *testing.T) {
	s := newService(t)
	created, err := s.RegisterSample(context.Background(), "", types.Sample{Client: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "anon", created.CreatedBy)
	assert.Equal(t, "anon", lastAudit(t, s).ByUser)
}

func TestUpdateSample(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme"})
	require.NoError(t, err)

	upd := *created
	upd.Status = types.SampleStatusInProcess
	upd.Location = "bench 2"
	_, err = s.UpdateSample(ctx, "jorge", upd)
	require.NoError(t, err)

	got, err := s.GetSample(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.SampleStatusInProcess, got.Status)
	assert.Equal(t, "bench 2", got.Location)

	rec := lastAudit(t, s)
	assert.Equal(t, types.ActionUpdate, rec.Action)
	assert.Equal(t, "jorge", rec.ByUser)
	assert.Equal(t, types.SampleStatusInProcess, rec.Details["status"])

	// Unknown sample id.
	upd.ID = "S-2025-9999"
	_, err = s.UpdateSample(ctx, "jorge", upd)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddTestDefaultsAndAudit(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme"})
	require.NoError(t, err)

	tr, err := s.AddTest(ctx, "maria", created.ID, types.Test{Name: "ICP-OES", Method: "EPA 6010D"})
	require.NoError(t, err)
	assert.Equal(t, types.TestStatusPending, tr.Status)
	assert.Equal(t, created.ID, tr.SampleID)

	rec := lastAudit(t, s)
	assert.Equal(t, types.EntityTest, rec.Entity)
	assert.Equal(t, types.ActionCreate, rec.Action)
	assert.Equal(t, "ICP-OES", rec.Details["test"])
}

func TestAddTestUnknownSample(t *testing.T) {
	s := newService(t)
	_, err := s.AddTest(context.Background(), "maria", "S-2025-0404", types.Test{Name: "XRF"})
	require.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, 0, auditCount(t, s), "failed creation must not audit")
}

func TestUpdateTest(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme"})
	require.NoError(t, err)
	tr, err := s.AddTest(ctx, "maria", created.ID, types.Test{Name: "XRF"})
	require.NoError(t, err)

	got, err := s.UpdateTest(ctx, "jorge", tr.ID, types.TestStatusInReview, "jorge", "2025-09-10")
	require.NoError(t, err)
	assert.Equal(t, types.TestStatusInReview, got.Status)
	assert.Equal(t, "jorge", got.AssignedTo)
	assert.Equal(t, "2025-09-10", got.DueAt)

	_, err = s.UpdateTest(ctx, "jorge", 404, types.TestStatusInReview, "", "")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddResultRoundTrip(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme"})
	require.NoError(t, err)
	tr, err := s.AddTest(ctx, "maria", created.ID, types.Test{Name: "ICP-OES"})
	require.NoError(t, err)

	unc := 0.8
	res, err := s.AddResult(ctx, "maria", tr.ID, types.Result{
		Analyte: "Fe", Value: 12.5, Unit: "mg/kg", Uncertainty: &unc,
	})
	require.NoError(t, err)
	assert.Equal(t, tr.ID, res.TestID)

	got, err := s.ResultsForTest(ctx, tr.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fe", got[0].Analyte)
	assert.Equal(t, 12.5, got[0].Value)
	require.NotNil(t, got[0].Uncertainty)
	assert.Equal(t, 0.8, *got[0].Uncertainty)

	rec := lastAudit(t, s)
	assert.Equal(t, types.EntityResult, rec.Entity)
	assert.Equal(t, types.ActionCreate, rec.Action)
	assert.Equal(t, "Fe", rec.Details["analyte"])
}

func TestAddResultUnknownTest(t *testing.T) {
	s := newService(t)
	_, err := s.AddResult(context.Background(), "maria", 404, types.Result{Analyte: "Fe", Value: 1})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddAttachmentAndCocEvent(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme"})
	require.NoError(t, err)

	_, err = s.AddAttachment(ctx, "maria", created.ID, types.Attachment{Label: "drive folder"})
	assert.ErrorIs(t, err, types.ErrValidation, "url is required")

	att, err := s.AddAttachment(ctx, "maria", created.ID, types.Attachment{
		Label: "sampling protocol", URL: "https://drive.example/p/123",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", att.AddedBy)

	_, err = s.AddCocEvent(ctx, "jorge", created.ID, "analysis", "started ICP run")
	require.NoError(t, err)

	coc, err := s.CocForSample(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, coc, 2, "registration plus the explicit event")
	assert.Equal(t, "analysis", coc[1].Event)

	rec := lastAudit(t, s)
	assert.Equal(t, types.EntityCoc, rec.Entity)
	assert.Equal(t, types.ActionAddEvent, rec.Action)

	_, err = s.AddCocEvent(ctx, "jorge", "S-2025-0404", "analysis", "")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestQCEventCloseIsIdempotent(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	e, err := s.AddQCEvent(ctx, "maria", types.QCEvent{
		Type: types.QCTypeCalibration, Instrument: "Epsilon 4",
	})
	require.NoError(t, err)
	assert.Equal(t, types.QCStatusOpen, e.Status)

	closed, err := s.CloseQCEvent(ctx, "maria", e.ID)
	require.NoError(t, err)
	assert.Equal(t, types.QCStatusClosed, closed.Status)
	countAfterFirstClose := auditCount(t, s)

	again, err := s.CloseQCEvent(ctx, "maria", e.ID)
	require.NoError(t, err, "closing twice is not an error")
	assert.Equal(t, types.QCStatusClosed, again.Status)
	assert.Equal(t, countAfterFirstClose, auditCount(t, s), "second close must not audit")

	_, err = s.CloseQCEvent(ctx, "maria", 404)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = s.AddQCEvent(ctx, "maria", types.QCEvent{Type: "inspection"})
	assert.ErrorIs(t, err, types.ErrInvalidQCType)
}

func TestCreateUser(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "admin", "maria", "", true)
	require.NoError(t, err)
	assert.Equal(t, types.RoleAnalyst, u.Role, "role defaults to analyst")

	_, err = s.CreateUser(ctx, "admin", "maria", types.RoleGuest, true)
	assert.ErrorIs(t, err, types.ErrDuplicateUsername)

	_, err = s.CreateUser(ctx, "admin", "pedro", "boss", true)
	assert.ErrorIs(t, err, types.ErrInvalidRole)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2, "seeded admin plus maria")
}

func TestDueSoonExcludesFinishedSamples(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	soon, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme", DueAt: "2025-08-28"})
	require.NoError(t, err)

	_, err = s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme", DueAt: "2025-12-01"})
	require.NoError(t, err)

	closedDue, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme", DueAt: "2025-08-27"})
	require.NoError(t, err)
	upd := *closedDue
	upd.Status = types.SampleStatusClosed
	_, err = s.UpdateSample(ctx, "maria", upd)
	require.NoError(t, err)

	due, err := s.DueSoon(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, soon.ID, due[0].ID)
}

func TestEveryMutationAuditsExactlyOnce(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	created, err := s.RegisterSample(ctx, "maria", types.Sample{Client: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, 1, auditCount(t, s))

	tr, err := s.AddTest(ctx, "maria", created.ID, types.Test{Name: "XRF"})
	require.NoError(t, err)
	assert.Equal(t, 2, auditCount(t, s))

	_, err = s.AddResult(ctx, "maria", tr.ID, types.Result{Analyte: "Si", Value: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, auditCount(t, s))

	_, err = s.AddCocEvent(ctx, "maria", created.ID, "review", "")
	require.NoError(t, err)
	assert.Equal(t, 4, auditCount(t, s))

	qc, err := s.AddQCEvent(ctx, "maria", types.QCEvent{Type: types.QCTypeVerification})
	require.NoError(t, err)
	assert.Equal(t, 5, auditCount(t, s))

	_, err = s.CloseQCEvent(ctx, "maria", qc.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, auditCount(t, s))
}
