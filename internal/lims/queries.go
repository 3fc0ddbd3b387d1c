package lims

import (
	"context"

	"github.com/benchforge/labtrail/pkg/types"
)

// The read side has no invariants of its own: every call re-reads current
// store state and zero matches come back as an empty slice.

// Dashboard returns the headline counts.
func (s *Service) Dashboard(ctx context.Context) (*types.DashboardCounts, error) {
	return s.store.Dashboard(ctx)
}

// DueSoon lists open samples due within the next seven days.
func (s *Service) DueSoon(ctx context.Context) ([]types.Sample, error) {
	return s.store.DueSoon(ctx)
}

// GetSample returns one sample by id.
func (s *Service) GetSample(ctx context.Context, id string) (*types.Sample, error) {
	return s.store.GetSample(ctx, id)
}

// FindSamples lists samples matching a substring and/or status set.
func (s *Service) FindSamples(ctx context.Context, substr string, statuses []string) ([]types.Sample, error) {
	return s.store.FindSamples(ctx, substr, statuses)
}

// GetTest returns one test by id.
func (s *Service) GetTest(ctx context.Context, id int64) (*types.Test, error) {
	return s.store.GetTest(ctx, id)
}

// TestsForSample lists every test attached to one sample.
func (s *Service) TestsForSample(ctx context.Context, sampleID string) ([]types.Test, error) {
	return s.store.TestsForSample(ctx, sampleID)
}

// FindTests lists tests (joined to their sample) matching a substring.
func (s *Service) FindTests(ctx context.Context, substr string) ([]types.Test, error) {
	return s.store.FindTests(ctx, substr)
}

// ResultsForTest lists the results recorded for one test.
func (s *Service) ResultsForTest(ctx context.Context, testID int64) ([]types.Result, error) {
	return s.store.ResultsForTest(ctx, testID)
}

// AttachmentsForSample lists a sample's attachment links.
func (s *Service) AttachmentsForSample(ctx context.Context, sampleID string) ([]types.Attachment, error) {
	return s.store.AttachmentsForSample(ctx, sampleID)
}

// CocForSample returns a sample's custody log in insertion order.
func (s *Service) CocForSample(ctx context.Context, sampleID string) ([]types.CocEvent, error) {
	return s.store.CocForSample(ctx, sampleID)
}

// FindAudit lists audit records, newest first, capped at 1000.
func (s *Service) FindAudit(ctx context.Context, substr string) ([]types.AuditRecord, error) {
	return s.store.FindAudit(ctx, substr, 0)
}

// ListQCEvents lists all QC events, newest first.
func (s *Service) ListQCEvents(ctx context.Context) ([]types.QCEvent, error) {
	return s.store.ListQCEvents(ctx)
}

// ListUsers lists all users, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]types.User, error) {
	return s.store.ListUsers(ctx)
}
