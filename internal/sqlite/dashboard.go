package sqlite

import (
	"context"
	"fmt"

	"github.com/benchforge/labtrail/pkg/types"
)

// Dashboard computes the headline counts: all samples, samples still open,
// tests waiting to start, and open QC events.
func (s *Store) Dashboard(ctx context.Context) (*types.DashboardCounts, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()

	var c types.DashboardCounts
	counts := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&c.TotalSamples, "SELECT COUNT(*) FROM samples", nil},
		{&c.OpenSamples, "SELECT COUNT(*) FROM samples WHERE status NOT IN (?, ?)",
			[]any{types.SampleStatusClosed, types.SampleStatusCancelled}},
		{&c.PendingTests, "SELECT COUNT(*) FROM tests WHERE status = ?",
			[]any{types.TestStatusPending}},
		{&c.OpenQCEvents, "SELECT COUNT(*) FROM qc_events WHERE status = ?",
			[]any{types.QCStatusOpen}},
	}
	for _, cnt := range counts {
		if err := db.QueryRowContext(ctx, cnt.query, cnt.args...).Scan(cnt.dest); err != nil {
			return nil, fmt.Errorf("dashboard count: %w", err)
		}
	}
	return &c, nil
}
