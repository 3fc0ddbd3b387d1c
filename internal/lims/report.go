package lims

import (
	"context"
	"errors"

	"github.com/benchforge/labtrail/pkg/types"
)

// SampleReport assembles the per-sample report: the sample record, its
// tests, and every result belonging to those tests. An unknown sample id
// yields a report with a zero-value sample and empty sequences rather than
// an error, so a report can always be generated.
func (s *Service) SampleReport(ctx context.Context, sampleID string) (*types.SampleReport, error) {
	report := &types.SampleReport{
		GeneratedAt: types.FormatTime(s.store.Now()),
		Tests:       []types.Test{},
		Results:     []types.Result{},
	}

	smp, err := s.store.GetSample(ctx, sampleID)
	switch {
	case errors.Is(err, types.ErrNotFound):
		return report, nil
	case err != nil:
		return nil, err
	}
	report.Sample = *smp

	tests, err := s.store.TestsForSample(ctx, sampleID)
	if err != nil {
		return nil, err
	}
	report.Tests = tests

	ids := make([]int64, len(tests))
	for i, tr := range tests {
		ids[i] = tr.ID
	}
	results, err := s.store.ResultsForTests(ctx, ids)
	if err != nil {
		return nil, err
	}
	report.Results = results

	return report, nil
}
