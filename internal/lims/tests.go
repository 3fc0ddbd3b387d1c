package lims

import (
	"context"
	"fmt"
	"strconv"

	"github.com/benchforge/labtrail/internal/sqlite"
	"github.com/benchforge/labtrail/pkg/types"
)

// AddTest attaches a new test to an existing sample. Name is required and
// the sample must exist; status defaults to pending. Returns the stored
// test with its assigned id.
func (s *Service) AddTest(ctx context.Context, actor, sampleID string, draft types.Test) (*types.Test, error) {
	actor = actorOrAnon(actor)

	if err := required("sample_id", sampleID); err != nil {
		return nil, err
	}
	if err := required("test_name", draft.Name); err != nil {
		return nil, err
	}
	if draft.Status == "" {
		draft.Status = types.TestStatusPending
	}
	if !types.ValidTestStatus(draft.Status) {
		return nil, fmt.Errorf("%w: status %q", types.ErrInvalidStatus, draft.Status)
	}
	if err := validDate("due_at", draft.DueAt); err != nil {
		return nil, err
	}
	draft.SampleID = sampleID

	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		ok, err := tx.SampleExists(ctx, sampleID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("sample %s: %w", sampleID, types.ErrNotFound)
		}
		id, err := tx.InsertTest(ctx, &draft)
		if err != nil {
			return err
		}
		draft.ID = id
		return s.audit(ctx, tx, types.EntityTest, strconv.FormatInt(id, 10), types.ActionCreate, actor,
			map[string]any{"test": draft.Name, "sample_id": sampleID})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "test added", "id", draft.ID, "sample_id", sampleID, "name", draft.Name, "actor", actor)
	return &draft, nil
}

// UpdateTest changes the status, assignee, or due date of an existing test.
// The other fields are fixed at creation. Returns ErrNotFound for an
// unknown id.
func (s *Service) UpdateTest(ctx context.Context, actor string, id int64, status, assignedTo, dueAt string) (*types.Test, error) {
	actor = actorOrAnon(actor)

	if !types.ValidTestStatus(status) {
		return nil, fmt.Errorf("%w: status %q", types.ErrInvalidStatus, status)
	}
	if err := validDate("due_at", dueAt); err != nil {
		return nil, err
	}

	var updated *types.Test
	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		tr, err := tx.GetTest(ctx, id)
		if err != nil {
			return err
		}
		tr.Status = status
		tr.AssignedTo = assignedTo
		tr.DueAt = dueAt
		if err := tx.UpdateTest(ctx, tr); err != nil {
			return err
		}
		updated = tr
		return s.audit(ctx, tx, types.EntityTest, strconv.FormatInt(id, 10), types.ActionUpdate, actor,
			map[string]any{"status": status})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "test updated", "id", id, "status", status, "actor", actor)
	return updated, nil
}

// AddResult appends a measured value to an existing test. Analyte is
// required and the test must exist. MeasuredAt is stamped server-side.
func (s *Service) AddResult(ctx context.Context, actor string, testID int64, draft types.Result) (*types.Result, error) {
	actor = actorOrAnon(actor)

	if err := required("analyte", draft.Analyte); err != nil {
		return nil, err
	}
	draft.TestID = testID
	draft.MeasuredAt = s.store.Now()

	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		ok, err := tx.TestExists(ctx, testID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("test %d: %w", testID, types.ErrNotFound)
		}
		id, err := tx.InsertResult(ctx, &draft)
		if err != nil {
			return err
		}
		draft.ID = id
		return s.audit(ctx, tx, types.EntityResult, strconv.FormatInt(id, 10), types.ActionCreate, actor,
			map[string]any{"analyte": draft.Analyte, "test_id": testID})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "result added", "id", draft.ID, "test_id", testID, "analyte", draft.Analyte, "actor", actor)
	return &draft, nil
}
