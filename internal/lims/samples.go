package lims

import (
	"context"
	"fmt"

	"github.com/benchforge/labtrail/internal/sqlite"
	"github.com/benchforge/labtrail/pkg/types"
)

// cocRegistration is the custody event appended when a sample is created.
const cocRegistration = "registration"

// RegisterSample validates the draft, then in one transaction mints the
// next year-scoped identifier, writes the sample, opens its chain of
// custody, and audits the creation. The draft's ID is ignored; Client is
// required. Missing status/priority/matrix default to registered, normal
// and other.
func (s *Service) RegisterSample(ctx context.Context, actor string, draft types.Sample) (*types.Sample, error) {
	actor = actorOrAnon(actor)

	if err := required("client", draft.Client); err != nil {
		return nil, err
	}
	if draft.Status == "" {
		draft.Status = types.SampleStatusRegistered
	}
	if draft.Priority == "" {
		draft.Priority = types.PriorityNormal
	}
	if draft.Matrix == "" {
		draft.Matrix = types.MatrixOther
	}
	if err := validateSampleEnums(&draft); err != nil {
		return nil, err
	}
	if err := validDate("received_at", draft.ReceivedAt); err != nil {
		return nil, err
	}
	if err := validDate("due_at", draft.DueAt); err != nil {
		return nil, err
	}

	now := s.store.Now()
	if draft.ReceivedAt == "" {
		draft.ReceivedAt = now.Format(types.DateLayout)
	}
	if draft.CreatedBy == "" {
		draft.CreatedBy = actor
	}
	draft.CreatedAt = now
	draft.UpdatedAt = now

	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		id, err := tx.NextSampleID(ctx)
		if err != nil {
			return err
		}
		draft.ID = id
		if err := tx.InsertSample(ctx, &draft); err != nil {
			return err
		}
		if _, err := tx.InsertCocEvent(ctx, &types.CocEvent{
			SampleID: id,
			Event:    cocRegistration,
			ByUser:   actor,
			AtTime:   now,
			Notes:    "sample created",
		}); err != nil {
			return err
		}
		return s.audit(ctx, tx, types.EntitySample, id, types.ActionCreate, actor,
			map[string]any{"client": draft.Client, "priority": draft.Priority})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "sample registered", "id", draft.ID, "client", draft.Client, "actor", actor)
	return &draft, nil
}

// UpdateSample rewrites every mutable field of an existing sample from upd.
// The identifier selects the row and never changes. Returns ErrNotFound for
// an unknown id; enum and date fields are validated before any write.
func (s *Service) UpdateSample(ctx context.Context, actor string, upd types.Sample) (*types.Sample, error) {
	actor = actorOrAnon(actor)

	if err := required("id", upd.ID); err != nil {
		return nil, err
	}
	if err := required("client", upd.Client); err != nil {
		return nil, err
	}
	if err := validateSampleEnums(&upd); err != nil {
		return nil, err
	}
	if err := validDate("received_at", upd.ReceivedAt); err != nil {
		return nil, err
	}
	if err := validDate("due_at", upd.DueAt); err != nil {
		return nil, err
	}

	upd.UpdatedAt = s.store.Now()
	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		if err := tx.UpdateSample(ctx, &upd); err != nil {
			return err
		}
		return s.audit(ctx, tx, types.EntitySample, upd.ID, types.ActionUpdate, actor,
			map[string]any{"status": upd.Status})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "sample updated", "id", upd.ID, "status", upd.Status, "actor", actor)
	return &upd, nil
}

// validateSampleEnums checks the closed vocabularies. Any recognized status
// may be set at any time; there is no transition graph.
func validateSampleEnums(smp *types.Sample) error {
	if !types.ValidSampleStatus(smp.Status) {
		return fmt.Errorf("%w: status %q", types.ErrInvalidStatus, smp.Status)
	}
	if !types.ValidPriority(smp.Priority) {
		return fmt.Errorf("%w: priority %q", types.ErrInvalidPriority, smp.Priority)
	}
	if !types.ValidMatrix(smp.Matrix) {
		return fmt.Errorf("%w: matrix %q", types.ErrInvalidMatrix, smp.Matrix)
	}
	return nil
}
