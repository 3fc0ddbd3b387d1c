package lims

import (
	"context"
	"fmt"
	"strconv"

	"github.com/benchforge/labtrail/internal/sqlite"
	"github.com/benchforge/labtrail/pkg/types"
)

// AddQCEvent records a quality-control activity. The type must be one of
// the recognized QC types; the event opens in status open.
func (s *Service) AddQCEvent(ctx context.Context, actor string, draft types.QCEvent) (*types.QCEvent, error) {
	actor = actorOrAnon(actor)

	if !types.ValidQCType(draft.Type) {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidQCType, draft.Type)
	}
	draft.Status = types.QCStatusOpen
	draft.ByUser = actor
	draft.AtTime = s.store.Now()

	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		id, err := tx.InsertQCEvent(ctx, &draft)
		if err != nil {
			return err
		}
		draft.ID = id
		return s.audit(ctx, tx, types.EntityQC, strconv.FormatInt(id, 10), types.ActionCreate, actor,
			map[string]any{"type": draft.Type})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "qc event recorded", "id", draft.ID, "type", draft.Type, "actor", actor)
	return &draft, nil
}

// CloseQCEvent marks a QC event closed. Idempotent: closing an
// already-closed event succeeds without a second audit record. Returns
// ErrNotFound for an unknown id.
func (s *Service) CloseQCEvent(ctx context.Context, actor string, id int64) (*types.QCEvent, error) {
	actor = actorOrAnon(actor)

	var closed *types.QCEvent
	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		e, err := tx.GetQCEvent(ctx, id)
		if err != nil {
			return err
		}
		if e.Status == types.QCStatusClosed {
			closed = e
			return nil
		}
		if err := tx.CloseQCEvent(ctx, id); err != nil {
			return err
		}
		e.Status = types.QCStatusClosed
		closed = e
		return s.audit(ctx, tx, types.EntityQC, strconv.FormatInt(id, 10), types.ActionClose, actor, nil)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "qc event closed", "id", id, "actor", actor)
	return closed, nil
}
