package lims

import (
	"context"
	"fmt"
	"strconv"

	"github.com/benchforge/labtrail/internal/sqlite"
	"github.com/benchforge/labtrail/pkg/types"
)

// AddAttachment links an external document URL to an existing sample.
// URL is required; the sample must exist.
func (s *Service) AddAttachment(ctx context.Context, actor, sampleID string, draft types.Attachment) (*types.Attachment, error) {
	actor = actorOrAnon(actor)

	if err := required("sample_id", sampleID); err != nil {
		return nil, err
	}
	if err := required("url", draft.URL); err != nil {
		return nil, err
	}
	draft.SampleID = sampleID
	draft.AddedBy = actor
	draft.AddedAt = s.store.Now()

	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		ok, err := tx.SampleExists(ctx, sampleID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("sample %s: %w", sampleID, types.ErrNotFound)
		}
		id, err := tx.InsertAttachment(ctx, &draft)
		if err != nil {
			return err
		}
		draft.ID = id
		return s.audit(ctx, tx, types.EntityAttachment, strconv.FormatInt(id, 10), types.ActionCreate, actor,
			map[string]any{"url": draft.URL, "sample_id": sampleID})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "attachment added", "id", draft.ID, "sample_id", sampleID, "actor", actor)
	return &draft, nil
}

// AddCocEvent appends a free-text custody event to an existing sample's
// chain of custody. The event label is required; ordering is insertion
// order.
func (s *Service) AddCocEvent(ctx context.Context, actor, sampleID, event, notes string) (*types.CocEvent, error) {
	actor = actorOrAnon(actor)

	if err := required("sample_id", sampleID); err != nil {
		return nil, err
	}
	if err := required("event", event); err != nil {
		return nil, err
	}

	entry := types.CocEvent{
		SampleID: sampleID,
		Event:    event,
		ByUser:   actor,
		AtTime:   s.store.Now(),
		Notes:    notes,
	}
	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		ok, err := tx.SampleExists(ctx, sampleID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("sample %s: %w", sampleID, types.ErrNotFound)
		}
		id, err := tx.InsertCocEvent(ctx, &entry)
		if err != nil {
			return err
		}
		entry.ID = id
		return s.audit(ctx, tx, types.EntityCoc, sampleID, types.ActionAddEvent, actor,
			map[string]any{"event": event})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "coc event added", "sample_id", sampleID, "event", event, "actor", actor)
	return &entry, nil
}
