// Package lims implements the sample/test/result lifecycle on top of the
// store: validated mutating operations that each run as one transaction
// (domain write plus audit record), and the read-side queries and reports.
package lims

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/benchforge/labtrail/internal/sqlite"
	"github.com/benchforge/labtrail/pkg/types"
)

// Service exposes the lifecycle operations. Every mutating method takes the
// acting user explicitly; there is no ambient session identity.
type Service struct {
	store *sqlite.Store
	log   *slog.Logger
}

// New constructs a Service. A nil logger discards log output.
func New(store *sqlite.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: store, log: log}
}

// Store returns the underlying store, used by the CLI for exports.
func (s *Service) Store() *sqlite.Store {
	return s.store
}

// actorOrAnon normalizes the acting-user string. Usernames are asserted for
// traceability only; a blank one is recorded as "anon".
func actorOrAnon(actor string) string {
	if actor == "" {
		return "anon"
	}
	return actor
}

// required returns a validation error when value is empty.
func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", types.ErrValidation, field)
	}
	return nil
}

// validDate returns a validation error when value is not a date.
func validDate(field, value string) error {
	if !types.ValidDate(value) {
		return fmt.Errorf("%w: %s must be %s", types.ErrValidation, field, types.DateLayout)
	}
	return nil
}

// audit appends the single audit record of one operation, inside the same
// transaction as the domain write.
func (s *Service) audit(ctx context.Context, tx *sqlite.Tx, entity, entityID, action, actor string, details map[string]any) error {
	_, err := tx.InsertAudit(ctx, &types.AuditRecord{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		ByUser:   actor,
		AtTime:   s.store.Now(),
		Details:  details,
	})
	return err
}
