package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/benchforge/labtrail/pkg/types"
)

// newEventID generates a UUID v7 for an audit record, so entries stay
// time-sortable and globally identifiable across exports.
func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// InsertAudit appends one audit record inside the operation's transaction,
// so a domain write and its audit entry commit together. The details map
// is stored as a JSON blob; nil becomes an empty object.
func (t *Tx) InsertAudit(ctx context.Context, rec *types.AuditRecord) (int64, error) {
	if rec.EventID == "" {
		rec.EventID = newEventID()
	}
	details := rec.Details
	if details == nil {
		details = map[string]any{}
	}
	blob, err := json.Marshal(details)
	if err != nil {
		return 0, fmt.Errorf("encoding audit details: %w", err)
	}

	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO audit(event_id, entity, entity_id, action, by_user, at_time, details)
		VALUES(?,?,?,?,?,?,?)`,
		rec.EventID, rec.Entity, rec.EntityID, rec.Action, rec.ByUser,
		types.FormatTime(rec.AtTime), string(blob))
	if err != nil {
		return 0, fmt.Errorf("inserting audit record: %w", err)
	}
	return res.LastInsertId()
}

// FindAudit returns audit records, newest first, optionally filtered by a
// substring against entity, action, or acting user. Capped at limit rows;
// limit <= 0 means the default cap of 1000.
func (s *Store) FindAudit(ctx context.Context, substr string, limit int) ([]types.AuditRecord, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()

	if limit <= 0 {
		limit = 1000
	}
	query := "SELECT id, event_id, entity, entity_id, action, by_user, at_time, details FROM audit WHERE 1=1"
	var args []any
	if substr != "" {
		query += " AND (entity LIKE ? OR action LIKE ? OR by_user LIKE ?)"
		like := "%" + substr + "%"
		args = append(args, like, like, like)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit: %w", err)
	}
	defer rows.Close()

	out := []types.AuditRecord{}
	for rows.Next() {
		var rec types.AuditRecord
		var byUser, details sql.NullString
		var atTime string
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.Entity, &rec.EntityID,
			&rec.Action, &byUser, &atTime, &details); err != nil {
			return nil, fmt.Errorf("scanning audit record: %w", err)
		}
		rec.ByUser = strOrEmpty(byUser)
		if rec.AtTime, err = types.ParseTime(atTime); err != nil {
			return nil, fmt.Errorf("parsing audit at_time: %w", err)
		}
		rec.Details = map[string]any{}
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &rec.Details); err != nil {
				return nil, fmt.Errorf("decoding audit details: %w", err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
