package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/benchforge/labtrail/pkg/types"
)

// InsertCocEvent appends one chain-of-custody event. The autoincrement id
// is the custody ordering; events are never reordered by timestamp.
func (t *Tx) InsertCocEvent(ctx context.Context, e *types.CocEvent) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO coc(sample_id, event, by_user, at_time, notes)
		VALUES(?,?,?,?,?)`,
		e.SampleID, e.Event, e.ByUser, types.FormatTime(e.AtTime), e.Notes)
	if err != nil {
		return 0, fmt.Errorf("inserting coc event for sample %s: %w", e.SampleID, err)
	}
	return res.LastInsertId()
}

// CocForSample returns a sample's custody log in insertion order.
func (s *Store) CocForSample(ctx context.Context, sampleID string) ([]types.CocEvent, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()

	rows, err := db.QueryContext(ctx, `
		SELECT id, sample_id, event, by_user, at_time, notes
		FROM coc WHERE sample_id = ? ORDER BY id ASC`, sampleID)
	if err != nil {
		return nil, fmt.Errorf("querying coc events: %w", err)
	}
	defer rows.Close()

	out := []types.CocEvent{}
	for rows.Next() {
		var e types.CocEvent
		var byUser, notes sql.NullString
		var atTime string
		if err := rows.Scan(&e.ID, &e.SampleID, &e.Event, &byUser, &atTime, &notes); err != nil {
			return nil, fmt.Errorf("scanning coc event: %w", err)
		}
		e.ByUser = strOrEmpty(byUser)
		e.Notes = strOrEmpty(notes)
		if e.AtTime, err = types.ParseTime(atTime); err != nil {
			return nil, fmt.Errorf("parsing coc at_time: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
