package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benchforge/labtrail/pkg/types"
)

const qcColumns = "id, type, instrument, description, status, at_time, by_user"

// InsertQCEvent appends a QC event row (status open) and returns its id.
func (t *Tx) InsertQCEvent(ctx context.Context, e *types.QCEvent) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO qc_events(type, instrument, description, status, at_time, by_user)
		VALUES(?,?,?,?,?,?)`,
		e.Type, e.Instrument, e.Description, e.Status,
		types.FormatTime(e.AtTime), e.ByUser)
	if err != nil {
		return 0, fmt.Errorf("inserting qc event: %w", err)
	}
	return res.LastInsertId()
}

// GetQCEvent reads one QC event inside the transaction, so close can check
// current status and stay idempotent under the same lock.
func (t *Tx) GetQCEvent(ctx context.Context, id int64) (*types.QCEvent, error) {
	return getQCEvent(ctx, t.tx, id)
}

// GetQCEvent reads one QC event by id. Returns ErrNotFound if absent.
func (s *Store) GetQCEvent(ctx context.Context, id int64) (*types.QCEvent, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()
	return getQCEvent(ctx, db, id)
}

func getQCEvent(ctx context.Context, q queryer, id int64) (*types.QCEvent, error) {
	row := q.QueryRowContext(ctx, "SELECT "+qcColumns+" FROM qc_events WHERE id = ?", id)
	e, err := scanQCEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("qc event %d: %w", id, types.ErrNotFound)
	}
	return e, err
}

// CloseQCEvent marks a QC event closed. Closing an already-closed event is
// a no-op at this level; idempotence is decided by the caller via GetQCEvent.
func (t *Tx) CloseQCEvent(ctx context.Context, id int64) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE qc_events SET status = ? WHERE id = ?", types.QCStatusClosed, id)
	if err != nil {
		return fmt.Errorf("closing qc event %d: %w", id, err)
	}
	return nil
}

// ListQCEvents returns all QC events, newest first.
func (s *Store) ListQCEvents(ctx context.Context) ([]types.QCEvent, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()

	rows, err := db.QueryContext(ctx,
		"SELECT "+qcColumns+" FROM qc_events ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("querying qc events: %w", err)
	}
	defer rows.Close()

	out := []types.QCEvent{}
	for rows.Next() {
		e, err := scanQCEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func scanQCEvent(row rowScanner) (*types.QCEvent, error) {
	var e types.QCEvent
	var instrument, description, byUser sql.NullString
	var atTime string
	err := row.Scan(&e.ID, &e.Type, &instrument, &description, &e.Status, &atTime, &byUser)
	if err != nil {
		return nil, err
	}
	e.Instrument = strOrEmpty(instrument)
	e.Description = strOrEmpty(description)
	e.ByUser = strOrEmpty(byUser)
	if e.AtTime, err = types.ParseTime(atTime); err != nil {
		return nil, fmt.Errorf("parsing qc at_time: %w", err)
	}
	return &e, nil
}
