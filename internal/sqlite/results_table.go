package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/benchforge/labtrail/pkg/types"
)

const resultColumns = "id, test_id, analyte, value, unit, uncertainty, notes, measured_at"

// InsertResult appends a result row and returns its autoincrement id.
// Results have no update or delete path.
func (t *Tx) InsertResult(ctx context.Context, r *types.Result) (int64, error) {
	var uncertainty any
	if r.Uncertainty != nil {
		uncertainty = *r.Uncertainty
	}
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO results(test_id, analyte, value, unit, uncertainty, notes, measured_at)
		VALUES(?,?,?,?,?,?,?)`,
		r.TestID, r.Analyte, r.Value, r.Unit, uncertainty, r.Notes,
		types.FormatTime(r.MeasuredAt))
	if err != nil {
		return 0, fmt.Errorf("inserting result for test %d: %w", r.TestID, err)
	}
	return res.LastInsertId()
}

// ResultsForTest returns all results recorded for one test, oldest first.
func (s *Store) ResultsForTest(ctx context.Context, testID int64) ([]types.Result, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()
	return queryResults(ctx, db,
		"SELECT "+resultColumns+" FROM results WHERE test_id = ? ORDER BY id ASC", testID)
}

// ResultsForTests returns the results for a set of tests in one query,
// used by the per-sample report. An empty id set yields an empty slice.
func (s *Store) ResultsForTests(ctx context.Context, testIDs []int64) ([]types.Result, error) {
	if len(testIDs) == 0 {
		return []types.Result{}, nil
	}
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()

	args := make([]any, len(testIDs))
	for i, id := range testIDs {
		args[i] = id
	}
	return queryResults(ctx, db,
		"SELECT "+resultColumns+" FROM results WHERE test_id IN ("+placeholders(len(testIDs))+") ORDER BY id ASC",
		args...)
}

func queryResults(ctx context.Context, q queryer, query string, args ...any) ([]types.Result, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	out := []types.Result{}
	for rows.Next() {
		var r types.Result
		var unit, notes sql.NullString
		var uncertainty sql.NullFloat64
		var measuredAt sql.NullString
		if err := rows.Scan(&r.ID, &r.TestID, &r.Analyte, &r.Value,
			&unit, &uncertainty, &notes, &measuredAt); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Unit = strOrEmpty(unit)
		r.Notes = strOrEmpty(notes)
		if uncertainty.Valid {
			u := uncertainty.Float64
			r.Uncertainty = &u
		}
		if r.MeasuredAt, err = parseStamp(measuredAt); err != nil {
			return nil, fmt.Errorf("parsing result measured_at: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
