package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benchforge/labtrail/pkg/types"
)

const testColumns = "id, sample_id, test_name, method, unit, status, assigned_to, due_at"

// InsertTest writes a test row and returns its autoincrement id.
func (t *Tx) InsertTest(ctx context.Context, tr *types.Test) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO tests(sample_id, test_name, method, unit, status, assigned_to, due_at)
		VALUES(?,?,?,?,?,?,?)`,
		tr.SampleID, tr.Name, tr.Method, tr.Unit, tr.Status,
		nullStr(tr.AssignedTo), nullStr(tr.DueAt))
	if err != nil {
		return 0, fmt.Errorf("inserting test for sample %s: %w", tr.SampleID, err)
	}
	return res.LastInsertId()
}

// UpdateTest rewrites status, assignee and due date of a test row.
// A missing row returns ErrNotFound.
func (t *Tx) UpdateTest(ctx context.Context, tr *types.Test) error {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE tests SET status=?, assigned_to=?, due_at=? WHERE id=?",
		tr.Status, nullStr(tr.AssignedTo), nullStr(tr.DueAt), tr.ID)
	if err != nil {
		return fmt.Errorf("updating test %d: %w", tr.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("test %d: %w", tr.ID, types.ErrNotFound)
	}
	return nil
}

// TestExists reports whether a test row with the given id exists.
func (t *Tx) TestExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := t.tx.QueryRowContext(ctx, "SELECT 1 FROM tests WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking test %d: %w", id, err)
	}
	return true, nil
}

// GetTest reads one test by id inside the transaction.
func (t *Tx) GetTest(ctx context.Context, id int64) (*types.Test, error) {
	return getTest(ctx, t.tx, id)
}

// GetTest reads one test by id. Returns ErrNotFound if absent.
func (s *Store) GetTest(ctx context.Context, id int64) (*types.Test, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()
	return getTest(ctx, db, id)
}

func getTest(ctx context.Context, q queryer, id int64) (*types.Test, error) {
	row := q.QueryRowContext(ctx, "SELECT "+testColumns+" FROM tests WHERE id = ?", id)
	tr, err := scanTest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("test %d: %w", id, types.ErrNotFound)
	}
	return tr, err
}

func scanTest(row rowScanner) (*types.Test, error) {
	var tr types.Test
	var method, unit, assignedTo, dueAt sql.NullString
	err := row.Scan(&tr.ID, &tr.SampleID, &tr.Name, &method, &unit,
		&tr.Status, &assignedTo, &dueAt)
	if err != nil {
		return nil, err
	}
	tr.Method = strOrEmpty(method)
	tr.Unit = strOrEmpty(unit)
	tr.AssignedTo = strOrEmpty(assignedTo)
	tr.DueAt = strOrEmpty(dueAt)
	return &tr, nil
}

// TestsForSample returns all tests attached to a sample, oldest first.
func (s *Store) TestsForSample(ctx context.Context, sampleID string) ([]types.Test, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()
	return queryTests(ctx, db,
		"SELECT "+testColumns+" FROM tests WHERE sample_id = ? ORDER BY id ASC", sampleID)
}

// FindTests returns tests joined to their owning sample, filtered by an
// optional substring against sample id, test name, or method, newest first.
func (s *Store) FindTests(ctx context.Context, substr string) ([]types.Test, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()

	query := `
		SELECT t.id, t.sample_id, t.test_name, t.method, t.unit, t.status, t.assigned_to, t.due_at
		FROM tests t
		JOIN samples s ON s.id = t.sample_id
		WHERE 1=1`
	var args []any
	if substr != "" {
		query += " AND (t.sample_id LIKE ? OR t.test_name LIKE ? OR t.method LIKE ?)"
		like := "%" + substr + "%"
		args = append(args, like, like, like)
	}
	query += " ORDER BY t.id DESC"

	return queryTests(ctx, db, query, args...)
}

func queryTests(ctx context.Context, q queryer, query string, args ...any) ([]types.Test, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tests: %w", err)
	}
	defer rows.Close()

	out := []types.Test{}
	for rows.Next() {
		tr, err := scanTest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *tr)
	}
	return out, rows.Err()
}
