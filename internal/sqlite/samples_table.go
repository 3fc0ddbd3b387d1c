package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/benchforge/labtrail/pkg/types"
)

const sampleColumns = "id, client, project, matrix, description, received_at, due_at, status, priority, location, created_by, created_at, updated_at"

// InsertSample writes a fully-populated sample row. The caller (the service
// layer) has already minted the identifier and stamped the timestamps.
func (t *Tx) InsertSample(ctx context.Context, s *types.Sample) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO samples(`+sampleColumns+`)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.ID, s.Client, s.Project, s.Matrix, s.Description,
		nullStr(s.ReceivedAt), nullStr(s.DueAt),
		s.Status, s.Priority, s.Location, s.CreatedBy,
		types.FormatTime(s.CreatedAt), types.FormatTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting sample %s: %w", s.ID, err)
	}
	return nil
}

// UpdateSample rewrites every mutable field of a sample row. The identifier
// is immutable; a missing row returns ErrNotFound.
func (t *Tx) UpdateSample(ctx context.Context, s *types.Sample) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE samples SET client=?, project=?, matrix=?, description=?,
			received_at=?, due_at=?, status=?, priority=?, location=?, updated_at=?
		WHERE id=?`,
		s.Client, s.Project, s.Matrix, s.Description,
		nullStr(s.ReceivedAt), nullStr(s.DueAt),
		s.Status, s.Priority, s.Location,
		types.FormatTime(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("updating sample %s: %w", s.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("sample %s: %w", s.ID, types.ErrNotFound)
	}
	return nil
}

// SampleExists reports whether a sample row with the given id exists.
func (t *Tx) SampleExists(ctx context.Context, id string) (bool, error) {
	return sampleExists(ctx, t.tx, id)
}

func sampleExists(ctx context.Context, q queryer, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM samples WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking sample %s: %w", id, err)
	}
	return true, nil
}

// GetSample reads one sample by id inside the transaction.
func (t *Tx) GetSample(ctx context.Context, id string) (*types.Sample, error) {
	return getSample(ctx, t.tx, id)
}

// GetSample reads one sample by id. Returns ErrNotFound if absent.
func (s *Store) GetSample(ctx context.Context, id string) (*types.Sample, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()
	return getSample(ctx, db, id)
}

func getSample(ctx context.Context, q queryer, id string) (*types.Sample, error) {
	row := q.QueryRowContext(ctx,
		"SELECT "+sampleColumns+" FROM samples WHERE id = ?", id)
	smp, err := scanSample(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sample %s: %w", id, types.ErrNotFound)
	}
	return smp, err
}

func scanSample(row rowScanner) (*types.Sample, error) {
	var s types.Sample
	var client, project, matrix, description, receivedAt, dueAt, location, createdBy sql.NullString
	var createdAt string
	var updatedAt sql.NullString
	err := row.Scan(&s.ID, &client, &project, &matrix, &description,
		&receivedAt, &dueAt, &s.Status, &s.Priority, &location, &createdBy,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.Client = strOrEmpty(client)
	s.Project = strOrEmpty(project)
	s.Matrix = strOrEmpty(matrix)
	s.Description = strOrEmpty(description)
	s.ReceivedAt = strOrEmpty(receivedAt)
	s.DueAt = strOrEmpty(dueAt)
	s.Location = strOrEmpty(location)
	s.CreatedBy = strOrEmpty(createdBy)
	if s.CreatedAt, err = types.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing sample created_at: %w", err)
	}
	if s.UpdatedAt, err = parseStamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing sample updated_at: %w", err)
	}
	return &s, nil
}

// FindSamples returns samples matching an optional substring (against id,
// client, or project) and an optional status set, newest first. Zero
// matches yield an empty slice.
func (s *Store) FindSamples(ctx context.Context, substr string, statuses []string) ([]types.Sample, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()

	query := "SELECT " + sampleColumns + " FROM samples WHERE 1=1"
	var args []any
	if substr != "" {
		query += " AND (id LIKE ? OR client LIKE ? OR project LIKE ?)"
		like := "%" + substr + "%"
		args = append(args, like, like, like)
	}
	if len(statuses) > 0 {
		query += " AND status IN (" + placeholders(len(statuses)) + ")"
		for _, st := range statuses {
			args = append(args, st)
		}
	}
	query += " ORDER BY created_at DESC"

	return querySamples(ctx, db, query, args...)
}

// DueSoon returns open samples whose due date falls within the next seven
// days (today inclusive), ordered by due date. Closed and cancelled samples
// are excluded even when due.
func (s *Store) DueSoon(ctx context.Context) ([]types.Sample, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()

	horizon := s.Now().AddDate(0, 0, 7).Format(types.DateLayout)
	return querySamples(ctx, db, `
		SELECT `+sampleColumns+` FROM samples
		WHERE due_at IS NOT NULL AND due_at <= ?
		  AND status NOT IN (?, ?)
		ORDER BY due_at ASC`,
		horizon, types.SampleStatusClosed, types.SampleStatusCancelled)
}

func querySamples(ctx context.Context, q queryer, query string, args ...any) ([]types.Sample, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}
	defer rows.Close()

	out := []types.Sample{}
	for rows.Next() {
		smp, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *smp)
	}
	return out, rows.Err()
}

// placeholders builds a "?,?,?" list of length n.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
