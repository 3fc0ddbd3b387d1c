package sqlite

import (
	"context"
	"errors"
	"fmt"

	sqlite3 "modernc.org/sqlite"

	"github.com/benchforge/labtrail/pkg/types"
)

// InsertUser writes a user row and returns its autoincrement id.
// A duplicate username returns ErrDuplicateUsername.
func (t *Tx) InsertUser(ctx context.Context, u *types.User) (int64, error) {
	active := 0
	if u.Active {
		active = 1
	}
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO users(username, role, active, created_at)
		VALUES(?,?,?,?)`,
		u.Username, u.Role, active, types.FormatTime(u.CreatedAt))
	if err != nil {
		var se *sqlite3.Error
		if errors.As(err, &se) && se.Code()&0xff == codeConstraint {
			return 0, fmt.Errorf("user %q: %w", u.Username, types.ErrDuplicateUsername)
		}
		return 0, fmt.Errorf("inserting user %q: %w", u.Username, err)
	}
	return res.LastInsertId()
}

// ListUsers returns all users, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]types.User, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()

	rows, err := db.QueryContext(ctx,
		"SELECT id, username, role, active, created_at FROM users ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	out := []types.User{}
	for rows.Next() {
		var u types.User
		var active int
		var createdAt string
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &active, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.Active = active != 0
		if u.CreatedAt, err = types.ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing user created_at: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
