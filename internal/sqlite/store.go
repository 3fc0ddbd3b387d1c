package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	sqlite3 "modernc.org/sqlite"

	"github.com/benchforge/labtrail/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "labtrail.db"

// Meta keys for the sample-identifier sequencer.
const (
	metaSeqYear = "seq_year"
	metaSeqNum  = "seq_num"
)

// Primitive SQLite result codes relevant to error mapping. Extended codes
// carry the primitive code in the low byte.
const (
	codeBusy       = 5
	codeLocked     = 6
	codeConstraint = 19
)

// Store is the embedded persistence store. It wraps a single *sql.DB on the
// database file; the driver serializes writers, which is the whole
// concurrency model of this single-process tool.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	loc    *time.Location
	now    func() time.Time // overridable in tests
	closed bool
}

// Open creates the data directory if needed, opens (or creates) the
// database file, applies the schema, and seeds the sequencer meta rows and
// the initial admin user. Open is idempotent over an existing database.
func Open(dataDir string, loc *time.Location) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return openAt(filepath.Join(dataDir, DBFileName), loc)
}

// openAt opens a store on an explicit database file path.
func openAt(path string, loc *time.Location) (*Store, error) {
	if loc == nil {
		loc = time.Local
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
		loc:  loc,
		now:  time.Now,
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply indexes: %w", err)
		}
	}

	if err := s.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed store: %w", err)
	}
	return s, nil
}

// seed inserts the sequencer meta rows and the admin user on first open.
// Existing rows are left untouched.
func (s *Store) seed() error {
	year := strconv.Itoa(s.now().In(s.loc).Year())
	if _, err := s.db.Exec(
		"INSERT INTO meta(key, value) VALUES(?, ?) ON CONFLICT(key) DO NOTHING",
		metaSeqYear, year); err != nil {
		return err
	}
	if _, err := s.db.Exec(
		"INSERT INTO meta(key, value) VALUES(?, ?) ON CONFLICT(key) DO NOTHING",
		metaSeqNum, "0"); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"INSERT INTO users(username, role, active, created_at) VALUES(?,?,?,?) ON CONFLICT(username) DO NOTHING",
		"admin", types.RoleAdmin, 1, types.FormatTime(s.now().In(s.loc)))
	return err
}

// Close releases the database handle. Idempotent; operations after Close
// return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path, used by the backup command.
func (s *Store) Path() string {
	return s.path
}

// Location returns the store's configured time zone.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Now returns the current time in the store's configured zone.
func (s *Store) Now() time.Time {
	return s.now().In(s.loc)
}

// SetClock replaces the store's time source. Tests use this to pin the
// sequencer year and the stamped timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Tx groups the writes of one operation into a single transaction, so a
// domain row and its audit record commit or roll back together.
type Tx struct {
	tx *sql.Tx
	s  *Store
}

// WithTx runs fn inside one transaction. On error the transaction rolls
// back and the error is returned, mapped to the store error taxonomy.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapErr(err)
	}
	if err := fn(&Tx{tx: tx, s: s}); err != nil {
		_ = tx.Rollback()
		return mapErr(err)
	}
	if err := tx.Commit(); err != nil {
		return mapErr(err)
	}
	return nil
}

// reader guards read-only access against a closed store.
func (s *Store) reader() (*sql.DB, func(), error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, nil, types.ErrStoreClosed
	}
	return s.db, s.mu.RUnlock, nil
}

// mapErr translates driver-level failures into the sentinel taxonomy.
// Unique violations and busy/locked states are the only driver errors a
// caller is expected to branch on.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case codeBusy, codeLocked:
			return fmt.Errorf("%w: %v", types.ErrStoreBusy, err)
		case codeConstraint:
			return fmt.Errorf("%w: %v", types.ErrValidation, err)
		}
	}
	return err
}

// queryer is satisfied by *sql.DB and *sql.Tx; the scan helpers in the
// table files accept it so reads work inside and outside transactions.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is the common surface of *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// nullStr renders s as a SQL NULL when empty, matching the original
// schema's nullable text columns.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// strOrEmpty unwraps a nullable text column.
func strOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// parseStamp parses a canonical timestamp column, tolerating NULL/empty.
func parseStamp(ns sql.NullString) (time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return time.Time{}, nil
	}
	return types.ParseTime(ns.String)
}
