package sqlite

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/benchforge/labtrail/pkg/types"
)

// ExportCSV dumps one table as CSV: header row of column names, then every
// row in storage order. Only the names in types.ExportableTables are
// accepted; anything else returns ErrTableUnknown, which keeps the table
// name out of SQL string interpolation.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer, table string) error {
	if !types.ExportableTable(table) {
		return fmt.Errorf("table %q: %w", table, types.ErrTableUnknown)
	}
	db, done, err := s.reader()
	if err != nil {
		return err
	}
	defer done()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("columns of %s: %w", table, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	record := make([]string, len(cols))
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning %s row: %w", table, err)
		}
		for i, v := range vals {
			record[i] = renderCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// renderCell formats one scanned column value for CSV output.
// NULL renders as the empty string.
func renderCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// BackupTo writes a consistent copy of the whole database to path using
// VACUUM INTO, which snapshots committed state without blocking the file.
// The result is the opaque-blob backup: a plain SQLite file.
func (s *Store) BackupTo(ctx context.Context, path string) error {
	db, done, err := s.reader()
	if err != nil {
		return err
	}
	defer done()

	// VACUUM INTO refuses to overwrite an existing file.
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("backup target %s already exists", path)
	} else if !os.IsNotExist(err) {
		return err
	}

	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return fmt.Errorf("backup to %s: %w", path, err)
	}
	return nil
}
