package sqlite

import (
	"context"
	"fmt"
	"strconv"
)

// NextSampleID mints the next sample identifier, S-<year>-<4-digit-seq>.
// The counter is year-scoped: the first call after a calendar-year change
// resets it, so the first sample of a new year is S-<year>-0001. The
// read-modify-write runs inside the caller's transaction, so concurrent
// callers are serialized and can never mint the same identifier.
func (t *Tx) NextSampleID(ctx context.Context) (string, error) {
	year := strconv.Itoa(t.s.Now().Year())

	var seqYear string
	if err := t.tx.QueryRowContext(ctx,
		"SELECT value FROM meta WHERE key = ?", metaSeqYear).Scan(&seqYear); err != nil {
		return "", fmt.Errorf("read %s: %w", metaSeqYear, err)
	}
	var seqNum int
	if err := t.tx.QueryRowContext(ctx,
		"SELECT value FROM meta WHERE key = ?", metaSeqNum).Scan(&seqNum); err != nil {
		return "", fmt.Errorf("read %s: %w", metaSeqNum, err)
	}

	if seqYear != year {
		if _, err := t.tx.ExecContext(ctx,
			"UPDATE meta SET value = ? WHERE key = ?", year, metaSeqYear); err != nil {
			return "", fmt.Errorf("roll %s: %w", metaSeqYear, err)
		}
		seqNum = 0
	}
	seqNum++
	if _, err := t.tx.ExecContext(ctx,
		"UPDATE meta SET value = ? WHERE key = ?", strconv.Itoa(seqNum), metaSeqNum); err != nil {
		return "", fmt.Errorf("advance %s: %w", metaSeqNum, err)
	}

	return fmt.Sprintf("S-%s-%04d", year, seqNum), nil
}
