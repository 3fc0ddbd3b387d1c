package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/benchforge/labtrail/pkg/types"
)

// InsertAttachment appends an attachment link row and returns its id.
func (t *Tx) InsertAttachment(ctx context.Context, a *types.Attachment) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO attachments(sample_id, label, url, added_by, added_at)
		VALUES(?,?,?,?,?)`,
		a.SampleID, a.Label, a.URL, a.AddedBy, types.FormatTime(a.AddedAt))
	if err != nil {
		return 0, fmt.Errorf("inserting attachment for sample %s: %w", a.SampleID, err)
	}
	return res.LastInsertId()
}

// AttachmentsForSample returns a sample's attachment links, newest first.
func (s *Store) AttachmentsForSample(ctx context.Context, sampleID string) ([]types.Attachment, error) {
	db, done, err := s.reader()
	if err != nil {
		return nil, err
	}
	defer done()

	rows, err := db.QueryContext(ctx, `
		SELECT id, sample_id, label, url, added_by, added_at
		FROM attachments WHERE sample_id = ? ORDER BY id DESC`, sampleID)
	if err != nil {
		return nil, fmt.Errorf("querying attachments: %w", err)
	}
	defer rows.Close()

	out := []types.Attachment{}
	for rows.Next() {
		var a types.Attachment
		var label, addedBy sql.NullString
		var addedAt string
		if err := rows.Scan(&a.ID, &a.SampleID, &label, &a.URL, &addedBy, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning attachment: %w", err)
		}
		a.Label = strOrEmpty(label)
		a.AddedBy = strOrEmpty(addedBy)
		if a.AddedAt, err = types.ParseTime(addedAt); err != nil {
			return nil, fmt.Errorf("parsing attachment added_at: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
