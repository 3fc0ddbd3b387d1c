package types

import "time"

// Attachment links a sample to an external document (a shared-drive folder,
// a scanned protocol, a PDF). Only the URL is stored, never file contents.
// Append-only.
type Attachment struct {
	ID       int64     `json:"id"`
	SampleID string    `json:"sample_id"`
	Label    string    `json:"label"`
	URL      string    `json:"url"`
	AddedBy  string    `json:"added_by"`
	AddedAt  time.Time `json:"added_at"`
}
