package types

import "time"

// CocEvent is one entry in a sample's chain-of-custody log. Events are
// free-text labels (registration, preparation, analysis, review, delivery)
// appended in call order; the autoincrement ID is the ordering.
type CocEvent struct {
	ID       int64     `json:"id"`
	SampleID string    `json:"sample_id"`
	Event    string    `json:"event"`
	ByUser   string    `json:"by_user"`
	AtTime   time.Time `json:"at_time"`
	Notes    string    `json:"notes"`
}
