package types

import "time"

// Result is a single measured value produced by a test for one analyte.
// Results are append-only: there is no update or delete path.
type Result struct {
	ID          int64     `json:"id"`
	TestID      int64     `json:"test_id"`
	Analyte     string    `json:"analyte"`
	Value       float64   `json:"value"`
	Unit        string    `json:"unit"`
	Uncertainty *float64  `json:"uncertainty,omitempty"`
	Notes       string    `json:"notes"`
	MeasuredAt  time.Time `json:"measured_at"`
}
