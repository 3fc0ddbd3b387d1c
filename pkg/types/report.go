package types

// SampleReport aggregates one sample, its tests, and every result belonging
// to those tests into a single JSON-serializable document.
type SampleReport struct {
	GeneratedAt string   `json:"generated_at"`
	Sample      Sample   `json:"sample"`
	Tests       []Test   `json:"tests"`
	Results     []Result `json:"results"`
}

// DashboardCounts holds the headline numbers shown on the dashboard.
type DashboardCounts struct {
	TotalSamples int `json:"total_samples"`
	OpenSamples  int `json:"open_samples"`
	PendingTests int `json:"pending_tests"`
	OpenQCEvents int `json:"open_qc_events"`
}
