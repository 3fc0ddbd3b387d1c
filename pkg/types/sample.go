package types

import "time"

// Sample statuses. The status vocabulary is closed but no transition graph
// is enforced: the edit operation may set any recognized value at any time.
const (
	SampleStatusRegistered = "registered"
	SampleStatusInProcess  = "in_process"
	SampleStatusOnHold     = "on_hold"
	SampleStatusReported   = "reported"
	SampleStatusClosed     = "closed"
	SampleStatusCancelled  = "cancelled"
)

// validSampleStatuses is the set of recognized sample status values.
var validSampleStatuses = map[string]bool{
	SampleStatusRegistered: true,
	SampleStatusInProcess:  true,
	SampleStatusOnHold:     true,
	SampleStatusReported:   true,
	SampleStatusClosed:     true,
	SampleStatusCancelled:  true,
}

// Sample matrices.
const (
	MatrixSoil  = "soil"
	MatrixWater = "water"
	MatrixRock  = "rock"
	MatrixPlant = "plant"
	MatrixOther = "other"
)

var validMatrices = map[string]bool{
	MatrixSoil:  true,
	MatrixWater: true,
	MatrixRock:  true,
	MatrixPlant: true,
	MatrixOther: true,
}

// Sample priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var validPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityNormal: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// Sample is a physical specimen tracked from intake to closure.
// The ID has the form S-<year>-<4-digit-seq>, is assigned by the sequencer
// on registration, and never changes afterwards. Samples are never deleted.
type Sample struct {
	ID          string    `json:"id"`
	Client      string    `json:"client"`
	Project     string    `json:"project"`
	Matrix      string    `json:"matrix"`
	Description string    `json:"description"`
	ReceivedAt  string    `json:"received_at"`      // date, YYYY-MM-DD
	DueAt       string    `json:"due_at,omitempty"` // date, empty = none
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Location    string    `json:"location"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SetStatus sets the sample status to the given value.
// Returns ErrInvalidStatus if the value is not recognized.
// Idempotent: setting the current status succeeds without error.
func (s *Sample) SetStatus(status string) error {
	if !validSampleStatuses[status] {
		return ErrInvalidStatus
	}
	s.Status = status
	return nil
}

// ValidSampleStatus reports whether status is a recognized sample status.
func ValidSampleStatus(status string) bool {
	return validSampleStatuses[status]
}

// ValidMatrix reports whether matrix is a recognized sample matrix.
func ValidMatrix(matrix string) bool {
	return validMatrices[matrix]
}

// ValidPriority reports whether priority is a recognized sample priority.
func ValidPriority(priority string) bool {
	return validPriorities[priority]
}

// Open reports whether the sample still counts as open work, i.e. it has
// not been closed or cancelled.
func (s *Sample) Open() bool {
	return s.Status != SampleStatusClosed && s.Status != SampleStatusCancelled
}
