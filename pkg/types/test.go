package types

// Test statuses. Like sample statuses these form a closed vocabulary with
// no enforced ordering between values.
const (
	TestStatusPending   = "pending"
	TestStatusInProcess = "in_process"
	TestStatusInReview  = "in_review"
	TestStatusReported  = "reported"
	TestStatusCancelled = "cancelled"
)

var validTestStatuses = map[string]bool{
	TestStatusPending:   true,
	TestStatusInProcess: true,
	TestStatusInReview:  true,
	TestStatusReported:  true,
	TestStatusCancelled: true,
}

// Test is an analytical procedure requested on a sample. Tests are created
// attached to an existing sample and are never deleted; status, assignee and
// due date may be updated independently afterwards.
type Test struct {
	ID         int64  `json:"id"`
	SampleID   string `json:"sample_id"`
	Name       string `json:"test_name"`
	Method     string `json:"method"`
	Unit       string `json:"unit"`
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to"`
	DueAt      string `json:"due_at,omitempty"` // date, empty = none
}

// SetStatus sets the test status. Returns ErrInvalidStatus if the value is
// not recognized. Idempotent.
func (t *Test) SetStatus(status string) error {
	if !validTestStatuses[status] {
		return ErrInvalidStatus
	}
	t.Status = status
	return nil
}

// ValidTestStatus reports whether status is a recognized test status.
func ValidTestStatus(status string) bool {
	return validTestStatuses[status]
}
