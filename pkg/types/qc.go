package types

import "time"

// QC event types.
const (
	QCTypeCalibration     = "calibration"
	QCTypeMaintenance     = "maintenance"
	QCTypeVerification    = "verification"
	QCTypeInternalControl = "internal_control"
)

var validQCTypes = map[string]bool{
	QCTypeCalibration:     true,
	QCTypeMaintenance:     true,
	QCTypeVerification:    true,
	QCTypeInternalControl: true,
}

// QC event statuses. A QC event is created open and its only mutation is
// the close transition, which is idempotent.
const (
	QCStatusOpen   = "open"
	QCStatusClosed = "closed"
)

// QCEvent is a quality-control activity on an instrument, tracked
// independently of any sample.
type QCEvent struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Instrument  string    `json:"instrument"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AtTime      time.Time `json:"at_time"`
	ByUser      string    `json:"by_user"`
}

// ValidQCType reports whether t is a recognized QC event type.
func ValidQCType(t string) bool {
	return validQCTypes[t]
}
