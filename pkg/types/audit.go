package types

import "time"

// Audit entity kinds.
const (
	EntitySample     = "sample"
	EntityTest       = "test"
	EntityResult     = "result"
	EntityAttachment = "attachment"
	EntityQC         = "qc"
	EntityCoc        = "coc"
	EntityUser       = "user"
)

// Audit actions.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionClose    = "close"
	ActionAddEvent = "add_event"
)

// AuditRecord is one immutable entry in the global audit log: who did what,
// when, to which entity. EventID is a UUID v7 assigned on insert so records
// remain globally identifiable across exports and backups. Details is a
// schemaless payload capturing the salient changed fields, not a full diff.
type AuditRecord struct {
	ID       int64          `json:"id"`
	EventID  string         `json:"event_id"`
	Entity   string         `json:"entity"`
	EntityID string         `json:"entity_id"`
	Action   string         `json:"action"`
	ByUser   string         `json:"by_user"`
	AtTime   time.Time      `json:"at_time"`
	Details  map[string]any `json:"details"`
}
