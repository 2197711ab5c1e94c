package audit

import "time"

// ActionPhoneDisclosed records that volunteer phone numbers were rendered
// unmasked for a requester.
const ActionPhoneDisclosed = "volunteer_phone_disclosed"

// Event captures one PII access. Transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	GridID    string    `json:"grid_id,omitempty"`
	RowCount  int       `json:"row_count"`
	RequestID string    `json:"request_id,omitempty"`
}
