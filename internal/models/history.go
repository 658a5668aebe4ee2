package models

import "time"

// StatusHistory is the audit trail of an application's status changes.
// One row is written for every transition the engine executes.
type StatusHistory struct {
	ID             int64     `json:"id"`
	ApplicationID  int64     `json:"application_id"`
	ActorRole      string    `json:"actor_role"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Note           string    `json:"note,omitempty"`
	ChangedAt      time.Time `json:"changed_at"`
}
