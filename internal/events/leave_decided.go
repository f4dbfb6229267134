package events

import "time"

const LeaveDecisionTopic = "lms.leave.decision.v1"

// LeaveDecidedEvent is emitted when a pending request reaches a terminal
// status (approved or rejected).
type LeaveDecidedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	LeaveID       string    `json:"leave_id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeEmail string    `json:"employee_email,omitempty"`
	Status        string    `json:"status"`
	DaysRequested int       `json:"days_requested"`
	AdminComment  string    `json:"admin_comment,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
