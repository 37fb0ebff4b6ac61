// Package audit captures structured events for reconciliation runs. Events
// are append-only and transport-agnostic so sinks can fan out to memory or
// Kafka without touching domain logic.
package audit

import "time"

// ActionDuesQuery marks a completed due reconciliation query.
const ActionDuesQuery = "dues.query"

// Event is emitted from domain logic after each reconciliation run.
type Event struct {
	Timestamp       time.Time `json:"timestamp"`
	RequestID       string    `json:"request_id,omitempty"`
	ClientIP        string    `json:"client_ip,omitempty"`
	UserAgent       string    `json:"user_agent,omitempty"`
	Action          string    `json:"action"`
	TotalStudents   int       `json:"total_students"`
	PendingItems    int       `json:"pending_items"`
	PendingAmount   string    `json:"pending_amount"`
	ImpactedCourses int       `json:"impacted_courses"`
	DurationMS      int64     `json:"duration_ms"`
}
