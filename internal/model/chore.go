package model

import "time"

// Priority orders chores for display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Chore is a recurring home task with an assignee and point value,
// independent of any calendar date. Completion is tracked by the ledger.
type Chore struct {
	ID               int64     `json:"id"`
	Task             string    `json:"task"`
	Assignee         string    `json:"assignee"`
	Points           int       `json:"points"`
	Category         string    `json:"category"`
	Priority         Priority  `json:"priority"`
	Rescheduled      bool      `json:"rescheduled"`
	RescheduleReason string    `json:"reschedule_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
