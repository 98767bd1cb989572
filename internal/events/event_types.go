package events

import (
	"time"

	"github.com/spec-kit/shift-planner/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffRegistered   EventType = "staff_registered"
	EventStaffRemoved      EventType = "staff_removed"
	EventScheduleGenerated EventType = "schedule_generated"
	EventAssignmentChanged EventType = "assignment_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StaffRegisteredPayload payload.
type StaffRegisteredPayload struct {
	StaffID      string `json:"staff_id"`
	EmployeeID   string `json:"employee_id"`
	DepartmentID string `json:"department_id"`
}

// StaffRemovedPayload payload.
type StaffRemovedPayload struct {
	StaffID            string `json:"staff_id"`
	DepartmentID       string `json:"department_id"`
	RemovedAssignments int64  `json:"removed_assignments"`
}

// ScheduleGeneratedPayload payload.
type ScheduleGeneratedPayload struct {
	WeekStart  domain.Date `json:"week_start"`
	TotalSlots int         `json:"total_slots"`
	Filled     int         `json:"filled"`
	Unfilled   int         `json:"unfilled"`
}

// AssignmentChangedPayload payload. StaffID is nil when the slot was cleared.
type AssignmentChangedPayload struct {
	Slot     string   `json:"slot"`
	StaffID  *string  `json:"staff_id,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
