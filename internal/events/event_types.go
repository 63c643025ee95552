package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketUpdated  EventType = "ticket_updated"
	EventTicketArchived EventType = "ticket_archived"
	EventFixesAssigned  EventType = "fixes_assigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Name            string  `json:"name"`
	DepartmentID    string  `json:"department_id"`
	SubDepartmentID *string `json:"sub_department_id,omitempty"`
	Priority        *int    `json:"priority,omitempty"`
	Issue           string  `json:"issue"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	DepartmentID    string  `json:"department_id"`
	SubDepartmentID *string `json:"sub_department_id,omitempty"`
	OldPriority     *int    `json:"old_priority,omitempty"`
	NewPriority     *int    `json:"new_priority,omitempty"`
	Status          string  `json:"status"`
}

// TicketArchivedPayload payload.
type TicketArchivedPayload struct {
	OldPriority *int `json:"old_priority,omitempty"`
	NewPriority int  `json:"new_priority"`
}

// FixesAssignedPayload payload.
type FixesAssignedPayload struct {
	Assigned int `json:"assigned"`
	Matched  int `json:"matched"`
}
