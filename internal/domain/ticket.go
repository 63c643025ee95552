package domain

import "time"

// Ticket statuses are free-form strings; these are the values the
// service itself writes.
const (
	TicketStatusOpen     = "open"
	TicketStatusArchived = "archived"
)

// Ticket is a helpdesk service request. Priority is derived from the
// assigned sub-department (or the department's default) and is never
// settable by the submitter.
type Ticket struct {
	ID              string
	ExternalKey     string
	Name            string
	Email           string
	Phone           string
	UserID          *string
	DepartmentID    string
	SubDepartmentID *string
	Issue           string
	ImageURL        *string
	Priority        *int
	Status          string
	AdminFix        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
