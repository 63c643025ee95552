package dto

import (
	"time"

	"github.com/spec-kit/hospital-helpdesk/internal/domain"
)

// CreateTicketRequest payload. A client-supplied priority is accepted
// for backwards compatibility but always ignored; priority is derived
// server-side.
type CreateTicketRequest struct {
	Name            string  `json:"name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone"`
	UserID          *string `json:"user_id"`
	DepartmentID    string  `json:"department_id" validate:"required"`
	SubDepartmentID *string `json:"sub_department_id"`
	Issue           string  `json:"issue" validate:"required"`
	ImageURL        *string `json:"image_url" validate:"omitempty,url"`
	Priority        *int    `json:"priority"`
}

// UpdateTicketRequest is a partial update; absent fields are left
// untouched. An empty sub_department_id clears the assignment.
type UpdateTicketRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone"`
	DepartmentID    *string `json:"department_id"`
	SubDepartmentID *string `json:"sub_department_id"`
	Issue           *string `json:"issue"`
	ImageURL        *string `json:"image_url" validate:"omitempty,url"`
	Status          *string `json:"status"`
	AdminFix        *string `json:"admin_fix"`
	Priority        *int    `json:"priority"`
}

// ArchiveTicketsRequest payload for the bulk archive action.
type ArchiveTicketsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// TicketResponse is the JSON representation of a ticket.
type TicketResponse struct {
	ID                  string    `json:"id"`
	ExternalKey         string    `json:"external_key"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	UserID              *string   `json:"user_id"`
	DepartmentID        string    `json:"department_id"`
	SubDepartmentID     *string   `json:"sub_department_id"`
	Issue               string    `json:"issue"`
	ImageURL            *string   `json:"image_url"`
	Priority            *int      `json:"priority"`
	PriorityDescription *string   `json:"priority_description"`
	Status              string    `json:"status"`
	AdminFix            *string   `json:"admin_fix"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewTicketResponse maps a domain ticket to its JSON shape.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:              ticket.ID,
		ExternalKey:     ticket.ExternalKey,
		Name:            ticket.Name,
		Email:           ticket.Email,
		Phone:           ticket.Phone,
		UserID:          ticket.UserID,
		DepartmentID:    ticket.DepartmentID,
		SubDepartmentID: ticket.SubDepartmentID,
		Issue:           ticket.Issue,
		ImageURL:        ticket.ImageURL,
		Priority:        ticket.Priority,
		Status:          ticket.Status,
		AdminFix:        ticket.AdminFix,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
	if ticket.Priority != nil {
		desc := domain.PriorityDescription(*ticket.Priority)
		resp.PriorityDescription = &desc
	}
	return resp
}
