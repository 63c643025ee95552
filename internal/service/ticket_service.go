package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hospital-helpdesk/internal/domain"
	"github.com/spec-kit/hospital-helpdesk/internal/events"
	"github.com/spec-kit/hospital-helpdesk/internal/repository"
	apperrors "github.com/spec-kit/hospital-helpdesk/pkg/util"
)

// TicketService coordinates ticket workflows: every create/update runs
// through validate-and-resolve before anything is persisted.
type TicketService struct {
	tickets    repository.TicketRepository
	taxonomy   repository.TaxonomyRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	TaxonomyRepo repository.TaxonomyRepository
	Dispatcher   events.Dispatcher
}

// TicketCreateInput describes ticket creation payload. Any
// client-supplied priority is ignored; priority is derived.
type TicketCreateInput struct {
	Name            string
	Email           string
	Phone           string
	UserID          *string
	DepartmentID    string
	SubDepartmentID *string
	Issue           string
	ImageURL        *string
}

// TicketUpdateInput describes a partial update. Nil fields are left
// untouched; an empty SubDepartmentID clears the assignment.
type TicketUpdateInput struct {
	Name            *string
	Email           *string
	Phone           *string
	DepartmentID    *string
	SubDepartmentID *string
	Issue           *string
	ImageURL        *string
	Status          *string
	AdminFixKey     *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		taxonomy:   deps.TaxonomyRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket validates the department assignment, derives the
// priority and persists the ticket. Nothing is stored when validation
// fails.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.DepartmentID) == "" {
		return nil, apperrors.NewValidationError("department is required", map[string]any{"field": "department_id"})
	}
	dept, sub, priority, err := s.resolveAssignment(ctx, input.DepartmentID, input.SubDepartmentID)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		ExternalKey:  generateTicketKey(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		UserID:       input.UserID,
		DepartmentID: dept.ID,
		Issue:        strings.TrimSpace(input.Issue),
		ImageURL:     input.ImageURL,
		Priority:     priority,
		Status:       domain.TicketStatusOpen,
	}
	if sub != nil {
		ticket.SubDepartmentID = &sub.ID
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Name:            ticket.Name,
			DepartmentID:    ticket.DepartmentID,
			SubDepartmentID: ticket.SubDepartmentID,
			Priority:        ticket.Priority,
			Issue:           ticket.Issue,
		},
	})
	return ticket, nil
}

// UpdateTicket applies a partial update. When the department or
// sub-department assignment changes, the priority is re-derived; the
// priority field itself is never caller-settable.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapTicketErr(err)
	}

	if input.Name != nil {
		ticket.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		ticket.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		ticket.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Issue != nil {
		ticket.Issue = strings.TrimSpace(*input.Issue)
	}
	if input.ImageURL != nil {
		ticket.ImageURL = input.ImageURL
	}
	if input.Status != nil && strings.TrimSpace(*input.Status) != "" {
		ticket.Status = strings.TrimSpace(*input.Status)
	}
	if input.AdminFixKey != nil {
		tmpl, ok := domain.FixByKey(*input.AdminFixKey)
		if !ok {
			return nil, apperrors.NewValidationError("unknown admin fix key", map[string]any{
				"field": "admin_fix", "key": *input.AdminFixKey,
			})
		}
		fix := tmpl.Fix
		ticket.AdminFix = &fix
	}

	departmentID := ticket.DepartmentID
	if input.DepartmentID != nil {
		departmentID = *input.DepartmentID
	}
	subDepartmentID := ticket.SubDepartmentID
	if input.SubDepartmentID != nil {
		if strings.TrimSpace(*input.SubDepartmentID) == "" {
			subDepartmentID = nil
		} else {
			subDepartmentID = input.SubDepartmentID
		}
	}

	oldPriority := ticket.Priority
	dept, sub, priority, err := s.resolveAssignment(ctx, departmentID, subDepartmentID)
	if err != nil {
		return nil, err
	}
	ticket.DepartmentID = dept.ID
	ticket.SubDepartmentID = nil
	if sub != nil {
		ticket.SubDepartmentID = &sub.ID
	}
	ticket.Priority = priority

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, mapTicketErr(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Payload: events.TicketUpdatedPayload{
			DepartmentID:    ticket.DepartmentID,
			SubDepartmentID: ticket.SubDepartmentID,
			OldPriority:     oldPriority,
			NewPriority:     ticket.Priority,
			Status:          ticket.Status,
		},
	})
	return ticket, nil
}

// GetTicket fetches a ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	return ticket, nil
}

// ListTickets returns a filtered page of tickets.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if filter.Priority != nil && !domain.ValidPriorityLevel(*filter.Priority) {
		return nil, apperrors.NewValidationError("priority must be 1, 2 or 3", map[string]any{"field": "priority"})
	}
	return s.tickets.List(ctx, filter)
}

// ListAllTickets returns the full unpaginated ticket list.
func (s *TicketService) ListAllTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.ListAll(ctx)
}

// DeleteTicket removes a ticket by id.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return mapTicketErr(err)
	}
	return nil
}

// ArchiveTickets is the administrative escape hatch: it bulk-sets the
// given tickets to the lowest priority and the archived status,
// bypassing derivation. Returns the number of tickets archived.
func (s *TicketService) ArchiveTickets(ctx context.Context, ids []string) (int, error) {
	archived := 0
	for _, id := range ids {
		ticket, err := s.tickets.GetByID(ctx, id)
		if err != nil {
			return archived, mapTicketErr(err)
		}
		oldPriority := ticket.Priority
		lowest := domain.PriorityLowest
		ticket.Priority = &lowest
		ticket.Status = domain.TicketStatusArchived
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return archived, mapTicketErr(err)
		}
		archived++
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketArchived,
			TicketID: ticket.ID,
			Payload: events.TicketArchivedPayload{
				OldPriority: oldPriority,
				NewPriority: lowest,
			},
		})
	}
	return archived, nil
}

// resolveAssignment loads the referenced taxonomy rows, validates the
// cross-reference and derives the priority.
func (s *TicketService) resolveAssignment(ctx context.Context, departmentID string, subDepartmentID *string) (*domain.Department, *domain.SubDepartment, *int, error) {
	dept, err := s.taxonomy.GetDepartmentByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil, apperrors.NewNotFound("department", map[string]any{"department_id": departmentID})
		}
		return nil, nil, nil, err
	}

	var sub *domain.SubDepartment
	if subDepartmentID != nil && *subDepartmentID != "" {
		sub, err = s.taxonomy.GetSubDepartmentByID(ctx, *subDepartmentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil, nil, apperrors.NewNotFound("sub-department", map[string]any{"sub_department_id": *subDepartmentID})
			}
			return nil, nil, nil, err
		}
	}

	if err := ValidateAssignment(dept, sub); err != nil {
		return nil, nil, nil, err
	}
	return dept, sub, ResolvePriority(dept, sub), nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func mapTicketErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("ticket", nil)
	}
	return err
}

func generateTicketKey() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
