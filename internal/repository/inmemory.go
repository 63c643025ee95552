package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hospital-helpdesk/internal/domain"
)

// InMemoryTaxonomy is a map-backed TaxonomyRepository. It backs tests
// and the CLI's --dry-run mode; lookups mirror the pgx implementation,
// including pgx.ErrNoRows for missing rows.
type InMemoryTaxonomy struct {
	mu             sync.RWMutex
	levels         map[int]domain.PriorityLevel
	departments    map[string]domain.Department
	subDepartments map[string]domain.SubDepartment
}

// NewInMemoryTaxonomy builds an empty store.
func NewInMemoryTaxonomy() *InMemoryTaxonomy {
	return &InMemoryTaxonomy{
		levels:         make(map[int]domain.PriorityLevel),
		departments:    make(map[string]domain.Department),
		subDepartments: make(map[string]domain.SubDepartment),
	}
}

// RunInTransaction satisfies TransactionalTaxonomy; the in-memory store
// has no transactional isolation, the callback runs against the store
// itself.
func (s *InMemoryTaxonomy) RunInTransaction(ctx context.Context, fn func(TaxonomyRepository) error) error {
	return fn(s)
}

func (s *InMemoryTaxonomy) GetPriorityLevel(ctx context.Context, level int) (*domain.PriorityLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pl, ok := s.levels[level]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &pl, nil
}

func (s *InMemoryTaxonomy) ListPriorityLevels(ctx context.Context) ([]domain.PriorityLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.PriorityLevel, 0, len(s.levels))
	for _, pl := range s.levels {
		result = append(result, pl)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Level < result[j].Level })
	return result, nil
}

func (s *InMemoryTaxonomy) GetOrCreatePriorityLevel(ctx context.Context, level int, description string) (*domain.PriorityLevel, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.levels[level]; ok {
		return &existing, false, nil
	}
	pl := domain.PriorityLevel{Level: level, Description: description}
	s.levels[level] = pl
	return &pl, true, nil
}

func (s *InMemoryTaxonomy) GetDepartment(ctx context.Context, name string) (*domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, dept := range s.departments {
		if dept.Name == name {
			copied := dept
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *InMemoryTaxonomy) GetDepartmentByID(ctx context.Context, id string) (*domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dept, ok := s.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &dept, nil
}

func (s *InMemoryTaxonomy) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Department, 0, len(s.departments))
	for _, dept := range s.departments {
		result = append(result, dept)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *InMemoryTaxonomy) GetOrCreateDepartment(ctx context.Context, dept *domain.Department) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.departments {
		if existing.Name == dept.Name {
			*dept = existing
			return false, nil
		}
	}
	now := time.Now()
	dept.ID = uuid.NewString()
	dept.CreatedAt = now
	dept.UpdatedAt = now
	s.departments[dept.ID] = *dept
	return true, nil
}

func (s *InMemoryTaxonomy) GetSubDepartment(ctx context.Context, name string) (*domain.SubDepartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subDepartments {
		if sub.Name == name {
			copied := sub
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *InMemoryTaxonomy) GetSubDepartmentByID(ctx context.Context, id string) (*domain.SubDepartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subDepartments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &sub, nil
}

func (s *InMemoryTaxonomy) ListSubDepartments(ctx context.Context, departmentID string) ([]domain.SubDepartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.SubDepartment
	for _, sub := range s.subDepartments {
		if sub.DepartmentID == departmentID {
			result = append(result, sub)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *InMemoryTaxonomy) GetOrCreateSubDepartment(ctx context.Context, sub *domain.SubDepartment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subDepartments {
		if existing.Name == sub.Name {
			*sub = existing
			return false, nil
		}
	}
	now := time.Now()
	sub.ID = uuid.NewString()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	s.subDepartments[sub.ID] = *sub
	return true, nil
}

// CountRows reports row counts per table, used by seeding tests.
func (s *InMemoryTaxonomy) CountRows() (levels, departments, subDepartments int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.levels), len(s.departments), len(s.subDepartments)
}

// InMemoryTickets is a map-backed TicketRepository.
type InMemoryTickets struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
}

// NewInMemoryTickets builds an empty repository.
func NewInMemoryTickets() *InMemoryTickets {
	return &InMemoryTickets{tickets: make(map[string]domain.Ticket)}
}

func (s *InMemoryTickets) Create(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (s *InMemoryTickets) Update(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (s *InMemoryTickets) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.tickets, id)
	return nil
}

func (s *InMemoryTickets) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (s *InMemoryTickets) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.Ticket, 0, len(all))
	for _, ticket := range all {
		if filter.Priority != nil && (ticket.Priority == nil || *ticket.Priority != *filter.Priority) {
			continue
		}
		if filter.Status != nil && !strings.EqualFold(ticket.Status, *filter.Status) {
			continue
		}
		if filter.DepartmentID != nil && ticket.DepartmentID != *filter.DepartmentID {
			continue
		}
		filtered = append(filtered, ticket)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(filtered) {
		return []domain.Ticket{}, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (s *InMemoryTickets) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Ticket, 0, len(s.tickets))
	for _, ticket := range s.tickets {
		result = append(result, ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
