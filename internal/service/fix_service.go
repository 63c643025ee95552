package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-helpdesk/internal/domain"
	"github.com/spec-kit/hospital-helpdesk/internal/events"
	"github.com/spec-kit/hospital-helpdesk/internal/repository"
)

// FixAssignment records one ticket's assigned fix for reporting.
type FixAssignment struct {
	TicketID string
	Issue    string
	Fix      string
	Matched  bool
}

// FixService batch-assigns remediation labels to tickets by matching
// issue text against the fix catalog. Not part of the live request
// path.
type FixService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewFixService constructs the service.
func NewFixService(tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger) *FixService {
	return &FixService{tickets: tickets, dispatcher: dispatcher, logger: logger}
}

// AssignFixes walks every ticket, determines the recommended fix via
// substring match (first catalog entry wins) and stores it. Labels that
// would repeat within the run get an occurrence suffix, so every stored
// admin_fix string is unique per run: the second "Restart the EHR
// server..." becomes "Restart the EHR server... (2)".
func (s *FixService) AssignFixes(ctx context.Context) ([]FixAssignment, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	occurrences := make(map[string]int)
	assignments := make([]FixAssignment, 0, len(tickets))
	matched := 0

	for i := range tickets {
		ticket := tickets[i]
		fix := domain.NoFixAvailable
		tmpl, ok := domain.MatchFix(ticket.Issue)
		if ok {
			fix = tmpl.Fix
			matched++
		}

		occurrences[fix]++
		unique := fix
		if n := occurrences[fix]; n > 1 {
			unique = fmt.Sprintf("%s (%d)", fix, n)
		}

		ticket.AdminFix = &unique
		if err := s.tickets.Update(ctx, &ticket); err != nil {
			return assignments, err
		}
		assignments = append(assignments, FixAssignment{
			TicketID: ticket.ID,
			Issue:    ticket.Issue,
			Fix:      unique,
			Matched:  ok,
		})
	}

	s.logger.Info("admin fixes assigned",
		zap.Int("tickets", len(assignments)),
		zap.Int("matched", matched),
	)
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventFixesAssigned,
			Timestamp: time.Now(),
			Payload: events.FixesAssignedPayload{
				Assigned: len(assignments),
				Matched:  matched,
			},
		})
	}
	return assignments, nil
}
