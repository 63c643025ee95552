package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-helpdesk/internal/repository"
)

func TestGeneratorProducesValidTickets(t *testing.T) {
	ctx := context.Background()
	taxonomy := repository.NewInMemoryTaxonomy()
	if _, err := NewSeeder(taxonomy, zap.NewNop()).Run(ctx, DefaultSeedSpec()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tickets := repository.NewInMemoryTickets()
	svc := NewTicketService(TicketDependencies{TicketRepo: tickets, TaxonomyRepo: taxonomy})
	generator := NewGenerator(svc, taxonomy, 42, zap.NewNop())

	created, err := generator.Generate(ctx, 25)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(created) != 25 {
		t.Fatalf("expected 25 tickets, got %d", len(created))
	}

	for _, ticket := range created {
		dept, err := taxonomy.GetDepartmentByID(ctx, ticket.DepartmentID)
		if err != nil {
			t.Fatalf("ticket %s references unknown department: %v", ticket.ID, err)
		}
		want := dept.DefaultPriority
		if ticket.SubDepartmentID != nil {
			sub, err := taxonomy.GetSubDepartmentByID(ctx, *ticket.SubDepartmentID)
			if err != nil {
				t.Fatalf("ticket %s references unknown sub-department: %v", ticket.ID, err)
			}
			if sub.DepartmentID != dept.ID {
				t.Fatalf("ticket %s: sub-department belongs to another department", ticket.ID)
			}
			if sub.Priority != nil {
				want = sub.Priority
			}
		}
		switch {
		case want == nil && ticket.Priority != nil:
			t.Fatalf("ticket %s: expected nil priority, got %d", ticket.ID, *ticket.Priority)
		case want != nil && (ticket.Priority == nil || *ticket.Priority != *want):
			t.Fatalf("ticket %s: expected priority %d, got %v", ticket.ID, *want, ticket.Priority)
		}
	}
}

func TestGeneratorRequiresSeededTaxonomy(t *testing.T) {
	taxonomy := repository.NewInMemoryTaxonomy()
	tickets := repository.NewInMemoryTickets()
	svc := NewTicketService(TicketDependencies{TicketRepo: tickets, TaxonomyRepo: taxonomy})
	generator := NewGenerator(svc, taxonomy, 1, zap.NewNop())

	if _, err := generator.Generate(context.Background(), 1); err == nil {
		t.Fatal("expected error when no departments are seeded")
	}
}
