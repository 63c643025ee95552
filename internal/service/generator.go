package service

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-helpdesk/internal/domain"
	"github.com/spec-kit/hospital-helpdesk/internal/repository"
)

var generatorIssues = []string{
	"Encountered intermittent scheduling errors leading to minor delays in service delivery.",
	"Experienced occasional electronic record glitches, causing slight data access delays.",
	"Reported temporary communication failures between monitoring devices and central systems.",
	"The electronic health record system is experiencing intermittent outages.",
	"Patient monitoring devices are not syncing with the central server.",
	"Wi-Fi connectivity is unstable in the emergency department.",
	"Printer in the nurse's station is offline and not processing orders.",
	"The hospital intranet is slow, affecting access to patient records.",
	"Network segmentation issues are impacting data transmission in the ICU.",
	"Remote access to the hospital's IT portal is not functioning properly.",
}

var generatorNames = []string{
	"Jane Smith", "John Doe", "Maria Garcia", "Wei Chen",
	"Fatima Al-Sayed", "Lucas Meyer", "Aisha Mohammed", "Peter Novak",
}

// Generator creates randomized demo tickets over the seeded taxonomy.
// Every generated ticket goes through the same validate-and-resolve
// path as API-created tickets.
type Generator struct {
	tickets  *TicketService
	taxonomy repository.TaxonomyRepository
	rand     *rand.Rand
	logger   *zap.Logger
}

// NewGenerator constructs the generator with the given random seed.
func NewGenerator(tickets *TicketService, taxonomy repository.TaxonomyRepository, seed int64, logger *zap.Logger) *Generator {
	return &Generator{
		tickets:  tickets,
		taxonomy: taxonomy,
		rand:     rand.New(rand.NewSource(seed)),
		logger:   logger,
	}
}

// Generate creates count tickets and returns them.
func (g *Generator) Generate(ctx context.Context, count int) ([]domain.Ticket, error) {
	departments, err := g.taxonomy.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return nil, fmt.Errorf("no departments seeded; run the seeder first")
	}

	created := make([]domain.Ticket, 0, count)
	for i := 0; i < count; i++ {
		dept := departments[g.rand.Intn(len(departments))]

		var subID *string
		subs, err := g.taxonomy.ListSubDepartments(ctx, dept.ID)
		if err != nil {
			return created, err
		}
		if len(subs) > 0 && g.rand.Intn(2) == 0 {
			id := subs[g.rand.Intn(len(subs))].ID
			subID = &id
		}

		name := generatorNames[g.rand.Intn(len(generatorNames))]
		input := TicketCreateInput{
			Name:            name,
			Email:           emailFor(name, i),
			Phone:           fmt.Sprintf("555-01%02d", g.rand.Intn(100)),
			DepartmentID:    dept.ID,
			SubDepartmentID: subID,
			Issue:           generatorIssues[g.rand.Intn(len(generatorIssues))],
		}
		ticket, err := g.tickets.CreateTicket(ctx, input)
		if err != nil {
			return created, err
		}
		created = append(created, *ticket)
	}
	g.logger.Info("generated demo tickets", zap.Int("count", len(created)))
	return created, nil
}

func emailFor(name string, i int) string {
	local := ""
	for _, r := range name {
		switch {
		case r == ' ':
			local += "."
		case r >= 'A' && r <= 'Z':
			local += string(r + ('a' - 'A'))
		default:
			local += string(r)
		}
	}
	return fmt.Sprintf("%s%d@example.com", local, i)
}
