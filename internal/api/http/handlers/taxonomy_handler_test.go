package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hospital-helpdesk/internal/api/http"
	"github.com/spec-kit/hospital-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/hospital-helpdesk/internal/observability"
	"github.com/spec-kit/hospital-helpdesk/internal/repository"
	"github.com/spec-kit/hospital-helpdesk/internal/service"
)

func newTaxonomyApp(t *testing.T) *fiber.App {
	t.Helper()

	taxonomy := repository.NewInMemoryTaxonomy()
	seeder := service.NewSeeder(taxonomy, zap.NewNop())
	if _, err := seeder.Run(t.Context(), service.DefaultSeedSpec()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   repository.NewInMemoryTickets(),
		TaxonomyRepo: taxonomy,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Tickets:  handlers.NewTicketsHandler(ticketService),
		Taxonomy: handlers.NewTaxonomyHandler(service.NewTaxonomyService(taxonomy, nil, zap.NewNop())),
	})
	return app
}

func TestListPriorityLevelsEndpoint(t *testing.T) {
	app := newTaxonomyApp(t)

	resp, body := testRequest(t, app, http.MethodGet, "/priority-levels")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	levels := body["data"].([]any)
	if len(levels) != 3 {
		t.Fatalf("expected 3 priority levels, got %d", len(levels))
	}
	first := levels[0].(map[string]any)
	if first["level"] != float64(1) || first["description"] != "Level 1 (Lowest)" {
		t.Fatalf("unexpected first level %v", first)
	}
}

func TestListDepartmentsEndpointReturnsTree(t *testing.T) {
	app := newTaxonomyApp(t)

	resp, body := testRequest(t, app, http.MethodGet, "/departments/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	departments := body["data"].([]any)
	if len(departments) != 3 {
		t.Fatalf("expected 3 departments, got %d", len(departments))
	}
	for _, item := range departments {
		dept := item.(map[string]any)
		if subs := dept["sub_departments"].([]any); len(subs) == 0 {
			t.Fatalf("department %v has no sub-departments", dept["name"])
		}
	}
}

func TestListSubDepartmentsEndpoint(t *testing.T) {
	app := newTaxonomyApp(t)

	resp, body := testRequest(t, app, http.MethodGet, "/departments/Medical/sub-departments")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if subs := body["data"].([]any); len(subs) == 0 {
		t.Fatal("expected sub-departments for Medical")
	}

	resp, body = testRequest(t, app, http.MethodGet, "/departments/Culinary/sub-departments")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown department, got %d (%v)", resp.StatusCode, body)
	}
}

func testRequest(t *testing.T, app *fiber.App, method, path string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	decoded := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp, decoded
}
