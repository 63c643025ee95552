package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hospital-helpdesk/internal/api/http"
	"github.com/spec-kit/hospital-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/hospital-helpdesk/internal/domain"
	"github.com/spec-kit/hospital-helpdesk/internal/observability"
	"github.com/spec-kit/hospital-helpdesk/internal/repository"
	"github.com/spec-kit/hospital-helpdesk/internal/service"
)

type handlerFixture struct {
	app     *fiber.App
	medical domain.Department
	admin   domain.Department
	icu     domain.SubDepartment
}

func newHandlerFixture(t *testing.T) handlerFixture {
	t.Helper()
	ctx := context.Background()

	taxonomy := repository.NewInMemoryTaxonomy()
	level := func(v int) *int { return &v }

	for l := domain.PriorityLowest; l <= domain.PriorityHighest; l++ {
		if _, _, err := taxonomy.GetOrCreatePriorityLevel(ctx, l, domain.PriorityDescription(l)); err != nil {
			t.Fatalf("seed level: %v", err)
		}
	}
	medical := domain.Department{Name: "Medical", Category: domain.CategoryMedical, DefaultPriority: level(3)}
	if _, err := taxonomy.GetOrCreateDepartment(ctx, &medical); err != nil {
		t.Fatalf("seed medical: %v", err)
	}
	admin := domain.Department{Name: "Administrative", Category: domain.CategoryAdministrative, DefaultPriority: level(2)}
	if _, err := taxonomy.GetOrCreateDepartment(ctx, &admin); err != nil {
		t.Fatalf("seed administrative: %v", err)
	}
	icu := domain.SubDepartment{Name: "ICU", DepartmentID: medical.ID, Priority: level(1)}
	if _, err := taxonomy.GetOrCreateSubDepartment(ctx, &icu); err != nil {
		t.Fatalf("seed icu: %v", err)
	}

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   repository.NewInMemoryTickets(),
		TaxonomyRepo: taxonomy,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Tickets: handlers.NewTicketsHandler(ticketService),
	})

	return handlerFixture{app: app, medical: medical, admin: admin, icu: icu}
}

func (f handlerFixture) do(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal %q: %v", raw, err)
		}
	}
	return resp, decoded
}

func createPayload(f handlerFixture, subID string) map[string]any {
	payload := map[string]any{
		"name":          "Jane Smith",
		"email":         "jane.smith@example.com",
		"phone":         "555-0100",
		"department_id": f.medical.ID,
		"issue":         "The electronic health record system is experiencing intermittent outages.",
	}
	if subID != "" {
		payload["sub_department_id"] = subID
	}
	return payload
}

func TestCreateTicketEndpointDerivesPriority(t *testing.T) {
	f := newHandlerFixture(t)

	resp, body := f.do(t, http.MethodPost, "/tickets/", createPayload(f, f.icu.ID))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", resp.StatusCode, body)
	}
	data := body["data"].(map[string]any)
	if data["priority"] != float64(1) {
		t.Fatalf("expected derived priority 1, got %v", data["priority"])
	}
	if data["status"] != "open" {
		t.Fatalf("expected open status, got %v", data["status"])
	}
}

func TestCreateTicketEndpointIgnoresClientPriority(t *testing.T) {
	f := newHandlerFixture(t)

	payload := createPayload(f, "")
	payload["priority"] = 1

	resp, body := f.do(t, http.MethodPost, "/tickets/", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", resp.StatusCode, body)
	}
	data := body["data"].(map[string]any)
	if data["priority"] != float64(3) {
		t.Fatalf("client priority must be overridden with 3, got %v", data["priority"])
	}
}

func TestCreateTicketEndpointRejectsMismatch(t *testing.T) {
	f := newHandlerFixture(t)

	payload := createPayload(f, f.icu.ID)
	payload["department_id"] = f.admin.ID

	resp, body := f.do(t, http.MethodPost, "/tickets/", payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", resp.StatusCode, body)
	}
	errObj := body["error"].(map[string]any)
	if errObj["code"] != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", errObj["code"])
	}
}

func TestCreateTicketEndpointRejectsBadEmail(t *testing.T) {
	f := newHandlerFixture(t)

	payload := createPayload(f, "")
	payload["email"] = "not-an-email"

	resp, _ := f.do(t, http.MethodPost, "/tickets/", payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestTicketEndpointRoundTrip(t *testing.T) {
	f := newHandlerFixture(t)

	_, created := f.do(t, http.MethodPost, "/tickets/", createPayload(f, ""))
	id := created["data"].(map[string]any)["id"].(string)

	resp, body := f.do(t, http.MethodGet, "/tickets/"+id, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
	if body["data"].(map[string]any)["name"] != "Jane Smith" {
		t.Fatalf("unexpected name %v", body["data"])
	}

	resp, body = f.do(t, http.MethodPut, "/tickets/"+id, map[string]any{"name": "John Doe"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["data"].(map[string]any)["name"] != "John Doe" {
		t.Fatalf("update not applied: %v", body["data"])
	}

	resp, _ = f.do(t, http.MethodDelete, "/tickets/"+id, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}

	resp, body = f.do(t, http.MethodGet, "/tickets/"+id, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d (%v)", resp.StatusCode, body)
	}
}

func TestGetTicketEndpointUnknownID(t *testing.T) {
	f := newHandlerFixture(t)

	resp, body := f.do(t, http.MethodGet, "/tickets/ffffffff-0000-0000-0000-000000000000", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body["error"].(map[string]any)["code"] != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", body["error"])
	}
}

func TestListTicketsEndpointPriorityFilter(t *testing.T) {
	f := newHandlerFixture(t)

	f.do(t, http.MethodPost, "/tickets/", createPayload(f, f.icu.ID)) // priority 1
	f.do(t, http.MethodPost, "/tickets/", createPayload(f, ""))       // priority 3

	resp, body := f.do(t, http.MethodGet, "/tickets/?priority=1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	items := body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 ticket at priority 1, got %d", len(items))
	}

	resp, _ = f.do(t, http.MethodGet, "/tickets/?priority=9", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid priority, got %d", resp.StatusCode)
	}
}

func TestArchiveTicketsEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		_, created := f.do(t, http.MethodPost, "/tickets/", createPayload(f, ""))
		ids = append(ids, created["data"].(map[string]any)["id"].(string))
	}

	resp, body := f.do(t, http.MethodPost, "/tickets/archive", map[string]any{"ids": ids})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["data"].(map[string]any)["archived"] != float64(2) {
		t.Fatalf("expected 2 archived, got %v", body["data"])
	}

	for _, id := range ids {
		_, got := f.do(t, http.MethodGet, "/tickets/"+id, nil)
		data := got["data"].(map[string]any)
		if data["priority"] != float64(1) {
			t.Fatalf("archived ticket %s: expected priority 1, got %v", id, data["priority"])
		}
		if data["status"] != "archived" {
			t.Fatalf("archived ticket %s: expected archived status, got %v", id, data["status"])
		}
	}
}

func TestListAllTicketsEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	for i := 0; i < 30; i++ {
		payload := createPayload(f, "")
		payload["email"] = fmt.Sprintf("reporter%d@example.com", i)
		f.do(t, http.MethodPost, "/tickets/", payload)
	}

	resp, body := f.do(t, http.MethodGet, "/tickets/all", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := len(body["data"].([]any)); got != 30 {
		t.Fatalf("expected all 30 tickets, got %d", got)
	}
}
