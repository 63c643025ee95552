package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-helpdesk/internal/config"
	"github.com/spec-kit/hospital-helpdesk/internal/domain"
)

func demoTickets(n int) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, n)
	for i := 0; i < n; i++ {
		priority := (i % 3) + 1
		tickets = append(tickets, domain.Ticket{
			ID:       fmt.Sprintf("t%d", i),
			Name:     fmt.Sprintf("Reporter %d", i),
			Issue:    "The hospital intranet is slow, affecting access to patient records.",
			Priority: &priority,
		})
	}
	return tickets
}

func TestBuildBatchesSingleBatch(t *testing.T) {
	batches := BuildBatches(demoTickets(3), 1900)
	if len(batches) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(batches))
	}
	if got := strings.Count(batches[0], "\n"); got != 3 {
		t.Fatalf("expected 3 lines, got %d", got)
	}
	if !strings.Contains(batches[0], "(Priority: 1)") {
		t.Fatalf("missing priority in line: %q", batches[0])
	}
}

func TestBuildBatchesRespectsCharLimit(t *testing.T) {
	tickets := demoTickets(200)
	batches := BuildBatches(tickets, 1900)
	if len(batches) < 2 {
		t.Fatalf("expected multiple batches for 200 tickets, got %d", len(batches))
	}

	totalLines := 0
	for i, batch := range batches {
		if len(batch) > 1900 {
			t.Fatalf("batch %d exceeds limit: %d chars", i, len(batch))
		}
		totalLines += strings.Count(batch, "\n")
	}
	if totalLines != len(tickets) {
		t.Fatalf("expected %d lines across batches, got %d", len(tickets), totalLines)
	}
}

func TestBuildBatchesNilPriority(t *testing.T) {
	tickets := []domain.Ticket{{Name: "Jane Smith", Issue: "Something odd."}}
	batches := BuildBatches(tickets, 1900)
	if len(batches) != 1 || !strings.Contains(batches[0], "(Priority: N/A)") {
		t.Fatalf("expected N/A priority line, got %v", batches)
	}
}

func TestNotifyTicketsPostsBatches(t *testing.T) {
	var payloads []webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p webhookPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		payloads = append(payloads, p)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	notifier := NewNotifier(config.NotifyConfig{
		WebhookURL:      srv.URL,
		Username:        "Ticket Bot",
		MaxContentChars: 200,
	}, zap.NewNop())

	sent, err := notifier.NotifyTickets(context.Background(), demoTickets(10))
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if sent != len(payloads) {
		t.Fatalf("reported %d sent but server saw %d", sent, len(payloads))
	}
	if len(payloads) < 2 {
		t.Fatalf("expected multiple batches with a 200-char cap, got %d", len(payloads))
	}
	for i, p := range payloads {
		if p.Username != "Ticket Bot" {
			t.Fatalf("unexpected username %q", p.Username)
		}
		prefix := fmt.Sprintf("**Batch %d:**\n", i+1)
		if !strings.HasPrefix(p.Content, prefix) {
			t.Fatalf("batch %d missing prefix %q: %q", i+1, prefix, p.Content)
		}
	}
}

func TestNotifyTicketsSkipsFailedBatch(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	notifier := NewNotifier(config.NotifyConfig{
		WebhookURL:      srv.URL,
		Username:        "Ticket Bot",
		MaxContentChars: 200,
	}, zap.NewNop())

	sent, err := notifier.NotifyTickets(context.Background(), demoTickets(10))
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if sent != calls-1 {
		t.Fatalf("expected %d delivered batches, got %d", calls-1, sent)
	}
}
