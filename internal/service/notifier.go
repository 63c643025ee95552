package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-helpdesk/internal/config"
	"github.com/spec-kit/hospital-helpdesk/internal/domain"
	"github.com/spec-kit/hospital-helpdesk/internal/events"
)

// Notifier posts plain-text ticket summaries to a chat webhook.
// Messages are capped below the chat platform's 2000-character limit
// and sent with a delay to stay under rate limits. Delivery is
// best-effort: failures are logged, never propagated to ticket writes.
type Notifier struct {
	client *http.Client
	cfg    config.NotifyConfig
	logger *zap.Logger
}

type webhookPayload struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// NewNotifier constructs the notifier.
func NewNotifier(cfg config.NotifyConfig, logger *zap.Logger) *Notifier {
	return &Notifier{
		client: &http.Client{Timeout: 10 * time.Second},
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterHandlers subscribes the notifier to ticket-created events.
func (n *Notifier) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
}

func (n *Notifier) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	line := ticketLine(payload.Name, payload.Issue, payload.Priority)
	if err := n.send(ctx, line); err != nil {
		n.logger.Warn("ticket-created notification failed", zap.Error(err))
	}
	return nil
}

// NotifyTickets sends the given tickets as batched summaries. Returns
// the number of batches delivered; a failed batch is logged and
// skipped.
func (n *Notifier) NotifyTickets(ctx context.Context, tickets []domain.Ticket) (int, error) {
	batches := BuildBatches(tickets, n.maxChars())
	sent := 0
	for i, batch := range batches {
		content := fmt.Sprintf("**Batch %d:**\n%s", i+1, batch)
		if err := n.send(ctx, content); err != nil {
			n.logger.Warn("failed to send batch",
				zap.Int("batch", i+1),
				zap.Error(err))
			continue
		}
		sent++
		if i < len(batches)-1 && n.cfg.Delay() > 0 {
			select {
			case <-time.After(n.cfg.Delay()):
			case <-ctx.Done():
				return sent, ctx.Err()
			}
		}
	}
	n.logger.Info("ticket batches sent", zap.Int("sent", sent), zap.Int("total", len(batches)))
	return sent, nil
}

// BuildBatches packs one summary line per ticket into messages no
// longer than maxChars characters.
func BuildBatches(tickets []domain.Ticket, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = 1900
	}
	var batches []string
	var current strings.Builder
	for _, ticket := range tickets {
		line := ticketLine(ticket.Name, ticket.Issue, ticket.Priority)
		if current.Len() > 0 && current.Len()+len(line) > maxChars {
			batches = append(batches, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		batches = append(batches, current.String())
	}
	return batches
}

func ticketLine(name, issue string, priority *int) string {
	p := "N/A"
	if priority != nil {
		p = strconv.Itoa(*priority)
	}
	return fmt.Sprintf("- %s - %s (Priority: %s)\n", name, issue, p)
}

func (n *Notifier) send(ctx context.Context, content string) error {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return nil
	}
	body, err := json.Marshal(webhookPayload{Username: n.cfg.Username, Content: content})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (n *Notifier) maxChars() int {
	if n.cfg.MaxContentChars > 0 {
		return n.cfg.MaxContentChars
	}
	return 1900
}
