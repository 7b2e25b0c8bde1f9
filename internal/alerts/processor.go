package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
)

// Processor consumes decision notices and delivers them to the
// configured webhook (the notification frontend owns rendering and
// fan-out; this side only posts the fact).
type Processor struct {
	server     *asynq.Server
	webhookURL string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProcessor builds the worker side of the alerts queue. webhookURL
// may be empty, in which case notices are logged and dropped.
func NewProcessor(redisAddr, webhookURL string, log *slog.Logger) *Processor {
	server := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"alerts": 5,
		},
	})
	return &Processor{
		server:     server,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// Run starts consuming in a goroutine.
func (p *Processor) Run() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskDecisionNotice, p.handleDecisionNotice)
	go func() {
		if err := p.server.Run(mux); err != nil {
			p.log.Error("alerts worker stopped", "error", err)
		}
	}()
}

// Shutdown stops the worker.
func (p *Processor) Shutdown() {
	p.server.Shutdown()
}

func (p *Processor) handleDecisionNotice(ctx context.Context, t *asynq.Task) error {
	var payload DecisionNoticePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	if p.webhookURL == "" {
		p.log.Info("decision notice (no webhook configured)",
			"listing", payload.ListingID, "decision", payload.Decision, "owner", payload.OwnerName)
		return nil
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("alerts: deliver notice %s: %w", payload.TaskID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("alerts: webhook returned %d for notice %s", resp.StatusCode, payload.TaskID)
	}
	p.log.Info("decision notice delivered",
		"listing", payload.ListingID, "decision", payload.Decision)
	return nil
}
