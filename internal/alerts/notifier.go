// Package alerts pushes moderation outcomes onto a background task
// queue so decisions never wait on a notification round trip. With no
// Redis configured the notifier degrades to logging only.
package alerts

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/olu-davies/noticehub/internal/listing"
)

// Notifier enqueues decision notices. A nil-client Notifier is valid
// and only logs.
type Notifier struct {
	client *asynq.Client
	log    *slog.Logger
}

// NewNotifier builds a notifier against redisAddr. An empty address
// disables enqueueing.
func NewNotifier(redisAddr string, log *slog.Logger) *Notifier {
	n := &Notifier{log: log}
	if redisAddr == "" {
		log.Info("alerts disabled, no redis address configured")
		return n
	}
	n.client = asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	return n
}

// Close releases the queue client.
func (n *Notifier) Close() {
	if n.client != nil {
		_ = n.client.Close()
	}
}

// NotifyDecision schedules an owner notification for one moderation
// decision. Failures are logged, never propagated: a lost notice must
// not fail the decision itself.
func (n *Notifier) NotifyDecision(l listing.Listing, decision, decidedBy string) {
	payload := DecisionNoticePayload{
		TaskID:    uuid.NewString(),
		ListingID: l.ID,
		Category:  string(l.Category),
		Title:     l.Title,
		OwnerID:   l.Owner.ID,
		OwnerName: l.Owner.DisplayName,
		Decision:  decision,
		DecidedBy: decidedBy,
		DecidedAt: time.Now().UTC(),
	}
	if n.client == nil {
		n.log.Info("moderation decision", "listing", l.ID, "decision", decision)
		return
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskDecisionNotice, b)
	if _, err := n.client.Enqueue(task, asynq.Queue("alerts")); err != nil {
		n.log.Error("failed to enqueue decision notice",
			"listing", l.ID, "decision", decision, "error", err)
	}
}
