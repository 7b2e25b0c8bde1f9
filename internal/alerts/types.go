package alerts

import "time"

// Task type constants
const (
	TaskDecisionNotice = "moderation:decision"
)

// DecisionNoticePayload tells a listing's owner what was decided.
type DecisionNoticePayload struct {
	TaskID    string    `json:"task_id"`
	ListingID string    `json:"listing_id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"owner_id,omitempty"`
	OwnerName string    `json:"owner_name"`
	Decision  string    `json:"decision"` // approved|declined|deleted
	DecidedBy string    `json:"decided_by"`
	DecidedAt time.Time `json:"decided_at"`
}
