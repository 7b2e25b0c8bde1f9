package listing

import "time"

// Category identifies one of the fixed board sections.
type Category string

const (
	CategoryJob             Category = "job"
	CategoryRoom            Category = "room"
	CategoryMarket          Category = "market"
	CategoryEvent           Category = "event"
	CategoryTravelCompanion Category = "travelCompanion"
)

// Categories is the fixed fetch/display order of the board sections.
var Categories = []Category{
	CategoryJob,
	CategoryRoom,
	CategoryMarket,
	CategoryEvent,
	CategoryTravelCompanion,
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ApprovalStatus is the moderation decision state of a listing.
// The store keeps it as a nullable boolean; it is normalized into
// this three-way tag exactly once, at ingestion.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusDeclined ApprovalStatus = "declined"
)

// StatusFromStored maps the store's optional boolean onto the tri-state:
// absent means no decision yet.
func StatusFromStored(approved *bool) ApprovalStatus {
	switch {
	case approved == nil:
		return StatusPending
	case *approved:
		return StatusApproved
	default:
		return StatusDeclined
	}
}

// StoredValue is the inverse mapping, used when writing a decision back.
func (s ApprovalStatus) StoredValue() bool {
	return s == StatusApproved
}

// Owner is the poster of a listing as recovered from the embedded
// owner descriptor.
type Owner struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
}

// Listing is one classified-ad record, normalized for this subsystem.
// Attrs and Images are opaque: they pass through untouched.
type Listing struct {
	ID          string         `json:"id"`
	Category    Category       `json:"category"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at,omitempty"`
	Status      ApprovalStatus `json:"status"`
	Owner       Owner          `json:"owner"`
	Attrs       map[string]any `json:"attrs,omitempty"`
	Images      []string       `json:"images,omitempty"`
}
