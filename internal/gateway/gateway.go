package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olu-davies/noticehub/internal/listing"
)

// Document is the raw per-listing record as the external store hands it
// over. Approval is the store's optional boolean (nil = no decision) and
// Owner is the still-encoded descriptor string; both are normalized by
// the aggregator, not here. Attrs and Images pass through untouched.
type Document struct {
	ID          string         `json:"id" bson:"_id"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description" bson:"description"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	Approved    *bool          `json:"approved,omitempty" bson:"approved,omitempty"`
	Owner       string         `json:"owner,omitempty" bson:"owner,omitempty"`
	Attrs       map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
	Images      []string       `json:"images,omitempty" bson:"images,omitempty"`
}

// Gateway is the CRUD boundary to the external per-category collections.
// Listings are created and edited elsewhere; this subsystem only reads
// them and flips or removes moderation state.
type Gateway interface {
	// ListByCategory returns the category's documents, newest CreatedAt
	// first. With approvedOnly set, only approved documents are returned.
	ListByCategory(ctx context.Context, cat listing.Category, approvedOnly bool) ([]Document, error)

	// SetApproval writes the moderation decision for one listing.
	SetApproval(ctx context.Context, cat listing.Category, id string, approved bool) error

	// Remove deletes one listing from its collection.
	Remove(ctx context.Context, cat listing.Category, id string) error
}

// ErrNotFound is returned by SetApproval and Remove when the listing id
// no longer exists in the collection.
var ErrNotFound = errors.New("gateway: listing not found")

// TransportError wraps any network, auth, or store-level failure of a
// gateway call. Its message is safe to surface to the admin UI.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
