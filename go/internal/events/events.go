// Package events announces content changes so a site rebuilder can react.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ContentChanged describes one successful admin mutation.
type ContentChanged struct {
	ID         uuid.UUID `json:"id"`
	Action     string    `json:"action"`
	Collection string    `json:"collection"`
	Count      int       `json:"count"`
	URL        string    `json:"url,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier publishes content change events. Implementations must not
// fail the caller: delivery problems are logged and dropped.
type Notifier interface {
	ContentChanged(ctx context.Context, ev ContentChanged)
}

// Nop discards every event.
type Nop struct{}

func (Nop) ContentChanged(context.Context, ContentChanged) {}
