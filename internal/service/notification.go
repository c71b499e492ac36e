package service

import (
	"context"
	"log"
	"time"

	"transfleet/internal/domain"
)

// EventType represents the type of driver event.
type EventType string

const (
	EventStatusUpdated EventType = "STATUS_UPDATED"
	EventRepairCreated EventType = "REPAIR_CREATED"
	EventRepairDeleted EventType = "REPAIR_DELETED"
)

// Event represents an event emitted after a successful mutation. The
// device relies on it (today, via the response) to refetch its order
// list instead of patching it in place.
type Event struct {
	Type      EventType
	UserID    string
	Kind      domain.OrderKind
	SubjectID string
	CreatedAt time.Time
}

// Notifier receives post-success events. Exactly one event is emitted
// per successful submission.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// LogNotifier is the default Notifier; it logs events. A push gateway
// (FCM/APNS) would slot in here without touching the services.
type LogNotifier struct{}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

// Notify logs the event.
func (n *LogNotifier) Notify(ctx context.Context, event Event) {
	log.Printf("[EVENT] Type=%s, User=%s, Kind=%s, Subject=%s",
		event.Type, event.UserID, event.Kind, event.SubjectID)
}

var _ Notifier = (*LogNotifier)(nil)
