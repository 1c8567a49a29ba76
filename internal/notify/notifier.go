package notify

import (
	"context"
	"time"
)

// SessionCompletedEvent is published when a session reaches completed. It is
// the extension point for review eligibility and notification collaborators.
type SessionCompletedEvent struct {
	SessionID       string    `json:"session_id"`
	BookingID       string    `json:"booking_id"`
	MentorProfileID string    `json:"mentor_profile_id"`
	MenteeUserID    string    `json:"mentee_user_id"`
	CompletedAt     time.Time `json:"completed_at"`
}

// Notifier delivers session lifecycle events to downstream consumers.
// Delivery is fire-and-forget: a failed publish is logged by the caller and
// never rolls back the transition that produced the event.
type Notifier interface {
	SessionCompleted(ctx context.Context, ev SessionCompletedEvent) error
}
