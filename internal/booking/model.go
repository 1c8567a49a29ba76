package booking

import (
	"net/http"
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidState     = apperror.New(http.StatusConflict, "booking status does not allow this transition")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time window already booked")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrListingNotFound  = apperror.New(http.StatusNotFound, "listing not found")
	ErrListingInactive  = apperror.New(http.StatusBadRequest, "listing is not open for booking")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
)

// Booking is a mentee's request for a session at a specific time window,
// pending mentor action. Transitions are forward-only; accepted, declined
// and cancelled are terminal.
type Booking struct {
	ID              string
	ListingID       string
	MentorProfileID string
	MenteeUserID    string
	StartTime       time.Time
	EndTime         time.Time
	Status          Status
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Accept moves a draft booking to accepted. Only the lifecycle orchestrator
// calls this, inside the accept transaction.
func (b *Booking) Accept() error {
	if b.Status != StatusDraft {
		return ErrInvalidState
	}
	b.Status = StatusAccepted
	return nil
}

// Decline moves a draft booking to declined.
func (b *Booking) Decline() error {
	if b.Status != StatusDraft {
		return ErrInvalidState
	}
	b.Status = StatusDeclined
	return nil
}

// Cancel moves a booking to cancelled. An accepted booking cannot be
// cancelled here because a session may already exist; that path goes
// through a separate compensating workflow.
func (b *Booking) Cancel() error {
	if b.Status == StatusCancelled || b.Status == StatusAccepted {
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	return nil
}

// Filter defines parameters for listing bookings.
type Filter struct {
	MentorProfileID string
	MenteeUserID    string
	Status          string
	Page            int
	PageSize        int
}
