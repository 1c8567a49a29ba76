package session

import (
	"net/http"
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/booking"
	"github.com/mentorloop/mentorloop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "session not found")
	ErrInvalidState       = apperror.New(http.StatusConflict, "session status does not allow this transition")
	ErrAlreadyExists      = apperror.New(http.StatusConflict, "session already exists for this booking")
	ErrBookingNotAccepted = apperror.New(http.StatusConflict, "booking is not accepted")
	ErrPermissionDenied   = apperror.New(http.StatusForbidden, "caller does not own this session")
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Session is the realized meeting derived from an accepted booking. Exactly
// one exists per booking, enforced by a unique constraint on booking_id.
type Session struct {
	ID              string
	BookingID       string
	MentorProfileID string
	MenteeUserID    string
	StartTime       time.Time
	EndTime         time.Time
	Status          Status
	Notes           *string
	Metadata        map[string]any
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FromBooking derives the session for an accepted booking. Start and end
// times are copied verbatim and never recomputed afterwards.
func FromBooking(b *booking.Booking) (*Session, error) {
	if b.Status != booking.StatusAccepted {
		return nil, ErrBookingNotAccepted
	}
	return &Session{
		BookingID:       b.ID,
		MentorProfileID: b.MentorProfileID,
		MenteeUserID:    b.MenteeUserID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          StatusScheduled,
		Metadata:        map[string]any{},
	}, nil
}

// Start moves a scheduled session to in progress.
func (s *Session) Start() error {
	if s.Status != StatusScheduled {
		return ErrInvalidState
	}
	s.Status = StatusInProgress
	return nil
}

// Complete moves an in-progress session to completed. The machine is
// strictly forward-only; completed is terminal.
func (s *Session) Complete() error {
	if s.Status != StatusInProgress {
		return ErrInvalidState
	}
	s.Status = StatusCompleted
	return nil
}

// Filter defines parameters for listing sessions.
type Filter struct {
	MentorProfileID string
	MenteeUserID    string
	Status          string
	Page            int
	PageSize        int
}
