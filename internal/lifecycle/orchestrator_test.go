package lifecycle

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mentorloop/mentorloop-backend/internal/booking"
	"github.com/mentorloop/mentorloop-backend/internal/db"
	"github.com/mentorloop/mentorloop-backend/internal/session"
)

// memTxRunner runs the function directly; the fakes below roll back by
// restoring snapshots when it fails.
type memTxRunner struct {
	bookings *memBookingRepo
	sessions *memSessionRepo
}

func (r *memTxRunner) InTx(_ context.Context, fn func(q db.DBTX) error) error {
	bookingSnapshot := r.bookings.snapshot()
	sessionSnapshot := r.sessions.snapshot()

	if err := fn(nil); err != nil {
		r.bookings.restore(bookingSnapshot)
		r.sessions.restore(sessionSnapshot)
		return err
	}
	return nil
}

type memBookingRepo struct {
	bookings    map[string]*booking.Booking
	mentorLocks []string
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*booking.Booking{}}
}

func (r *memBookingRepo) snapshot() map[string]booking.Booking {
	snap := make(map[string]booking.Booking, len(r.bookings))
	for id, b := range r.bookings {
		snap[id] = *b
	}
	return snap
}

func (r *memBookingRepo) restore(snap map[string]booking.Booking) {
	r.bookings = make(map[string]*booking.Booking, len(snap))
	for id, b := range snap {
		copied := b
		r.bookings[id] = &copied
	}
}

func (r *memBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memBookingRepo) GetByIDForUpdate(ctx context.Context, id string) (*booking.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *memBookingRepo) List(_ context.Context, _ booking.Filter) ([]*booking.Booking, int, error) {
	return nil, 0, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, b *booking.Booking) error {
	stored, ok := r.bookings[b.ID]
	if !ok {
		return booking.ErrNotFound
	}
	stored.Status = b.Status
	return nil
}

func (r *memBookingRepo) HasOverlap(_ context.Context, mentorProfileID string, start, end time.Time, excludeBookingID string) (bool, error) {
	for _, b := range r.bookings {
		if b.MentorProfileID != mentorProfileID || b.ID == excludeBookingID {
			continue
		}
		if b.Status != booking.StatusAccepted {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepo) LockMentor(_ context.Context, mentorProfileID string) error {
	r.mentorLocks = append(r.mentorLocks, mentorProfileID)
	return nil
}

func (r *memBookingRepo) WithTx(_ db.DBTX) booking.Repository { return r }

type memSessionRepo struct {
	sessions    map[string]*session.Session
	nextID      int
	createCalls int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*session.Session{}}
}

func (r *memSessionRepo) snapshot() map[string]session.Session {
	snap := make(map[string]session.Session, len(r.sessions))
	for id, s := range r.sessions {
		snap[id] = *s
	}
	return snap
}

func (r *memSessionRepo) restore(snap map[string]session.Session) {
	r.sessions = make(map[string]*session.Session, len(snap))
	for id, s := range snap {
		copied := s
		r.sessions[id] = &copied
	}
}

func (r *memSessionRepo) Create(_ context.Context, s *session.Session) error {
	r.createCalls++
	for _, existing := range r.sessions {
		if existing.BookingID == s.BookingID {
			return session.ErrAlreadyExists
		}
	}
	r.nextID++
	s.ID = "session-" + strconv.Itoa(r.nextID)
	r.sessions[s.ID] = s
	return nil
}

func (r *memSessionRepo) GetByID(_ context.Context, id string) (*session.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSessionRepo) GetByBookingID(_ context.Context, bookingID string) (*session.Session, error) {
	for _, s := range r.sessions {
		if s.BookingID == bookingID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, session.ErrNotFound
}

func (r *memSessionRepo) List(_ context.Context, _ session.Filter) ([]*session.Session, int, error) {
	return nil, 0, nil
}

func (r *memSessionRepo) UpdateStatus(_ context.Context, s *session.Session) error {
	stored, ok := r.sessions[s.ID]
	if !ok {
		return session.ErrNotFound
	}
	stored.Status = s.Status
	return nil
}

func (r *memSessionRepo) WithTx(_ db.DBTX) session.Repository { return r }

func newTestOrchestrator() (*Orchestrator, *memBookingRepo, *memSessionRepo) {
	bookings := newMemBookingRepo()
	sessions := newMemSessionRepo()
	tx := &memTxRunner{bookings: bookings, sessions: sessions}
	// The orchestrator only uses the booking service for decline and
	// cancel; a nil listing service is never touched there.
	bookingService := booking.NewService(bookings, nil)
	return NewOrchestrator(tx, bookings, sessions, bookingService, zap.NewNop()), bookings, sessions
}

func draftBooking(id string) *booking.Booking {
	return &booking.Booking{
		ID:              id,
		ListingID:       "listing-1",
		MentorProfileID: "mentor-1",
		MenteeUserID:    "mentee-1",
		StartTime:       time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2026, 4, 6, 11, 0, 0, 0, time.UTC),
		Status:          booking.StatusDraft,
	}
}

func TestAcceptBooking(t *testing.T) {
	t.Run("accept derives a scheduled session with identical times", func(t *testing.T) {
		o, bookings, sessions := newTestOrchestrator()
		bookings.bookings["booking-1"] = draftBooking("booking-1")

		b, s, err := o.AcceptBooking(context.Background(), "booking-1")
		require.NoError(t, err)

		assert.Equal(t, booking.StatusAccepted, b.Status)
		assert.Equal(t, booking.StatusAccepted, bookings.bookings["booking-1"].Status)

		require.NotNil(t, s)
		assert.Equal(t, session.StatusScheduled, s.Status)
		assert.Equal(t, "booking-1", s.BookingID)
		assert.True(t, s.StartTime.Equal(b.StartTime))
		assert.True(t, s.EndTime.Equal(b.EndTime))
		assert.Len(t, sessions.sessions, 1)

		assert.Contains(t, bookings.mentorLocks, "mentor-1")
	})

	t.Run("repeated accept fails and does not duplicate the session", func(t *testing.T) {
		o, bookings, sessions := newTestOrchestrator()
		bookings.bookings["booking-1"] = draftBooking("booking-1")

		_, _, err := o.AcceptBooking(context.Background(), "booking-1")
		require.NoError(t, err)

		_, _, err = o.AcceptBooking(context.Background(), "booking-1")
		assert.ErrorIs(t, err, booking.ErrInvalidState)
		assert.Len(t, sessions.sessions, 1)
	})

	t.Run("overlapping accepted booking blocks the accept", func(t *testing.T) {
		o, bookings, sessions := newTestOrchestrator()

		accepted := draftBooking("booking-1")
		accepted.Status = booking.StatusAccepted
		bookings.bookings["booking-1"] = accepted

		overlapping := draftBooking("booking-2")
		overlapping.StartTime = accepted.StartTime.Add(30 * time.Minute)
		overlapping.EndTime = accepted.EndTime.Add(30 * time.Minute)
		bookings.bookings["booking-2"] = overlapping

		_, _, err := o.AcceptBooking(context.Background(), "booking-2")
		assert.ErrorIs(t, err, booking.ErrTimeConflict)

		// The transaction rolled back; the booking is still a draft.
		assert.Equal(t, booking.StatusDraft, bookings.bookings["booking-2"].Status)
		assert.Empty(t, sessions.sessions)
	})

	t.Run("adjacent windows do not conflict", func(t *testing.T) {
		o, bookings, _ := newTestOrchestrator()

		accepted := draftBooking("booking-1")
		accepted.Status = booking.StatusAccepted
		bookings.bookings["booking-1"] = accepted

		adjacent := draftBooking("booking-2")
		adjacent.StartTime = accepted.EndTime
		adjacent.EndTime = accepted.EndTime.Add(time.Hour)
		bookings.bookings["booking-2"] = adjacent

		b, s, err := o.AcceptBooking(context.Background(), "booking-2")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusAccepted, b.Status)
		assert.NotNil(t, s)
	})

	t.Run("existing session for the booking rolls the accept back", func(t *testing.T) {
		o, bookings, sessions := newTestOrchestrator()
		bookings.bookings["booking-1"] = draftBooking("booking-1")
		sessions.sessions["stale"] = &session.Session{ID: "stale", BookingID: "booking-1"}

		_, _, err := o.AcceptBooking(context.Background(), "booking-1")
		assert.ErrorIs(t, err, session.ErrAlreadyExists)
		assert.Equal(t, booking.StatusDraft, bookings.bookings["booking-1"].Status)
		// The booking-id lookup catches the duplicate before an insert is
		// ever attempted.
		assert.Zero(t, sessions.createCalls)
	})

	t.Run("unknown booking", func(t *testing.T) {
		o, _, _ := newTestOrchestrator()

		_, _, err := o.AcceptBooking(context.Background(), "missing")
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})
}

func TestDeclineAndCancel(t *testing.T) {
	t.Run("decline a draft booking", func(t *testing.T) {
		o, bookings, _ := newTestOrchestrator()
		bookings.bookings["booking-1"] = draftBooking("booking-1")

		b, err := o.DeclineBooking(context.Background(), "booking-1")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusDeclined, b.Status)
	})

	t.Run("cancel an accepted booking is rejected", func(t *testing.T) {
		o, bookings, _ := newTestOrchestrator()

		accepted := draftBooking("booking-1")
		accepted.Status = booking.StatusAccepted
		bookings.bookings["booking-1"] = accepted

		_, err := o.CancelBooking(context.Background(), "booking-1")
		assert.ErrorIs(t, err, booking.ErrInvalidState)
	})
}
