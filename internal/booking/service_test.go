package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorloop/mentorloop-backend/internal/db"
	"github.com/mentorloop/mentorloop-backend/internal/listing"
)

type fakeRepository struct {
	bookings map[string]*Booking
	overlap  bool
	created  []*Booking
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bookings: map[string]*Booking{}}
}

func (r *fakeRepository) Create(_ context.Context, b *Booking) error {
	b.ID = "booking-1"
	r.bookings[b.ID] = b
	r.created = append(r.created, b)
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepository) GetByIDForUpdate(ctx context.Context, id string) (*Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepository) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	return nil, 0, nil
}

func (r *fakeRepository) UpdateStatus(_ context.Context, b *Booking) error {
	stored, ok := r.bookings[b.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = b.Status
	return nil
}

func (r *fakeRepository) HasOverlap(_ context.Context, _ string, _, _ time.Time, _ string) (bool, error) {
	return r.overlap, nil
}

func (r *fakeRepository) LockMentor(_ context.Context, _ string) error { return nil }

func (r *fakeRepository) WithTx(_ db.DBTX) Repository { return r }

type fakeListingService struct {
	listings map[string]*listing.Listing
}

func (s *fakeListingService) Create(_ context.Context, _ string, _ listing.CreateRequest) (*listing.Listing, error) {
	panic("not used")
}

func (s *fakeListingService) GetByID(_ context.Context, id string) (*listing.Listing, error) {
	l, ok := s.listings[id]
	if !ok {
		return nil, listing.ErrNotFound
	}
	return l, nil
}

func (s *fakeListingService) List(_ context.Context, _ listing.Filter) ([]*listing.Listing, int, error) {
	return nil, 0, nil
}

func (s *fakeListingService) Update(_ context.Context, _ string, _ listing.UpdateRequest, _ string) (*listing.Listing, error) {
	panic("not used")
}

func TestServiceCreate(t *testing.T) {
	start := time.Now().UTC().Add(24 * time.Hour)
	end := start.Add(time.Hour)

	newService := func(overlap bool) (Service, *fakeRepository) {
		repo := newFakeRepository()
		repo.overlap = overlap
		listings := &fakeListingService{listings: map[string]*listing.Listing{
			"listing-1": {ID: "listing-1", MentorProfileID: "mentor-1", IsActive: true},
			"listing-2": {ID: "listing-2", MentorProfileID: "mentor-1", IsActive: false},
		}}
		return NewService(repo, listings), repo
	}

	t.Run("creates a draft booking", func(t *testing.T) {
		svc, repo := newService(false)

		b, err := svc.Create(context.Background(), CreateRequest{
			MenteeUserID: "mentee-1",
			ListingID:    "listing-1",
			StartTime:    start,
			EndTime:      end,
		})
		require.NoError(t, err)

		assert.Equal(t, StatusDraft, b.Status)
		assert.Equal(t, "mentor-1", b.MentorProfileID)
		assert.Equal(t, start, b.StartTime)
		assert.Len(t, repo.created, 1)
	})

	t.Run("rejects inverted time range", func(t *testing.T) {
		svc, _ := newService(false)

		_, err := svc.Create(context.Background(), CreateRequest{
			ListingID: "listing-1",
			StartTime: end,
			EndTime:   start,
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("rejects start time in the past", func(t *testing.T) {
		svc, _ := newService(false)

		_, err := svc.Create(context.Background(), CreateRequest{
			ListingID: "listing-1",
			StartTime: time.Now().UTC().Add(-time.Hour),
			EndTime:   time.Now().UTC().Add(time.Hour),
		})
		assert.ErrorIs(t, err, ErrStartTimePast)
	})

	t.Run("rejects unknown listing", func(t *testing.T) {
		svc, _ := newService(false)

		_, err := svc.Create(context.Background(), CreateRequest{
			ListingID: "nope",
			StartTime: start,
			EndTime:   end,
		})
		assert.ErrorIs(t, err, ErrListingNotFound)
	})

	t.Run("rejects inactive listing", func(t *testing.T) {
		svc, _ := newService(false)

		_, err := svc.Create(context.Background(), CreateRequest{
			ListingID: "listing-2",
			StartTime: start,
			EndTime:   end,
		})
		assert.ErrorIs(t, err, ErrListingInactive)
	})

	t.Run("rejects overlap with an accepted booking", func(t *testing.T) {
		svc, _ := newService(true)

		_, err := svc.Create(context.Background(), CreateRequest{
			ListingID: "listing-1",
			StartTime: start,
			EndTime:   end,
		})
		assert.ErrorIs(t, err, ErrTimeConflict)
	})
}

func TestServiceTransitions(t *testing.T) {
	setup := func(status Status) (Service, *fakeRepository) {
		repo := newFakeRepository()
		repo.bookings["booking-1"] = &Booking{ID: "booking-1", Status: status}
		listings := &fakeListingService{listings: map[string]*listing.Listing{}}
		return NewService(repo, listings), repo
	}

	t.Run("decline persists the new status", func(t *testing.T) {
		svc, repo := setup(StatusDraft)

		b, err := svc.Decline(context.Background(), "booking-1")
		require.NoError(t, err)
		assert.Equal(t, StatusDeclined, b.Status)
		assert.Equal(t, StatusDeclined, repo.bookings["booking-1"].Status)
	})

	t.Run("repeated decline fails without a second write", func(t *testing.T) {
		svc, _ := setup(StatusDraft)

		_, err := svc.Decline(context.Background(), "booking-1")
		require.NoError(t, err)

		_, err = svc.Decline(context.Background(), "booking-1")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("cancel rejects an accepted booking", func(t *testing.T) {
		svc, repo := setup(StatusAccepted)

		_, err := svc.Cancel(context.Background(), "booking-1")
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, StatusAccepted, repo.bookings["booking-1"].Status)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _ := setup(StatusDraft)

		_, err := svc.Cancel(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
