package availability

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorloop/mentorloop-backend/internal/mentor"
)

type fakeRepository struct {
	slots      map[string]*Slot
	exceptions map[string]*Exception
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		slots:      map[string]*Slot{},
		exceptions: map[string]*Exception{},
	}
}

func (r *fakeRepository) CreateSlot(_ context.Context, s *Slot) error {
	s.ID = "slot-1"
	r.slots[s.ID] = s
	return nil
}

func (r *fakeRepository) GetSlotByID(_ context.Context, id string) (*Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepository) ListSlotsByMentor(_ context.Context, mentorProfileID string, activeOnly bool) ([]*Slot, error) {
	var out []*Slot
	for _, s := range r.slots {
		if s.MentorProfileID != mentorProfileID {
			continue
		}
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRepository) UpdateSlot(_ context.Context, s *Slot) error {
	if _, ok := r.slots[s.ID]; !ok {
		return ErrNotFound
	}
	r.slots[s.ID] = s
	return nil
}

func (r *fakeRepository) CreateException(_ context.Context, e *Exception) error {
	e.ID = "exception-1"
	r.exceptions[e.ID] = e
	return nil
}

func (r *fakeRepository) GetExceptionByID(_ context.Context, id string) (*Exception, error) {
	e, ok := r.exceptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (r *fakeRepository) ListExceptionsByMentor(_ context.Context, mentorProfileID string) ([]*Exception, error) {
	var out []*Exception
	for _, e := range r.exceptions {
		if e.MentorProfileID == mentorProfileID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRepository) DeleteException(_ context.Context, id string) error {
	delete(r.exceptions, id)
	return nil
}

// fakeMentorService knows one mentor: profile mentor-1 owned by mentor-user,
// based in Lagos.
type fakeMentorService struct{}

func (s *fakeMentorService) Create(_ context.Context, _ string, _ mentor.CreateRequest) (*mentor.Profile, error) {
	panic("not used")
}

func (s *fakeMentorService) GetByID(_ context.Context, id string) (*mentor.Profile, error) {
	if id != "mentor-1" {
		return nil, mentor.ErrNotFound
	}
	return &mentor.Profile{ID: "mentor-1", UserID: "mentor-user", Timezone: "Africa/Lagos"}, nil
}

func (s *fakeMentorService) GetByUserID(_ context.Context, userID string) (*mentor.Profile, error) {
	if userID != "mentor-user" {
		return nil, mentor.ErrNotFound
	}
	return &mentor.Profile{ID: "mentor-1", UserID: "mentor-user", Timezone: "Africa/Lagos"}, nil
}

func (s *fakeMentorService) List(_ context.Context, _ mentor.Filter) ([]*mentor.Profile, int, error) {
	panic("not used")
}

func (s *fakeMentorService) Update(_ context.Context, _ string, _ mentor.UpdateRequest, _ string) (*mentor.Profile, error) {
	panic("not used")
}

func (s *fakeMentorService) UploadAvatar(_ context.Context, _ string, _ io.Reader, _ string) (*mentor.Profile, error) {
	panic("not used")
}

func (s *fakeMentorService) GetAvatar(_ context.Context, _ string) (io.ReadCloser, error) {
	panic("not used")
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, &fakeMentorService{}, 0, 0), repo
}

func TestCreateSlot(t *testing.T) {
	t.Run("creates an active slot", func(t *testing.T) {
		svc, _ := newTestService()

		s, err := svc.CreateSlot(context.Background(), "mentor-user", CreateSlotRequest{
			Weekday:      1,
			StartMinutes: 600,
			EndMinutes:   660,
			Timezone:     "Europe/Berlin",
		})
		require.NoError(t, err)

		assert.Equal(t, "mentor-1", s.MentorProfileID)
		assert.Equal(t, "Europe/Berlin", s.Timezone)
		assert.True(t, s.IsActive)
	})

	t.Run("empty timezone falls back to the profile's", func(t *testing.T) {
		svc, _ := newTestService()

		s, err := svc.CreateSlot(context.Background(), "mentor-user", CreateSlotRequest{
			Weekday:      3,
			StartMinutes: 540,
			EndMinutes:   720,
		})
		require.NoError(t, err)
		assert.Equal(t, "Africa/Lagos", s.Timezone)
	})

	t.Run("callers without a mentor profile are rejected", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.CreateSlot(context.Background(), "random-user", CreateSlotRequest{
			Weekday:      1,
			StartMinutes: 600,
			EndMinutes:   660,
		})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("validation failures", func(t *testing.T) {
		svc, _ := newTestService()

		cases := []struct {
			name string
			req  CreateSlotRequest
			want error
		}{
			{"weekday zero", CreateSlotRequest{Weekday: 0, StartMinutes: 0, EndMinutes: 60}, ErrInvalidWeekday},
			{"weekday eight", CreateSlotRequest{Weekday: 8, StartMinutes: 0, EndMinutes: 60}, ErrInvalidWeekday},
			{"inverted span", CreateSlotRequest{Weekday: 1, StartMinutes: 660, EndMinutes: 600}, ErrInvalidMinuteSpan},
			{"empty span", CreateSlotRequest{Weekday: 1, StartMinutes: 600, EndMinutes: 600}, ErrInvalidMinuteSpan},
			{"past midnight", CreateSlotRequest{Weekday: 1, StartMinutes: 600, EndMinutes: 1500}, ErrInvalidMinuteSpan},
			{"bad timezone", CreateSlotRequest{Weekday: 1, StartMinutes: 600, EndMinutes: 660, Timezone: "Not/AZone"}, ErrInvalidTimezone},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.CreateSlot(context.Background(), "mentor-user", tc.req)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestUpdateSlot(t *testing.T) {
	seed := func(repo *fakeRepository) {
		repo.slots["slot-1"] = &Slot{
			ID:              "slot-1",
			MentorProfileID: "mentor-1",
			Weekday:         1,
			StartMinutes:    600,
			EndMinutes:      660,
			Timezone:        "Africa/Lagos",
			IsActive:        true,
		}
	}

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		svc, repo := newTestService()
		seed(repo)

		inactive := false
		s, err := svc.UpdateSlot(context.Background(), "slot-1", UpdateSlotRequest{IsActive: &inactive}, "mentor-user")
		require.NoError(t, err)

		assert.False(t, s.IsActive)
		assert.Equal(t, 1, s.Weekday)
		assert.Equal(t, 600, s.StartMinutes)
	})

	t.Run("span validated against the merged values", func(t *testing.T) {
		svc, repo := newTestService()
		seed(repo)

		// New start collides with the existing end.
		start := 660
		_, err := svc.UpdateSlot(context.Background(), "slot-1", UpdateSlotRequest{StartMinutes: &start}, "mentor-user")
		assert.ErrorIs(t, err, ErrInvalidMinuteSpan)
	})

	t.Run("only the owning mentor can update", func(t *testing.T) {
		svc, repo := newTestService()
		seed(repo)
		repo.slots["slot-1"].MentorProfileID = "mentor-2"

		active := true
		_, err := svc.UpdateSlot(context.Background(), "slot-1", UpdateSlotRequest{IsActive: &active}, "mentor-user")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestCreateException(t *testing.T) {
	t.Run("full day exception drops any minute range", func(t *testing.T) {
		svc, _ := newTestService()

		minutes := 600
		e, err := svc.CreateException(context.Background(), "mentor-user", CreateExceptionRequest{
			StartDate:    "2026-05-01",
			EndDate:      "2026-05-03",
			Kind:         ExceptionFullDay,
			StartMinutes: &minutes,
			EndMinutes:   &minutes,
		})
		require.NoError(t, err)

		assert.Nil(t, e.StartMinutes)
		assert.Nil(t, e.EndMinutes)
	})

	t.Run("partial exception requires a minute range", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.CreateException(context.Background(), "mentor-user", CreateExceptionRequest{
			StartDate: "2026-05-01",
			EndDate:   "2026-05-01",
			Kind:      ExceptionPartial,
		})
		assert.ErrorIs(t, err, ErrInvalidException)
	})

	t.Run("rejects inverted date ranges and bad dates", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.CreateException(context.Background(), "mentor-user", CreateExceptionRequest{
			StartDate: "2026-05-03",
			EndDate:   "2026-05-01",
			Kind:      ExceptionFullDay,
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)

		_, err = svc.CreateException(context.Background(), "mentor-user", CreateExceptionRequest{
			StartDate: "01/05/2026",
			EndDate:   "2026-05-01",
			Kind:      ExceptionFullDay,
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.CreateException(context.Background(), "mentor-user", CreateExceptionRequest{
			StartDate: "2026-05-01",
			EndDate:   "2026-05-01",
			Kind:      ExceptionKind("holiday"),
		})
		assert.ErrorIs(t, err, ErrInvalidException)
	})
}

func TestGenerateWindows(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	t.Run("expands the mentor's active slots", func(t *testing.T) {
		svc, repo := newTestService()
		repo.slots["slot-1"] = activeSlot(1, 600, 660, lagos)
		repo.slots["slot-1"].MentorProfileID = "mentor-1"

		windows, err := svc.GenerateWindows(context.Background(), "mentor-1", now, 7, 30)
		require.NoError(t, err)
		assert.Len(t, windows, 2)
	})

	t.Run("unknown mentor is an error, not an empty schedule", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.GenerateWindows(context.Background(), "mentor-404", now, 7, 30)
		assert.ErrorIs(t, err, mentor.ErrNotFound)
	})

	t.Run("inactive slots are excluded", func(t *testing.T) {
		svc, repo := newTestService()
		s := activeSlot(1, 600, 660, lagos)
		s.MentorProfileID = "mentor-1"
		s.IsActive = false
		repo.slots["slot-1"] = s

		windows, err := svc.GenerateWindows(context.Background(), "mentor-1", now, 7, 30)
		require.NoError(t, err)
		assert.Empty(t, windows)
	})
}
