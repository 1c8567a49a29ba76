package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lagos = "Africa/Lagos" // UTC+1 year-round, no DST

func activeSlot(weekday, startMinutes, endMinutes int, tz string) *Slot {
	return &Slot{
		ID:              "slot-1",
		MentorProfileID: "mentor-1",
		Weekday:         weekday,
		StartMinutes:    startMinutes,
		EndMinutes:      endMinutes,
		Timezone:        tz,
		IsActive:        true,
	}
}

func intPtr(v int) *int { return &v }

func TestExpandWindows(t *testing.T) {
	// 2026-01-05 is a Monday. 08:00 UTC is 09:00 in Lagos.
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	t.Run("slices the span into consecutive chunks", func(t *testing.T) {
		// 10:00 to 11:00 Lagos on Mondays, 30-minute chunks.
		slots := []*Slot{activeSlot(1, 600, 660, lagos)}

		windows := ExpandWindows(slots, nil, now, 7, 30)
		require.Len(t, windows, 2)

		assert.Equal(t, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), windows[0].Start)
		assert.Equal(t, time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), windows[0].End)
		assert.Equal(t, time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), windows[1].Start)
		assert.Equal(t, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), windows[1].End)
	})

	t.Run("span equal to the chunk length yields exactly one window", func(t *testing.T) {
		slots := []*Slot{activeSlot(1, 600, 630, lagos)}

		windows := ExpandWindows(slots, nil, now, 7, 30)
		require.Len(t, windows, 1)
		assert.Equal(t, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), windows[0].Start)
		assert.Equal(t, time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), windows[0].End)
	})

	t.Run("discards a trailing partial chunk", func(t *testing.T) {
		// 50-minute span only fits one 30-minute chunk.
		slots := []*Slot{activeSlot(1, 600, 650, lagos)}

		windows := ExpandWindows(slots, nil, now, 7, 30)
		require.Len(t, windows, 1)
		assert.Equal(t, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), windows[0].Start)
	})

	t.Run("keeps only chunks starting strictly after now", func(t *testing.T) {
		slots := []*Slot{activeSlot(1, 600, 660, lagos)}

		// Now coincides with the first chunk's start instant.
		atFirstChunk := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
		windows := ExpandWindows(slots, nil, atFirstChunk, 7, 30)
		require.Len(t, windows, 1)
		assert.Equal(t, time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), windows[0].Start)
	})

	t.Run("only days matching the slot weekday produce windows", func(t *testing.T) {
		slots := []*Slot{activeSlot(1, 600, 660, lagos)}

		// Two weeks of horizon contain exactly two Mondays.
		windows := ExpandWindows(slots, nil, now, 14, 30)
		require.Len(t, windows, 4)
		for _, w := range windows {
			assert.Equal(t, time.Monday, w.Start.In(mustLoadLocation(t, lagos)).Weekday())
		}
		assert.Equal(t, time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC), windows[2].Start)
	})

	t.Run("full day exception removes every chunk of that date", func(t *testing.T) {
		slots := []*Slot{activeSlot(1, 600, 660, lagos)}
		exceptions := []*Exception{{
			StartDate: "2026-01-05",
			EndDate:   "2026-01-05",
			Kind:      ExceptionFullDay,
		}}

		windows := ExpandWindows(slots, exceptions, now, 14, 30)
		require.Len(t, windows, 2)
		// Only the following Monday survives.
		assert.Equal(t, time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC), windows[0].Start)
	})

	t.Run("partial exception suppresses overlapping chunks only", func(t *testing.T) {
		// 10:00 to 12:00 Lagos yields four chunks; the exception blacks out
		// 10:30 to 11:00 local.
		slots := []*Slot{activeSlot(1, 600, 720, lagos)}
		exceptions := []*Exception{{
			StartDate:    "2026-01-05",
			EndDate:      "2026-01-05",
			Kind:         ExceptionPartial,
			StartMinutes: intPtr(630),
			EndMinutes:   intPtr(660),
		}}

		windows := ExpandWindows(slots, exceptions, now, 7, 30)
		require.Len(t, windows, 3)
		assert.Equal(t, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), windows[0].Start)
		assert.Equal(t, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), windows[1].Start)
		assert.Equal(t, time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC), windows[2].Start)
	})

	t.Run("exception date range covers multiple days", func(t *testing.T) {
		slots := []*Slot{activeSlot(1, 600, 660, lagos)}
		exceptions := []*Exception{{
			StartDate: "2026-01-01",
			EndDate:   "2026-01-31",
			Kind:      ExceptionFullDay,
		}}

		windows := ExpandWindows(slots, exceptions, now, 14, 30)
		assert.Empty(t, windows)
	})

	t.Run("identical windows from overlapping slots collapse", func(t *testing.T) {
		slots := []*Slot{
			activeSlot(1, 600, 660, lagos),
			activeSlot(1, 600, 660, lagos),
		}

		windows := ExpandWindows(slots, nil, now, 7, 30)
		assert.Len(t, windows, 2)
	})

	t.Run("inactive slots produce nothing", func(t *testing.T) {
		s := activeSlot(1, 600, 660, lagos)
		s.IsActive = false

		windows := ExpandWindows([]*Slot{s}, nil, now, 7, 30)
		assert.Empty(t, windows)
	})

	t.Run("slot with unknown timezone produces nothing", func(t *testing.T) {
		s := activeSlot(1, 600, 660, "Mars/Olympus")

		windows := ExpandWindows([]*Slot{s}, nil, now, 7, 30)
		assert.Empty(t, windows)
	})

	t.Run("result is sorted and deterministic", func(t *testing.T) {
		slots := []*Slot{
			activeSlot(3, 540, 660, lagos),
			activeSlot(1, 600, 720, lagos),
			activeSlot(5, 480, 540, "America/New_York"),
		}

		first := ExpandWindows(slots, nil, now, 21, 30)
		second := ExpandWindows(slots, nil, now, 21, 30)
		require.Equal(t, first, second)

		for i := 1; i < len(first); i++ {
			assert.False(t, first[i].Start.Before(first[i-1].Start))
		}
		for _, w := range first {
			assert.True(t, w.Start.After(now))
			assert.True(t, w.End.After(w.Start))
		}
	})

	t.Run("chunks keep their local wall-clock time across spring forward", func(t *testing.T) {
		// New York skips 02:00 to 03:00 on 2026-03-08. A Sunday slot at
		// 10:00 local must still open at 10:00 EDT, not drift by the lost
		// hour.
		ny := mustLoadLocation(t, "America/New_York")
		slots := []*Slot{activeSlot(7, 600, 630, "America/New_York")}
		beforeTransition := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

		windows := ExpandWindows(slots, nil, beforeTransition, 3, 30)
		require.Len(t, windows, 1)

		local := windows[0].Start.In(ny)
		assert.Equal(t, 10, local.Hour())
		assert.Equal(t, 0, local.Minute())
		// 10:00 EDT is UTC-4.
		assert.Equal(t, time.Date(2026, 3, 8, 14, 0, 0, 0, time.UTC), windows[0].Start)
		assert.Equal(t, time.Date(2026, 3, 8, 14, 30, 0, 0, time.UTC), windows[0].End)
	})

	t.Run("chunks keep their local wall-clock time across fall back", func(t *testing.T) {
		// New York repeats 01:00 to 02:00 on 2026-11-01; 10:00 local is
		// back on EST, UTC-5.
		ny := mustLoadLocation(t, "America/New_York")
		slots := []*Slot{activeSlot(7, 600, 630, "America/New_York")}
		beforeTransition := time.Date(2026, 10, 30, 12, 0, 0, 0, time.UTC)

		windows := ExpandWindows(slots, nil, beforeTransition, 3, 30)
		require.Len(t, windows, 1)

		local := windows[0].Start.In(ny)
		assert.Equal(t, 10, local.Hour())
		assert.Equal(t, time.Date(2026, 11, 1, 15, 0, 0, 0, time.UTC), windows[0].Start)
		assert.Equal(t, time.Date(2026, 11, 1, 15, 30, 0, 0, time.UTC), windows[0].End)
	})

	t.Run("zero parameters fall back to defaults", func(t *testing.T) {
		slots := []*Slot{activeSlot(1, 600, 660, lagos)}

		windows := ExpandWindows(slots, nil, now, 0, 0)
		// 30 days starting Monday 2026-01-05 contain five Mondays, two
		// 30-minute chunks each.
		assert.Len(t, windows, 10)
	})
}

func TestIsoWeekday(t *testing.T) {
	assert.Equal(t, 1, isoWeekday(time.Monday))
	assert.Equal(t, 6, isoWeekday(time.Saturday))
	assert.Equal(t, 7, isoWeekday(time.Sunday))
}

func TestExceptionCovers(t *testing.T) {
	ex := &Exception{StartDate: "2026-02-10", EndDate: "2026-02-12"}

	assert.False(t, ex.Covers("2026-02-09"))
	assert.True(t, ex.Covers("2026-02-10"))
	assert.True(t, ex.Covers("2026-02-11"))
	assert.True(t, ex.Covers("2026-02-12"))
	assert.False(t, ex.Covers("2026-02-13"))
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}
