package availability

import (
	"sort"
	"time"
)

// Default expansion parameters, used when callers pass zero values.
const (
	DefaultHorizonDays       = 30
	DefaultSlotLengthMinutes = 30
)

// isoWeekday maps Go's Sunday-based weekday to ISO 1 (Monday) .. 7 (Sunday).
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// ExpandWindows is a pure function turning recurring slots and exceptions
// into concrete bookable windows. For each active slot it walks the next
// horizonDays calendar days in the slot's timezone, keeps days matching the
// slot's weekday, slices the slot's minute span into consecutive
// slotLength-minute chunks (a trailing partial chunk is discarded), keeps
// only chunks starting strictly after now, and drops chunks suppressed by an
// exception covering that local date. The result is ordered by start instant
// with exact duplicates collapsed, and is deterministic for identical inputs.
func ExpandWindows(slots []*Slot, exceptions []*Exception, now time.Time, horizonDays, slotLength int) []Window {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if slotLength <= 0 {
		slotLength = DefaultSlotLengthMinutes
	}

	var windows []Window
	for _, slot := range slots {
		if !slot.IsActive {
			continue
		}
		windows = append(windows, expandSlot(slot, exceptions, now, horizonDays, slotLength)...)
	}

	sort.Slice(windows, func(i, j int) bool {
		if !windows[i].Start.Equal(windows[j].Start) {
			return windows[i].Start.Before(windows[j].Start)
		}
		return windows[i].End.Before(windows[j].End)
	})

	// Overlapping slot definitions can emit the same window twice; identical
	// (start, end) pairs collapse to one.
	deduped := windows[:0]
	for _, w := range windows {
		if len(deduped) > 0 {
			last := deduped[len(deduped)-1]
			if last.Start.Equal(w.Start) && last.End.Equal(w.End) {
				continue
			}
		}
		deduped = append(deduped, w)
	}

	return deduped
}

func expandSlot(slot *Slot, exceptions []*Exception, now time.Time, horizonDays, slotLength int) []Window {
	loc, err := time.LoadLocation(slot.Timezone)
	if err != nil {
		// Timezones are validated when slots are written; a slot that slips
		// through with a bad zone produces no windows rather than an error.
		return nil
	}

	localNow := now.In(loc)
	year, month, day := localNow.Date()

	var windows []Window
	for d := 0; d < horizonDays; d++ {
		dayStart := time.Date(year, month, day+d, 0, 0, 0, 0, loc)
		if isoWeekday(dayStart.Weekday()) != slot.Weekday {
			continue
		}

		localDate := dayStart.Format(time.DateOnly)

		for m := slot.StartMinutes; m+slotLength <= slot.EndMinutes; m += slotLength {
			// Minutes of day are wall-clock values; time.Date resolves them
			// in loc, so a chunk declared at 10:00 local stays at 10:00
			// local across DST transitions.
			start := time.Date(year, month, day+d, 0, m, 0, 0, loc)
			end := time.Date(year, month, day+d, 0, m+slotLength, 0, 0, loc)
			if !start.After(now) {
				continue
			}
			if suppressed(exceptions, localDate, m, m+slotLength) {
				continue
			}
			windows = append(windows, Window{
				Start: start.UTC(),
				End:   end.UTC(),
			})
		}
	}
	return windows
}

// suppressed reports whether any exception removes the chunk
// [chunkStart, chunkEnd) on the given local date. Partial exceptions use
// half-open interval intersection on minutes of day.
func suppressed(exceptions []*Exception, localDate string, chunkStart, chunkEnd int) bool {
	for _, ex := range exceptions {
		if !ex.Covers(localDate) {
			continue
		}
		if ex.Kind == ExceptionFullDay {
			return true
		}
		if ex.StartMinutes == nil || ex.EndMinutes == nil {
			continue
		}
		if chunkStart < *ex.EndMinutes && chunkEnd > *ex.StartMinutes {
			return true
		}
	}
	return false
}
