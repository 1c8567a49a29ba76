package availability

import (
	"net/http"
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "availability rule not found")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidWeekday    = apperror.New(http.StatusBadRequest, "weekday must be between 1 (Monday) and 7 (Sunday)")
	ErrInvalidMinuteSpan = apperror.New(http.StatusBadRequest, "start minutes must be before end minutes within a single day")
	ErrInvalidTimezone   = apperror.New(http.StatusBadRequest, "invalid IANA timezone")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "start date must not be after end date")
	ErrInvalidException  = apperror.New(http.StatusBadRequest, "partial exceptions require a valid minute range")
)

// ExceptionKind distinguishes full-day blackouts from partial-day ones.
type ExceptionKind string

const (
	ExceptionFullDay ExceptionKind = "full_day"
	ExceptionPartial ExceptionKind = "partial"
)

const minutesPerDay = 24 * 60

// Slot is a mentor's recurring weekly availability rule: weekday plus a
// minute-of-day span, interpreted in the slot's own timezone.
type Slot struct {
	ID              string
	MentorProfileID string
	Weekday         int // ISO: 1 = Monday ... 7 = Sunday
	StartMinutes    int // minutes from local midnight, inclusive
	EndMinutes      int // minutes from local midnight, exclusive
	Timezone        string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Exception removes availability over an inclusive range of mentor-local
// calendar dates, either for the whole day or a minute-of-day span.
type Exception struct {
	ID              string
	MentorProfileID string
	StartDate       string // inclusive, "2006-01-02", mentor-local
	EndDate         string // inclusive
	Kind            ExceptionKind
	StartMinutes    *int // set only for partial exceptions
	EndMinutes      *int
	CreatedAt       time.Time
}

// Covers reports whether the exception applies to the given local calendar
// date. ISO date strings compare correctly as plain strings.
func (e *Exception) Covers(localDate string) bool {
	return e.StartDate <= localDate && localDate <= e.EndDate
}

// Window is a concrete bookable interval produced by expanding recurring
// slots. It is ephemeral and never persisted.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
