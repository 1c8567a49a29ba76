package mentor

import (
	"net/http"
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "mentor profile not found")
	ErrProfileExists    = apperror.New(http.StatusConflict, "user already has a mentor profile")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrEmptyHeadline    = apperror.New(http.StatusBadRequest, "headline cannot be empty")
	ErrInvalidTimezone  = apperror.New(http.StatusBadRequest, "invalid IANA timezone")
	ErrInvalidAvatar    = apperror.New(http.StatusBadRequest, "invalid avatar image")
)

// Profile is the mentor-side identity referenced by listings, availability,
// bookings and sessions.
type Profile struct {
	ID         string
	UserID     string
	Headline   string
	Bio        *string
	Skills     *string
	HourlyRate *float64
	Timezone   string // default zone for new availability slots
	AvatarPath *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter defines parameters for listing mentor profiles.
type Filter struct {
	Skill    string
	Page     int
	PageSize int
}
