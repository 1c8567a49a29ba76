package listing

import (
	"net/http"
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "listing not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrEmptyTitle       = apperror.New(http.StatusBadRequest, "title cannot be empty")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "duration must be a positive number of minutes")
	ErrCategoryNotFound = apperror.New(http.StatusNotFound, "category not found")
)

// Listing is a mentor's published offer that mentees book against.
type Listing struct {
	ID              string
	MentorProfileID string
	CategoryID      *string
	Title           string
	Description     *string
	Price           *float64
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing queries.
type Filter struct {
	MentorProfileID string
	CategoryID      string
	ActiveOnly      bool
	Page            int
	PageSize        int
}
