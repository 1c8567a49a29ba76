package category

import (
	"net/http"
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "category not found")
	ErrNameTaken = apperror.New(http.StatusConflict, "category name already exists")
	ErrEmptyName = apperror.New(http.StatusBadRequest, "name cannot be empty")
)

// Category is a flat label listings are filed under (e.g. "Backend",
// "Career coaching").
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
