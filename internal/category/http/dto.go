package http

import (
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/category"
)

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
