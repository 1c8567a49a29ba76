package http

import (
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/listing"
	"github.com/mentorloop/mentorloop-backend/internal/pkg/request"
)

type ListingResponse struct {
	ID              string    `json:"id"`
	MentorProfileID string    `json:"mentor_profile_id"`
	CategoryID      *string   `json:"category_id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Price           *float64  `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewListingResponse(l *listing.Listing) ListingResponse {
	return ListingResponse{
		ID:              l.ID,
		MentorProfileID: l.MentorProfileID,
		CategoryID:      l.CategoryID,
		Title:           l.Title,
		Description:     l.Description,
		Price:           l.Price,
		DurationMinutes: l.DurationMinutes,
		IsActive:        l.IsActive,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

type CreateListingRequest struct {
	CategoryID      *string  `json:"category_id" binding:"omitempty,uuid"`
	Title           string   `json:"title" binding:"required,max=200"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,min=1"`
}

type UpdateListingRequest struct {
	CategoryID      *string  `json:"category_id" binding:"omitempty,uuid"`
	Title           *string  `json:"title" binding:"omitempty,max=200"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=1"`
	IsActive        *bool    `json:"is_active"`
}

type ListListingsRequest struct {
	MentorProfileID string `form:"mentor_profile_id" binding:"omitempty,uuid"`
	CategoryID      string `form:"category_id" binding:"omitempty,uuid"`
	ActiveOnly      bool   `form:"active_only"`
	request.ListParams
}
