package http

import (
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/mentor"
)

type ProfileResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Headline   string    `json:"headline"`
	Bio        *string   `json:"bio"`
	Skills     *string   `json:"skills"`
	HourlyRate *float64  `json:"hourly_rate"`
	Timezone   string    `json:"timezone"`
	AvatarPath *string   `json:"avatar_path"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewProfileResponse(p *mentor.Profile) ProfileResponse {
	return ProfileResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		Headline:   p.Headline,
		Bio:        p.Bio,
		Skills:     p.Skills,
		HourlyRate: p.HourlyRate,
		Timezone:   p.Timezone,
		AvatarPath: p.AvatarPath,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

type CreateProfileRequest struct {
	Headline   string   `json:"headline" binding:"required"`
	Bio        *string  `json:"bio"`
	Skills     *string  `json:"skills"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Timezone   string   `json:"timezone"`
}

type UpdateProfileRequest struct {
	Headline   *string  `json:"headline"`
	Bio        *string  `json:"bio"`
	Skills     *string  `json:"skills"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Timezone   *string  `json:"timezone"`
}

type ListProfilesRequest struct {
	Skill    string `form:"skill"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
