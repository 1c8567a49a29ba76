package http

import (
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/session"
)

type SessionResponse struct {
	ID              string         `json:"id"`
	BookingID       string         `json:"booking_id"`
	MentorProfileID string         `json:"mentor_profile_id"`
	MenteeUserID    string         `json:"mentee_user_id"`
	StartTime       time.Time      `json:"start_time"`
	EndTime         time.Time      `json:"end_time"`
	Status          string         `json:"status"`
	Notes           *string        `json:"notes"`
	Metadata        map[string]any `json:"metadata"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func NewSessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		BookingID:       s.BookingID,
		MentorProfileID: s.MentorProfileID,
		MenteeUserID:    s.MenteeUserID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		Status:          string(s.Status),
		Notes:           s.Notes,
		Metadata:        s.Metadata,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type ListSessionsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=scheduled in_progress completed"`
	Role     string `form:"role" binding:"omitempty,oneof=mentee mentor"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
