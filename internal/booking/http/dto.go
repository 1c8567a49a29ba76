package http

import (
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/booking"
	"github.com/mentorloop/mentorloop-backend/internal/session"
)

type BookingResponse struct {
	ID              string    `json:"id"`
	ListingID       string    `json:"listing_id"`
	MentorProfileID string    `json:"mentor_profile_id"`
	MenteeUserID    string    `json:"mentee_user_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		ListingID:       b.ListingID,
		MentorProfileID: b.MentorProfileID,
		MenteeUserID:    b.MenteeUserID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          string(b.Status),
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// AcceptResponse carries the accepted booking together with the session
// derived from it in the same transaction.
type AcceptResponse struct {
	Booking BookingResponse `json:"booking"`
	Session SessionSummary  `json:"session"`
}

type SessionSummary struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

func NewSessionSummary(s *session.Session) SessionSummary {
	return SessionSummary{
		ID:        s.ID,
		BookingID: s.BookingID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    string(s.Status),
	}
}

type CreateBookingRequest struct {
	ListingID string    `json:"listing_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Notes     *string   `json:"notes"`
}

type ListBookingsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft accepted declined cancelled"`
	Role     string `form:"role" binding:"omitempty,oneof=mentee mentor"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
