package http

import (
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/availability"
)

type SlotResponse struct {
	ID              string    `json:"id"`
	MentorProfileID string    `json:"mentor_profile_id"`
	Weekday         int       `json:"weekday"`
	StartMinutes    int       `json:"start_minutes"`
	EndMinutes      int       `json:"end_minutes"`
	Timezone        string    `json:"timezone"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewSlotResponse(s *availability.Slot) SlotResponse {
	return SlotResponse{
		ID:              s.ID,
		MentorProfileID: s.MentorProfileID,
		Weekday:         s.Weekday,
		StartMinutes:    s.StartMinutes,
		EndMinutes:      s.EndMinutes,
		Timezone:        s.Timezone,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type ExceptionResponse struct {
	ID              string    `json:"id"`
	MentorProfileID string    `json:"mentor_profile_id"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Kind            string    `json:"kind"`
	StartMinutes    *int      `json:"start_minutes"`
	EndMinutes      *int      `json:"end_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewExceptionResponse(e *availability.Exception) ExceptionResponse {
	return ExceptionResponse{
		ID:              e.ID,
		MentorProfileID: e.MentorProfileID,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		Kind:            string(e.Kind),
		StartMinutes:    e.StartMinutes,
		EndMinutes:      e.EndMinutes,
		CreatedAt:       e.CreatedAt,
	}
}

type CreateSlotRequest struct {
	Weekday      int    `json:"weekday" binding:"required,min=1,max=7"`
	StartMinutes int    `json:"start_minutes" binding:"min=0,max=1439"`
	EndMinutes   int    `json:"end_minutes" binding:"required,min=1,max=1440"`
	Timezone     string `json:"timezone"`
}

type UpdateSlotRequest struct {
	Weekday      *int    `json:"weekday" binding:"omitempty,min=1,max=7"`
	StartMinutes *int    `json:"start_minutes" binding:"omitempty,min=0,max=1439"`
	EndMinutes   *int    `json:"end_minutes" binding:"omitempty,min=1,max=1440"`
	Timezone     *string `json:"timezone"`
	IsActive     *bool   `json:"is_active"`
}

type CreateExceptionRequest struct {
	StartDate    string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Kind         string `json:"kind" binding:"required,oneof=full_day partial"`
	StartMinutes *int   `json:"start_minutes" binding:"omitempty,min=0,max=1439"`
	EndMinutes   *int   `json:"end_minutes" binding:"omitempty,min=1,max=1440"`
}

type ListWindowsRequest struct {
	HorizonDays int `form:"horizon_days" binding:"omitempty,min=1,max=365"`
	SlotLength  int `form:"slot_length" binding:"omitempty,min=5,max=1440"`
}
