package availability

import (
	"context"
	"errors"
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/mentor"
)

type CreateSlotRequest struct {
	Weekday      int
	StartMinutes int
	EndMinutes   int
	Timezone     string // empty falls back to the mentor profile's timezone
}

type UpdateSlotRequest struct {
	Weekday      *int
	StartMinutes *int
	EndMinutes   *int
	Timezone     *string
	IsActive     *bool
}

type CreateExceptionRequest struct {
	StartDate    string // "2006-01-02"
	EndDate      string
	Kind         ExceptionKind
	StartMinutes *int
	EndMinutes   *int
}

type Service interface {
	CreateSlot(ctx context.Context, callerUserID string, req CreateSlotRequest) (*Slot, error)
	UpdateSlot(ctx context.Context, id string, req UpdateSlotRequest, callerUserID string) (*Slot, error)
	ListSlots(ctx context.Context, mentorProfileID string) ([]*Slot, error)

	CreateException(ctx context.Context, callerUserID string, req CreateExceptionRequest) (*Exception, error)
	DeleteException(ctx context.Context, id string, callerUserID string) error
	ListExceptions(ctx context.Context, mentorProfileID string) ([]*Exception, error)

	// GenerateWindows expands the mentor's active slots into bookable
	// windows starting strictly after now. Zero horizonDays/slotLength fall
	// back to the configured defaults.
	GenerateWindows(ctx context.Context, mentorProfileID string, now time.Time, horizonDays, slotLength int) ([]Window, error)
}

type service struct {
	repo          Repository
	mentorService mentor.Service

	defaultHorizonDays int
	defaultSlotLength  int
}

func NewService(repo Repository, mentorService mentor.Service, defaultHorizonDays, defaultSlotLength int) Service {
	if defaultHorizonDays <= 0 {
		defaultHorizonDays = DefaultHorizonDays
	}
	if defaultSlotLength <= 0 {
		defaultSlotLength = DefaultSlotLengthMinutes
	}
	return &service{
		repo:               repo,
		mentorService:      mentorService,
		defaultHorizonDays: defaultHorizonDays,
		defaultSlotLength:  defaultSlotLength,
	}
}

// callerProfile resolves the caller's mentor profile, translating a missing
// profile into a permission error.
func (s *service) callerProfile(ctx context.Context, callerUserID string) (*mentor.Profile, error) {
	profile, err := s.mentorService.GetByUserID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, mentor.ErrNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}
	return profile, nil
}

func validateMinuteSpan(start, end int) error {
	if start < 0 || end > minutesPerDay || start >= end {
		return ErrInvalidMinuteSpan
	}
	return nil
}

func (s *service) CreateSlot(ctx context.Context, callerUserID string, req CreateSlotRequest) (*Slot, error) {
	profile, err := s.callerProfile(ctx, callerUserID)
	if err != nil {
		return nil, err
	}

	if req.Weekday < 1 || req.Weekday > 7 {
		return nil, ErrInvalidWeekday
	}
	if err := validateMinuteSpan(req.StartMinutes, req.EndMinutes); err != nil {
		return nil, err
	}

	tz := req.Timezone
	if tz == "" {
		tz = profile.Timezone
	}
	// Invalid zones are rejected here so window generation never has to.
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, ErrInvalidTimezone
	}

	slot := &Slot{
		MentorProfileID: profile.ID,
		Weekday:         req.Weekday,
		StartMinutes:    req.StartMinutes,
		EndMinutes:      req.EndMinutes,
		Timezone:        tz,
		IsActive:        true,
	}

	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) UpdateSlot(ctx context.Context, id string, req UpdateSlotRequest, callerUserID string) (*Slot, error) {
	profile, err := s.callerProfile(ctx, callerUserID)
	if err != nil {
		return nil, err
	}

	slot, err := s.repo.GetSlotByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot.MentorProfileID != profile.ID {
		return nil, ErrPermissionDenied
	}

	if req.Weekday != nil {
		if *req.Weekday < 1 || *req.Weekday > 7 {
			return nil, ErrInvalidWeekday
		}
		slot.Weekday = *req.Weekday
	}

	start := slot.StartMinutes
	end := slot.EndMinutes
	if req.StartMinutes != nil {
		start = *req.StartMinutes
	}
	if req.EndMinutes != nil {
		end = *req.EndMinutes
	}
	if err := validateMinuteSpan(start, end); err != nil {
		return nil, err
	}
	slot.StartMinutes = start
	slot.EndMinutes = end

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		slot.Timezone = *req.Timezone
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) ListSlots(ctx context.Context, mentorProfileID string) ([]*Slot, error) {
	return s.repo.ListSlotsByMentor(ctx, mentorProfileID, false)
}

func (s *service) CreateException(ctx context.Context, callerUserID string, req CreateExceptionRequest) (*Exception, error) {
	profile, err := s.callerProfile(ctx, callerUserID)
	if err != nil {
		return nil, err
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	endDate, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	switch req.Kind {
	case ExceptionFullDay:
		req.StartMinutes = nil
		req.EndMinutes = nil
	case ExceptionPartial:
		if req.StartMinutes == nil || req.EndMinutes == nil {
			return nil, ErrInvalidException
		}
		if err := validateMinuteSpan(*req.StartMinutes, *req.EndMinutes); err != nil {
			return nil, ErrInvalidException
		}
	default:
		return nil, ErrInvalidException
	}

	e := &Exception{
		MentorProfileID: profile.ID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Kind:            req.Kind,
		StartMinutes:    req.StartMinutes,
		EndMinutes:      req.EndMinutes,
	}

	if err := s.repo.CreateException(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) DeleteException(ctx context.Context, id string, callerUserID string) error {
	profile, err := s.callerProfile(ctx, callerUserID)
	if err != nil {
		return err
	}

	e, err := s.repo.GetExceptionByID(ctx, id)
	if err != nil {
		return err
	}
	if e.MentorProfileID != profile.ID {
		return ErrPermissionDenied
	}

	return s.repo.DeleteException(ctx, id)
}

func (s *service) ListExceptions(ctx context.Context, mentorProfileID string) ([]*Exception, error) {
	return s.repo.ListExceptionsByMentor(ctx, mentorProfileID)
}

func (s *service) GenerateWindows(ctx context.Context, mentorProfileID string, now time.Time, horizonDays, slotLength int) ([]Window, error) {
	if horizonDays <= 0 {
		horizonDays = s.defaultHorizonDays
	}
	if slotLength <= 0 {
		slotLength = s.defaultSlotLength
	}

	// Profile existence check keeps a bogus mentor id from returning an
	// indistinguishable empty schedule.
	if _, err := s.mentorService.GetByID(ctx, mentorProfileID); err != nil {
		return nil, err
	}

	slots, err := s.repo.ListSlotsByMentor(ctx, mentorProfileID, true)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.repo.ListExceptionsByMentor(ctx, mentorProfileID)
	if err != nil {
		return nil, err
	}

	return ExpandWindows(slots, exceptions, now, horizonDays, slotLength), nil
}
