package listing

import (
	"context"
	"errors"
	"strings"

	"github.com/mentorloop/mentorloop-backend/internal/category"
	"github.com/mentorloop/mentorloop-backend/internal/mentor"
)

type CreateRequest struct {
	CategoryID      *string
	Title           string
	Description     *string
	Price           *float64
	DurationMinutes int
}

type UpdateRequest struct {
	CategoryID      *string
	Title           *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	IsActive        *bool
}

type Service interface {
	Create(ctx context.Context, callerUserID string, req CreateRequest) (*Listing, error)
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, filter Filter) ([]*Listing, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, callerUserID string) (*Listing, error)
}

type service struct {
	repo          Repository
	mentorService mentor.Service
	catService    category.Service
}

func NewService(repo Repository, mentorService mentor.Service, catService category.Service) Service {
	return &service{
		repo:          repo,
		mentorService: mentorService,
		catService:    catService,
	}
}

func (s *service) Create(ctx context.Context, callerUserID string, req CreateRequest) (*Listing, error) {
	// Only a user with a mentor profile can publish listings.
	profile, err := s.mentorService.GetByUserID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, mentor.ErrNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	if req.CategoryID != nil {
		if _, err := s.catService.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, category.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	l := &Listing{
		MentorProfileID: profile.ID,
		CategoryID:      req.CategoryID,
		Title:           title,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Listing, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, callerUserID string) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.mentorService.GetByID(ctx, l.MentorProfileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != callerUserID {
		return nil, ErrPermissionDenied
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		l.Title = title
	}
	if req.CategoryID != nil {
		if _, err := s.catService.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, category.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		l.CategoryID = req.CategoryID
	}
	if req.Description != nil {
		l.Description = req.Description
	}
	if req.Price != nil {
		l.Price = req.Price
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		l.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
