package booking

import (
	"context"
	"errors"
	"time"

	"github.com/mentorloop/mentorloop-backend/internal/listing"
)

type CreateRequest struct {
	MenteeUserID string
	ListingID    string
	StartTime    time.Time
	EndTime      time.Time
	Notes        *string
}

// Service covers the booking operations that do not touch sessions. The
// accept transition lives on the lifecycle orchestrator because it must
// derive a session in the same transaction.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Decline(ctx context.Context, id string) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo           Repository
	listingService listing.Service
}

func NewService(repo Repository, listingService listing.Service) Service {
	return &service{
		repo:           repo,
		listingService: listingService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime.Before(time.Now().UTC()) {
		return nil, ErrStartTimePast
	}

	l, err := s.listingService.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !l.IsActive {
		return nil, ErrListingInactive
	}

	// Advisory conflict check for fast rejection. The authoritative re-check
	// happens inside the accept transaction, so a race here only lets an
	// extra draft through, never a double-accept.
	hasOverlap, err := s.repo.HasOverlap(ctx, l.MentorProfileID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	b := &Booking{
		ListingID:       req.ListingID,
		MentorProfileID: l.MentorProfileID,
		MenteeUserID:    req.MenteeUserID,
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime.UTC(),
		Status:          StatusDraft,
		Notes:           req.Notes,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Decline(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, (*Booking).Decline)
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, (*Booking).Cancel)
}

// transition loads a booking, applies a state-machine step and persists the
// new status. A retry of an already-applied call fails the guard with
// ErrInvalidState instead of double-applying.
func (s *service) transition(ctx context.Context, id string, step func(*Booking) error) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := step(b); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
