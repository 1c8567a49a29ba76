package mentor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mentorloop/mentorloop-backend/internal/pkg/apperror"
	"github.com/mentorloop/mentorloop-backend/internal/pkg/storage"
)

const avatarSize = 256

type CreateRequest struct {
	Headline   string
	Bio        *string
	Skills     *string
	HourlyRate *float64
	Timezone   string
}

type UpdateRequest struct {
	Headline   *string
	Bio        *string
	Skills     *string
	HourlyRate *float64
	Timezone   *string
}

type Service interface {
	Create(ctx context.Context, userID string, req CreateRequest) (*Profile, error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context, filter Filter) ([]*Profile, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, callerUserID string) (*Profile, error)
	UploadAvatar(ctx context.Context, id string, content io.Reader, callerUserID string) (*Profile, error)
	GetAvatar(ctx context.Context, id string) (io.ReadCloser, error)
}

type service struct {
	repo      Repository
	storage   storage.Storage
	processor *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage, processor *storage.ImageProcessor) Service {
	return &service{
		repo:      repo,
		storage:   store,
		processor: processor,
	}
}

func (s *service) Create(ctx context.Context, userID string, req CreateRequest) (*Profile, error) {
	headline := strings.TrimSpace(req.Headline)
	if headline == "" {
		return nil, ErrEmptyHeadline
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, ErrInvalidTimezone
	}

	p := &Profile{
		UserID:     userID,
		Headline:   headline,
		Bio:        req.Bio,
		Skills:     req.Skills,
		HourlyRate: req.HourlyRate,
		Timezone:   tz,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Profile, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, callerUserID string) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != callerUserID {
		return nil, ErrPermissionDenied
	}

	if req.Headline != nil {
		headline := strings.TrimSpace(*req.Headline)
		if headline == "" {
			return nil, ErrEmptyHeadline
		}
		p.Headline = headline
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.Skills != nil {
		p.Skills = req.Skills
	}
	if req.HourlyRate != nil {
		p.HourlyRate = req.HourlyRate
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		p.Timezone = *req.Timezone
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UploadAvatar(ctx context.Context, id string, content io.Reader, callerUserID string) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != callerUserID {
		return nil, ErrPermissionDenied
	}

	thumb, err := s.processor.SquareThumbnail(content, avatarSize)
	if err != nil {
		return nil, ErrInvalidAvatar
	}

	path := fmt.Sprintf("avatars/%s/%s.jpg", p.ID, uuid.NewString())
	if err := s.storage.Save(ctx, path, thumb); err != nil {
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "failed to store avatar")
	}

	old := p.AvatarPath
	p.AvatarPath = &path
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Best effort cleanup of the replaced file.
	if old != nil {
		_ = s.storage.Delete(ctx, *old)
	}

	return p, nil
}

// GetAvatar streams the stored avatar image for the profile.
func (s *service) GetAvatar(ctx context.Context, id string) (io.ReadCloser, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AvatarPath == nil {
		return nil, ErrNotFound
	}
	return s.storage.Get(ctx, *p.AvatarPath)
}
