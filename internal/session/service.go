package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mentorloop/mentorloop-backend/internal/mentor"
	"github.com/mentorloop/mentorloop-backend/internal/notify"
)

// Service drives the session state machine. Derivation itself is not here:
// sessions come into existence only through the lifecycle orchestrator's
// accept transaction.
type Service interface {
	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int, error)

	// Start moves a scheduled session to in progress. Either participant,
	// mentee or mentor, may start it.
	Start(ctx context.Context, id string, callerUserID string) (*Session, error)

	// Complete moves an in-progress session to completed. Mentor only. The
	// completion hook fires after the status is persisted; its failure is
	// logged and never undoes the completion.
	Complete(ctx context.Context, id string, mentorProfileID string) (*Session, error)
}

type service struct {
	repo          Repository
	mentorService mentor.Service
	notifier      notify.Notifier
	logger        *zap.Logger
}

func NewService(repo Repository, mentorService mentor.Service, notifier notify.Notifier, logger *zap.Logger) Service {
	return &service{
		repo:          repo,
		mentorService: mentorService,
		notifier:      notifier,
		logger:        logger,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Start(ctx context.Context, id string, callerUserID string) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.isParticipant(ctx, sess, callerUserID) {
		return nil, ErrPermissionDenied
	}

	if err := sess.Start(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *service) Complete(ctx context.Context, id string, mentorProfileID string) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sess.MentorProfileID != mentorProfileID {
		return nil, ErrPermissionDenied
	}

	if err := sess.Complete(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, sess); err != nil {
		return nil, err
	}

	ev := notify.SessionCompletedEvent{
		SessionID:       sess.ID,
		BookingID:       sess.BookingID,
		MentorProfileID: sess.MentorProfileID,
		MenteeUserID:    sess.MenteeUserID,
		CompletedAt:     time.Now().UTC(),
	}
	if err := s.notifier.SessionCompleted(ctx, ev); err != nil {
		s.logger.Error("session completed hook failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
	}

	return sess, nil
}

// isParticipant reports whether the caller is the session's mentee or the
// user behind its mentor profile.
func (s *service) isParticipant(ctx context.Context, sess *Session, callerUserID string) bool {
	if sess.MenteeUserID == callerUserID {
		return true
	}
	profile, err := s.mentorService.GetByID(ctx, sess.MentorProfileID)
	if err != nil {
		return false
	}
	return profile.UserID == callerUserID
}
