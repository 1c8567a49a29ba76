package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier is the fallback Notifier used when no broker is configured.
// It records the event and succeeds.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SessionCompleted(ctx context.Context, ev SessionCompletedEvent) error {
	n.logger.Info("session completed",
		zap.String("session_id", ev.SessionID),
		zap.String("booking_id", ev.BookingID),
		zap.String("mentor_profile_id", ev.MentorProfileID),
		zap.String("mentee_user_id", ev.MenteeUserID),
	)
	return nil
}
