package lifecycle

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mentorloop/mentorloop-backend/internal/booking"
	"github.com/mentorloop/mentorloop-backend/internal/db"
	"github.com/mentorloop/mentorloop-backend/internal/session"
)

// TxRunner runs a function inside a database transaction, committing on nil
// and rolling back on error. Abstracted so orchestrator tests can run
// without a database.
type TxRunner interface {
	InTx(ctx context.Context, fn func(q db.DBTX) error) error
}

// PgxTxRunner is the production TxRunner over a pgx pool.
type PgxTxRunner struct {
	pool *pgxpool.Pool
}

func NewPgxTxRunner(pool *pgxpool.Pool) *PgxTxRunner {
	return &PgxTxRunner{pool: pool}
}

func (r *PgxTxRunner) InTx(ctx context.Context, fn func(q db.DBTX) error) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(tx)
	})
}

// Orchestrator composes the booking state machine with session derivation so
// that accepting a booking and creating its session commit or fail as one
// unit. Decline and cancel have no session interaction and delegate to the
// booking service.
type Orchestrator struct {
	tx             TxRunner
	bookings       booking.Repository
	sessions       session.Repository
	bookingService booking.Service
	logger         *zap.Logger
}

func NewOrchestrator(
	tx TxRunner,
	bookings booking.Repository,
	sessions session.Repository,
	bookingService booking.Service,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		tx:             tx,
		bookings:       bookings,
		sessions:       sessions,
		bookingService: bookingService,
		logger:         logger,
	}
}

// AcceptBooking is the only path that sets a booking to accepted. Inside a
// single transaction it locks the booking row, takes a per-mentor advisory
// lock, re-runs the conflict check against the mentor's other accepted
// bookings, flips the status and derives the session. Two concurrent
// accepts for overlapping windows of one mentor serialize on the advisory
// lock, so the second sees the first's commit and fails with a conflict.
func (o *Orchestrator) AcceptBooking(ctx context.Context, bookingID string) (*booking.Booking, *session.Session, error) {
	var (
		b    *booking.Booking
		sess *session.Session
	)

	err := o.tx.InTx(ctx, func(q db.DBTX) error {
		bookings := o.bookings.WithTx(q)
		sessions := o.sessions.WithTx(q)

		var err error
		b, err = bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := bookings.LockMentor(ctx, b.MentorProfileID); err != nil {
			return err
		}

		if err := b.Accept(); err != nil {
			return err
		}

		overlap, err := bookings.HasOverlap(ctx, b.MentorProfileID, b.StartTime, b.EndTime, b.ID)
		if err != nil {
			return err
		}
		if overlap {
			return booking.ErrTimeConflict
		}

		if err := bookings.UpdateStatus(ctx, b); err != nil {
			return err
		}

		sess, err = session.FromBooking(b)
		if err != nil {
			return err
		}
		// Cheap lookup before the insert; the unique index on booking_id
		// still backstops anything that slips past it.
		if _, err := sessions.GetByBookingID(ctx, b.ID); err == nil {
			return session.ErrAlreadyExists
		} else if !errors.Is(err, session.ErrNotFound) {
			return err
		}
		if err := sessions.Create(ctx, sess); err != nil {
			// The whole transaction rolls back, so the booking never ends
			// up accepted without its session. Still worth a loud log: a
			// duplicate here means an accept raced past the row lock.
			o.logger.Error("session derivation failed during accept",
				zap.String("booking_id", bookingID),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return b, sess, nil
}

// DeclineBooking delegates to the booking state machine.
func (o *Orchestrator) DeclineBooking(ctx context.Context, bookingID string) (*booking.Booking, error) {
	return o.bookingService.Decline(ctx, bookingID)
}

// CancelBooking delegates to the booking state machine.
func (o *Orchestrator) CancelBooking(ctx context.Context, bookingID string) (*booking.Booking, error) {
	return o.bookingService.Cancel(ctx, bookingID)
}
