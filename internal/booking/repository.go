package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mentorloop/mentorloop-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// GetByIDForUpdate locks the booking row for the rest of the
	// transaction. Only meaningful on a tx-bound repository.
	GetByIDForUpdate(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, b *Booking) error

	// HasOverlap reports whether any accepted booking for the mentor
	// overlaps [start, end) using strict interval overlap. excludeBookingID
	// ignores the booking being transitioned.
	HasOverlap(ctx context.Context, mentorProfileID string, start, end time.Time, excludeBookingID string) (bool, error)

	// LockMentor takes a transaction-scoped advisory lock keyed on the
	// mentor, serializing concurrent accepts for that mentor.
	LockMentor(ctx context.Context, mentorProfileID string) error

	// WithTx returns a repository bound to the given transaction.
	WithTx(q db.DBTX) Repository
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(q db.DBTX) Repository {
	return &pgxRepository{db: q}
}

func (r *pgxRepository) WithTx(q db.DBTX) Repository {
	return &pgxRepository{db: q}
}

var bookingColumns = []string{
	"id", "listing_id", "mentor_profile_id", "mentee_user_id",
	"start_time", "end_time", "status", "notes", "created_at", "updated_at",
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.ListingID, &b.MentorProfileID, &b.MenteeUserID,
		&b.StartTime, &b.EndTime, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("listing_id", "mentor_profile_id", "mentee_user_id", "start_time", "end_time", "status", "notes").
		Values(b.ListingID, b.MentorProfileID, b.MenteeUserID, b.StartTime, b.EndTime, b.Status, b.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return r.get(ctx, id, false)
}

func (r *pgxRepository) GetByIDForUpdate(ctx context.Context, id string) (*Booking, error) {
	return r.get(ctx, id, true)
}

func (r *pgxRepository) get(ctx context.Context, id string, forUpdate bool) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, bookingColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).From("public.bookings")

	if filter.MentorProfileID != "" {
		query = query.Where(squirrel.Eq{"mentor_profile_id": filter.MentorProfileID})
	}
	if filter.MenteeUserID != "" {
		query = query.Where(squirrel.Eq{"mentee_user_id": filter.MenteeUserID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("start_time DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ListingID, &b.MentorProfileID, &b.MenteeUserID,
			&b.StartTime, &b.EndTime, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, mentorProfileID string, start, end time.Time, excludeBookingID string) (bool, error) {
	// Strict interval overlap: existing.start < end AND existing.end > start.
	// Only accepted bookings lock time; sessions mirror them 1:1 with
	// identical times, so this single query covers both.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"mentor_profile_id": mentorProfileID}).
		Where(squirrel.Eq{"status": StatusAccepted}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) LockMentor(ctx context.Context, mentorProfileID string) error {
	// hashtext collapses the UUID to the bigint keyspace advisory locks use.
	if _, err := r.db.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", mentorProfileID); err != nil {
		return fmt.Errorf("lock mentor failed: %w", err)
	}
	return nil
}
