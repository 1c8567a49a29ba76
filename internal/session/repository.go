package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mentorloop/mentorloop-backend/internal/db"
)

type Repository interface {
	// Create inserts the session. A unique violation on booking_id maps to
	// ErrAlreadyExists; that constraint is the 1:1 guarantee under
	// concurrency.
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	GetByBookingID(ctx context.Context, bookingID string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int, error)
	UpdateStatus(ctx context.Context, s *Session) error

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

var sessionColumns = []string{
	"id", "booking_id", "mentor_profile_id", "mentee_user_id",
	"start_time", "end_time", "status", "notes", "metadata", "created_at", "updated_at",
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(
		&s.ID, &s.BookingID, &s.MentorProfileID, &s.MenteeUserID,
		&s.StartTime, &s.EndTime, &s.Status, &s.Notes, &s.Metadata, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Session) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.sessions").
		Columns("booking_id", "mentor_profile_id", "mentee_user_id", "start_time", "end_time", "status", "notes", "metadata").
		Values(s.BookingID, s.MentorProfileID, s.MenteeUserID, s.StartTime, s.EndTime, s.Status, s.Notes, s.Metadata).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create session query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Session, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByBookingID(ctx context.Context, bookingID string) (*Session, error) {
	return r.getBy(ctx, squirrel.Eq{"booking_id": bookingID})
}

func (r *pgxRepository) getBy(ctx context.Context, pred squirrel.Eq) (*Session, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(sessionColumns...).
		From("public.sessions").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get session query failed: %w", err)
	}

	s, err := scanSession(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, sessionColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).From("public.sessions")

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
		return nil, 0, fmt.Errorf("build list sessions query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions failed: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	var total int

	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.BookingID, &s.MentorProfileID, &s.MenteeUserID,
			&s.StartTime, &s.EndTime, &s.Status, &s.Notes, &s.Metadata, &s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan session failed: %w", err)
		}
		sessions = append(sessions, &s)
	}

	return sessions, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, s *Session) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.sessions").
		Set("status", s.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update session status query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
