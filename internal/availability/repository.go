package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mentorloop/mentorloop-backend/internal/db"
)

type Repository interface {
	CreateSlot(ctx context.Context, s *Slot) error
	GetSlotByID(ctx context.Context, id string) (*Slot, error)
	ListSlotsByMentor(ctx context.Context, mentorProfileID string, activeOnly bool) ([]*Slot, error)
	UpdateSlot(ctx context.Context, s *Slot) error

	CreateException(ctx context.Context, e *Exception) error
	GetExceptionByID(ctx context.Context, id string) (*Exception, error)
	ListExceptionsByMentor(ctx context.Context, mentorProfileID string) ([]*Exception, error)
	DeleteException(ctx context.Context, id string) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(q db.DBTX) Repository {
	return &pgxRepository{db: q}
}

var slotColumns = []string{
	"id", "mentor_profile_id", "weekday", "start_minutes", "end_minutes",
	"timezone", "is_active", "created_at", "updated_at",
}

func (r *pgxRepository) CreateSlot(ctx context.Context, s *Slot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.availability_slots").
		Columns("mentor_profile_id", "weekday", "start_minutes", "end_minutes", "timezone", "is_active").
		Values(s.MentorProfileID, s.Weekday, s.StartMinutes, s.EndMinutes, s.Timezone, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create slot query failed: %w", err)
	}

	return r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *pgxRepository) GetSlotByID(ctx context.Context, id string) (*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(slotColumns...).
		From("public.availability_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get slot query failed: %w", err)
	}

	var s Slot
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.MentorProfileID, &s.Weekday, &s.StartMinutes, &s.EndMinutes,
		&s.Timezone, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slot failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) ListSlotsByMentor(ctx context.Context, mentorProfileID string, activeOnly bool) ([]*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(slotColumns...).
		From("public.availability_slots").
		Where(squirrel.Eq{"mentor_profile_id": mentorProfileID}).
		OrderBy("weekday ASC", "start_minutes ASC")

	if activeOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*Slot
	for rows.Next() {
		var s Slot
		if err := rows.Scan(
			&s.ID, &s.MentorProfileID, &s.Weekday, &s.StartMinutes, &s.EndMinutes,
			&s.Timezone, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan slot failed: %w", err)
		}
		slots = append(slots, &s)
	}
	return slots, nil
}

func (r *pgxRepository) UpdateSlot(ctx context.Context, s *Slot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.availability_slots").
		Set("weekday", s.Weekday).
		Set("start_minutes", s.StartMinutes).
		Set("end_minutes", s.EndMinutes).
		Set("timezone", s.Timezone).
		Set("is_active", s.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update slot query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var exceptionColumns = []string{
	"id", "mentor_profile_id", "start_date", "end_date", "kind",
	"start_minutes", "end_minutes", "created_at",
}

func (r *pgxRepository) CreateException(ctx context.Context, e *Exception) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.availability_exceptions").
		Columns("mentor_profile_id", "start_date", "end_date", "kind", "start_minutes", "end_minutes").
		Values(e.MentorProfileID, e.StartDate, e.EndDate, string(e.Kind), e.StartMinutes, e.EndMinutes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create exception query failed: %w", err)
	}

	return r.db.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt)
}

func (r *pgxRepository) GetExceptionByID(ctx context.Context, id string) (*Exception, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.
		Select("id", "mentor_profile_id", "to_char(start_date, 'YYYY-MM-DD')", "to_char(end_date, 'YYYY-MM-DD')",
			"kind", "start_minutes", "end_minutes", "created_at").
		From("public.availability_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get exception query failed: %w", err)
	}

	var e Exception
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.MentorProfileID, &e.StartDate, &e.EndDate,
		&e.Kind, &e.StartMinutes, &e.EndMinutes, &e.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get exception failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) ListExceptionsByMentor(ctx context.Context, mentorProfileID string) ([]*Exception, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.
		Select("id", "mentor_profile_id", "to_char(start_date, 'YYYY-MM-DD')", "to_char(end_date, 'YYYY-MM-DD')",
			"kind", "start_minutes", "end_minutes", "created_at").
		From("public.availability_exceptions").
		Where(squirrel.Eq{"mentor_profile_id": mentorProfileID}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list exceptions query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exceptions failed: %w", err)
	}
	defer rows.Close()

	var exceptions []*Exception
	for rows.Next() {
		var e Exception
		if err := rows.Scan(
			&e.ID, &e.MentorProfileID, &e.StartDate, &e.EndDate,
			&e.Kind, &e.StartMinutes, &e.EndMinutes, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan exception failed: %w", err)
		}
		exceptions = append(exceptions, &e)
	}
	return exceptions, nil
}

func (r *pgxRepository) DeleteException(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.availability_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete exception query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete exception failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
