package mentor

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
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context, filter Filter) ([]*Profile, int, error)
	Update(ctx context.Context, p *Profile) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(q db.DBTX) Repository {
	return &pgxRepository{db: q}
}

var profileColumns = []string{
	"id", "user_id", "headline", "bio", "skills", "hourly_rate",
	"timezone", "avatar_path", "created_at", "updated_at",
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Headline, &p.Bio, &p.Skills, &p.HourlyRate,
		&p.Timezone, &p.AvatarPath, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgxRepository) Create(ctx context.Context, p *Profile) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.mentor_profiles").
		Columns("user_id", "headline", "bio", "skills", "hourly_rate", "timezone").
		Values(p.UserID, p.Headline, p.Bio, p.Skills, p.HourlyRate, p.Timezone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create profile query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrProfileExists
		}
		return fmt.Errorf("create profile failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Profile, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	return r.getBy(ctx, squirrel.Eq{"user_id": userID})
}

func (r *pgxRepository) getBy(ctx context.Context, pred squirrel.Eq) (*Profile, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(profileColumns...).
		From("public.mentor_profiles").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get profile query failed: %w", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return p, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Profile, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, profileColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).From("public.mentor_profiles")

	if filter.Skill != "" {
		query = query.Where(squirrel.ILike{"skills": "%" + filter.Skill + "%"})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list profiles query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles failed: %w", err)
	}
	defer rows.Close()

	var profiles []*Profile
	var total int

	for rows.Next() {
		var p Profile
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Headline, &p.Bio, &p.Skills, &p.HourlyRate,
			&p.Timezone, &p.AvatarPath, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan profile failed: %w", err)
		}
		profiles = append(profiles, &p)
	}

	return profiles, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *Profile) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.mentor_profiles").
		Set("headline", p.Headline).
		Set("bio", p.Bio).
		Set("skills", p.Skills).
		Set("hourly_rate", p.HourlyRate).
		Set("timezone", p.Timezone).
		Set("avatar_path", p.AvatarPath).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update profile query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update profile failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
