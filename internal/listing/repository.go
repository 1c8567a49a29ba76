package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mentorloop/mentorloop-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, filter Filter) ([]*Listing, int, error)
	Update(ctx context.Context, l *Listing) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(q db.DBTX) Repository {
	return &pgxRepository{db: q}
}

var listingColumns = []string{
	"id", "mentor_profile_id", "category_id", "title", "description",
	"price", "duration_minutes", "is_active", "created_at", "updated_at",
}

func (r *pgxRepository) Create(ctx context.Context, l *Listing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.listings").
		Columns("mentor_profile_id", "category_id", "title", "description", "price", "duration_minutes", "is_active").
		Values(l.MentorProfileID, l.CategoryID, l.Title, l.Description, l.Price, l.DurationMinutes, l.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create listing query failed: %w", err)
	}

	return r.db.QueryRow(ctx, query, args...).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Listing, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(listingColumns...).
		From("public.listings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get listing query failed: %w", err)
	}

	var l Listing
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.MentorProfileID, &l.CategoryID, &l.Title, &l.Description,
		&l.Price, &l.DurationMinutes, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get listing failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Listing, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, listingColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).From("public.listings")

	if filter.MentorProfileID != "" {
		query = query.Where(squirrel.Eq{"mentor_profile_id": filter.MentorProfileID})
	}
	if filter.CategoryID != "" {
		query = query.Where(squirrel.Eq{"category_id": filter.CategoryID})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
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
		return nil, 0, fmt.Errorf("build list listings query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings failed: %w", err)
	}
	defer rows.Close()

	var listings []*Listing
	var total int

	for rows.Next() {
		var l Listing
		if err := rows.Scan(
			&l.ID, &l.MentorProfileID, &l.CategoryID, &l.Title, &l.Description,
			&l.Price, &l.DurationMinutes, &l.IsActive, &l.CreatedAt, &l.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan listing failed: %w", err)
		}
		listings = append(listings, &l)
	}

	return listings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, l *Listing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.listings").
		Set("category_id", l.CategoryID).
		Set("title", l.Title).
		Set("description", l.Description).
		Set("price", l.Price).
		Set("duration_minutes", l.DurationMinutes).
		Set("is_active", l.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": l.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update listing query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update listing failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
