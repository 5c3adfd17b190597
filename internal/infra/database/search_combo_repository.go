package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type SearchComboRepository struct {
	DB *sql.DB
}

func NewSearchComboRepository(db *sql.DB) *SearchComboRepository {
	return &SearchComboRepository{DB: db}
}

// BulkUpsert inserts the grid cells, skipping pairs that already exist so
// regenerating never wipes searched flags.
func (r *SearchComboRepository) BulkUpsert(ctx context.Context, combos []*entity.SearchCombo) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO search_combos (id, city, niche, searched, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (city, niche) DO NOTHING
	`

	created := 0
	for _, c := range combos {
		res, err := tx.ExecContext(ctx, query, c.ID, c.City, c.Niche, c.Searched, c.CreatedAt)
		if err != nil {
			return 0, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			created++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return created, nil
}

func (r *SearchComboRepository) FindByID(ctx context.Context, id string) (*entity.SearchCombo, error) {
	query := `
		SELECT id, city, niche, searched, searched_at, created_at
		FROM search_combos
		WHERE id = $1
	`

	var c entity.SearchCombo
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.City,
		&c.Niche,
		&c.Searched,
		&c.SearchedAt,
		&c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrComboNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SearchComboRepository) List(ctx context.Context, city, niche string, searched *bool) ([]*entity.SearchCombo, error) {
	builder := sq.Select("id", "city", "niche", "searched", "searched_at", "created_at").
		From("search_combos").
		OrderBy("city ASC", "niche ASC").
		PlaceholderFormat(sq.Dollar)

	if city != "" {
		builder = builder.Where(sq.ILike{"city": city})
	}
	if niche != "" {
		builder = builder.Where(sq.ILike{"niche": niche})
	}
	if searched != nil {
		builder = builder.Where(sq.Eq{"searched": *searched})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	combos := []*entity.SearchCombo{}
	for rows.Next() {
		var c entity.SearchCombo
		err := rows.Scan(&c.ID, &c.City, &c.Niche, &c.Searched, &c.SearchedAt, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		combos = append(combos, &c)
	}

	return combos, rows.Err()
}

func (r *SearchComboRepository) Update(ctx context.Context, c *entity.SearchCombo) error {
	query := `
		UPDATE search_combos
		SET searched = $2, searched_at = $3
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, c.ID, c.Searched, c.SearchedAt)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrComboNotFound
	}
	return nil
}

// ResetAll clears searched flags, optionally only for one city.
func (r *SearchComboRepository) ResetAll(ctx context.Context, city string) (int, error) {
	builder := sq.Update("search_combos").
		Set("searched", false).
		Set("searched_at", nil).
		Where(sq.Eq{"searched": true}).
		PlaceholderFormat(sq.Dollar)

	if city != "" {
		builder = builder.Where(sq.ILike{"city": city})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *SearchComboRepository) Stats(ctx context.Context) (*entity.SearchGridStats, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE searched)
		FROM search_combos
	`

	var stats entity.SearchGridStats
	if err := r.DB.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Searched); err != nil {
		return nil, err
	}

	stats.Remaining = stats.Total - stats.Searched
	return &stats, nil
}
