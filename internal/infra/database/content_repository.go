package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

const contentColumns = `id, title, channel, status, scheduled_at, published_at, notes, created_at, updated_at`

type ContentRepository struct {
	DB *sql.DB
}

func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(ctx context.Context, c *entity.ContentPiece) error {
	query := `
		INSERT INTO content_pieces (id, title, channel, status, scheduled_at, published_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Title,
		c.Channel,
		c.Status,
		c.ScheduledAt,
		c.PublishedAt,
		c.Notes,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *ContentRepository) FindByID(ctx context.Context, id string) (*entity.ContentPiece, error) {
	query := `SELECT ` + contentColumns + ` FROM content_pieces WHERE id = $1`

	c, err := scanContent(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List serves the calendar: an optional window on scheduled_at plus channel
// and status filters. Unscheduled ideas only show up in unwindowed lists.
func (r *ContentRepository) List(ctx context.Context, filter entity.ContentFilter) ([]*entity.ContentPiece, error) {
	builder := sq.Select(contentColumns).
		From("content_pieces").
		OrderBy("scheduled_at ASC NULLS LAST", "created_at ASC").
		PlaceholderFormat(sq.Dollar)

	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"scheduled_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(sq.LtOrEq{"scheduled_at": *filter.To})
	}
	if filter.Channel != "" {
		builder = builder.Where(sq.Eq{"channel": filter.Channel})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
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

	pieces := []*entity.ContentPiece{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, c)
	}

	return pieces, rows.Err()
}

func (r *ContentRepository) Update(ctx context.Context, c *entity.ContentPiece) error {
	query := `
		UPDATE content_pieces
		SET title = $2, channel = $3, status = $4, scheduled_at = $5,
			published_at = $6, notes = $7, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, c.ID, c.Title, c.Channel, c.Status, c.ScheduledAt, c.PublishedAt, c.Notes)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrContentNotFound
	}
	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM content_pieces WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrContentNotFound
	}
	return nil
}

func scanContent(row rowScanner) (*entity.ContentPiece, error) {
	var c entity.ContentPiece

	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Channel,
		&c.Status,
		&c.ScheduledAt,
		&c.PublishedAt,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}
