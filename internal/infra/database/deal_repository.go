package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

const dealColumns = `id, COALESCE(contact_id::text, ''), title, company, value_cents, stage,
	position, expected_close_date, notes, created_at, updated_at`

type DealRepository struct {
	DB *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{DB: db}
}

// Create appends the deal at the bottom of its stage column.
func (r *DealRepository) Create(ctx context.Context, d *entity.Deal) error {
	query := `
		INSERT INTO deals (id, contact_id, title, company, value_cents, stage, position, expected_close_date, notes, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6,
			(SELECT COALESCE(MAX(position), -1) + 1 FROM deals WHERE stage = $6),
			$7, $8, $9, $10)
		RETURNING position
	`

	return r.DB.QueryRowContext(ctx, query,
		d.ID,
		d.ContactID,
		d.Title,
		d.Company,
		d.ValueCents,
		d.Stage,
		d.ExpectedCloseDate,
		d.Notes,
		d.CreatedAt,
		d.UpdatedAt,
	).Scan(&d.Position)
}

func (r *DealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`

	d, err := scanDeal(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DealRepository) List(ctx context.Context, stage string) ([]*entity.Deal, error) {
	builder := sq.Select(dealColumns).
		From("deals").
		OrderBy("stage ASC", "position ASC").
		PlaceholderFormat(sq.Dollar)

	if stage != "" {
		builder = builder.Where(sq.Eq{"stage": stage})
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

	deals := []*entity.Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}

	return deals, rows.Err()
}

func (r *DealRepository) Update(ctx context.Context, d *entity.Deal) error {
	query := `
		UPDATE deals
		SET title = $2, company = $3, value_cents = $4, expected_close_date = $5, notes = $6,
			contact_id = NULLIF($7, '')::uuid, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, d.ID, d.Title, d.Company, d.ValueCents, d.ExpectedCloseDate, d.Notes, d.ContactID)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrDealNotFound
	}
	return nil
}

// Move drops the deal on another column. Moving onto the position it already
// holds issues no write and returns the row as is.
func (r *DealRepository) Move(ctx context.Context, id, stage string, position int) (*entity.Deal, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.InSlot(stage, position) {
		return current, nil
	}

	query := `
		UPDATE deals
		SET stage = $2, position = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + dealColumns

	d, err := scanDeal(r.DB.QueryRowContext(ctx, query, id, stage, position))
	if err == sql.ErrNoRows {
		return nil, entity.ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DealRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrDealNotFound
	}
	return nil
}

func scanDeal(row rowScanner) (*entity.Deal, error) {
	var d entity.Deal

	err := row.Scan(
		&d.ID,
		&d.ContactID,
		&d.Title,
		&d.Company,
		&d.ValueCents,
		&d.Stage,
		&d.Position,
		&d.ExpectedCloseDate,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &d, nil
}
