package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	// prospect_id is a real FK, so empty strings become NULL
	query := `
		INSERT INTO contacts (id, name, email, phone, company, role, source, notes, prospect_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::uuid, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Company,
		c.Role,
		c.Source,
		c.Notes,
		c.ProspectID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	query := `
		SELECT id, name, email, phone, company, role, source, notes,
			COALESCE(prospect_id::text, ''), created_at, updated_at
		FROM contacts
		WHERE id = $1
	`

	var c entity.Contact
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Company,
		&c.Role,
		&c.Source,
		&c.Notes,
		&c.ProspectID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List searches across name, email and company with a single term.
func (r *ContactRepository) List(ctx context.Context, search string) ([]*entity.Contact, error) {
	builder := sq.Select(
		"id", "name", "email", "phone", "company", "role", "source", "notes",
		"COALESCE(prospect_id::text, '')", "created_at", "updated_at",
	).
		From("contacts").
		OrderBy("name ASC").
		PlaceholderFormat(sq.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"company": pattern},
		})
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

	contacts := []*entity.Contact{}
	for rows.Next() {
		var c entity.Contact
		err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Role,
			&c.Source, &c.Notes, &c.ProspectID, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, &c)
	}

	return contacts, rows.Err()
}

func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	query := `
		UPDATE contacts
		SET name = $2, email = $3, phone = $4, company = $5, role = $6, notes = $7, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.Company, c.Role, c.Notes)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrContactNotFound
	}
	return nil
}
