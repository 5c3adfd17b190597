package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

type TemplateRepository struct {
	DB *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) Create(ctx context.Context, t *entity.StepTemplate) error {
	query := `
		INSERT INTO step_templates (id, campaign_id, step, channel, subject, body, wait_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.CampaignID,
		t.Step,
		t.Channel,
		t.Subject,
		t.Body,
		t.WaitDays,
		t.CreatedAt,
		t.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrDuplicateTemplate
		}
		return err
	}

	return nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*entity.StepTemplate, error) {
	query := `
		SELECT id, campaign_id, step, channel, subject, body, wait_days, created_at, updated_at
		FROM step_templates
		WHERE id = $1
	`

	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *TemplateRepository) FindByCampaignStep(ctx context.Context, campaignID string, step int) (*entity.StepTemplate, error) {
	query := `
		SELECT id, campaign_id, step, channel, subject, body, wait_days, created_at, updated_at
		FROM step_templates
		WHERE campaign_id = $1 AND step = $2
	`

	return r.scanOne(r.DB.QueryRowContext(ctx, query, campaignID, step))
}

func (r *TemplateRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*entity.StepTemplate, error) {
	query := `
		SELECT id, campaign_id, step, channel, subject, body, wait_days, created_at, updated_at
		FROM step_templates
		WHERE campaign_id = $1
		ORDER BY step ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []*entity.StepTemplate{}
	for rows.Next() {
		var t entity.StepTemplate
		err := rows.Scan(&t.ID, &t.CampaignID, &t.Step, &t.Channel, &t.Subject, &t.Body, &t.WaitDays, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}

	return templates, rows.Err()
}

func (r *TemplateRepository) Update(ctx context.Context, t *entity.StepTemplate) error {
	query := `
		UPDATE step_templates
		SET channel = $2, subject = $3, body = $4, wait_days = $5, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, t.ID, t.Channel, t.Subject, t.Body, t.WaitDays)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM step_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepository) scanOne(row *sql.Row) (*entity.StepTemplate, error) {
	var t entity.StepTemplate

	err := row.Scan(&t.ID, &t.CampaignID, &t.Step, &t.Channel, &t.Subject, &t.Body, &t.WaitDays, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}
