package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/jojiShiotsuki/personalApp-sub001/internal/entity"
)

const prospectColumns = `id, campaign_id, business_name, contact_name, email, phone, website,
	city, niche, notes, status, current_step, last_contacted_at, next_action_date,
	site_title, site_description, created_at, updated_at`

type ProspectRepository struct {
	DB *sql.DB
}

func NewProspectRepository(db *sql.DB) *ProspectRepository {
	return &ProspectRepository{DB: db}
}

func (r *ProspectRepository) Create(ctx context.Context, p *entity.Prospect) error {
	query := `
		INSERT INTO prospects (
			id, campaign_id, business_name, contact_name, email, phone, website,
			city, niche, notes, status, current_step, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.CampaignID,
		p.BusinessName,
		p.ContactName,
		p.Email,
		p.Phone,
		p.Website,
		p.City,
		p.Niche,
		p.Notes,
		p.Status,
		p.CurrentStep,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrDuplicateProspect
		}
		return err
	}

	return nil
}

// BulkInsert writes a batch in one transaction. Rows that collide with an
// existing (campaign, email) pair are skipped, not failed.
func (r *ProspectRepository) BulkInsert(ctx context.Context, prospects []*entity.Prospect) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO prospects (
			id, campaign_id, business_name, contact_name, email, phone, website,
			city, niche, notes, status, current_step, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT DO NOTHING
	`

	inserted := 0
	for _, p := range prospects {
		res, err := tx.ExecContext(ctx, query,
			p.ID,
			p.CampaignID,
			p.BusinessName,
			p.ContactName,
			p.Email,
			p.Phone,
			p.Website,
			p.City,
			p.Niche,
			p.Notes,
			p.Status,
			p.CurrentStep,
			p.CreatedAt,
			p.UpdatedAt,
		)
		if err != nil {
			return 0, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *ProspectRepository) FindByID(ctx context.Context, id string) (*entity.Prospect, error) {
	query := fmt.Sprintf(`SELECT %s FROM prospects WHERE id = $1`, prospectColumns)

	p, err := scanProspect(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrProspectNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProspectRepository) List(ctx context.Context, filter entity.ProspectFilter) ([]*entity.Prospect, error) {
	builder := sq.Select(prospectColumns).
		From("prospects").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.CampaignID != "" {
		builder = builder.Where(sq.Eq{"campaign_id": filter.CampaignID})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.City != "" {
		builder = builder.Where(sq.ILike{"city": filter.City})
	}
	if filter.Niche != "" {
		builder = builder.Where(sq.ILike{"niche": filter.Niche})
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

	return collectProspects(rows)
}

// TodayQueue returns prospects due for a touch right now: fresh ones plus
// in-sequence ones whose next action date has arrived.
func (r *ProspectRepository) TodayQueue(ctx context.Context, campaignID string) ([]*entity.Prospect, error) {
	builder := sq.Select(prospectColumns).
		From("prospects").
		Where(sq.Or{
			sq.Eq{"status": entity.StatusQueued},
			sq.And{
				sq.Eq{"status": entity.StatusInSequence},
				sq.Expr("next_action_date <= NOW()"),
			},
		}).
		OrderBy("next_action_date ASC NULLS FIRST", "created_at ASC").
		PlaceholderFormat(sq.Dollar)

	if campaignID != "" {
		builder = builder.Where(sq.Eq{"campaign_id": campaignID})
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

	return collectProspects(rows)
}

// Update writes contact metadata and notes. Status and step are owned by
// AdvanceStep and SetOutcome, never by a plain update.
func (r *ProspectRepository) Update(ctx context.Context, p *entity.Prospect) error {
	query := `
		UPDATE prospects
		SET business_name = $2, contact_name = $3, email = $4, phone = $5,
			website = $6, city = $7, niche = $8, notes = $9, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.BusinessName,
		p.ContactName,
		p.Email,
		p.Phone,
		p.Website,
		p.City,
		p.Niche,
		p.Notes,
	)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrProspectNotFound
	}
	return nil
}

func (r *ProspectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM prospects WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrProspectNotFound
	}
	return nil
}

// sendableStatuses are the only statuses the cadence may advance from.
var sendableStatuses = pq.StringArray{entity.StatusQueued, entity.StatusInSequence}

// AdvanceStep is the only write that moves the cadence. The status guard
// makes it a no-op when a reply landed between read and write.
func (r *ProspectRepository) AdvanceStep(ctx context.Context, id string, nextAction *time.Time) (*entity.Prospect, error) {
	query := fmt.Sprintf(`
		UPDATE prospects
		SET current_step = LEAST(current_step + 1, 5),
			status = 'IN_SEQUENCE',
			last_contacted_at = NOW(),
			next_action_date = $2,
			updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
		RETURNING %s
	`, prospectColumns)

	p, err := scanProspect(r.DB.QueryRowContext(ctx, query, id, nextAction, sendableStatuses))
	if err == sql.ErrNoRows {
		return nil, entity.ErrProspectNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SetOutcome records the reply outcome and appends the note in one write.
func (r *ProspectRepository) SetOutcome(ctx context.Context, id, status, notes string) error {
	query := `
		UPDATE prospects
		SET status = $2,
			notes = TRIM(COALESCE(notes, '') || CASE WHEN $3 = '' THEN '' ELSE E'\n' || $3 END),
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, id, status, notes)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrProspectNotFound
	}
	return nil
}

func (r *ProspectRepository) UpdateEnrichment(ctx context.Context, id, title, description string) error {
	query := `
		UPDATE prospects
		SET site_title = $2, site_description = $3, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, id, title, description)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrProspectNotFound
	}
	return nil
}

// Stats aggregates a campaign's funnel in a single query.
func (r *ProspectRepository) Stats(ctx context.Context, campaignID string) (*entity.CampaignStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'QUEUED'),
			COUNT(*) FILTER (WHERE status = 'IN_SEQUENCE'),
			COUNT(*) FILTER (WHERE status = 'REPLIED'),
			COUNT(*) FILTER (WHERE status = 'NOT_INTERESTED'),
			COUNT(*) FILTER (WHERE status = 'CONVERTED'),
			COUNT(*) FILTER (WHERE last_contacted_at::date = CURRENT_DATE),
			COUNT(*) FILTER (WHERE status = 'QUEUED'
				OR (status = 'IN_SEQUENCE' AND next_action_date <= NOW()))
		FROM prospects
		WHERE campaign_id = $1
	`

	stats := entity.CampaignStats{CampaignID: campaignID}

	err := r.DB.QueryRowContext(ctx, query, campaignID).Scan(
		&stats.Total,
		&stats.Queued,
		&stats.InSequence,
		&stats.Replied,
		&stats.NotInterested,
		&stats.Converted,
		&stats.ContactedToday,
		&stats.DueToday,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProspect(row rowScanner) (*entity.Prospect, error) {
	var p entity.Prospect

	err := row.Scan(
		&p.ID,
		&p.CampaignID,
		&p.BusinessName,
		&p.ContactName,
		&p.Email,
		&p.Phone,
		&p.Website,
		&p.City,
		&p.Niche,
		&p.Notes,
		&p.Status,
		&p.CurrentStep,
		&p.LastContactedAt,
		&p.NextActionDate,
		&p.SiteTitle,
		&p.SiteDescription,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func collectProspects(rows *sql.Rows) ([]*entity.Prospect, error) {
	prospects := []*entity.Prospect{}
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		prospects = append(prospects, p)
	}
	return prospects, rows.Err()
}
