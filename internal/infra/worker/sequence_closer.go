package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// SequenceCloser retires prospects that finished all 5 steps and went quiet.
// A sequence counts as exhausted when the last step was sent (step 5, no next
// action scheduled) and nothing came back within the stale window.
type SequenceCloser struct {
	db           *sql.DB
	staleWindow  time.Duration
	tickInterval time.Duration
}

func NewSequenceCloser(db *sql.DB) *SequenceCloser {
	return &SequenceCloser{
		db:           db,
		staleWindow:  14 * 24 * time.Hour,
		tickInterval: 1 * time.Hour,
	}
}

func (w *SequenceCloser) Start(ctx context.Context) {
	log.Println("🕒 Sequence closer started (14 day window)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.closeStaleSequences(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Sequence closer stopped")
			return
		case <-ticker.C:
			w.closeStaleSequences(ctx)
		}
	}
}

func (w *SequenceCloser) closeStaleSequences(ctx context.Context) {
	query := `
		UPDATE prospects
		SET
			status = 'NOT_INTERESTED',
			notes = TRIM(notes || E'\n' || 'Auto-closed: no reply after final step.'),
			updated_at = NOW()
		WHERE
			status = 'IN_SEQUENCE'
			AND current_step = 5
			AND next_action_date IS NULL
			AND last_contacted_at < NOW() - INTERVAL '14 days'
		RETURNING id, business_name, last_contacted_at
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Failed to sweep stale sequences: %v", err)
		return
	}
	defer rows.Close()

	closedCount := 0
	for rows.Next() {
		var id, businessName string
		var lastContactedAt time.Time

		if err := rows.Scan(&id, &businessName, &lastContactedAt); err != nil {
			log.Printf("⚠️ Failed to scan closed prospect: %v", err)
			continue
		}

		silence := time.Since(lastContactedAt)
		log.Printf("⏱️ Sequence closed: prospect=%s business=%q silent=%s",
			id, businessName, silence.Round(time.Hour))
		closedCount++
	}

	if closedCount > 0 {
		log.Printf("✅ %d prospect(s) moved to NOT_INTERESTED", closedCount)
	}
}
