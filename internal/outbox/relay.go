package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/pkg/logger"
)

// Relay drains unpublished rows from the event_outbox table and delivers
// them to the broker. Rows are claimed with FOR UPDATE SKIP LOCKED so
// multiple relay instances can run against the same table without
// double-delivering within a batch.
type Relay struct {
	db        *sql.DB
	publisher events.Publisher
	batchSize int
	interval  time.Duration
}

// NewRelay creates a relay draining the outbox with the given batch size and
// polling interval.
func NewRelay(db *sql.DB, publisher events.Publisher, batchSize int, interval time.Duration) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Relay{
		db:        db,
		publisher: publisher,
		batchSize: batchSize,
		interval:  interval,
	}
}

// Run polls the outbox until the context is cancelled
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		published, err := r.DrainOnce(ctx)
		if err != nil {
			logger.Error(ctx).Err(err).Msg("Outbox drain failed")
		} else if published > 0 {
			logger.Info(ctx).Int("count", published).Msg("Published outbox events")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// DrainOnce claims a batch of unpublished events, delivers them, and marks
// them published. It returns the number of events delivered. A publish
// failure aborts the batch; the claimed rows stay unpublished and are
// retried on the next tick.
func (r *Relay) DrainOnce(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin outbox transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, event_name, payload
		FROM event_outbox
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to query outbox: %w", err)
	}

	type pending struct {
		id        uint64
		eventName string
		payload   []byte
	}

	var batch []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.eventName, &p.payload); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan outbox row: %w", err)
		}
		batch = append(batch, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("failed to read outbox rows: %w", err)
	}
	rows.Close()

	if len(batch) == 0 {
		return 0, nil
	}

	ids := make([]uint64, 0, len(batch))
	for _, p := range batch {
		if err := r.publisher.Publish(ctx, p.eventName, json.RawMessage(p.payload)); err != nil {
			return 0, fmt.Errorf("failed to publish outbox event %d (%s): %w", p.id, p.eventName, err)
		}
		ids = append(ids, p.id)
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE event_outbox SET published_at = now() WHERE id = $1`, id); err != nil {
			return 0, fmt.Errorf("failed to mark outbox event %d published: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit outbox batch: %w", err)
	}

	return len(ids), nil
}
