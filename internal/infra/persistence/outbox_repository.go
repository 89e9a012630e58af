package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
)

type OutboxRepository struct {
	db *DB
}

var _ repository.OutboxRepository = (*OutboxRepository)(nil)

func NewOutboxRepository(db *DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// Enqueue inserts a new PENDING record. Called through the writer inside the
// caller's transaction context; a failure here fails the whole business
// transaction.
func (r *OutboxRepository) Enqueue(ctx context.Context, rec *entity.OutboxEvent) error {
	return r.db.Write(ctx).Create(rec).Error
}

// Claim leases a batch of PENDING records by stamping locked_at. FOR UPDATE
// SKIP LOCKED keeps concurrent claimers from blocking on each other, and the
// locked_at predicate keeps them from publishing the same record twice within
// a lease window. Attempts are not touched here: they count publish failures,
// not claims.
func (r *OutboxRepository) Claim(ctx context.Context, limit int, lockTimeout time.Duration) ([]entity.OutboxEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	if lockTimeout <= 0 {
		lockTimeout = time.Minute
	}
	lockSeconds := int(lockTimeout.Seconds())

	query := `
WITH cte AS (
    SELECT id
    FROM outbox_events
    WHERE status = 'PENDING'
      AND (locked_at IS NULL OR locked_at < NOW() - (? * INTERVAL '1 second'))
    ORDER BY created_at
    LIMIT ?
    FOR UPDATE SKIP LOCKED
)
UPDATE outbox_events
SET locked_at = NOW()
WHERE id IN (SELECT id FROM cte)
RETURNING id, topic, event_type, aggregate_type, aggregate_id, org_id, partition_key,
          payload, status, attempts, last_error, locked_at, published_at, created_at;
`

	var records []entity.OutboxEvent
	if err := r.db.Write(ctx).Raw(query, lockSeconds, limit).Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// MarkPublished is guarded on status so a terminal record can never be
// mutated again.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	return r.db.Write(ctx).
		Exec(`UPDATE outbox_events
              SET status = 'PUBLISHED', published_at = NOW(), locked_at = NULL
              WHERE id = ? AND status = 'PENDING'`, id).
		Error
}

// MarkFailed counts one publish failure and flips the record to FAILED once
// the attempt budget is spent, in a single guarded update.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, maxAttempts int) error {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return r.db.Write(ctx).
		Exec(`UPDATE outbox_events
              SET attempts = attempts + 1,
                  last_error = ?,
                  locked_at = NULL,
                  status = CASE WHEN attempts + 1 >= ? THEN 'FAILED' ELSE 'PENDING' END
              WHERE id = ? AND status = 'PENDING'`, lastError, maxAttempts, id).
		Error
}
