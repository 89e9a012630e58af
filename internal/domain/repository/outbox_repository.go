package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

// OutboxRepository owns all mutation of outbox rows. Enqueue is called by the
// writer inside a business transaction; everything else belongs to the poller.
type OutboxRepository interface {
	Enqueue(ctx context.Context, rec *entity.OutboxEvent) error

	// Claim atomically leases up to limit PENDING records, oldest first.
	// Records whose previous lease is older than lockTimeout are claimable
	// again. Two concurrent claimers never receive the same record within
	// one lease window.
	Claim(ctx context.Context, limit int, lockTimeout time.Duration) ([]entity.OutboxEvent, error)

	// MarkPublished moves a PENDING record to its PUBLISHED terminal state
	// and stamps published_at.
	MarkPublished(ctx context.Context, id uuid.UUID) error

	// MarkFailed records one publish failure: attempts+1, last_error set,
	// lease released. When attempts reaches maxAttempts the record moves to
	// its FAILED terminal state; otherwise it stays PENDING for retry.
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, maxAttempts int) error
}
