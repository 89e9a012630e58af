package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/event"
	"github.com/sj9102001/workly/internal/domain/repository"
)

// Writer enqueues outbox records. Callers invoke Enqueue inside the same
// transaction as the domain mutation (via store.WithTx), so the record commits
// or rolls back together with the change it announces.
type Writer struct {
	repo  repository.OutboxRepository
	topic string
}

func NewWriter(repo repository.OutboxRepository, topic string) *Writer {
	return &Writer{repo: repo, topic: topic}
}

// Enqueue marshals the payload and inserts a PENDING record. The returned id
// is the record's identity for the rest of the pipeline, including the
// broker-level message id.
func (w *Writer) Enqueue(
	ctx context.Context,
	eventType event.Type,
	orgID uuid.UUID,
	aggregateType event.AggregateType,
	aggregateID uuid.UUID,
	partitionKey string,
	payload any,
) (uuid.UUID, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("outbox: marshal %s payload: %w", eventType, err)
	}

	rec := entity.OutboxEvent{
		ID:            uuid.New(),
		Topic:         w.topic,
		EventType:     string(eventType),
		AggregateType: string(aggregateType),
		AggregateID:   aggregateID,
		OrgID:         orgID,
		PartitionKey:  partitionKey,
		Payload:       datatypes.JSON(body),
		Status:        entity.OutboxStatusPending,
		Attempts:      0,
		CreatedAt:     time.Now().UTC(),
	}
	if err := w.repo.Enqueue(ctx, &rec); err != nil {
		return uuid.Nil, fmt.Errorf("outbox: enqueue %s: %w", eventType, err)
	}
	return rec.ID, nil
}
