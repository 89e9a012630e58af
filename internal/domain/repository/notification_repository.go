package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type NotificationRepository interface {
	// CreateIfAbsent inserts the notification unless one with the same dedup
	// key already exists. Returns true when a row was actually created.
	CreateIfAbsent(ctx context.Context, n entity.Notification) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int, cursor string) ([]entity.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}
