package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, limit int, cursor string) ([]entity.Notification, string, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}
