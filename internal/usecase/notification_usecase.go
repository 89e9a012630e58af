package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
	"github.com/sj9102001/workly/internal/domain/service"
	"github.com/sj9102001/workly/internal/infra/pagination"
)

type Notification struct {
	repo repository.NotificationRepository
	log  *logrus.Logger
}

var _ service.NotificationService = (*Notification)(nil)

func NewNotification(repo repository.NotificationRepository, log *logrus.Logger) *Notification {
	return &Notification{repo: repo, log: log}
}

func (n *Notification) List(ctx context.Context, userID uuid.UUID, limit int, cursor string) ([]entity.Notification, string, error) {
	notifications, err := n.repo.ListByUser(ctx, userID, limit, cursor)
	if err != nil {
		n.log.WithError(err).Error("list notifications failed")
		return nil, "", err
	}
	nextCursor := ""
	if len(notifications) > 0 && len(notifications) == limit {
		last := notifications[len(notifications)-1]
		nextCursor = pagination.Encode(last.CreatedAt, last.ID)
	}
	return notifications, nextCursor, nil
}

func (n *Notification) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return n.repo.MarkRead(ctx, userID, id)
}
