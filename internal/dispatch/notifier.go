package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
)

// Notifier writes notifications for the handlers. Every write goes through
// CreateIfAbsent keyed by dedupKey, so handlers stay idempotent without
// tracking delivery state themselves.
type Notifier struct {
	repo repository.NotificationRepository
	log  *logrus.Logger
}

func NewNotifier(repo repository.NotificationRepository, log *logrus.Logger) *Notifier {
	return &Notifier{repo: repo, log: log}
}

func (n *Notifier) Notify(
	ctx context.Context,
	userID uuid.UUID,
	ntype entity.NotificationType,
	message string,
	actionEvent string,
	actionPayload any,
	dedupKey string,
) error {
	var payload datatypes.JSON
	if actionPayload != nil {
		data, err := json.Marshal(actionPayload)
		if err != nil {
			return fmt.Errorf("dispatch: marshal action payload: %w", err)
		}
		payload = datatypes.JSON(data)
	}

	created, err := n.repo.CreateIfAbsent(ctx, entity.Notification{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          ntype,
		Message:       message,
		ActionEvent:   actionEvent,
		ActionPayload: payload,
		DedupKey:      dedupKey,
	})
	if err != nil {
		return err
	}
	if !created {
		n.log.WithField("dedup_key", dedupKey).Debug("notification already exists, skipping")
	}
	return nil
}
