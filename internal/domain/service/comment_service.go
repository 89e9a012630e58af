package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type CommentService interface {
	Add(ctx context.Context, actorID, issueID uuid.UUID, body string) (entity.Comment, error)
	List(ctx context.Context, actorID, issueID uuid.UUID, limit int, cursor string) ([]entity.Comment, string, error)
	Delete(ctx context.Context, actorID, issueID, commentID uuid.UUID) error
}
