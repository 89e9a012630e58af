package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
	"github.com/sj9102001/workly/internal/infra/pagination"
)

type CommentRepository struct {
	db *DB
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.Write(ctx).Create(comment).Error
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.Read(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return entity.Comment{}, asRepositoryError(err)
	}
	return comment, nil
}

func (r *CommentRepository) ListByIssue(ctx context.Context, issueID uuid.UUID, limit int, cursor string) ([]entity.Comment, error) {
	if limit <= 0 {
		limit = 50
	}

	query := r.db.Read(ctx).
		Where("issue_id = ?", issueID).
		Limit(limit).
		Order("created_at DESC").
		Order("id DESC")

	if cursor != "" {
		cursorTime, cursorID, err := pagination.Decode(cursor)
		if err != nil {
			if errors.Is(err, pagination.ErrInvalidCursor) {
				return nil, repository.ErrInvalidCursor
			}
			return nil, err
		}
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursorTime, cursorTime, cursorID)
	}

	var comments []entity.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.Write(ctx).Delete(&entity.Comment{}, "id = ?", id).Error
}
