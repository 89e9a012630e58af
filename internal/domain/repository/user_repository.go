package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (entity.User, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
}
