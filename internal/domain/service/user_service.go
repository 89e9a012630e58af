package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/domain/entity"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (entity.User, error)
	Login(ctx context.Context, email, password string) (entity.User, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (entity.User, error)
}
