package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
)

type UserRepository struct {
	db *DB
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (entity.User, error) {
	user := entity.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
	}
	if err := r.db.Write(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.User{}, repository.ErrEmailTaken
		}
		return entity.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (entity.User, error) {
	var user entity.User
	if err := r.db.Read(ctx).First(&user, "id = ?", id).Error; err != nil {
		return entity.User{}, asRepositoryError(err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	var user entity.User
	if err := r.db.Read(ctx).First(&user, "email = ?", strings.ToLower(email)).Error; err != nil {
		return entity.User{}, asRepositoryError(err)
	}
	return user, nil
}
