package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/sj9102001/workly/internal/auth"
	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
	"github.com/sj9102001/workly/internal/domain/service"
)

type User struct {
	repo   repository.UserRepository
	tokens *auth.Tokens
	log    *logrus.Logger
}

var _ service.UserService = (*User)(nil)

func NewUser(repo repository.UserRepository, tokens *auth.Tokens, log *logrus.Logger) *User {
	return &User{repo: repo, tokens: tokens, log: log}
}

func (u *User) Register(ctx context.Context, name, email, password string) (entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, err
	}
	user, err := u.repo.Create(ctx, name, strings.ToLower(email), string(hash))
	if err != nil {
		if !errors.Is(err, repository.ErrEmailTaken) {
			u.log.WithError(err).Error("register user failed")
		}
		return entity.User{}, err
	}
	return user, nil
}

func (u *User) Login(ctx context.Context, email, password string) (entity.User, string, error) {
	user, err := u.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.User{}, "", ErrInvalidCredentials
		}
		u.log.WithError(err).Error("login lookup failed")
		return entity.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return entity.User{}, "", ErrInvalidCredentials
	}
	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		u.log.WithError(err).Error("issue token failed")
		return entity.User{}, "", err
	}
	return user, token, nil
}

func (u *User) GetByID(ctx context.Context, id uuid.UUID) (entity.User, error) {
	return u.repo.GetByID(ctx, id)
}
