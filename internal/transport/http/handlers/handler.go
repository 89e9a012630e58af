package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/domain/repository"
	"github.com/sj9102001/workly/internal/domain/service"
	"github.com/sj9102001/workly/internal/transport/http/response"
	"github.com/sj9102001/workly/internal/usecase"
)

type Handler struct {
	store         repository.Store
	users         service.UserService
	orgs          service.OrganizationService
	invites       service.InviteService
	projects      service.ProjectService
	comments      service.CommentService
	notifications service.NotificationService
	log           *logrus.Logger
}

func NewHandler(
	store repository.Store,
	users service.UserService,
	orgs service.OrganizationService,
	invites service.InviteService,
	projects service.ProjectService,
	comments service.CommentService,
	notifications service.NotificationService,
	log *logrus.Logger,
) *Handler {
	return &Handler{
		store:         store,
		users:         users,
		orgs:          orgs,
		invites:       invites,
		projects:      projects,
		comments:      comments,
		notifications: notifications,
		log:           log,
	}
}

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		response.RespondError(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	response.RespondOK(c, http.StatusOK, gin.H{"status": "ok"}, nil)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrEmailTaken):
		response.RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrAlreadyMember):
		response.RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrInvalidCursor):
		response.RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, usecase.ErrInviteNotPending),
		errors.Is(err, usecase.ErrInviteExpired),
		errors.Is(err, usecase.ErrInviteEmailMismatch),
		errors.Is(err, usecase.ErrOwnerCannotBeDemoted),
		errors.Is(err, usecase.ErrOwnerCannotBeRemoved):
		response.RespondError(c, http.StatusConflict, err.Error())
	default:
		h.log.WithError(err).Error("request failed")
		response.RespondError(c, http.StatusInternalServerError, "internal error")
	}
}
