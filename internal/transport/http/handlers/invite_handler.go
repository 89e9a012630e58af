package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/transport/http/middleware"
	"github.com/sj9102001/workly/internal/transport/http/response"
)

type createInviteRequest struct {
	Email string      `json:"email" binding:"required,email"`
	Role  entity.Role `json:"role" binding:"required,oneof=ADMIN MEMBER"`
}

func (h *Handler) createInvite(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req createInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	invite, err := h.invites.Create(c.Request.Context(), middleware.UserID(c), orgID, req.Email, req.Role)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusCreated, invite, nil)
}

func (h *Handler) listOrgInvites(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	invites, err := h.invites.ListForOrg(c.Request.Context(), middleware.UserID(c), orgID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, invites, nil)
}

func (h *Handler) listMyInvites(c *gin.Context) {
	invites, err := h.invites.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, invites, nil)
}

func (h *Handler) acceptInvite(c *gin.Context) {
	member, err := h.invites.Accept(c.Request.Context(), middleware.UserID(c), c.Param("token"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, member, nil)
}

func (h *Handler) declineInvite(c *gin.Context) {
	if err := h.invites.Decline(c.Request.Context(), middleware.UserID(c), c.Param("token")); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) revokeInvite(c *gin.Context) {
	inviteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.invites.Revoke(c.Request.Context(), middleware.UserID(c), inviteID); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
