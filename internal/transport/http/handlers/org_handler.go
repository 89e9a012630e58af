package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/transport/http/middleware"
	"github.com/sj9102001/workly/internal/transport/http/response"
)

type createOrgRequest struct {
	Name string `json:"name" binding:"required"`
}

type changeRoleRequest struct {
	Role entity.Role `json:"role" binding:"required,oneof=ADMIN MEMBER"`
}

func (h *Handler) createOrg(c *gin.Context) {
	var req createOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	org, err := h.orgs.Create(c.Request.Context(), middleware.UserID(c), req.Name)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusCreated, org, nil)
}

func (h *Handler) listOrgs(c *gin.Context) {
	orgs, err := h.orgs.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, orgs, nil)
}

func (h *Handler) listOrgMembers(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	members, err := h.orgs.ListMembers(c.Request.Context(), middleware.UserID(c), orgID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, members, nil)
}

func (h *Handler) changeMemberRole(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	member, err := h.orgs.ChangeMemberRole(c.Request.Context(), middleware.UserID(c), orgID, userID, req.Role)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, member, nil)
}

func (h *Handler) removeMember(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	if err := h.orgs.RemoveMember(c.Request.Context(), middleware.UserID(c), orgID, userID); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
