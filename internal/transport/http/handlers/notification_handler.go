package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sj9102001/workly/internal/transport/http/middleware"
	"github.com/sj9102001/workly/internal/transport/http/response"
)

func (h *Handler) listNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	notifications, nextCursor, err := h.notifications.List(c.Request.Context(), middleware.UserID(c), limit, c.Query("cursor"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	var meta *response.Meta
	if nextCursor != "" {
		meta = &response.Meta{NextCursor: nextCursor}
	}
	response.RespondOK(c, http.StatusOK, notifications, meta)
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
