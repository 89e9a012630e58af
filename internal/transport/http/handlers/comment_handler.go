package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sj9102001/workly/internal/transport/http/middleware"
	"github.com/sj9102001/workly/internal/transport/http/response"
)

type addCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *Handler) addComment(c *gin.Context) {
	issueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	comment, err := h.comments.Add(c.Request.Context(), middleware.UserID(c), issueID, req.Body)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusCreated, comment, nil)
}

func (h *Handler) listComments(c *gin.Context) {
	issueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	comments, nextCursor, err := h.comments.List(c.Request.Context(), middleware.UserID(c), issueID, limit, c.Query("cursor"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	var meta *response.Meta
	if nextCursor != "" {
		meta = &response.Meta{NextCursor: nextCursor}
	}
	response.RespondOK(c, http.StatusOK, comments, meta)
}

func (h *Handler) deleteComment(c *gin.Context) {
	issueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}
	if err := h.comments.Delete(c.Request.Context(), middleware.UserID(c), issueID, commentID); err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
