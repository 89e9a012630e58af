package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sj9102001/workly/internal/transport/http/middleware"
	"github.com/sj9102001/workly/internal/transport/http/response"
)

type createProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type addProjectMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type createIssueRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
}

type createBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

type addColumnRequest struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position"`
}

func (h *Handler) createProject(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.projects.Create(c.Request.Context(), middleware.UserID(c), orgID, req.Name)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusCreated, project, nil)
}

func (h *Handler) listProjects(c *gin.Context) {
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	projects, err := h.projects.ListByOrg(c.Request.Context(), middleware.UserID(c), orgID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, projects, nil)
}

func (h *Handler) addProjectMember(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req addProjectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	member, err := h.projects.AddMember(c.Request.Context(), middleware.UserID(c), projectID, req.UserID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusCreated, member, nil)
}

func (h *Handler) createIssue(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req createIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	issue, err := h.projects.CreateIssue(c.Request.Context(), middleware.UserID(c), projectID, req.Title, req.Description, req.AssigneeID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusCreated, issue, nil)
}

func (h *Handler) listIssues(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	issues, err := h.projects.ListIssues(c.Request.Context(), middleware.UserID(c), projectID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, issues, nil)
}

func (h *Handler) createBoard(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req createBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	board, err := h.projects.CreateBoard(c.Request.Context(), middleware.UserID(c), projectID, req.Name)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusCreated, board, nil)
}

func (h *Handler) listBoards(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	boards, err := h.projects.ListBoards(c.Request.Context(), middleware.UserID(c), projectID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, boards, nil)
}

func (h *Handler) addColumn(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req addColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	column, err := h.projects.AddColumn(c.Request.Context(), middleware.UserID(c), boardID, req.Name, req.Position)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusCreated, column, nil)
}

func (h *Handler) listColumns(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	columns, err := h.projects.ListColumns(c.Request.Context(), middleware.UserID(c), boardID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	response.RespondOK(c, http.StatusOK, columns, nil)
}
