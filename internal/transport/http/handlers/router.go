package handlers

import "github.com/gin-gonic/gin"

type Router struct {
	handler *Handler
}

func NewRouter(handler *Handler) *Router {
	return &Router{handler: handler}
}

func (r *Router) RegisterRoutes(engine *gin.Engine, auth gin.HandlerFunc) {
	engine.GET("/healthz", r.handler.health)

	api := engine.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", r.handler.register)
	authGroup.POST("/login", r.handler.login)

	authed := api.Group("", auth)
	authed.GET("/me", r.handler.me)

	orgs := authed.Group("/orgs")
	orgs.POST("", r.handler.createOrg)
	orgs.GET("", r.handler.listOrgs)
	orgs.GET("/:id/members", r.handler.listOrgMembers)
	orgs.PATCH("/:id/members/:userId", r.handler.changeMemberRole)
	orgs.DELETE("/:id/members/:userId", r.handler.removeMember)
	orgs.POST("/:id/invites", r.handler.createInvite)
	orgs.GET("/:id/invites", r.handler.listOrgInvites)
	orgs.POST("/:id/projects", r.handler.createProject)
	orgs.GET("/:id/projects", r.handler.listProjects)

	invites := authed.Group("/invites")
	invites.GET("", r.handler.listMyInvites)
	invites.POST("/:token/accept", r.handler.acceptInvite)
	invites.POST("/:token/decline", r.handler.declineInvite)
	invites.DELETE("/:id", r.handler.revokeInvite)

	projects := authed.Group("/projects")
	projects.POST("/:id/members", r.handler.addProjectMember)
	projects.POST("/:id/issues", r.handler.createIssue)
	projects.GET("/:id/issues", r.handler.listIssues)
	projects.POST("/:id/boards", r.handler.createBoard)
	projects.GET("/:id/boards", r.handler.listBoards)

	boards := authed.Group("/boards")
	boards.POST("/:id/columns", r.handler.addColumn)
	boards.GET("/:id/columns", r.handler.listColumns)

	issues := authed.Group("/issues")
	issues.POST("/:id/comments", r.handler.addComment)
	issues.GET("/:id/comments", r.handler.listComments)
	issues.DELETE("/:id/comments/:commentId", r.handler.deleteComment)

	notifications := authed.Group("/notifications")
	notifications.GET("", r.handler.listNotifications)
	notifications.POST("/:id/read", r.handler.markNotificationRead)
}
