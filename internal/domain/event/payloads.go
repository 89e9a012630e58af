package event

import "time"

// Typed payloads for the envelope's opaque payload field. Producers marshal
// these; handlers unmarshal only the types they care about. Fields are
// additive: removing or renaming one breaks consumers that lag behind.

type OrgCreatedPayload struct {
	OrganizationID  string `json:"organization_id"`
	Name            string `json:"name"`
	CreatedByUserID string `json:"created_by_user_id"`
}

type MemberInvitedPayload struct {
	OrganizationID  string    `json:"organization_id"`
	InvitedByUserID string    `json:"invited_by_user_id"`
	InvitedEmail    string    `json:"invited_email"`
	InvitedRole     string    `json:"invited_role"`
	InviteID        string    `json:"invite_id"`
	InviteToken     string    `json:"invite_token"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type InviteAcceptedPayload struct {
	OrganizationID   string `json:"organization_id"`
	InviteID         string `json:"invite_id"`
	InvitedByUserID  string `json:"invited_by_user_id"`
	AcceptedByUserID string `json:"accepted_by_user_id"`
	AcceptedByName   string `json:"accepted_by_name"`
	Role             string `json:"role"`
}

type InviteRevokedPayload struct {
	OrganizationID  string `json:"organization_id"`
	InviteID        string `json:"invite_id"`
	RevokedByUserID string `json:"revoked_by_user_id"`
	InvitedEmail    string `json:"invited_email"`
}

type MemberRoleChangedPayload struct {
	OrganizationID  string `json:"organization_id"`
	UserID          string `json:"user_id"`
	ChangedByUserID string `json:"changed_by_user_id"`
	OldRole         string `json:"old_role"`
	NewRole         string `json:"new_role"`
}

type MemberRemovedPayload struct {
	OrganizationID  string `json:"organization_id"`
	UserID          string `json:"user_id"`
	RemovedByUserID string `json:"removed_by_user_id"`
}

type IssueCommentedPayload struct {
	CommentID   string    `json:"comment_id"`
	IssueID     string    `json:"issue_id"`
	ProjectID   string    `json:"project_id"`
	IssueTitle  string    `json:"issue_title"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Body        string    `json:"body"`
	ReporterID  string    `json:"reporter_id"`
	AssigneeID  *string   `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
