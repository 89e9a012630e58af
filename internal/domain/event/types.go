package event

// Type tags every outbox record and envelope. The dispatch router maps each
// type to at most one notification handler; types with no handler are
// produced for other consumer groups (or future ones) and dropped by the
// notification router.
type Type string

const (
	TypeOrgCreated           Type = "ORG_CREATED"
	TypeOrgMemberInvited     Type = "ORG_MEMBER_INVITED"
	TypeOrgInviteAccepted    Type = "ORG_INVITE_ACCEPTED"
	TypeOrgInviteRevoked     Type = "ORG_INVITE_REVOKED"
	TypeOrgMemberRoleChanged Type = "ORG_MEMBER_ROLE_CHANGED"
	TypeOrgMemberRemoved     Type = "ORG_MEMBER_REMOVED"
	TypeIssueCommented       Type = "ISSUE_COMMENTED"
)

// AggregateType names the kind of domain object an event is about.
type AggregateType string

const (
	AggregateOrganization  AggregateType = "ORGANIZATION"
	AggregateOrgInvitation AggregateType = "ORG_INVITATION"
	AggregateOrgMember     AggregateType = "ORG_MEMBER"
	AggregateComment       AggregateType = "COMMENT"
)
