package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/event"
	"github.com/sj9102001/workly/internal/outbox"
)

type inviteFixture struct {
	store   *fakeStore
	outbox  *fakeOutboxRepo
	invites *fakeInviteRepo
	orgs    *fakeOrgRepo
	users   *fakeUserRepo
	uc      *Invite

	org   entity.Organization
	admin entity.User
}

func newInviteFixture(t *testing.T) *inviteFixture {
	t.Helper()

	store := &fakeStore{}
	outboxRepo := &fakeOutboxRepo{store: store}
	invites := newFakeInviteRepo()
	orgs := newFakeOrgRepo()

	admin := entity.User{ID: uuid.New(), Name: "Ava Admin", Email: "ava@example.com"}
	users := newFakeUserRepo(admin)

	org, err := orgs.Create(context.Background(), "Acme")
	require.NoError(t, err)
	_, err = orgs.AddMember(context.Background(), org.ID, admin.ID, entity.RoleOwner)
	require.NoError(t, err)

	writer := outbox.NewWriter(outboxRepo, "org.events")
	return &inviteFixture{
		store:   store,
		outbox:  outboxRepo,
		invites: invites,
		orgs:    orgs,
		users:   users,
		uc:      NewInvite(store, invites, orgs, users, writer, testLogger()),
		org:     org,
		admin:   admin,
	}
}

func (f *inviteFixture) addUser(t *testing.T, name, email string, role entity.Role) entity.User {
	t.Helper()
	user := entity.User{ID: uuid.New(), Name: name, Email: email}
	f.users.users[user.ID] = user
	if role != "" {
		_, err := f.orgs.AddMember(context.Background(), f.org.ID, user.ID, role)
		require.NoError(t, err)
	}
	return user
}

func TestInviteCreateEnqueuesEventInSameTransaction(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invite, err := f.uc.Create(ctx, f.admin.ID, f.org.ID, "Bob@Example.com", entity.RoleMember)
	require.NoError(t, err)

	assert.Equal(t, entity.InviteStatusPending, invite.Status)
	assert.Equal(t, "bob@example.com", invite.InvitedEmail)
	assert.NotEmpty(t, invite.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), invite.ExpiresAt, time.Minute)

	require.Len(t, f.outbox.records, 1)
	rec := f.outbox.records[0]
	assert.True(t, rec.inTx, "outbox write must share the invite's transaction")
	assert.Equal(t, string(event.TypeOrgMemberInvited), rec.record.EventType)
	assert.Equal(t, f.org.ID, rec.record.OrgID)
	assert.Equal(t, f.org.ID.String(), rec.record.PartitionKey)
	assert.Equal(t, invite.ID, rec.record.AggregateID)

	var payload event.MemberInvitedPayload
	require.NoError(t, json.Unmarshal(rec.record.Payload, &payload))
	assert.Equal(t, invite.Token, payload.InviteToken)
	assert.Equal(t, "bob@example.com", payload.InvitedEmail)
	assert.Equal(t, "MEMBER", payload.InvitedRole)
}

func TestInviteCreateRequiresAdmin(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()
	member := f.addUser(t, "Mel Member", "mel@example.com", entity.RoleMember)

	_, err := f.uc.Create(ctx, member.ID, f.org.ID, "bob@example.com", entity.RoleMember)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.outbox.records)
	assert.Empty(t, f.invites.invites)
}

func TestInviteCreateRejectsOwnerRole(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.uc.Create(context.Background(), f.admin.ID, f.org.ID, "bob@example.com", entity.RoleOwner)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.outbox.records)
}

func TestInviteAcceptAddsMemberAndEnqueues(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invite, err := f.uc.Create(ctx, f.admin.ID, f.org.ID, "bob@example.com", entity.RoleAdmin)
	require.NoError(t, err)
	bob := f.addUser(t, "Bob Builder", "bob@example.com", "")

	member, err := f.uc.Accept(ctx, bob.ID, invite.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, member.Role)
	assert.Equal(t, f.org.ID, member.OrgID)

	stored, err := f.invites.GetByID(ctx, invite.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InviteStatusAccepted, stored.Status)

	require.Len(t, f.outbox.records, 2)
	rec := f.outbox.records[1]
	assert.True(t, rec.inTx)
	assert.Equal(t, string(event.TypeOrgInviteAccepted), rec.record.EventType)

	var payload event.InviteAcceptedPayload
	require.NoError(t, json.Unmarshal(rec.record.Payload, &payload))
	assert.Equal(t, f.admin.ID.String(), payload.InvitedByUserID)
	assert.Equal(t, bob.ID.String(), payload.AcceptedByUserID)
	assert.Equal(t, "Bob Builder", payload.AcceptedByName)
}

func TestInviteAcceptGuards(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invite, err := f.uc.Create(ctx, f.admin.ID, f.org.ID, "bob@example.com", entity.RoleMember)
	require.NoError(t, err)
	bob := f.addUser(t, "Bob Builder", "bob@example.com", "")
	eve := f.addUser(t, "Eve Else", "eve@example.com", "")

	_, err = f.uc.Accept(ctx, eve.ID, invite.Token)
	assert.ErrorIs(t, err, ErrInviteEmailMismatch)

	expired := invite
	expired.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	f.invites.invites[expired.ID] = expired
	_, err = f.uc.Accept(ctx, bob.ID, invite.Token)
	assert.ErrorIs(t, err, ErrInviteExpired)

	expired.ExpiresAt = time.Now().UTC().Add(time.Hour)
	expired.Status = entity.InviteStatusRevoked
	f.invites.invites[expired.ID] = expired
	_, err = f.uc.Accept(ctx, bob.ID, invite.Token)
	assert.ErrorIs(t, err, ErrInviteNotPending)

	// none of the failed attempts may have produced a membership or event
	_, err = f.orgs.GetMember(ctx, f.org.ID, bob.ID)
	assert.Error(t, err)
	assert.Len(t, f.outbox.records, 1)
}

func TestInviteDeclineProducesNoEvent(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invite, err := f.uc.Create(ctx, f.admin.ID, f.org.ID, "bob@example.com", entity.RoleMember)
	require.NoError(t, err)
	bob := f.addUser(t, "Bob Builder", "bob@example.com", "")

	require.NoError(t, f.uc.Decline(ctx, bob.ID, invite.Token))

	stored, err := f.invites.GetByID(ctx, invite.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InviteStatusDeclined, stored.Status)
	assert.Len(t, f.outbox.records, 1, "decline is not broadcast")
}

func TestInviteRevoke(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invite, err := f.uc.Create(ctx, f.admin.ID, f.org.ID, "bob@example.com", entity.RoleMember)
	require.NoError(t, err)

	require.NoError(t, f.uc.Revoke(ctx, f.admin.ID, invite.ID))

	stored, err := f.invites.GetByID(ctx, invite.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InviteStatusRevoked, stored.Status)

	require.Len(t, f.outbox.records, 2)
	assert.Equal(t, string(event.TypeOrgInviteRevoked), f.outbox.records[1].record.EventType)
	assert.True(t, f.outbox.records[1].inTx)

	err = f.uc.Revoke(ctx, f.admin.ID, invite.ID)
	assert.ErrorIs(t, err, ErrInviteNotPending)
}

func TestInviteListMineFiltersPending(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	first, err := f.uc.Create(ctx, f.admin.ID, f.org.ID, "bob@example.com", entity.RoleMember)
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, f.admin.ID, f.org.ID, "other@example.com", entity.RoleMember)
	require.NoError(t, err)
	bob := f.addUser(t, "Bob Builder", "bob@example.com", "")

	mine, err := f.uc.ListMine(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	require.NoError(t, f.uc.Decline(ctx, bob.ID, first.Token))
	mine, err = f.uc.ListMine(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
