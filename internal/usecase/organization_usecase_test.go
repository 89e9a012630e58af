package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/event"
	"github.com/sj9102001/workly/internal/outbox"
)

type orgFixture struct {
	store  *fakeStore
	outbox *fakeOutboxRepo
	orgs   *fakeOrgRepo
	uc     *Organization
}

func newOrgFixture() *orgFixture {
	store := &fakeStore{}
	outboxRepo := &fakeOutboxRepo{store: store}
	orgs := newFakeOrgRepo()
	writer := outbox.NewWriter(outboxRepo, "org.events")
	return &orgFixture{
		store:  store,
		outbox: outboxRepo,
		orgs:   orgs,
		uc:     NewOrganization(store, orgs, writer, testLogger()),
	}
}

func TestOrganizationCreateMakesCreatorOwner(t *testing.T) {
	f := newOrgFixture()
	ctx := context.Background()
	creator := uuid.New()

	org, err := f.uc.Create(ctx, creator, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", org.Name)

	member, err := f.orgs.GetMember(ctx, org.ID, creator)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, member.Role)

	require.Len(t, f.outbox.records, 1)
	rec := f.outbox.records[0]
	assert.True(t, rec.inTx, "event must commit with the organization")
	assert.Equal(t, string(event.TypeOrgCreated), rec.record.EventType)
	assert.Equal(t, org.ID, rec.record.OrgID)
	assert.Equal(t, org.ID.String(), rec.record.PartitionKey)

	var payload event.OrgCreatedPayload
	require.NoError(t, json.Unmarshal(rec.record.Payload, &payload))
	assert.Equal(t, creator.String(), payload.CreatedByUserID)
}

func TestChangeMemberRole(t *testing.T) {
	f := newOrgFixture()
	ctx := context.Background()
	owner := uuid.New()

	org, err := f.uc.Create(ctx, owner, "Acme")
	require.NoError(t, err)

	target := uuid.New()
	_, err = f.orgs.AddMember(ctx, org.ID, target, entity.RoleMember)
	require.NoError(t, err)

	updated, err := f.uc.ChangeMemberRole(ctx, owner, org.ID, target, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)

	require.Len(t, f.outbox.records, 2)
	rec := f.outbox.records[1]
	assert.Equal(t, string(event.TypeOrgMemberRoleChanged), rec.record.EventType)
	assert.True(t, rec.inTx)

	var payload event.MemberRoleChangedPayload
	require.NoError(t, json.Unmarshal(rec.record.Payload, &payload))
	assert.Equal(t, "MEMBER", payload.OldRole)
	assert.Equal(t, "ADMIN", payload.NewRole)
}

func TestChangeMemberRoleSameRoleIsNoOp(t *testing.T) {
	f := newOrgFixture()
	ctx := context.Background()
	owner := uuid.New()

	org, err := f.uc.Create(ctx, owner, "Acme")
	require.NoError(t, err)
	target := uuid.New()
	_, err = f.orgs.AddMember(ctx, org.ID, target, entity.RoleAdmin)
	require.NoError(t, err)

	_, err = f.uc.ChangeMemberRole(ctx, owner, org.ID, target, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, f.outbox.records, 1, "no event when the role does not change")
}

func TestOwnerCannotBeDemotedOrRemoved(t *testing.T) {
	f := newOrgFixture()
	ctx := context.Background()
	owner := uuid.New()

	org, err := f.uc.Create(ctx, owner, "Acme")
	require.NoError(t, err)

	admin := uuid.New()
	_, err = f.orgs.AddMember(ctx, org.ID, admin, entity.RoleAdmin)
	require.NoError(t, err)

	_, err = f.uc.ChangeMemberRole(ctx, admin, org.ID, owner, entity.RoleMember)
	assert.ErrorIs(t, err, ErrOwnerCannotBeDemoted)

	err = f.uc.RemoveMember(ctx, admin, org.ID, owner)
	assert.ErrorIs(t, err, ErrOwnerCannotBeRemoved)

	member, err := f.orgs.GetMember(ctx, org.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, member.Role)
	assert.Len(t, f.outbox.records, 1)
}

func TestRemoveMemberRequiresAdmin(t *testing.T) {
	f := newOrgFixture()
	ctx := context.Background()
	owner := uuid.New()

	org, err := f.uc.Create(ctx, owner, "Acme")
	require.NoError(t, err)

	plain := uuid.New()
	target := uuid.New()
	_, err = f.orgs.AddMember(ctx, org.ID, plain, entity.RoleMember)
	require.NoError(t, err)
	_, err = f.orgs.AddMember(ctx, org.ID, target, entity.RoleMember)
	require.NoError(t, err)

	err = f.uc.RemoveMember(ctx, plain, org.ID, target)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.uc.RemoveMember(ctx, owner, org.ID, target))
	_, err = f.orgs.GetMember(ctx, org.ID, target)
	assert.Error(t, err)

	require.Len(t, f.outbox.records, 2)
	assert.Equal(t, string(event.TypeOrgMemberRemoved), f.outbox.records[1].record.EventType)
}
