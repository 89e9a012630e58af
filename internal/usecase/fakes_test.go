package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
)

// fakeStore tracks transaction depth so tests can assert that outbox writes
// happen inside the same transaction as the domain mutation.
type fakeStore struct {
	txDepth int
}

func (s *fakeStore) Ping(context.Context) error { return nil }
func (s *fakeStore) Close()                     {}
func (s *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txDepth++
	defer func() { s.txDepth-- }()
	return fn(ctx)
}

type enqueued struct {
	record  entity.OutboxEvent
	inTx    bool
	txDepth int
}

type fakeOutboxRepo struct {
	store   *fakeStore
	records []enqueued
}

func (r *fakeOutboxRepo) Enqueue(_ context.Context, rec *entity.OutboxEvent) error {
	r.records = append(r.records, enqueued{
		record:  *rec,
		inTx:    r.store.txDepth > 0,
		txDepth: r.store.txDepth,
	})
	return nil
}

func (r *fakeOutboxRepo) Claim(context.Context, int, time.Duration) ([]entity.OutboxEvent, error) {
	return nil, nil
}
func (r *fakeOutboxRepo) MarkPublished(context.Context, uuid.UUID) error { return nil }

func (r *fakeOutboxRepo) MarkFailed(context.Context, uuid.UUID, string, int) error { return nil }

var _ repository.OutboxRepository = (*fakeOutboxRepo)(nil)

type fakeUserRepo struct {
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, name, email, passwordHash string) (entity.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return entity.User{}, repository.ErrEmailTaken
		}
	}
	user := entity.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return entity.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (entity.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return entity.User{}, repository.ErrNotFound
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type memberKey struct {
	orgID  uuid.UUID
	userID uuid.UUID
}

type fakeOrgRepo struct {
	orgs    map[uuid.UUID]entity.Organization
	members map[memberKey]entity.OrgMember
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		orgs:    make(map[uuid.UUID]entity.Organization),
		members: make(map[memberKey]entity.OrgMember),
	}
}

func (r *fakeOrgRepo) Create(_ context.Context, name string) (entity.Organization, error) {
	org := entity.Organization{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC()}
	r.orgs[org.ID] = org
	return org, nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id uuid.UUID) (entity.Organization, error) {
	org, ok := r.orgs[id]
	if !ok {
		return entity.Organization{}, repository.ErrNotFound
	}
	return org, nil
}

func (r *fakeOrgRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]entity.Organization, error) {
	var out []entity.Organization
	for key, m := range r.members {
		if m.UserID == userID {
			out = append(out, r.orgs[key.orgID])
		}
	}
	return out, nil
}

func (r *fakeOrgRepo) AddMember(_ context.Context, orgID, userID uuid.UUID, role entity.Role) (entity.OrgMember, error) {
	key := memberKey{orgID: orgID, userID: userID}
	if _, ok := r.members[key]; ok {
		return entity.OrgMember{}, repository.ErrAlreadyMember
	}
	member := entity.OrgMember{ID: uuid.New(), OrgID: orgID, UserID: userID, Role: role}
	r.members[key] = member
	return member, nil
}

func (r *fakeOrgRepo) GetMember(_ context.Context, orgID, userID uuid.UUID) (entity.OrgMember, error) {
	member, ok := r.members[memberKey{orgID: orgID, userID: userID}]
	if !ok {
		return entity.OrgMember{}, repository.ErrNotFound
	}
	return member, nil
}

func (r *fakeOrgRepo) ListMembers(_ context.Context, orgID uuid.UUID) ([]entity.OrgMember, error) {
	var out []entity.OrgMember
	for key, m := range r.members {
		if key.orgID == orgID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeOrgRepo) UpdateMemberRole(_ context.Context, orgID, userID uuid.UUID, role entity.Role) (entity.OrgMember, error) {
	key := memberKey{orgID: orgID, userID: userID}
	member, ok := r.members[key]
	if !ok {
		return entity.OrgMember{}, repository.ErrNotFound
	}
	member.Role = role
	r.members[key] = member
	return member, nil
}

func (r *fakeOrgRepo) RemoveMember(_ context.Context, orgID, userID uuid.UUID) error {
	key := memberKey{orgID: orgID, userID: userID}
	if _, ok := r.members[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.members, key)
	return nil
}

var _ repository.OrganizationRepository = (*fakeOrgRepo)(nil)

type fakeInviteRepo struct {
	invites map[uuid.UUID]entity.Invite
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[uuid.UUID]entity.Invite)}
}

func (r *fakeInviteRepo) Create(_ context.Context, invite *entity.Invite) error {
	r.invites[invite.ID] = *invite
	return nil
}

func (r *fakeInviteRepo) GetByID(_ context.Context, id uuid.UUID) (entity.Invite, error) {
	invite, ok := r.invites[id]
	if !ok {
		return entity.Invite{}, repository.ErrNotFound
	}
	return invite, nil
}

func (r *fakeInviteRepo) GetByToken(_ context.Context, token string) (entity.Invite, error) {
	for _, invite := range r.invites {
		if invite.Token == token {
			return invite, nil
		}
	}
	return entity.Invite{}, repository.ErrNotFound
}

func (r *fakeInviteRepo) ListByOrg(_ context.Context, orgID uuid.UUID) ([]entity.Invite, error) {
	var out []entity.Invite
	for _, invite := range r.invites {
		if invite.OrgID == orgID {
			out = append(out, invite)
		}
	}
	return out, nil
}

func (r *fakeInviteRepo) ListByEmail(_ context.Context, email string, status entity.InviteStatus) ([]entity.Invite, error) {
	var out []entity.Invite
	for _, invite := range r.invites {
		if invite.InvitedEmail != strings.ToLower(email) {
			continue
		}
		if status != "" && invite.Status != status {
			continue
		}
		out = append(out, invite)
	}
	return out, nil
}

func (r *fakeInviteRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.InviteStatus) error {
	invite, ok := r.invites[id]
	if !ok {
		return repository.ErrNotFound
	}
	invite.Status = status
	r.invites[id] = invite
	return nil
}

var _ repository.InviteRepository = (*fakeInviteRepo)(nil)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}
