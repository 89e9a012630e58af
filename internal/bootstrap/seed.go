package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sj9102001/workly/internal/config"
	"github.com/sj9102001/workly/internal/domain/entity"
)

// Seed creates count demo users, puts them in one organization with a
// project, a board and a handful of issues. Every seeded user logs in with
// the password "password123".
func Seed(ctx context.Context, cfg config.Config, count int) error {
	if count <= 0 {
		count = 10
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	conn, err := OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	baseTime := time.Now().UTC()
	users := make([]entity.User, 0, count)
	for i := 0; i < count; i++ {
		seedTime := baseTime.Add(time.Duration(i) * time.Microsecond)
		users = append(users, entity.User{
			ID:           uuid.New(),
			Name:         fmt.Sprintf("%s %s", faker.FirstName(), faker.LastName()),
			Email:        fmt.Sprintf("seed-%s@example.com", uuid.NewString()),
			PasswordHash: string(hash),
			CreatedAt:    seedTime,
			UpdatedAt:    seedTime,
		})
	}
	if err := conn.Write(ctx).CreateInBatches(&users, 100).Error; err != nil {
		return err
	}

	org := entity.Organization{ID: uuid.New(), Name: faker.DomainName()}
	if err := conn.Write(ctx).Create(&org).Error; err != nil {
		return err
	}
	members := make([]entity.OrgMember, 0, len(users))
	for i, user := range users {
		role := entity.RoleMember
		if i == 0 {
			role = entity.RoleOwner
		}
		members = append(members, entity.OrgMember{
			ID:     uuid.New(),
			OrgID:  org.ID,
			UserID: user.ID,
			Role:   role,
		})
	}
	if err := conn.Write(ctx).CreateInBatches(&members, 100).Error; err != nil {
		return err
	}

	project := entity.Project{ID: uuid.New(), OrgID: org.ID, Name: "Launch"}
	if err := conn.Write(ctx).Create(&project).Error; err != nil {
		return err
	}
	projectMembers := make([]entity.ProjectMember, 0, len(users))
	for _, user := range users {
		projectMembers = append(projectMembers, entity.ProjectMember{
			ID:        uuid.New(),
			ProjectID: project.ID,
			UserID:    user.ID,
		})
	}
	if err := conn.Write(ctx).CreateInBatches(&projectMembers, 100).Error; err != nil {
		return err
	}

	board := entity.Board{ID: uuid.New(), ProjectID: project.ID, Name: "Main"}
	if err := conn.Write(ctx).Create(&board).Error; err != nil {
		return err
	}
	columns := []entity.BoardColumn{
		{ID: uuid.New(), BoardID: board.ID, Name: "To Do", Position: 0},
		{ID: uuid.New(), BoardID: board.ID, Name: "In Progress", Position: 1},
		{ID: uuid.New(), BoardID: board.ID, Name: "Done", Position: 2},
	}
	if err := conn.Write(ctx).Create(&columns).Error; err != nil {
		return err
	}

	issues := make([]entity.Issue, 0, 5)
	for i := 0; i < 5; i++ {
		reporter := users[i%len(users)]
		now := baseTime.Add(time.Duration(i) * time.Millisecond)
		issues = append(issues, entity.Issue{
			ID:         uuid.New(),
			ProjectID:  project.ID,
			ColumnID:   &columns[0].ID,
			Title:      faker.Sentence(),
			Status:     entity.IssueStatusOpen,
			ReporterID: reporter.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if err := conn.Write(ctx).Create(&issues).Error; err != nil {
		return err
	}

	log.Infof("bootstrap: seeded %d users, org %s, project %s", count, org.Name, project.Name)
	return nil
}
