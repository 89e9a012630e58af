package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
	"github.com/sj9102001/workly/internal/domain/service"
)

type Project struct {
	store    repository.Store
	projects repository.ProjectRepository
	boards   repository.BoardRepository
	issues   repository.IssueRepository
	orgs     repository.OrganizationRepository
	log      *logrus.Logger
}

var _ service.ProjectService = (*Project)(nil)

func NewProject(
	store repository.Store,
	projects repository.ProjectRepository,
	boards repository.BoardRepository,
	issues repository.IssueRepository,
	orgs repository.OrganizationRepository,
	log *logrus.Logger,
) *Project {
	return &Project{store: store, projects: projects, boards: boards, issues: issues, orgs: orgs, log: log}
}

// Create makes a project and adds the creator as its first member.
func (p *Project) Create(ctx context.Context, actorID, orgID uuid.UUID, name string) (entity.Project, error) {
	member, err := p.orgs.GetMember(ctx, orgID, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Project{}, ErrForbidden
		}
		return entity.Project{}, err
	}
	if member.Role != entity.RoleOwner && member.Role != entity.RoleAdmin {
		return entity.Project{}, ErrForbidden
	}

	project := entity.Project{ID: uuid.New(), OrgID: orgID, Name: name}
	err = p.store.WithTx(ctx, func(ctx context.Context) error {
		if err := p.projects.Create(ctx, &project); err != nil {
			return err
		}
		_, err := p.projects.AddMember(ctx, project.ID, actorID)
		return err
	})
	if err != nil {
		p.log.WithError(err).Error("create project failed")
		return entity.Project{}, err
	}
	return project, nil
}

func (p *Project) ListByOrg(ctx context.Context, actorID, orgID uuid.UUID) ([]entity.Project, error) {
	if _, err := p.orgs.GetMember(ctx, orgID, actorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return p.projects.ListByOrg(ctx, orgID)
}

func (p *Project) AddMember(ctx context.Context, actorID, projectID, userID uuid.UUID) (entity.ProjectMember, error) {
	project, err := p.projects.GetByID(ctx, projectID)
	if err != nil {
		return entity.ProjectMember{}, err
	}
	if err := p.requireProjectMember(ctx, projectID, actorID); err != nil {
		return entity.ProjectMember{}, err
	}
	// only org members can join a project
	if _, err := p.orgs.GetMember(ctx, project.OrgID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ProjectMember{}, ErrForbidden
		}
		return entity.ProjectMember{}, err
	}
	return p.projects.AddMember(ctx, projectID, userID)
}

func (p *Project) CreateIssue(ctx context.Context, actorID, projectID uuid.UUID, title, description string, assigneeID *uuid.UUID) (entity.Issue, error) {
	if err := p.requireProjectMember(ctx, projectID, actorID); err != nil {
		return entity.Issue{}, err
	}
	if assigneeID != nil {
		ok, err := p.projects.IsMember(ctx, projectID, *assigneeID)
		if err != nil {
			return entity.Issue{}, err
		}
		if !ok {
			return entity.Issue{}, ErrForbidden
		}
	}

	now := time.Now().UTC()
	issue := entity.Issue{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      entity.IssueStatusOpen,
		ReporterID:  actorID,
		AssigneeID:  assigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.issues.Create(ctx, &issue); err != nil {
		p.log.WithError(err).Error("create issue failed")
		return entity.Issue{}, err
	}
	return issue, nil
}

func (p *Project) ListIssues(ctx context.Context, actorID, projectID uuid.UUID) ([]entity.Issue, error) {
	if err := p.requireProjectMember(ctx, projectID, actorID); err != nil {
		return nil, err
	}
	return p.issues.ListByProject(ctx, projectID)
}

func (p *Project) CreateBoard(ctx context.Context, actorID, projectID uuid.UUID, name string) (entity.Board, error) {
	if err := p.requireProjectMember(ctx, projectID, actorID); err != nil {
		return entity.Board{}, err
	}
	board := entity.Board{ID: uuid.New(), ProjectID: projectID, Name: name}
	if err := p.boards.Create(ctx, &board); err != nil {
		p.log.WithError(err).Error("create board failed")
		return entity.Board{}, err
	}
	return board, nil
}

func (p *Project) ListBoards(ctx context.Context, actorID, projectID uuid.UUID) ([]entity.Board, error) {
	if err := p.requireProjectMember(ctx, projectID, actorID); err != nil {
		return nil, err
	}
	return p.boards.ListByProject(ctx, projectID)
}

func (p *Project) AddColumn(ctx context.Context, actorID, boardID uuid.UUID, name string, position int) (entity.BoardColumn, error) {
	projectID, err := p.projectOfBoard(ctx, boardID)
	if err != nil {
		return entity.BoardColumn{}, err
	}
	if err := p.requireProjectMember(ctx, projectID, actorID); err != nil {
		return entity.BoardColumn{}, err
	}
	column := entity.BoardColumn{ID: uuid.New(), BoardID: boardID, Name: name, Position: position}
	if err := p.boards.CreateColumn(ctx, &column); err != nil {
		p.log.WithError(err).Error("create column failed")
		return entity.BoardColumn{}, err
	}
	return column, nil
}

func (p *Project) ListColumns(ctx context.Context, actorID, boardID uuid.UUID) ([]entity.BoardColumn, error) {
	projectID, err := p.projectOfBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := p.requireProjectMember(ctx, projectID, actorID); err != nil {
		return nil, err
	}
	return p.boards.ListColumns(ctx, boardID)
}

func (p *Project) requireProjectMember(ctx context.Context, projectID, userID uuid.UUID) error {
	ok, err := p.projects.IsMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (p *Project) projectOfBoard(ctx context.Context, boardID uuid.UUID) (uuid.UUID, error) {
	board, err := p.boards.GetByID(ctx, boardID)
	if err != nil {
		return uuid.Nil, err
	}
	return board.ProjectID, nil
}
