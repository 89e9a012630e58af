package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/repository"
)

type ProjectRepository struct {
	db *DB
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.Write(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (entity.Project, error) {
	var project entity.Project
	if err := r.db.Read(ctx).First(&project, "id = ?", id).Error; err != nil {
		return entity.Project{}, asRepositoryError(err)
	}
	return project, nil
}

func (r *ProjectRepository) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.Read(ctx).
		Where("org_id = ?", orgID).
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID uuid.UUID) (entity.ProjectMember, error) {
	member := entity.ProjectMember{ProjectID: projectID, UserID: userID}
	if err := r.db.Write(ctx).Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ProjectMember{}, repository.ErrAlreadyMember
		}
		return entity.ProjectMember{}, err
	}
	return member, nil
}

func (r *ProjectRepository) IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Read(ctx).
		Model(&entity.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type BoardRepository struct {
	db *DB
}

var _ repository.BoardRepository = (*BoardRepository)(nil)

func NewBoardRepository(db *DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *entity.Board) error {
	return r.db.Write(ctx).Create(board).Error
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (entity.Board, error) {
	var board entity.Board
	if err := r.db.Read(ctx).First(&board, "id = ?", id).Error; err != nil {
		return entity.Board{}, asRepositoryError(err)
	}
	return board, nil
}

func (r *BoardRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Board, error) {
	var boards []entity.Board
	err := r.db.Read(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *BoardRepository) CreateColumn(ctx context.Context, column *entity.BoardColumn) error {
	return r.db.Write(ctx).Create(column).Error
}

func (r *BoardRepository) ListColumns(ctx context.Context, boardID uuid.UUID) ([]entity.BoardColumn, error) {
	var columns []entity.BoardColumn
	err := r.db.Read(ctx).
		Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&columns).Error
	if err != nil {
		return nil, err
	}
	return columns, nil
}

type IssueRepository struct {
	db *DB
}

var _ repository.IssueRepository = (*IssueRepository)(nil)

func NewIssueRepository(db *DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(ctx context.Context, issue *entity.Issue) error {
	return r.db.Write(ctx).Create(issue).Error
}

func (r *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (entity.Issue, error) {
	var issue entity.Issue
	if err := r.db.Read(ctx).First(&issue, "id = ?", id).Error; err != nil {
		return entity.Issue{}, asRepositoryError(err)
	}
	return issue, nil
}

func (r *IssueRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Issue, error) {
	var issues []entity.Issue
	err := r.db.Read(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&issues).Error
	if err != nil {
		return nil, err
	}
	return issues, nil
}
