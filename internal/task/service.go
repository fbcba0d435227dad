package task

import (
	"log/slog"
	"time"

	"github.com/buildtrack/construction-api/internal"
)

type Repository interface {
	Create(t *Task) error
	GetByID(id int64) (*Task, error)
	GetByProject(projectID int64) ([]*Task, error)
	GetByAssignee(userID int64, limit, offset int) ([]*Task, error)
	GetAll(limit, offset int) ([]*Task, error)
	Update(t *Task) error
	Delete(id int64) error
	CountByProject(projectID int64) (total int64, completed int64, err error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

var ErrTaskNotFound = internal.NewNotFoundError("Task not found", internal.ErrCodeTaskNotFound)

func canManageTasks(p internal.Principal) bool {
	return p.HasRole(internal.RoleProjectManager, internal.RoleSiteEngineer, internal.RoleAdmin)
}

func (s *Service) Create(principal internal.Principal, dto CreateTaskDTO) (*Task, error) {
	if !canManageTasks(principal) {
		return nil, internal.NewForbiddenError("manager or engineer role required", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("task validation failed", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	now := time.Now()
	t := &Task{
		ProjectID:   dto.ProjectID,
		Title:       dto.Title,
		Description: dto.Description,
		Status:      StatusPending,
		Priority:    dto.Priority,
		AssignedTo:  dto.AssignedTo,
		CreatedBy:   principal.UserID,
		DueDate:     dto.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create task", "error", err)
		return nil, err
	}

	s.logger.Info("task created", "task_id", t.ID, "project_id", t.ProjectID, "created_by", principal.UserID)
	return t, nil
}

func (s *Service) GetByID(id int64) (*Task, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

func (s *Service) ListByProject(projectID int64) ([]*Task, error) {
	return s.repo.GetByProject(projectID)
}

// ListForPrincipal returns every task for managers and admins, and only
// assigned tasks for everyone else.
func (s *Service) ListForPrincipal(principal internal.Principal, limit, offset int) ([]*Task, error) {
	if principal.HasRole(internal.RoleProjectManager, internal.RoleAdmin) {
		return s.repo.GetAll(limit, offset)
	}
	return s.repo.GetByAssignee(principal.UserID, limit, offset)
}

func (s *Service) Update(id int64, principal internal.Principal, dto UpdateTaskDTO) (*Task, error) {
	if !canManageTasks(principal) {
		return nil, internal.NewForbiddenError("manager or engineer role required", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	if dto.Title != nil {
		t.Title = *dto.Title
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.Priority != nil {
		t.Priority = *dto.Priority
	}
	if dto.AssignedTo != nil {
		t.AssignedTo = dto.AssignedTo
	}
	if dto.DueDate != nil {
		t.DueDate = dto.DueDate
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateStatus may be done by assignees on their own tasks as well as by
// managers and engineers.
func (s *Service) UpdateStatus(id int64, principal internal.Principal, dto UpdateTaskStatusDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	isAssignee := t.AssignedTo != nil && *t.AssignedTo == principal.UserID
	if !isAssignee && !canManageTasks(principal) {
		return nil, internal.NewForbiddenError("only the assignee or a manager can update task status", internal.ErrCodeNotResourceOwner)
	}

	t.SetStatus(dto.Status)

	if err := s.repo.Update(t); err != nil {
		return nil, err
	}

	s.logger.Info("task status updated", "task_id", t.ID, "status", t.Status, "user_id", principal.UserID)
	return t, nil
}

func (s *Service) Delete(id int64, principal internal.Principal) error {
	if !principal.HasRole(internal.RoleProjectManager, internal.RoleAdmin) {
		return internal.NewForbiddenError("manager role required", internal.ErrCodeUnauthorizedAccess)
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return ErrTaskNotFound
	}

	return s.repo.Delete(id)
}
