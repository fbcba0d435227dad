package worklog

import (
	"log/slog"
	"time"

	"github.com/buildtrack/construction-api/internal"
)

type Repository interface {
	Create(l *WorkLog) error
	GetByID(id int64) (*WorkLog, error)
	GetByProject(projectID int64, limit, offset int) ([]*WorkLog, error)
	GetByUser(userID int64, limit, offset int) ([]*WorkLog, error)
	Update(l *WorkLog) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

var ErrWorkLogNotFound = internal.NewNotFoundError("Work log not found", internal.ErrCodeWorkLogNotFound)

func (s *Service) Create(principal internal.Principal, dto CreateWorkLogDTO) (*WorkLog, error) {
	if principal.HasRole(internal.RoleClient) {
		return nil, internal.NewForbiddenError("clients cannot create work logs", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("work log validation failed", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	now := time.Now()
	logDate := truncateToDay(now)
	if dto.LogDate != nil {
		logDate = truncateToDay(*dto.LogDate)
	}

	l := &WorkLog{
		ProjectID:   dto.ProjectID,
		TaskID:      dto.TaskID,
		UserID:      principal.UserID,
		LogDate:     logDate,
		HoursWorked: dto.HoursWorked,
		Description: dto.Description,
		Weather:     dto.Weather,
		Blockers:    dto.Blockers,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Error("failed to create work log", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	s.logger.Info("work log created",
		"work_log_id", l.ID,
		"project_id", l.ProjectID,
		"user_id", principal.UserID,
		"hours", l.HoursWorked.String())
	return l, nil
}

func (s *Service) GetByID(id int64) (*WorkLog, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrWorkLogNotFound
	}
	return l, nil
}

func (s *Service) ListByProject(projectID int64, limit, offset int) ([]*WorkLog, error) {
	return s.repo.GetByProject(projectID, limit, offset)
}

func (s *Service) ListMine(principal internal.Principal, limit, offset int) ([]*WorkLog, error) {
	return s.repo.GetByUser(principal.UserID, limit, offset)
}

// Update is author-only; managers cannot rewrite someone else's log.
func (s *Service) Update(id int64, principal internal.Principal, dto UpdateWorkLogDTO) (*WorkLog, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrWorkLogNotFound
	}
	if l.UserID != principal.UserID {
		return nil, internal.NewForbiddenError("you may only edit your own work logs", internal.ErrCodeNotResourceOwner)
	}

	if dto.HoursWorked != nil {
		l.HoursWorked = *dto.HoursWorked
	}
	if dto.Description != nil {
		l.Description = *dto.Description
	}
	if dto.Weather != nil {
		l.Weather = *dto.Weather
	}
	if dto.Blockers != nil {
		l.Blockers = *dto.Blockers
	}
	l.UpdatedAt = time.Now()

	if err := s.repo.Update(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Delete(id int64, principal internal.Principal) error {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return ErrWorkLogNotFound
	}
	if l.UserID != principal.UserID && !principal.IsAdmin() {
		return internal.NewForbiddenError("you may only delete your own work logs", internal.ErrCodeNotResourceOwner)
	}
	return s.repo.Delete(id)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
