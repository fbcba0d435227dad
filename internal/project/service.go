package project

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/report"
)

type Repository interface {
	Create(p *Project) error
	GetByID(id int64) (*Project, error)
	GetAll() ([]*Project, error)
	GetByManager(managerID int64) ([]*Project, error)
	GetByClient(clientID int64) ([]*Project, error)
	GetByStatus(status string) ([]*Project, error)
	Update(p *Project) error
}

// ExpenseTotals is implemented by the expense repository; it keeps the
// budget math here without a package cycle.
type ExpenseTotals interface {
	TotalApprovedByProject(projectID int64) (decimal.Decimal, error)
	ApprovedTotalsByCategory(projectID int64) (map[string]decimal.Decimal, error)
}

type TaskCounter interface {
	CountByProject(projectID int64) (total int64, completed int64, err error)
}

type Service struct {
	repo     Repository
	expenses ExpenseTotals
	tasks    TaskCounter
	logger   *slog.Logger
}

func NewService(repo Repository, expenses ExpenseTotals, tasks TaskCounter, logger *slog.Logger) *Service {
	return &Service{repo: repo, expenses: expenses, tasks: tasks, logger: logger}
}

var ErrProjectNotFound = internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)

func (s *Service) CreateProject(principal internal.Principal, dto CreateProjectDTO) (*Project, error) {
	if !principal.HasRole(internal.RoleProjectManager, internal.RoleAdmin) {
		s.logger.Warn("create project denied", "user_id", principal.UserID, "role", principal.Role)
		return nil, internal.NewForbiddenError("only project managers may create projects", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("project validation failed", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	p := &Project{
		Name:        dto.Name,
		Description: dto.Description,
		Location:    dto.Location,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		Status:      StatusPlanning,
		TotalBudget: dto.TotalBudget,
		ManagerID:   principal.UserID,
		ClientID:    dto.ClientID,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create project", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	s.logger.Info("project created", "project_id", p.ID, "manager_id", p.ManagerID)
	return p, nil
}

func (s *Service) GetProject(id int64) (*Project, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

// ListForPrincipal scopes the listing by role: managers see their own
// projects, clients see projects they commissioned, everyone else sees all.
func (s *Service) ListForPrincipal(principal internal.Principal) ([]*Project, error) {
	switch principal.Role {
	case internal.RoleProjectManager:
		return s.repo.GetByManager(principal.UserID)
	case internal.RoleClient:
		return s.repo.GetByClient(principal.UserID)
	default:
		return s.repo.GetAll()
	}
}

func (s *Service) UpdateProject(id int64, principal internal.Principal, dto UpdateProjectDTO) (*Project, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	if !principal.IsAdmin() && p.ManagerID != principal.UserID {
		s.logger.Warn("update project denied: not owning manager",
			"project_id", id, "user_id", principal.UserID)
		return nil, internal.NewForbiddenError("only the owning manager may edit this project", internal.ErrCodeNotResourceOwner)
	}

	if dto.Name != "" {
		p.Name = dto.Name
	}
	if dto.Description != "" {
		p.Description = dto.Description
	}
	if dto.Location != "" {
		p.Location = dto.Location
	}
	if dto.StartDate != nil {
		p.StartDate = dto.StartDate
	}
	if dto.EndDate != nil {
		p.EndDate = dto.EndDate
	}
	if dto.TotalBudget != nil {
		if dto.TotalBudget.IsNegative() {
			return nil, internal.NewValidationError("budget cannot be negative", internal.ErrCodeInvalidAmount)
		}
		p.TotalBudget = dto.TotalBudget
	}

	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return nil, internal.NewValidationError("end date must not be before start date", internal.ErrCodeInvalidDateRange)
	}

	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update project", "error", err, "project_id", id)
		return nil, err
	}

	return p, nil
}

func (s *Service) UpdateStatus(id int64, principal internal.Principal, dto UpdateStatusDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	if !principal.IsAdmin() && p.ManagerID != principal.UserID {
		return nil, internal.NewForbiddenError("only the owning manager may change project status", internal.ErrCodeNotResourceOwner)
	}

	p.Status = dto.Status
	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update project status", "error", err, "project_id", id)
		return nil, err
	}

	s.logger.Info("project status updated", "project_id", id, "status", dto.Status, "user_id", principal.UserID)
	return p, nil
}

// BudgetSummary computes the finance budget view for one project. The
// utilization percentage is approved+paid spend over total budget, half-up
// to two decimals, zero when no budget is set.
func (s *Service) BudgetSummary(projectID int64) (*BudgetSummaryDTO, error) {
	p, err := s.repo.GetByID(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	totalExpenses, err := s.expenses.TotalApprovedByProject(projectID)
	if err != nil {
		s.logger.Error("failed to total expenses", "error", err, "project_id", projectID)
		return nil, err
	}

	byCategory, err := s.expenses.ApprovedTotalsByCategory(projectID)
	if err != nil {
		s.logger.Error("failed to total expenses by category", "error", err, "project_id", projectID)
		return nil, err
	}

	budget := decimal.Zero
	if p.TotalBudget != nil {
		budget = *p.TotalBudget
	}

	return &BudgetSummaryDTO{
		ProjectID:             p.ID,
		ProjectName:           p.Name,
		TotalBudget:           budget,
		TotalExpenses:         totalExpenses,
		RemainingBudget:       budget.Sub(totalExpenses),
		UtilizationPercentage: report.Percentage(totalExpenses, budget),
		ExpensesByCategory:    byCategory,
	}, nil
}

// Progress returns the task completion percentage, integer truncated.
func (s *Service) Progress(projectID int64) (int64, error) {
	if _, err := s.repo.GetByID(projectID); err != nil {
		return 0, ErrProjectNotFound
	}

	total, completed, err := s.tasks.CountByProject(projectID)
	if err != nil {
		return 0, err
	}

	return report.CompletionPercent(completed, total), nil
}
