package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/core/events"
)

// Repository interface defines the data access methods for expenses
type Repository interface {
	Create(e *Expense) error
	GetByID(id int64) (*Expense, error)
	GetByProject(projectID int64) ([]*Expense, error)
	GetBySubmitter(userID int64, limit, offset int) ([]*Expense, error)
	GetByStatus(status string, limit, offset int) ([]*Expense, error)
	GetAll(limit, offset int) ([]*Expense, error)
	Update(e *Expense) error
	TotalApprovedByProject(projectID int64) (decimal.Decimal, error)
	ApprovedTotalsByCategory(projectID int64) (map[string]decimal.Decimal, error)
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service handles expense approval business logic
type Service struct {
	repo   Repository
	bus    Publisher
	logger *slog.Logger
}

func NewService(repo Repository, bus Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, bus: bus, logger: logger}
}

var (
	ErrExpenseNotFound = internal.NewNotFoundError("Expense not found", internal.ErrCodeExpenseNotFound)
	ErrInvalidStatus   = internal.NewValidationError("invalid expense status for this operation", internal.ErrCodeInvalidStatus)
)

// Submit creates a PENDING expense. Nothing is persisted when validation
// fails.
func (s *Service) Submit(principal internal.Principal, dto CreateExpenseDTO) (*Expense, error) {
	if principal.HasRole(internal.RoleClient) {
		s.logger.Warn("submit expense denied for client role", "user_id", principal.UserID)
		return nil, internal.NewForbiddenError("clients cannot submit expenses", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	now := time.Now()
	expenseDate := now
	if dto.ExpenseDate != nil {
		expenseDate = *dto.ExpenseDate
	}

	e := &Expense{
		ProjectID:   dto.ProjectID,
		SubmittedBy: principal.UserID,
		Amount:      dto.Amount,
		Category:    dto.Category,
		Description: dto.Description,
		ExpenseDate: expenseDate,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	s.logger.Info("expense submitted",
		"expense_id", e.ID,
		"project_id", e.ProjectID,
		"user_id", principal.UserID,
		"amount", e.Amount.String())

	return e, nil
}

func (s *Service) GetByID(id int64, principal internal.Principal) (*Expense, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}

	// Submitters see their own; finance, managers and admins see all.
	if e.SubmittedBy != principal.UserID &&
		!principal.HasRole(internal.RoleFinanceOfficer, internal.RoleProjectManager, internal.RoleAdmin) {
		s.logger.Warn("unauthorized expense access", "expense_id", id, "user_id", principal.UserID)
		return nil, internal.NewForbiddenError("you may only view your own expenses", internal.ErrCodeNotResourceOwner)
	}

	return e, nil
}

func (s *Service) ListForPrincipal(principal internal.Principal, limit, offset int) ([]*Expense, error) {
	if principal.HasRole(internal.RoleFinanceOfficer, internal.RoleProjectManager, internal.RoleAdmin) {
		return s.repo.GetAll(limit, offset)
	}
	return s.repo.GetBySubmitter(principal.UserID, limit, offset)
}

func (s *Service) ListPending(principal internal.Principal, limit, offset int) ([]*Expense, error) {
	if !principal.CanApproveExpenses() {
		return nil, internal.NewForbiddenError("finance role required", internal.ErrCodeUnauthorizedAccess)
	}
	return s.repo.GetByStatus(StatusPending, limit, offset)
}

func (s *Service) ListByProject(projectID int64) ([]*Expense, error) {
	return s.repo.GetByProject(projectID)
}

// Approve transitions a PENDING expense to APPROVED. Only the documented
// state graph is allowed; approving anything else is a typed status error.
func (s *Service) Approve(id int64, principal internal.Principal) (*Expense, error) {
	if !principal.CanApproveExpenses() {
		s.logger.Warn("approve expense denied", "expense_id", id, "user_id", principal.UserID, "role", principal.Role)
		return nil, internal.NewForbiddenError("finance role required to approve expenses", internal.ErrCodeUnauthorizedAccess)
	}

	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}

	if !e.CanBeApproved() {
		s.logger.Warn("cannot approve expense in current status", "expense_id", id, "status", e.Status)
		return nil, ErrInvalidStatus
	}

	e.Approve(principal.UserID)
	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to persist approval", "error", err, "expense_id", id)
		return nil, err
	}

	s.logger.Info("expense approved",
		"expense_id", e.ID,
		"approver_id", principal.UserID,
		"amount", e.Amount.String())

	if s.bus != nil {
		event := events.NewExpenseApprovedEvent(e.ID, e.ProjectID, e.Amount, principal.UserID, e.Description)
		if err := s.bus.Publish(context.Background(), event); err != nil {
			s.logger.Error("failed to publish expense approved event", "error", err, "expense_id", e.ID)
		}
	}

	return e, nil
}

func (s *Service) Reject(id int64, principal internal.Principal, reason string) (*Expense, error) {
	if !principal.CanApproveExpenses() {
		s.logger.Warn("reject expense denied", "expense_id", id, "user_id", principal.UserID, "role", principal.Role)
		return nil, internal.NewForbiddenError("finance role required to reject expenses", internal.ErrCodeUnauthorizedAccess)
	}

	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}

	if !e.CanBeRejected() {
		s.logger.Warn("cannot reject expense in current status", "expense_id", id, "status", e.Status)
		return nil, ErrInvalidStatus
	}

	e.Reject(principal.UserID, reason)
	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to persist rejection", "error", err, "expense_id", id)
		return nil, err
	}

	s.logger.Info("expense rejected",
		"expense_id", e.ID,
		"approver_id", principal.UserID,
		"reason", reason)

	return e, nil
}

// MarkPaid settles an APPROVED expense.
func (s *Service) MarkPaid(id int64, principal internal.Principal) (*Expense, error) {
	if !principal.CanApproveExpenses() {
		return nil, internal.NewForbiddenError("finance role required to settle expenses", internal.ErrCodeUnauthorizedAccess)
	}

	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}

	if !e.CanBePaid() {
		s.logger.Warn("cannot mark expense paid in current status", "expense_id", id, "status", e.Status)
		return nil, ErrInvalidStatus
	}

	e.MarkPaid()
	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to persist payment", "error", err, "expense_id", id)
		return nil, err
	}

	s.logger.Info("expense marked paid", "expense_id", e.ID, "user_id", principal.UserID)

	if s.bus != nil {
		event := events.NewExpensePaidEvent(e.ID, e.ProjectID, e.Amount, principal.UserID)
		if err := s.bus.Publish(context.Background(), event); err != nil {
			s.logger.Error("failed to publish expense paid event", "error", err, "expense_id", e.ID)
		}
	}

	return e, nil
}
