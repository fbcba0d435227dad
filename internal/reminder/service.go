package reminder

import (
	"log/slog"
	"time"

	"github.com/buildtrack/construction-api/internal"
)

type Repository interface {
	Create(r *PaymentReminder) error
	GetByID(id int64) (*PaymentReminder, error)
	GetAll(limit, offset int) ([]*PaymentReminder, error)
	GetByProject(projectID int64) ([]*PaymentReminder, error)
	GetByStatus(status string, limit, offset int) ([]*PaymentReminder, error)
	Update(r *PaymentReminder) error
	Delete(id int64) error
	// PromoteOverdue flips PENDING reminders whose due date precedes the
	// given day to OVERDUE and reports how many rows changed. The update
	// is conditional on the current status so concurrent promoters are
	// harmless.
	PromoteOverdue(asOf time.Time) (int64, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

var (
	ErrReminderNotFound = internal.NewNotFoundError("Payment reminder not found", internal.ErrCodeReminderNotFound)
	ErrReminderSettled  = internal.NewValidationError("reminder is already settled", internal.ErrCodeInvalidStatus)
)

func (s *Service) Create(principal internal.Principal, dto CreateReminderDTO) (*PaymentReminder, error) {
	if !principal.HasRole(internal.RoleFinanceOfficer, internal.RoleProjectManager, internal.RoleAdmin) {
		return nil, internal.NewForbiddenError("finance or manager role required", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("reminder validation failed", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	now := time.Now()
	r := &PaymentReminder{
		ProjectID:         dto.ProjectID,
		ExpenseID:         dto.ExpenseID,
		Description:       dto.Description,
		Amount:            dto.Amount,
		DueDate:           truncateToDay(dto.DueDate),
		Recipient:         dto.Recipient,
		RecipientContact:  dto.RecipientContact,
		Status:            StatusPending,
		Priority:          dto.Priority,
		Notes:             dto.Notes,
		CreatedBy:         principal.UserID,
		IsClientSubmitted: principal.HasRole(internal.RoleClient),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(r); err != nil {
		s.logger.Error("failed to create payment reminder", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	s.logger.Info("payment reminder created",
		"reminder_id", r.ID,
		"project_id", r.ProjectID,
		"due_date", r.DueDate.Format("2006-01-02"),
		"amount", r.Amount.String())

	return r, nil
}

func (s *Service) GetByID(id int64, principal internal.Principal) (*PaymentReminder, error) {
	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrReminderNotFound
	}

	if r.CreatedBy != principal.UserID &&
		!principal.HasRole(internal.RoleFinanceOfficer, internal.RoleProjectManager, internal.RoleAdmin, internal.RoleClient) {
		return nil, internal.NewForbiddenError("you may only view your own reminders", internal.ErrCodeNotResourceOwner)
	}

	return r, nil
}

// List promotes stale PENDING reminders to OVERDUE before returning, so
// readers always observe the current lifecycle state. The promotion is
// idempotent; repeated reads change nothing further.
func (s *Service) List(principal internal.Principal, limit, offset int) ([]*PaymentReminder, error) {
	if n, err := s.repo.PromoteOverdue(time.Now()); err != nil {
		s.logger.Error("overdue promotion failed", "error", err)
	} else if n > 0 {
		s.logger.Info("reminders promoted to overdue", "count", n)
	}

	return s.repo.GetAll(limit, offset)
}

func (s *Service) ListByProject(projectID int64, principal internal.Principal) ([]*PaymentReminder, error) {
	if n, err := s.repo.PromoteOverdue(time.Now()); err != nil {
		s.logger.Error("overdue promotion failed", "error", err)
	} else if n > 0 {
		s.logger.Info("reminders promoted to overdue", "count", n)
	}

	return s.repo.GetByProject(projectID)
}

func (s *Service) ListByStatus(status string, principal internal.Principal, limit, offset int) ([]*PaymentReminder, error) {
	if n, err := s.repo.PromoteOverdue(time.Now()); err != nil {
		s.logger.Error("overdue promotion failed", "error", err)
	} else if n > 0 {
		s.logger.Info("reminders promoted to overdue", "count", n)
	}

	return s.repo.GetByStatus(status, limit, offset)
}

func (s *Service) Update(id int64, principal internal.Principal, dto UpdateReminderDTO) (*PaymentReminder, error) {
	if !principal.HasRole(internal.RoleFinanceOfficer, internal.RoleProjectManager, internal.RoleAdmin) {
		return nil, internal.NewForbiddenError("finance or manager role required", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrReminderNotFound
	}
	if r.IsTerminal() {
		return nil, ErrReminderSettled
	}

	if dto.Description != nil {
		r.Description = *dto.Description
	}
	if dto.Amount != nil {
		r.Amount = *dto.Amount
	}
	if dto.DueDate != nil {
		r.DueDate = truncateToDay(*dto.DueDate)
	}
	if dto.Recipient != nil {
		r.Recipient = *dto.Recipient
	}
	if dto.RecipientContact != nil {
		r.RecipientContact = *dto.RecipientContact
	}
	if dto.Priority != nil {
		r.Priority = *dto.Priority
	}
	if dto.Notes != nil {
		r.Notes = *dto.Notes
	}
	r.UpdatedAt = time.Now()

	if err := s.repo.Update(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SubmitPayment records a client-side payment claim and moves the
// reminder to AWAITING_CONFIRMATION; only finance confirmation settles
// it.
func (s *Service) SubmitPayment(id int64, principal internal.Principal, dto SubmitPaymentDTO) (*PaymentReminder, error) {
	if !principal.HasRole(internal.RoleClient, internal.RoleAdmin) {
		return nil, internal.NewForbiddenError("client role required", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrReminderNotFound
	}
	if r.IsTerminal() {
		return nil, ErrReminderSettled
	}

	r.SubmitPayment(dto.PaymentMethod, dto.TransactionID, dto.ProofURL, dto.Notes)

	if err := s.repo.Update(r); err != nil {
		return nil, err
	}

	s.logger.Info("payment submitted for reminder",
		"reminder_id", r.ID,
		"method", dto.PaymentMethod,
		"user_id", principal.UserID)

	return r, nil
}

// ConfirmPayment settles a reminder after a client payment submission.
func (s *Service) ConfirmPayment(id int64, principal internal.Principal) (*PaymentReminder, error) {
	if !principal.CanApproveExpenses() {
		return nil, internal.NewForbiddenError("finance role required", internal.ErrCodeUnauthorizedAccess)
	}

	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrReminderNotFound
	}
	if r.IsTerminal() {
		return nil, ErrReminderSettled
	}
	if !r.PaymentSubmitted {
		return nil, internal.NewValidationError("no payment submission to confirm", internal.ErrCodeInvalidStatus)
	}

	r.ConfirmPayment(principal.UserID)

	if err := s.repo.Update(r); err != nil {
		return nil, err
	}

	s.logger.Info("reminder payment confirmed", "reminder_id", r.ID, "confirmed_by", principal.UserID)
	return r, nil
}

// MarkPaid settles a reminder directly, without a client submission.
func (s *Service) MarkPaid(id int64, principal internal.Principal) (*PaymentReminder, error) {
	if !principal.CanApproveExpenses() {
		return nil, internal.NewForbiddenError("finance role required", internal.ErrCodeUnauthorizedAccess)
	}

	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrReminderNotFound
	}
	if r.IsTerminal() {
		return nil, ErrReminderSettled
	}

	r.MarkPaid(principal.UserID)

	if err := s.repo.Update(r); err != nil {
		return nil, err
	}

	s.logger.Info("reminder marked paid", "reminder_id", r.ID, "paid_by", principal.UserID)
	return r, nil
}

func (s *Service) Cancel(id int64, principal internal.Principal) (*PaymentReminder, error) {
	if !principal.HasRole(internal.RoleFinanceOfficer, internal.RoleProjectManager, internal.RoleAdmin) {
		return nil, internal.NewForbiddenError("finance or manager role required", internal.ErrCodeUnauthorizedAccess)
	}

	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrReminderNotFound
	}
	if r.IsTerminal() {
		return nil, ErrReminderSettled
	}

	r.Cancel()

	if err := s.repo.Update(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SweepOverdue runs a standalone promotion pass, used by the scheduler.
func (s *Service) SweepOverdue() (int64, error) {
	n, err := s.repo.PromoteOverdue(time.Now())
	if err != nil {
		s.logger.Error("overdue sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		s.logger.Info("overdue sweep promoted reminders", "count", n)
	}
	return n, nil
}
