package invoice

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/buildtrack/construction-api/internal"
)

type Repository interface {
	Create(i *Invoice) error
	GetByID(id int64) (*Invoice, error)
	GetByProject(projectID int64) ([]*Invoice, error)
	GetAll(limit, offset int) ([]*Invoice, error)
	GetByStatus(status string, limit, offset int) ([]*Invoice, error)
	Update(i *Invoice) error
	NextSequence(year int) (int64, error)
	// PromoteOverdue flips SENT invoices past their due date to OVERDUE.
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
	ErrInvoiceNotFound = internal.NewNotFoundError("Invoice not found", internal.ErrCodeInvoiceNotFound)
	ErrInvalidStatus   = internal.NewValidationError("invalid invoice status for this operation", internal.ErrCodeInvalidStatus)
)

func canManageInvoices(p internal.Principal) bool {
	return p.HasRole(internal.RoleFinanceOfficer, internal.RoleAdmin)
}

func (s *Service) Create(principal internal.Principal, dto CreateInvoiceDTO) (*Invoice, error) {
	if !canManageInvoices(principal) {
		return nil, internal.NewForbiddenError("finance role required", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("invoice validation failed", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	now := time.Now()
	issueDate := now
	if dto.IssueDate != nil {
		issueDate = *dto.IssueDate
	}

	seq, err := s.repo.NextSequence(issueDate.Year())
	if err != nil {
		return nil, err
	}

	i := &Invoice{
		ProjectID:     dto.ProjectID,
		InvoiceNumber: fmt.Sprintf("INV-%d-%04d", issueDate.Year(), seq),
		ClientID:      dto.ClientID,
		Amount:        dto.Amount,
		TaxAmount:     dto.TaxAmount,
		TotalAmount:   dto.Amount.Add(dto.TaxAmount),
		Description:   dto.Description,
		IssueDate:     issueDate,
		DueDate:       dto.DueDate,
		Status:        StatusDraft,
		CreatedBy:     principal.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(i); err != nil {
		s.logger.Error("failed to create invoice", "error", err)
		return nil, err
	}

	s.logger.Info("invoice created",
		"invoice_id", i.ID,
		"invoice_number", i.InvoiceNumber,
		"total", i.TotalAmount.String())
	return i, nil
}

func (s *Service) GetByID(id int64) (*Invoice, error) {
	i, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	return i, nil
}

func (s *Service) List(principal internal.Principal, status string, limit, offset int) ([]*Invoice, error) {
	if n, err := s.repo.PromoteOverdue(time.Now()); err != nil {
		s.logger.Error("invoice overdue promotion failed", "error", err)
	} else if n > 0 {
		s.logger.Info("invoices promoted to overdue", "count", n)
	}

	if status != "" {
		return s.repo.GetByStatus(status, limit, offset)
	}
	return s.repo.GetAll(limit, offset)
}

func (s *Service) ListByProject(projectID int64) ([]*Invoice, error) {
	return s.repo.GetByProject(projectID)
}

// Update edits a DRAFT invoice; amounts are recomputed from the changed
// parts.
func (s *Service) Update(id int64, principal internal.Principal, dto UpdateInvoiceDTO) (*Invoice, error) {
	if !canManageInvoices(principal) {
		return nil, internal.NewForbiddenError("finance role required", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	i, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	if i.Status != StatusDraft {
		return nil, ErrInvalidStatus
	}

	if dto.Amount != nil {
		i.Amount = *dto.Amount
	}
	if dto.TaxAmount != nil {
		i.TaxAmount = *dto.TaxAmount
	}
	if dto.Description != nil {
		i.Description = *dto.Description
	}
	if dto.DueDate != nil {
		i.DueDate = *dto.DueDate
	}
	i.TotalAmount = i.Amount.Add(i.TaxAmount)
	i.UpdatedAt = time.Now()

	if err := s.repo.Update(i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Service) Send(id int64, principal internal.Principal) (*Invoice, error) {
	if !canManageInvoices(principal) {
		return nil, internal.NewForbiddenError("finance role required", internal.ErrCodeUnauthorizedAccess)
	}

	i, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	if !i.CanBeSent() {
		return nil, ErrInvalidStatus
	}

	i.Send()

	if err := s.repo.Update(i); err != nil {
		return nil, err
	}

	s.logger.Info("invoice sent", "invoice_id", i.ID, "invoice_number", i.InvoiceNumber)
	return i, nil
}

func (s *Service) MarkPaid(id int64, principal internal.Principal) (*Invoice, error) {
	if !canManageInvoices(principal) {
		return nil, internal.NewForbiddenError("finance role required", internal.ErrCodeUnauthorizedAccess)
	}

	i, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	if !i.CanBePaid() {
		return nil, ErrInvalidStatus
	}

	i.MarkPaid()

	if err := s.repo.Update(i); err != nil {
		return nil, err
	}

	s.logger.Info("invoice paid", "invoice_id", i.ID, "invoice_number", i.InvoiceNumber)
	return i, nil
}

func (s *Service) Cancel(id int64, principal internal.Principal) (*Invoice, error) {
	if !canManageInvoices(principal) {
		return nil, internal.NewForbiddenError("finance role required", internal.ErrCodeUnauthorizedAccess)
	}

	i, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	if i.IsTerminal() {
		return nil, ErrInvalidStatus
	}

	i.Cancel()

	if err := s.repo.Update(i); err != nil {
		return nil, err
	}
	return i, nil
}

// SweepOverdue runs a standalone promotion pass, used by the scheduler.
func (s *Service) SweepOverdue() (int64, error) {
	n, err := s.repo.PromoteOverdue(time.Now())
	if err != nil {
		s.logger.Error("overdue invoice sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		s.logger.Info("overdue sweep promoted invoices", "count", n)
	}
	return n, nil
}
