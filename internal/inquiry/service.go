package inquiry

import (
	"log/slog"
	"time"

	"github.com/buildtrack/construction-api/internal"
)

type Repository interface {
	Create(i *Inquiry) error
	GetByID(id int64) (*Inquiry, error)
	GetAll(limit, offset int) ([]*Inquiry, error)
	GetByStatus(status string, limit, offset int) ([]*Inquiry, error)
	Update(i *Inquiry) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

var (
	ErrInquiryNotFound = internal.NewNotFoundError("Inquiry not found", internal.ErrCodeInquiryNotFound)
	ErrInquiryClosed   = internal.NewValidationError("inquiry is closed", internal.ErrCodeInvalidStatus)
)

// Submit is unauthenticated; it backs the public contact form.
func (s *Service) Submit(dto CreateInquiryDTO) (*Inquiry, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	i := &Inquiry{
		ClientName:  dto.ClientName,
		ClientEmail: dto.ClientEmail,
		ClientPhone: dto.ClientPhone,
		Subject:     dto.Subject,
		Message:     dto.Message,
		Status:      StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(i); err != nil {
		s.logger.Error("failed to create inquiry", "error", err)
		return nil, err
	}

	s.logger.Info("inquiry received", "inquiry_id", i.ID, "subject", i.Subject)
	return i, nil
}

func (s *Service) GetByID(id int64, principal internal.Principal) (*Inquiry, error) {
	if !canViewInquiries(principal) {
		return nil, internal.NewForbiddenError("staff role required", internal.ErrCodeUnauthorizedAccess)
	}

	i, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrInquiryNotFound
	}
	return i, nil
}

func (s *Service) List(principal internal.Principal, status string, limit, offset int) ([]*Inquiry, error) {
	if !canViewInquiries(principal) {
		return nil, internal.NewForbiddenError("staff role required", internal.ErrCodeUnauthorizedAccess)
	}

	if status != "" {
		return s.repo.GetByStatus(status, limit, offset)
	}
	return s.repo.GetAll(limit, offset)
}

func (s *Service) Respond(id int64, principal internal.Principal, dto RespondInquiryDTO) (*Inquiry, error) {
	if !canViewInquiries(principal) {
		return nil, internal.NewForbiddenError("staff role required", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	i, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrInquiryNotFound
	}
	if i.Status == StatusClosed {
		return nil, ErrInquiryClosed
	}

	i.Respond(principal.UserID, dto.ResponseText)

	if err := s.repo.Update(i); err != nil {
		return nil, err
	}

	s.logger.Info("inquiry responded", "inquiry_id", i.ID, "responder_id", principal.UserID)
	return i, nil
}

func (s *Service) Close(id int64, principal internal.Principal) (*Inquiry, error) {
	if !canViewInquiries(principal) {
		return nil, internal.NewForbiddenError("staff role required", internal.ErrCodeUnauthorizedAccess)
	}

	i, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrInquiryNotFound
	}
	if i.Status == StatusClosed {
		return nil, ErrInquiryClosed
	}

	i.Close()

	if err := s.repo.Update(i); err != nil {
		return nil, err
	}
	return i, nil
}

func canViewInquiries(p internal.Principal) bool {
	return p.HasRole(internal.RoleProjectManager, internal.RoleAdmin)
}
