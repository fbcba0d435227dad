package leave

import (
	"log/slog"
	"time"

	"github.com/buildtrack/construction-api/internal"
)

type Repository interface {
	Create(l *LeaveRequest) error
	GetByID(id int64) (*LeaveRequest, error)
	GetByUser(userID int64, limit, offset int) ([]*LeaveRequest, error)
	GetByStatus(status string, limit, offset int) ([]*LeaveRequest, error)
	GetAll(limit, offset int) ([]*LeaveRequest, error)
	Update(l *LeaveRequest) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

var (
	ErrLeaveNotFound  = internal.NewNotFoundError("Leave request not found", internal.ErrCodeLeaveNotFound)
	ErrAlreadyDecided = internal.NewValidationError("leave request has already been reviewed", internal.ErrCodeInvalidStatus)
)

func (s *Service) Submit(principal internal.Principal, dto CreateLeaveDTO) (*LeaveRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("leave validation failed", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	now := time.Now()
	l := &LeaveRequest{
		UserID:    principal.UserID,
		LeaveType: dto.LeaveType,
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
		Reason:    dto.Reason,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	s.logger.Info("leave request submitted",
		"leave_id", l.ID,
		"user_id", principal.UserID,
		"type", l.LeaveType,
		"days", l.Days())
	return l, nil
}

func (s *Service) GetByID(id int64, principal internal.Principal) (*LeaveRequest, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrLeaveNotFound
	}

	if l.UserID != principal.UserID && !principal.CanApproveLeave() {
		return nil, internal.NewForbiddenError("you may only view your own leave requests", internal.ErrCodeNotResourceOwner)
	}
	return l, nil
}

func (s *Service) ListForPrincipal(principal internal.Principal, limit, offset int) ([]*LeaveRequest, error) {
	if principal.CanApproveLeave() {
		return s.repo.GetAll(limit, offset)
	}
	return s.repo.GetByUser(principal.UserID, limit, offset)
}

func (s *Service) ListPending(principal internal.Principal, limit, offset int) ([]*LeaveRequest, error) {
	if !principal.CanApproveLeave() {
		return nil, internal.NewForbiddenError("HR or manager role required", internal.ErrCodeUnauthorizedAccess)
	}
	return s.repo.GetByStatus(StatusPending, limit, offset)
}

func (s *Service) Approve(id int64, principal internal.Principal, note string) (*LeaveRequest, error) {
	return s.review(id, principal, note, true)
}

func (s *Service) Reject(id int64, principal internal.Principal, note string) (*LeaveRequest, error) {
	return s.review(id, principal, note, false)
}

func (s *Service) review(id int64, principal internal.Principal, note string, approve bool) (*LeaveRequest, error) {
	if !principal.CanApproveLeave() {
		return nil, internal.NewForbiddenError("HR or manager role required", internal.ErrCodeUnauthorizedAccess)
	}

	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrLeaveNotFound
	}
	if !l.IsPending() {
		return nil, ErrAlreadyDecided
	}
	if l.UserID == principal.UserID {
		return nil, internal.NewForbiddenError("you cannot review your own leave request", internal.ErrCodeNotResourceOwner)
	}

	if approve {
		l.Approve(principal.UserID, note)
	} else {
		l.Reject(principal.UserID, note)
	}

	if err := s.repo.Update(l); err != nil {
		return nil, err
	}

	s.logger.Info("leave request reviewed",
		"leave_id", l.ID,
		"status", l.Status,
		"reviewer_id", principal.UserID)
	return l, nil
}

// Withdraw deletes a leave request. Only the requester may withdraw, and
// only while the request is still PENDING.
func (s *Service) Withdraw(id int64, principal internal.Principal) error {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return ErrLeaveNotFound
	}

	if l.UserID != principal.UserID {
		return internal.NewForbiddenError("you may only withdraw your own leave requests", internal.ErrCodeNotResourceOwner)
	}
	if !l.IsPending() {
		return ErrAlreadyDecided
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("leave request withdrawn", "leave_id", id, "user_id", principal.UserID)
	return nil
}
