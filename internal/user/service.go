package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/buildtrack/construction-api/internal"
)

type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByRole(role string) ([]*User, error)
	Update(u *User) error
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

var ErrUserNotFound = internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
var ErrEmailTaken = internal.NewConflictError("Email is already registered", internal.ErrCodeEmailTaken)

func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("registration rejected: email taken", "email", dto.Email)
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         dto.Role,
		Phone:        dto.Phone,
		IsActive:     true,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) GetByEmail(email string) (*User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ListByRole is used by dashboards needing staff rosters; restricted to
// HR, managers and admins.
func (s *Service) ListByRole(principal internal.Principal, role string) ([]*User, error) {
	if !principal.HasRole(internal.RoleHRExecutive, internal.RoleProjectManager, internal.RoleAdmin) {
		s.logger.Warn("list users denied", "user_id", principal.UserID, "role", principal.Role)
		return nil, internal.NewForbiddenError("insufficient role to list users", internal.ErrCodeUnauthorizedAccess)
	}
	return s.repo.GetByRole(role)
}

func (s *Service) UpdateProfile(principal internal.Principal, dto UpdateProfileDTO) (*User, error) {
	u, err := s.repo.GetByID(principal.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if dto.Name != "" {
		u.Name = dto.Name
	}
	if dto.Phone != "" {
		u.Phone = dto.Phone
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", u.ID)
		return nil, err
	}
	return u, nil
}
