package user

import (
	"time"

	"github.com/buildtrack/construction-api/internal"
)

// User represents an account that can authenticate against the API. The
// role column decides which route groups and operations the account may use.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"not null"`
	Phone        string    `json:"phone,omitempty"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) Principal() internal.Principal {
	return internal.Principal{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}
}

// ValidRoles lists every role the registration endpoint accepts.
var ValidRoles = []string{
	internal.RoleAdmin,
	internal.RoleProjectManager,
	internal.RoleSiteEngineer,
	internal.RoleHRExecutive,
	internal.RoleFinanceOfficer,
	internal.RoleClient,
	internal.RoleWorker,
}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
