package internal

import (
	"context"
	"time"
)

// Role names match the role column on the users table.
const (
	RoleAdmin          = "ADMIN"
	RoleProjectManager = "PROJECT_MANAGER"
	RoleSiteEngineer   = "SITE_ENGINEER"
	RoleHRExecutive    = "HR_EXECUTIVE"
	RoleFinanceOfficer = "FINANCE_OFFICER"
	RoleClient         = "CLIENT_REPRESENTATIVE"
	RoleWorker         = "WORKER"
)

// Principal is the authenticated actor performing an operation. Services take
// it as an explicit parameter instead of reading an ambient security context.
type Principal struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) CanApproveExpenses() bool {
	return p.HasRole(RoleFinanceOfficer, RoleAdmin)
}

func (p Principal) CanApproveLeave() bool {
	return p.HasRole(RoleHRExecutive, RoleProjectManager, RoleAdmin)
}

type ctxKey string

const ContextPrincipalKey ctxKey = "principal"

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(ContextPrincipalKey).(Principal)
	return p, ok
}

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
