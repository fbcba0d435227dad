package auth

import (
	"log/slog"
	"net/http"

	"github.com/buildtrack/construction-api/internal"
)

// RoleAuthorization gates route groups by the principal's role, mirroring
// the per-role URL prefixes of the application (manager, finance, HR,
// engineer, client, worker). Admins pass every gate.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

func (ra *RoleAuthorization) Require(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				ra.logger.Warn("authorization check failed: principal not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !principal.IsAdmin() && !principal.HasRole(roles...) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", principal.UserID,
					"role", principal.Role,
					"required_roles", roles)
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RoleAuthorization) RequireFinance() func(http.Handler) http.Handler {
	return ra.Require(internal.RoleFinanceOfficer)
}

func (ra *RoleAuthorization) RequireHR() func(http.Handler) http.Handler {
	return ra.Require(internal.RoleHRExecutive)
}

func (ra *RoleAuthorization) RequireManager() func(http.Handler) http.Handler {
	return ra.Require(internal.RoleProjectManager)
}

func (ra *RoleAuthorization) RequireEngineer() func(http.Handler) http.Handler {
	return ra.Require(internal.RoleSiteEngineer)
}

func (ra *RoleAuthorization) RequireClient() func(http.Handler) http.Handler {
	return ra.Require(internal.RoleClient)
}

func (ra *RoleAuthorization) RequireStaff() func(http.Handler) http.Handler {
	return ra.Require(
		internal.RoleProjectManager,
		internal.RoleSiteEngineer,
		internal.RoleHRExecutive,
		internal.RoleFinanceOfficer,
		internal.RoleWorker,
	)
}
