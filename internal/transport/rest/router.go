package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/buildtrack/construction-api/internal/attendance"
	"github.com/buildtrack/construction-api/internal/auth"
	"github.com/buildtrack/construction-api/internal/dashboard"
	"github.com/buildtrack/construction-api/internal/expense"
	"github.com/buildtrack/construction-api/internal/inquiry"
	"github.com/buildtrack/construction-api/internal/invoice"
	"github.com/buildtrack/construction-api/internal/leave"
	"github.com/buildtrack/construction-api/internal/project"
	"github.com/buildtrack/construction-api/internal/reminder"
	"github.com/buildtrack/construction-api/internal/task"
	"github.com/buildtrack/construction-api/internal/transport/middleware"
	"github.com/buildtrack/construction-api/internal/user"
	"github.com/buildtrack/construction-api/internal/worklog"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Project    *project.Handler
	Task       *task.Handler
	Expense    *expense.Handler
	Reminder   *reminder.Handler
	Leave      *leave.Handler
	Attendance *attendance.Handler
	WorkLog    *worklog.Handler
	Invoice    *invoice.Handler
	Inquiry    *inquiry.Handler
	Dashboard  *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRoleAuthorization(logger)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.RequestLogging(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)

			sr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.AuthMiddleware)
				ar.Post("/logout", h.Auth.Logout)
			})
		})

		// Public contact form; no account needed.
		r.Post("/inquiries", h.Inquiry.SubmitInquiry)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.Me)
			pr.Patch("/users/me", h.User.UpdateMe)
			pr.Get("/dashboard", h.Dashboard.GetSummary)

			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequireHR())
				ar.Post("/users", h.User.Register)
				ar.Get("/users", h.User.ListUsers)
			})

			pr.Route("/projects", func(sr chi.Router) {
				sr.Get("/", h.Project.ListProjects)
				sr.Get("/{projectID}", h.Project.GetProject)
				sr.Get("/{projectID}/budget", h.Project.GetBudgetSummary)
				sr.Get("/{projectID}/progress", h.Project.GetProgress)
				sr.Get("/{projectID}/tasks", h.Task.ListProjectTasks)
				sr.Get("/{projectID}/work-logs", h.WorkLog.ListProjectWorkLogs)
				sr.Get("/{projectID}/reminders", h.Reminder.ListProjectReminders)
				sr.Get("/{projectID}/invoices", h.Invoice.ListProjectInvoices)

				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManager())
					mr.Post("/", h.Project.CreateProject)
					mr.Patch("/{projectID}", h.Project.UpdateProject)
					mr.Patch("/{projectID}/status", h.Project.UpdateProjectStatus)
				})
			})

			pr.Route("/tasks", func(sr chi.Router) {
				sr.Get("/", h.Task.ListTasks)
				sr.Get("/{id}", h.Task.GetTask)
				sr.Patch("/{id}/status", h.Task.UpdateTaskStatus)

				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireEngineer())
					mr.Post("/", h.Task.CreateTask)
					mr.Patch("/{id}", h.Task.UpdateTask)
				})

				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManager())
					mr.Delete("/{id}", h.Task.DeleteTask)
				})
			})

			pr.Route("/expenses", func(sr chi.Router) {
				sr.Post("/", h.Expense.CreateExpense)
				sr.Get("/", h.Expense.ListExpenses)
				sr.Get("/{id}", h.Expense.GetExpense)

				sr.Group(func(fr chi.Router) {
					fr.Use(rbac.RequireFinance())
					fr.Get("/pending", h.Expense.ListPendingExpenses)
					fr.Patch("/{id}/approve", h.Expense.ApproveExpense)
					fr.Patch("/{id}/reject", h.Expense.RejectExpense)
					fr.Patch("/{id}/pay", h.Expense.MarkExpensePaid)
				})
			})

			pr.Route("/reminders", func(sr chi.Router) {
				sr.Get("/", h.Reminder.ListReminders)
				sr.Get("/{id}", h.Reminder.GetReminder)
				sr.Post("/{id}/submit-payment", h.Reminder.SubmitPayment)

				sr.Group(func(fr chi.Router) {
					fr.Use(rbac.RequireFinance())
					fr.Post("/", h.Reminder.CreateReminder)
					fr.Patch("/{id}", h.Reminder.UpdateReminder)
					fr.Patch("/{id}/confirm-payment", h.Reminder.ConfirmPayment)
					fr.Patch("/{id}/pay", h.Reminder.MarkReminderPaid)
					fr.Patch("/{id}/cancel", h.Reminder.CancelReminder)
				})
			})

			pr.Route("/leave-requests", func(sr chi.Router) {
				sr.Post("/", h.Leave.CreateLeave)
				sr.Get("/", h.Leave.ListLeaves)
				sr.Get("/{id}", h.Leave.GetLeave)
				sr.Delete("/{id}", h.Leave.WithdrawLeave)

				sr.Group(func(hr chi.Router) {
					hr.Use(rbac.RequireHR())
					hr.Get("/pending", h.Leave.ListPendingLeaves)
					hr.Patch("/{id}/approve", h.Leave.ApproveLeave)
					hr.Patch("/{id}/reject", h.Leave.RejectLeave)
				})
			})

			pr.Route("/attendance", func(sr chi.Router) {
				sr.Post("/check-in", h.Attendance.CheckIn)
				sr.Post("/check-out", h.Attendance.CheckOut)
				sr.Get("/today", h.Attendance.Today)
				sr.Get("/history", h.Attendance.History)

				sr.Group(func(hr chi.Router) {
					hr.Use(rbac.RequireHR())
					hr.Get("/report", h.Attendance.DailyReport)
					hr.Get("/users/{userID}", h.Attendance.UserHistory)
				})
			})

			pr.Route("/work-logs", func(sr chi.Router) {
				sr.Post("/", h.WorkLog.CreateWorkLog)
				sr.Get("/", h.WorkLog.ListMyWorkLogs)
				sr.Get("/{id}", h.WorkLog.GetWorkLog)
				sr.Patch("/{id}", h.WorkLog.UpdateWorkLog)
				sr.Delete("/{id}", h.WorkLog.DeleteWorkLog)
			})

			pr.Route("/invoices", func(sr chi.Router) {
				sr.Use(rbac.RequireFinance())
				sr.Post("/", h.Invoice.CreateInvoice)
				sr.Get("/", h.Invoice.ListInvoices)
				sr.Get("/{id}", h.Invoice.GetInvoice)
				sr.Patch("/{id}", h.Invoice.UpdateInvoice)
				sr.Patch("/{id}/send", h.Invoice.SendInvoice)
				sr.Patch("/{id}/pay", h.Invoice.MarkInvoicePaid)
				sr.Patch("/{id}/cancel", h.Invoice.CancelInvoice)
			})

			pr.Route("/inquiries", func(sr chi.Router) {
				sr.Use(rbac.RequireManager())
				sr.Get("/", h.Inquiry.ListInquiries)
				sr.Get("/{id}", h.Inquiry.GetInquiry)
				sr.Patch("/{id}/respond", h.Inquiry.RespondInquiry)
				sr.Patch("/{id}/close", h.Inquiry.CloseInquiry)
			})
		})
	})
}
