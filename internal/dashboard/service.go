package dashboard

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/expense"
	"github.com/buildtrack/construction-api/internal/inquiry"
	"github.com/buildtrack/construction-api/internal/invoice"
	"github.com/buildtrack/construction-api/internal/leave"
	"github.com/buildtrack/construction-api/internal/reminder"
	"github.com/buildtrack/construction-api/internal/task"
)

// The stats interfaces are implemented by the postgres repositories;
// each one is a single aggregate query.
type ProjectStats interface {
	CountByStatus() (map[string]int64, error)
}

type ExpenseStats interface {
	CountByStatus(status string) (int64, error)
	SumByStatus(status string) (decimal.Decimal, error)
}

type ReminderStats interface {
	CountByStatus(status string) (int64, error)
}

type LeaveStats interface {
	CountByStatus(status string) (int64, error)
}

type InvoiceStats interface {
	CountByStatus(status string) (int64, error)
}

type InquiryStats interface {
	CountByStatus(status string) (int64, error)
}

type TaskStats interface {
	CountByAssignee(userID int64) (map[string]int64, error)
}

type AttendanceStats interface {
	CountByDate(date time.Time) (int64, error)
}

// Service assembles the role-scoped dashboard summaries.
type Service struct {
	projects   ProjectStats
	expenses   ExpenseStats
	reminders  ReminderStats
	leaves     LeaveStats
	invoices   InvoiceStats
	inquiries  InquiryStats
	tasks      TaskStats
	attendance AttendanceStats
	logger     *slog.Logger
}

func NewService(
	projects ProjectStats,
	expenses ExpenseStats,
	reminders ReminderStats,
	leaves LeaveStats,
	invoices InvoiceStats,
	inquiries InquiryStats,
	tasks TaskStats,
	attendance AttendanceStats,
	logger *slog.Logger,
) *Service {
	return &Service{
		projects:   projects,
		expenses:   expenses,
		reminders:  reminders,
		leaves:     leaves,
		invoices:   invoices,
		inquiries:  inquiries,
		tasks:      tasks,
		attendance: attendance,
		logger:     logger,
	}
}

// Summary returns the dashboard slice the principal's role is entitled
// to see. Every role gets the project overview; the rest depends on the
// role.
func (s *Service) Summary(principal internal.Principal) (map[string]interface{}, error) {
	out := map[string]interface{}{}

	projectCounts, err := s.projects.CountByStatus()
	if err != nil {
		return nil, err
	}
	out["projects_by_status"] = projectCounts

	if principal.HasRole(internal.RoleFinanceOfficer, internal.RoleProjectManager, internal.RoleAdmin) {
		pendingExpenses, err := s.expenses.CountByStatus(expense.StatusPending)
		if err != nil {
			return nil, err
		}
		pendingAmount, err := s.expenses.SumByStatus(expense.StatusPending)
		if err != nil {
			return nil, err
		}
		overdueReminders, err := s.reminders.CountByStatus(reminder.StatusOverdue)
		if err != nil {
			return nil, err
		}
		overdueInvoices, err := s.invoices.CountByStatus(invoice.StatusOverdue)
		if err != nil {
			return nil, err
		}
		out["pending_expenses"] = pendingExpenses
		out["pending_expense_amount"] = pendingAmount
		out["overdue_reminders"] = overdueReminders
		out["overdue_invoices"] = overdueInvoices
	}

	if principal.HasRole(internal.RoleHRExecutive, internal.RoleAdmin) {
		pendingLeaves, err := s.leaves.CountByStatus(leave.StatusPending)
		if err != nil {
			return nil, err
		}
		today, err := s.attendance.CountByDate(truncateToDay(time.Now()))
		if err != nil {
			return nil, err
		}
		out["pending_leave_requests"] = pendingLeaves
		out["checked_in_today"] = today
	}

	if principal.HasRole(internal.RoleProjectManager, internal.RoleAdmin) {
		openInquiries, err := s.inquiries.CountByStatus(inquiry.StatusOpen)
		if err != nil {
			return nil, err
		}
		out["open_inquiries"] = openInquiries
	}

	if principal.HasRole(internal.RoleSiteEngineer, internal.RoleWorker) {
		myTasks, err := s.tasks.CountByAssignee(principal.UserID)
		if err != nil {
			return nil, err
		}
		out["my_tasks_by_status"] = myTasks
		out["my_open_tasks"] = myTasks[task.StatusPending] + myTasks[task.StatusInProgress]
	}

	return out, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
