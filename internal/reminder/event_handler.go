package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal/core/events"
)

// disbursementLeadTime is how long finance gets to settle an approved
// expense before its reminder falls overdue.
const disbursementLeadTime = 30 * 24 * time.Hour

var highAmountThreshold = decimal.NewFromInt(10_000_000)

// priorityForAmount escalates large disbursements so they surface first
// in finance listings.
func priorityForAmount(amount decimal.Decimal) string {
	if amount.GreaterThanOrEqual(highAmountThreshold) {
		return PriorityHigh
	}
	return PriorityMedium
}

type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

// EventHandler schedules a disbursement reminder whenever an expense is
// approved.
type EventHandler struct {
	repo   Repository
	logger *slog.Logger
}

func NewEventHandler(repo Repository, logger *slog.Logger) *EventHandler {
	return &EventHandler{repo: repo, logger: logger}
}

func (h *EventHandler) RegisterHandlers(bus Subscriber) {
	bus.Subscribe(events.EventTypeExpenseApproved, h.handleExpenseApproved)
}

func (h *EventHandler) handleExpenseApproved(ctx context.Context, event events.Event) error {
	approved, ok := event.(*events.ExpenseApprovedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	now := time.Now()
	expenseID := approved.ExpenseID
	r := &PaymentReminder{
		ProjectID:   approved.ProjectID,
		ExpenseID:   &expenseID,
		Description: fmt.Sprintf("Disbursement for approved expense: %s", approved.Description),
		Amount:      approved.Amount,
		DueDate:     truncateToDay(now.Add(disbursementLeadTime)),
		Status:      StatusPending,
		Priority:    priorityForAmount(approved.Amount),
		CreatedBy:   approved.ApprovedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.repo.Create(r); err != nil {
		h.logger.Error("failed to create reminder for approved expense",
			"error", err,
			"expense_id", approved.ExpenseID)
		return err
	}

	h.logger.Info("disbursement reminder scheduled",
		"reminder_id", r.ID,
		"expense_id", approved.ExpenseID,
		"due_date", r.DueDate.Format("2006-01-02"))

	return nil
}
