package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeExpenseApproved = "expense.approved"
	EventTypeExpensePaid     = "expense.paid"
)

// ExpenseApprovedEvent fires when finance approves an expense; the
// reminder domain listens and schedules the disbursement reminder.
type ExpenseApprovedEvent struct {
	BaseEvent
	ExpenseID   int64           `json:"expense_id"`
	ProjectID   int64           `json:"project_id"`
	Amount      decimal.Decimal `json:"amount"`
	ApprovedBy  int64           `json:"approved_by"`
	Description string          `json:"description"`
}

func NewExpenseApprovedEvent(expenseID, projectID int64, amount decimal.Decimal, approvedBy int64, description string) *ExpenseApprovedEvent {
	return &ExpenseApprovedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpenseApproved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"expense_id":  expenseID,
				"project_id":  projectID,
				"amount":      amount.String(),
				"approved_by": approvedBy,
			},
		},
		ExpenseID:   expenseID,
		ProjectID:   projectID,
		Amount:      amount,
		ApprovedBy:  approvedBy,
		Description: description,
	}
}

// ExpensePaidEvent fires when an approved expense is settled.
type ExpensePaidEvent struct {
	BaseEvent
	ExpenseID int64           `json:"expense_id"`
	ProjectID int64           `json:"project_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidBy    int64           `json:"paid_by"`
}

func NewExpensePaidEvent(expenseID, projectID int64, amount decimal.Decimal, paidBy int64) *ExpensePaidEvent {
	return &ExpensePaidEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpensePaid,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"expense_id": expenseID,
				"project_id": projectID,
				"amount":     amount.String(),
				"paid_by":    paidBy,
			},
		},
		ExpenseID: expenseID,
		ProjectID: projectID,
		Amount:    amount,
		PaidBy:    paidBy,
	}
}
