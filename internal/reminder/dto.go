package reminder

import (
	"time"

	"github.com/shopspring/decimal"

	internal "github.com/buildtrack/construction-api/internal"
)

type CreateReminderDTO struct {
	ProjectID        int64           `json:"project_id"`
	ExpenseID        *int64          `json:"expense_id,omitempty"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	DueDate          time.Time       `json:"due_date"`
	Recipient        string          `json:"recipient"`
	RecipientContact string          `json:"recipient_contact"`
	Priority         string          `json:"priority"`
	Notes            string          `json:"notes"`
}

func (d *CreateReminderDTO) Validate() error {
	if d.ProjectID <= 0 {
		return internal.NewValidationFieldError("project_id", "Project is required", internal.ErrCodeValidationFailed)
	}
	if d.Description == "" {
		return internal.NewValidationFieldError("description", "Description is required", internal.ErrCodeValidationFailed)
	}
	if d.Amount.IsNegative() {
		return internal.NewValidationFieldError("amount", "Amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	today := truncateToDay(time.Now())
	if d.DueDate.Before(today) {
		return internal.NewValidationFieldError("due_date", "Due date cannot be in the past", internal.ErrCodeDueDateInPast)
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if !ValidPriority(d.Priority) {
		return internal.NewValidationFieldError("priority", "Priority must be one of LOW, MEDIUM, HIGH, URGENT", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateReminderDTO struct {
	Description      *string          `json:"description,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	DueDate          *time.Time       `json:"due_date,omitempty"`
	Recipient        *string          `json:"recipient,omitempty"`
	RecipientContact *string          `json:"recipient_contact,omitempty"`
	Priority         *string          `json:"priority,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

func (d *UpdateReminderDTO) Validate() error {
	if d.Amount != nil && d.Amount.IsNegative() {
		return internal.NewValidationFieldError("amount", "Amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	if d.Priority != nil && !ValidPriority(*d.Priority) {
		return internal.NewValidationFieldError("priority", "Priority must be one of LOW, MEDIUM, HIGH, URGENT", internal.ErrCodeValidationFailed)
	}
	return nil
}

type SubmitPaymentDTO struct {
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id"`
	ProofURL      string `json:"proof_url"`
	Notes         string `json:"notes"`
}

func (d *SubmitPaymentDTO) Validate() error {
	if d.PaymentMethod == "" {
		return internal.NewValidationFieldError("payment_method", "Payment method is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
