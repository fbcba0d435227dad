package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal"
)

type CreateExpenseDTO struct {
	ProjectID   int64           `json:"project_id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	ExpenseDate *time.Time      `json:"expense_date,omitempty"`
}

func (dto CreateExpenseDTO) Validate() error {
	if dto.ProjectID <= 0 {
		return internal.NewValidationFieldError("project_id", "project is required", internal.ErrCodeValidationFailed)
	}
	if dto.Amount.IsNegative() {
		return internal.NewValidationFieldError("amount", "Amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	if !ValidCategory(dto.Category) {
		return internal.NewValidationFieldError("category", "unknown expense category", internal.ErrCodeValidationFailed)
	}
	if dto.ExpenseDate != nil && dto.ExpenseDate.After(time.Now()) {
		return internal.NewValidationFieldError("expense_date", "expense date cannot be in the future", internal.ErrCodeInvalidDate)
	}
	return nil
}

type RejectExpenseDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectExpenseDTO) Validate() error {
	if dto.Reason == "" {
		return internal.NewValidationFieldError("reason", "reason is required when rejecting an expense", internal.ErrCodeValidationFailed)
	}
	return nil
}
