package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	internal "github.com/buildtrack/construction-api/internal"
)

type CreateInvoiceDTO struct {
	ProjectID   int64           `json:"project_id"`
	ClientID    *int64          `json:"client_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Description string          `json:"description"`
	IssueDate   *time.Time      `json:"issue_date,omitempty"`
	DueDate     time.Time       `json:"due_date"`
}

func (d *CreateInvoiceDTO) Validate() error {
	if d.ProjectID <= 0 {
		return internal.NewValidationFieldError("project_id", "Project is required", internal.ErrCodeValidationFailed)
	}
	if d.Amount.IsNegative() {
		return internal.NewValidationFieldError("amount", "Amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	if d.TaxAmount.IsNegative() {
		return internal.NewValidationFieldError("tax_amount", "Tax amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	if d.DueDate.IsZero() {
		return internal.NewValidationFieldError("due_date", "Due date is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateInvoiceDTO struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	TaxAmount   *decimal.Decimal `json:"tax_amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
}

func (d *UpdateInvoiceDTO) Validate() error {
	if d.Amount != nil && d.Amount.IsNegative() {
		return internal.NewValidationFieldError("amount", "Amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	if d.TaxAmount != nil && d.TaxAmount.IsNegative() {
		return internal.NewValidationFieldError("tax_amount", "Tax amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	return nil
}
