package project

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal"
)

type CreateProjectDTO struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Location    string           `json:"location,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	TotalBudget *decimal.Decimal `json:"total_budget,omitempty"`
	ClientID    int64            `json:"client_id,omitempty"`
}

func (dto CreateProjectDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if dto.StartDate != nil && dto.EndDate != nil && dto.EndDate.Before(*dto.StartDate) {
		return internal.NewValidationError("end date must not be before start date", internal.ErrCodeInvalidDateRange)
	}
	if dto.TotalBudget != nil && dto.TotalBudget.IsNegative() {
		return internal.NewValidationError("budget cannot be negative", internal.ErrCodeInvalidAmount)
	}
	return nil
}

type UpdateProjectDTO struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Location    string           `json:"location,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	TotalBudget *decimal.Decimal `json:"total_budget,omitempty"`
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateStatusDTO) Validate() error {
	if !ValidStatus(dto.Status) {
		return internal.NewValidationError("unknown project status", internal.ErrCodeInvalidStatus)
	}
	return nil
}

// BudgetSummaryDTO is the finance view of a project's budget position.
type BudgetSummaryDTO struct {
	ProjectID             int64                      `json:"project_id"`
	ProjectName           string                     `json:"project_name"`
	TotalBudget           decimal.Decimal            `json:"total_budget"`
	TotalExpenses         decimal.Decimal            `json:"total_expenses"`
	RemainingBudget       decimal.Decimal            `json:"remaining_budget"`
	UtilizationPercentage decimal.Decimal            `json:"utilization_percentage"`
	ExpensesByCategory    map[string]decimal.Decimal `json:"expenses_by_category"`
}
