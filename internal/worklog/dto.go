package worklog

import (
	"time"

	"github.com/shopspring/decimal"

	internal "github.com/buildtrack/construction-api/internal"
)

var maxDailyHours = decimal.NewFromInt(24)

type CreateWorkLogDTO struct {
	ProjectID   int64           `json:"project_id"`
	TaskID      *int64          `json:"task_id,omitempty"`
	LogDate     *time.Time      `json:"log_date,omitempty"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
	Description string          `json:"description"`
	Weather     string          `json:"weather"`
	Blockers    string          `json:"blockers"`
}

func (d *CreateWorkLogDTO) Validate() error {
	if d.ProjectID <= 0 {
		return internal.NewValidationFieldError("project_id", "Project is required", internal.ErrCodeValidationFailed)
	}
	if d.Description == "" {
		return internal.NewValidationFieldError("description", "Description is required", internal.ErrCodeValidationFailed)
	}
	if d.HoursWorked.IsNegative() {
		return internal.NewValidationFieldError("hours_worked", "Hours worked cannot be negative", internal.ErrCodeValidationFailed)
	}
	if d.HoursWorked.GreaterThan(maxDailyHours) {
		return internal.NewValidationFieldError("hours_worked", "Hours worked cannot exceed 24", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateWorkLogDTO struct {
	HoursWorked *decimal.Decimal `json:"hours_worked,omitempty"`
	Description *string          `json:"description,omitempty"`
	Weather     *string          `json:"weather,omitempty"`
	Blockers    *string          `json:"blockers,omitempty"`
}

func (d *UpdateWorkLogDTO) Validate() error {
	if d.HoursWorked != nil {
		if d.HoursWorked.IsNegative() {
			return internal.NewValidationFieldError("hours_worked", "Hours worked cannot be negative", internal.ErrCodeValidationFailed)
		}
		if d.HoursWorked.GreaterThan(maxDailyHours) {
			return internal.NewValidationFieldError("hours_worked", "Hours worked cannot exceed 24", internal.ErrCodeValidationFailed)
		}
	}
	if d.Description != nil && *d.Description == "" {
		return internal.NewValidationFieldError("description", "Description cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
