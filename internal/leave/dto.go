package leave

import (
	"time"

	internal "github.com/buildtrack/construction-api/internal"
)

type CreateLeaveDTO struct {
	LeaveType string    `json:"leave_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
}

func (d *CreateLeaveDTO) Validate() error {
	if !ValidType(d.LeaveType) {
		return internal.NewValidationFieldError("leave_type", "Unknown leave type", internal.ErrCodeValidationFailed)
	}
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return internal.NewValidationFieldError("start_date", "Start and end dates are required", internal.ErrCodeValidationFailed)
	}
	if d.EndDate.Before(d.StartDate) {
		return internal.NewValidationFieldError("end_date", "End date cannot be before start date", internal.ErrCodeInvalidDateRange)
	}
	return nil
}

type ReviewLeaveDTO struct {
	Note string `json:"note"`
}
