package worklog

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkLog is a daily site log: what was done on a project, by whom, and
// for how many hours. Only the author may edit or remove an entry.
type WorkLog struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	ProjectID   int64           `json:"project_id" gorm:"column:project_id;not null"`
	TaskID      *int64          `json:"task_id,omitempty" gorm:"column:task_id"`
	UserID      int64           `json:"user_id" gorm:"column:user_id;not null"`
	LogDate     time.Time       `json:"log_date" gorm:"column:log_date;type:date;not null"`
	HoursWorked decimal.Decimal `json:"hours_worked" gorm:"column:hours_worked;type:numeric(5,2);not null"`
	Description string          `json:"description" gorm:"not null"`
	Weather     string          `json:"weather,omitempty"`
	Blockers    string          `json:"blockers,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (WorkLog) TableName() string {
	return "work_logs"
}
