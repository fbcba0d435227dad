package task

import (
	"time"
)

// Task is a unit of work inside a project. CompletedAt is set exactly
// when the status moves to COMPLETED and cleared when it moves away.
type Task struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	ProjectID   int64      `json:"project_id" gorm:"column:project_id;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status" gorm:"default:PENDING"`
	Priority    string     `json:"priority" gorm:"default:MEDIUM"`
	AssignedTo  *int64     `json:"assigned_to,omitempty" gorm:"column:assigned_to"`
	CreatedBy   int64      `json:"created_by" gorm:"column:created_by;not null"`
	DueDate     *time.Time `json:"due_date,omitempty" gorm:"column:due_date;type:date"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"column:completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// IsOverdue reports whether the due date has passed while the task is
// still open. Tasks without a due date never fall overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == StatusCompleted || t.Status == StatusCancelled {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(today)
}

// SetStatus keeps CompletedAt in lockstep with the COMPLETED status.
func (t *Task) SetStatus(status string) {
	now := time.Now()
	if status == StatusCompleted && t.Status != StatusCompleted {
		t.CompletedAt = &now
	}
	if status != StatusCompleted {
		t.CompletedAt = nil
	}
	t.Status = status
	t.UpdatedAt = now
}
