package task

import (
	"time"

	internal "github.com/buildtrack/construction-api/internal"
)

type CreateTaskDTO struct {
	ProjectID   int64      `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssignedTo  *int64     `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (d *CreateTaskDTO) Validate() error {
	if d.ProjectID <= 0 {
		return internal.NewValidationFieldError("project_id", "Project is required", internal.ErrCodeValidationFailed)
	}
	if d.Title == "" {
		return internal.NewValidationFieldError("title", "Title is required", internal.ErrCodeValidationFailed)
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if !ValidPriority(d.Priority) {
		return internal.NewValidationFieldError("priority", "Priority must be one of LOW, MEDIUM, HIGH, URGENT", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateTaskDTO struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	AssignedTo  *int64     `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (d *UpdateTaskDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return internal.NewValidationFieldError("title", "Title cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Priority != nil && !ValidPriority(*d.Priority) {
		return internal.NewValidationFieldError("priority", "Priority must be one of LOW, MEDIUM, HIGH, URGENT", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateTaskStatusDTO struct {
	Status string `json:"status"`
}

// TaskResponse decorates a task with its computed overdue flag.
type TaskResponse struct {
	*Task
	Overdue bool `json:"overdue"`
}

func NewTaskResponse(t *Task) TaskResponse {
	return TaskResponse{Task: t, Overdue: t.IsOverdue(time.Now())}
}

func NewTaskResponses(tasks []*Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}

func (d *UpdateTaskStatusDTO) Validate() error {
	if !ValidStatus(d.Status) {
		return internal.NewValidationError("unknown task status", internal.ErrCodeInvalidStatus)
	}
	return nil
}
