package postgres

import (
	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal/task"
)

// TaskRepository implements the task.Repository interface using GORM
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *task.Task) error {
	return r.db.Create(t).Error
}

func (r *TaskRepository) GetByID(id int64) (*task.Task, error) {
	var t task.Task
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) GetByProject(projectID int64) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) GetByAssignee(userID int64, limit, offset int) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.Where("assigned_to = ?", userID).
		Order("due_date ASC NULLS LAST, created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) GetAll(limit, offset int) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(t *task.Task) error {
	return r.db.Save(t).Error
}

func (r *TaskRepository) Delete(id int64) error {
	return r.db.Delete(&task.Task{}, id).Error
}

func (r *TaskRepository) CountByProject(projectID int64) (total int64, completed int64, err error) {
	if err = r.db.Model(&task.Task{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.Model(&task.Task{}).
		Where("project_id = ? AND status = ?", projectID, task.StatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

func (r *TaskRepository) CountByAssignee(userID int64) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := r.db.Model(&task.Task{}).
		Select("status, COUNT(*) as count").
		Where("assigned_to = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
