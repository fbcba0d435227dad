package postgres

import (
	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal/worklog"
)

// WorkLogRepository implements the worklog.Repository interface using GORM
type WorkLogRepository struct {
	db *gorm.DB
}

func NewWorkLogRepository(db *gorm.DB) *WorkLogRepository {
	return &WorkLogRepository{db: db}
}

func (r *WorkLogRepository) Create(l *worklog.WorkLog) error {
	return r.db.Create(l).Error
}

func (r *WorkLogRepository) GetByID(id int64) (*worklog.WorkLog, error) {
	var l worklog.WorkLog
	err := r.db.Where("id = ?", id).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *WorkLogRepository) GetByProject(projectID int64, limit, offset int) ([]*worklog.WorkLog, error) {
	var logs []*worklog.WorkLog
	err := r.db.Where("project_id = ?", projectID).
		Order("log_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, err
}

func (r *WorkLogRepository) GetByUser(userID int64, limit, offset int) ([]*worklog.WorkLog, error) {
	var logs []*worklog.WorkLog
	err := r.db.Where("user_id = ?", userID).
		Order("log_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, err
}

func (r *WorkLogRepository) Update(l *worklog.WorkLog) error {
	return r.db.Save(l).Error
}

func (r *WorkLogRepository) Delete(id int64) error {
	return r.db.Delete(&worklog.WorkLog{}, id).Error
}
