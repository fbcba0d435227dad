package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal/reminder"
)

// ReminderRepository implements the reminder.Repository interface using GORM
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(p *reminder.PaymentReminder) error {
	return r.db.Create(p).Error
}

func (r *ReminderRepository) GetByID(id int64) (*reminder.PaymentReminder, error) {
	var p reminder.PaymentReminder
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ReminderRepository) GetAll(limit, offset int) ([]*reminder.PaymentReminder, error) {
	var reminders []*reminder.PaymentReminder
	err := r.db.Order("due_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&reminders).Error
	return reminders, err
}

func (r *ReminderRepository) GetByProject(projectID int64) ([]*reminder.PaymentReminder, error) {
	var reminders []*reminder.PaymentReminder
	err := r.db.Where("project_id = ?", projectID).
		Order("due_date ASC").
		Find(&reminders).Error
	return reminders, err
}

func (r *ReminderRepository) GetByStatus(status string, limit, offset int) ([]*reminder.PaymentReminder, error) {
	var reminders []*reminder.PaymentReminder
	err := r.db.Where("status = ?", status).
		Order("due_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&reminders).Error
	return reminders, err
}

func (r *ReminderRepository) Update(p *reminder.PaymentReminder) error {
	return r.db.Save(p).Error
}

func (r *ReminderRepository) Delete(id int64) error {
	return r.db.Delete(&reminder.PaymentReminder{}, id).Error
}

// PromoteOverdue is a single conditional UPDATE; concurrent callers race
// harmlessly because only rows still PENDING match the predicate.
func (r *ReminderRepository) PromoteOverdue(asOf time.Time) (int64, error) {
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	result := r.db.Model(&reminder.PaymentReminder{}).
		Where("status = ? AND due_date < ?", reminder.StatusPending, day).
		Updates(map[string]interface{}{
			"status":     reminder.StatusOverdue,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *ReminderRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&reminder.PaymentReminder{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
