package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal/leave"
)

// LeaveRepository implements the leave.Repository interface using GORM
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(l *leave.LeaveRequest) error {
	return r.db.Create(l).Error
}

func (r *LeaveRepository) GetByID(id int64) (*leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := r.db.Where("id = ?", id).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeaveRepository) GetByUser(userID int64, limit, offset int) ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) GetByStatus(status string, limit, offset int) ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	err := r.db.Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) GetAll(limit, offset int) ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) Update(l *leave.LeaveRequest) error {
	return r.db.Save(l).Error
}

func (r *LeaveRepository) Delete(id int64) error {
	return r.db.Delete(&leave.LeaveRequest{}, id).Error
}

func (r *LeaveRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&leave.LeaveRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountApprovedOn counts staff with an approved leave spanning the day,
// used by the attendance daily summary.
func (r *LeaveRepository) CountApprovedOn(date time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&leave.LeaveRequest{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?", leave.StatusApproved, date, date).
		Count(&count).Error
	return count, err
}
