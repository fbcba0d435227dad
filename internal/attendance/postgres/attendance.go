package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal/attendance"
)

// AttendanceRepository implements the attendance.Repository interface using GORM
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(a *attendance.Attendance) error {
	return r.db.Create(a).Error
}

func (r *AttendanceRepository) GetByUserAndDate(userID int64, date time.Time) (*attendance.Attendance, error) {
	var a attendance.Attendance
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepository) GetByUser(userID int64, limit, offset int) ([]*attendance.Attendance, error) {
	var records []*attendance.Attendance
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) GetByDate(date time.Time) ([]*attendance.Attendance, error) {
	var records []*attendance.Attendance
	err := r.db.Where("date = ?", date).
		Order("check_in_time ASC").
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) GetByUserAndRange(userID int64, from, to time.Time) ([]*attendance.Attendance, error) {
	var records []*attendance.Attendance
	err := r.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) Update(a *attendance.Attendance) error {
	return r.db.Save(a).Error
}

func (r *AttendanceRepository) CountByDate(date time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&attendance.Attendance{}).Where("date = ?", date).Count(&count).Error
	return count, err
}
