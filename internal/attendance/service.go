package attendance

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal"
)

type Repository interface {
	Create(a *Attendance) error
	GetByUserAndDate(userID int64, date time.Time) (*Attendance, error)
	GetByUser(userID int64, limit, offset int) ([]*Attendance, error)
	GetByDate(date time.Time) ([]*Attendance, error)
	GetByUserAndRange(userID int64, from, to time.Time) ([]*Attendance, error)
	Update(a *Attendance) error
}

// StaffCounter sizes the active workforce, so the daily summary can tell
// absentees from people who simply have no record yet.
type StaffCounter interface {
	CountActive() (int64, error)
}

// LeaveCalendar reports how many users have an approved leave covering a
// given day.
type LeaveCalendar interface {
	CountApprovedOn(date time.Time) (int64, error)
}

type Service struct {
	repo         Repository
	staff        StaffCounter
	leaves       LeaveCalendar
	cutoffHour   int
	cutoffMinute int
	logger       *slog.Logger
}

func NewService(repo Repository, staff StaffCounter, leaves LeaveCalendar, cfg internal.SchedulerConfig, logger *slog.Logger) *Service {
	hour, minute := cfg.CutoffTime()
	return &Service{
		repo:         repo,
		staff:        staff,
		leaves:       leaves,
		cutoffHour:   hour,
		cutoffMinute: minute,
		logger:       logger,
	}
}

var (
	ErrNoAttendanceRecord = internal.NewNotFoundError("No attendance record for today", internal.ErrCodeNoAttendanceRecord)
	ErrAlreadyCheckedOut  = internal.NewValidationError("already checked out today", internal.ErrCodeAlreadyCheckedOut)
)

// CheckIn opens today's attendance record. A second check-in on the same
// day returns the existing record unchanged.
func (s *Service) CheckIn(principal internal.Principal) (*Attendance, error) {
	now := time.Now()
	today := truncateToDay(now)

	existing, err := s.repo.GetByUserAndDate(principal.UserID, today)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	a := &Attendance{
		UserID:      principal.UserID,
		Date:        today,
		CheckInTime: now,
		Status:      StatusForCheckIn(now, s.cutoffHour, s.cutoffMinute),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to record check-in", "error", err, "user_id", principal.UserID)
		return nil, err
	}

	s.logger.Info("user checked in", "user_id", principal.UserID, "status", a.Status)
	return a, nil
}

// CheckOut closes today's record. It requires an open check-in.
func (s *Service) CheckOut(principal internal.Principal) (*Attendance, error) {
	now := time.Now()
	today := truncateToDay(now)

	a, err := s.repo.GetByUserAndDate(principal.UserID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAttendanceRecord
		}
		return nil, err
	}
	if a.CheckedOut() {
		return nil, ErrAlreadyCheckedOut
	}

	a.CheckOut(now)

	if err := s.repo.Update(a); err != nil {
		return nil, err
	}

	s.logger.Info("user checked out",
		"user_id", principal.UserID,
		"hours_worked", *a.HoursWorked)
	return a, nil
}

func (s *Service) Today(principal internal.Principal) (*Attendance, error) {
	a, err := s.repo.GetByUserAndDate(principal.UserID, truncateToDay(time.Now()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAttendanceRecord
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) History(principal internal.Principal, limit, offset int) ([]*Attendance, error) {
	return s.repo.GetByUser(principal.UserID, limit, offset)
}

// HistoryForUser lets HR and admins inspect any user's attendance.
func (s *Service) HistoryForUser(userID int64, principal internal.Principal, limit, offset int) ([]*Attendance, error) {
	if userID != principal.UserID && !principal.HasRole(internal.RoleHRExecutive, internal.RoleAdmin) {
		return nil, internal.NewForbiddenError("HR role required", internal.ErrCodeUnauthorizedAccess)
	}
	return s.repo.GetByUser(userID, limit, offset)
}

func (s *Service) DailyReport(date time.Time, principal internal.Principal) ([]*Attendance, error) {
	if !principal.HasRole(internal.RoleHRExecutive, internal.RoleProjectManager, internal.RoleAdmin) {
		return nil, internal.NewForbiddenError("HR or manager role required", internal.ErrCodeUnauthorizedAccess)
	}
	return s.repo.GetByDate(truncateToDay(date))
}

// DailySummary breaks the workforce down for one day. ABSENT is derived:
// active staff minus everyone with a record minus everyone on approved
// leave.
type DailySummary struct {
	Present  int64 `json:"present"`
	Late     int64 `json:"late"`
	HalfDay  int64 `json:"half_day"`
	Departed int64 `json:"departed"`
	OnLeave  int64 `json:"on_leave"`
	Absent   int64 `json:"absent"`
}

func (s *Service) DailySummary(date time.Time, principal internal.Principal) (*DailySummary, error) {
	if !principal.HasRole(internal.RoleHRExecutive, internal.RoleProjectManager, internal.RoleAdmin) {
		return nil, internal.NewForbiddenError("HR or manager role required", internal.ErrCodeUnauthorizedAccess)
	}

	day := truncateToDay(date)
	records, err := s.repo.GetByDate(day)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{}
	for _, a := range records {
		switch a.Status {
		case StatusPresent:
			summary.Present++
		case StatusLate:
			summary.Late++
		case StatusHalfDay:
			summary.HalfDay++
		case StatusDeparted:
			summary.Departed++
		}
	}

	summary.OnLeave, err = s.leaves.CountApprovedOn(day)
	if err != nil {
		return nil, err
	}

	active, err := s.staff.CountActive()
	if err != nil {
		return nil, err
	}

	summary.Absent = active - int64(len(records)) - summary.OnLeave
	if summary.Absent < 0 {
		summary.Absent = 0
	}

	return summary, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
