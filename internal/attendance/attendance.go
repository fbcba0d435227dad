package attendance

import (
	"time"
)

// Attendance records one working day for a user. A check-in after the
// configured cutoff is marked LATE; checking out moves the record to
// DEPARTED (or HALF_DAY for short days) and fixes the hours worked.
type Attendance struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	UserID       int64      `json:"user_id" gorm:"column:user_id;not null"`
	Date         time.Time  `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date"`
	CheckInTime  time.Time  `json:"check_in_time" gorm:"column:check_in_time;not null"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty" gorm:"column:check_out_time"`
	Status       string     `json:"status" gorm:"not null"`
	HoursWorked  *float64   `json:"hours_worked,omitempty" gorm:"column:hours_worked"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendance_records"
}

const (
	StatusPresent  = "PRESENT"
	StatusLate     = "LATE"
	StatusHalfDay  = "HALF_DAY"
	StatusDeparted = "DEPARTED"

	// Derived in reports; no attendance row carries these.
	StatusAbsent  = "ABSENT"
	StatusOnLeave = "ON_LEAVE"
)

// halfDayHours is the minimum worked time a checkout must reach to count
// as a full day.
const halfDayHours = 4.0

func (a *Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}

// CheckOut stamps the departure time and derives hours worked from the
// elapsed minutes so partial hours come out fractional. Leaving before
// four hours marks the day HALF_DAY instead of DEPARTED.
func (a *Attendance) CheckOut(at time.Time) {
	minutes := at.Sub(a.CheckInTime).Minutes()
	hours := minutes / 60.0
	a.CheckOutTime = &at
	a.HoursWorked = &hours
	if hours < halfDayHours {
		a.Status = StatusHalfDay
	} else {
		a.Status = StatusDeparted
	}
	a.UpdatedAt = at
}

// StatusForCheckIn classifies a check-in against the cutoff on the same
// day. Exactly on the cutoff still counts as PRESENT.
func StatusForCheckIn(at time.Time, cutoffHour, cutoffMinute int) string {
	cutoff := time.Date(at.Year(), at.Month(), at.Day(), cutoffHour, cutoffMinute, 0, 0, at.Location())
	if at.After(cutoff) {
		return StatusLate
	}
	return StatusPresent
}
