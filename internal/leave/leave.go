package leave

import (
	"time"
)

// LeaveRequest is an employee absence request. Only PENDING requests can
// be reviewed, and only the requester may withdraw one while it is still
// PENDING.
type LeaveRequest struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	UserID     int64      `json:"user_id" gorm:"column:user_id;not null"`
	LeaveType  string     `json:"leave_type" gorm:"column:leave_type;not null"`
	StartDate  time.Time  `json:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate    time.Time  `json:"end_date" gorm:"column:end_date;type:date;not null"`
	Reason     string     `json:"reason,omitempty"`
	Status     string     `json:"status" gorm:"default:PENDING"`
	ReviewedBy *int64     `json:"reviewed_by,omitempty" gorm:"column:reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty" gorm:"column:reviewed_at"`
	ReviewNote string     `json:"review_note,omitempty" gorm:"column:review_note"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	TypeSick      = "SICK"
	TypeCasual    = "CASUAL"
	TypeAnnual    = "ANNUAL"
	TypeUnpaid    = "UNPAID"
	TypeMaternity = "MATERNITY"
	TypePaternity = "PATERNITY"
)

func ValidType(t string) bool {
	switch t {
	case TypeSick, TypeCasual, TypeAnnual, TypeUnpaid, TypeMaternity, TypePaternity:
		return true
	}
	return false
}

func (l *LeaveRequest) IsPending() bool {
	return l.Status == StatusPending
}

// Days counts the inclusive span of the request.
func (l *LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

func (l *LeaveRequest) Approve(reviewerID int64, note string) {
	now := time.Now()
	l.Status = StatusApproved
	l.ReviewedBy = &reviewerID
	l.ReviewedAt = &now
	l.ReviewNote = note
	l.UpdatedAt = now
}

func (l *LeaveRequest) Reject(reviewerID int64, note string) {
	now := time.Now()
	l.Status = StatusRejected
	l.ReviewedBy = &reviewerID
	l.ReviewedAt = &now
	l.ReviewNote = note
	l.UpdatedAt = now
}
