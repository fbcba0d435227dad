package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a cost submitted against a project by a staff member. It
// moves PENDING -> APPROVED -> PAID, or PENDING -> REJECTED; REJECTED and
// PAID are terminal.
type Expense struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	ProjectID       int64           `json:"project_id" gorm:"column:project_id;not null"`
	SubmittedBy     int64           `json:"submitted_by" gorm:"column:submitted_by;not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:numeric(15,2);not null"`
	Category        string          `json:"category" gorm:"not null"`
	Description     string          `json:"description"`
	ExpenseDate     time.Time       `json:"expense_date" gorm:"column:expense_date;type:date"`
	Status          string          `json:"status" gorm:"default:PENDING"`
	ApprovedBy      *int64          `json:"approved_by,omitempty" gorm:"column:approved_by"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty" gorm:"column:approved_at"`
	RejectionReason string          `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	PaidAt          *time.Time      `json:"paid_at,omitempty" gorm:"column:paid_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusPaid     = "PAID"
)

var Categories = []string{
	"MATERIALS",
	"LABOR",
	"EQUIPMENT",
	"TRANSPORTATION",
	"UTILITIES",
	"PERMITS",
	"INSURANCE",
	"OTHER",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func (e *Expense) CanBeApproved() bool {
	return e.Status == StatusPending
}

func (e *Expense) CanBeRejected() bool {
	return e.Status == StatusPending
}

func (e *Expense) CanBePaid() bool {
	return e.Status == StatusApproved
}

// CountsTowardBudget reports whether the expense feeds budget-utilization
// aggregation.
func (e *Expense) CountsTowardBudget() bool {
	return e.Status == StatusApproved || e.Status == StatusPaid
}

func (e *Expense) Approve(approverID int64) {
	now := time.Now()
	e.Status = StatusApproved
	e.ApprovedBy = &approverID
	e.ApprovedAt = &now
	e.UpdatedAt = now
}

func (e *Expense) Reject(approverID int64, reason string) {
	now := time.Now()
	e.Status = StatusRejected
	e.ApprovedBy = &approverID
	e.ApprovedAt = &now
	e.RejectionReason = reason
	e.UpdatedAt = now
}

func (e *Expense) MarkPaid() {
	now := time.Now()
	e.Status = StatusPaid
	e.PaidAt = &now
	e.UpdatedAt = now
}
