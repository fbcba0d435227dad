package project

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is a construction project owned by a manager on behalf of a
// client. Budget consumption is derived from approved expenses, never
// stored on the row.
type Project struct {
	ID          int64            `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"not null"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	StartDate   *time.Time       `json:"start_date,omitempty" gorm:"column:start_date;type:date"`
	EndDate     *time.Time       `json:"end_date,omitempty" gorm:"column:end_date;type:date"`
	Status      string           `json:"status" gorm:"default:PLANNING"`
	TotalBudget *decimal.Decimal `json:"total_budget,omitempty" gorm:"column:total_budget;type:numeric(15,2)"`
	ManagerID   int64            `json:"manager_id" gorm:"column:manager_id;not null"`
	ClientID    int64            `json:"client_id" gorm:"column:client_id"`
	IsActive    bool             `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

const (
	StatusPlanning   = "PLANNING"
	StatusInProgress = "IN_PROGRESS"
	StatusOnHold     = "ON_HOLD"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPlanning, StatusInProgress, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (p *Project) IsTerminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusCancelled
}
