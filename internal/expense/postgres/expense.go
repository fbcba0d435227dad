package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal/expense"
)

// ExpenseRepository implements the expense.Repository interface using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(e *expense.Expense) error {
	return r.db.Create(e).Error
}

func (r *ExpenseRepository) GetByID(id int64) (*expense.Expense, error) {
	var e expense.Expense
	err := r.db.Where("id = ?", id).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) GetByProject(projectID int64) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetBySubmitter(userID int64, limit, offset int) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Where("submitted_by = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetByStatus(status string, limit, offset int) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Where("status = ?", status).
		Order("created_at ASC"). // FIFO for approvals
		Limit(limit).
		Offset(offset).
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetAll(limit, offset int) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) Update(e *expense.Expense) error {
	e.UpdatedAt = time.Now()
	return r.db.Save(e).Error
}

// TotalApprovedByProject sums APPROVED and PAID amounts for a project.
func (r *ExpenseRepository) TotalApprovedByProject(projectID int64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&expense.Expense{}).
		Select("SUM(amount)").
		Where("project_id = ? AND status IN ?", projectID, []string{expense.StatusApproved, expense.StatusPaid}).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *ExpenseRepository) ApprovedTotalsByCategory(projectID int64) (map[string]decimal.Decimal, error) {
	type row struct {
		Category string
		Total    decimal.Decimal
	}

	var rows []row
	err := r.db.Model(&expense.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("project_id = ? AND status IN ?", projectID, []string{expense.StatusApproved, expense.StatusPaid}).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		totals[r.Category] = r.Total
	}
	return totals, nil
}

func (r *ExpenseRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&expense.Expense{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ExpenseRepository) SumByStatus(status string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&expense.Expense{}).
		Select("SUM(amount)").
		Where("status = ?", status).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
