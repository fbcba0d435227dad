package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal/invoice"
)

// InvoiceRepository implements the invoice.Repository interface using GORM
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(i *invoice.Invoice) error {
	return r.db.Create(i).Error
}

func (r *InvoiceRepository) GetByID(id int64) (*invoice.Invoice, error) {
	var i invoice.Invoice
	err := r.db.Where("id = ?", id).First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InvoiceRepository) GetByProject(projectID int64) ([]*invoice.Invoice, error) {
	var invoices []*invoice.Invoice
	err := r.db.Where("project_id = ?", projectID).
		Order("issue_date DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) GetAll(limit, offset int) ([]*invoice.Invoice, error) {
	var invoices []*invoice.Invoice
	err := r.db.Order("issue_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) GetByStatus(status string, limit, offset int) ([]*invoice.Invoice, error) {
	var invoices []*invoice.Invoice
	err := r.db.Where("status = ?", status).
		Order("due_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) Update(i *invoice.Invoice) error {
	return r.db.Save(i).Error
}

// NextSequence numbers invoices per calendar year. The upsert bumps the
// counter row in a single statement, so interleaved creates each get a
// distinct value instead of racing a count.
func (r *InvoiceRepository) NextSequence(year int) (int64, error) {
	var seq int64
	err := r.db.Raw(`
		INSERT INTO invoice_sequences (year, value)
		VALUES (?, 1)
		ON CONFLICT (year) DO UPDATE SET value = invoice_sequences.value + 1
		RETURNING value`, year).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *InvoiceRepository) PromoteOverdue(asOf time.Time) (int64, error) {
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	result := r.db.Model(&invoice.Invoice{}).
		Where("status = ? AND due_date < ?", invoice.StatusSent, day).
		Updates(map[string]interface{}{
			"status":     invoice.StatusOverdue,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *InvoiceRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&invoice.Invoice{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
