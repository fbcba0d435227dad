package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice bills a client for project work. DRAFT invoices can be edited
// freely; once SENT the amounts are fixed. A SENT invoice past its due
// date becomes OVERDUE, and PAID/CANCELLED are terminal.
type Invoice struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	ProjectID     int64           `json:"project_id" gorm:"column:project_id;not null"`
	InvoiceNumber string          `json:"invoice_number" gorm:"column:invoice_number;uniqueIndex;not null"`
	ClientID      *int64          `json:"client_id,omitempty" gorm:"column:client_id"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(15,2);not null"`
	TaxAmount     decimal.Decimal `json:"tax_amount" gorm:"column:tax_amount;type:numeric(15,2);not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"column:total_amount;type:numeric(15,2);not null"`
	Description   string          `json:"description,omitempty"`
	IssueDate     time.Time       `json:"issue_date" gorm:"column:issue_date;type:date;not null"`
	DueDate       time.Time       `json:"due_date" gorm:"column:due_date;type:date;not null"`
	Status        string          `json:"status" gorm:"default:DRAFT"`
	SentAt        *time.Time      `json:"sent_at,omitempty" gorm:"column:sent_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty" gorm:"column:paid_at"`
	CreatedBy     int64           `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceSequence is the per-year counter behind invoice numbering.
// Numbers are allocated by incrementing the counter row atomically, so
// concurrent creates never hand out the same sequence value.
type InvoiceSequence struct {
	Year  int   `gorm:"primaryKey;autoIncrement:false"`
	Value int64 `gorm:"not null"`
}

func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}

const (
	StatusDraft     = "DRAFT"
	StatusSent      = "SENT"
	StatusPaid      = "PAID"
	StatusOverdue   = "OVERDUE"
	StatusCancelled = "CANCELLED"
)

func (i *Invoice) IsTerminal() bool {
	return i.Status == StatusPaid || i.Status == StatusCancelled
}

func (i *Invoice) CanBeSent() bool {
	return i.Status == StatusDraft
}

func (i *Invoice) CanBePaid() bool {
	return i.Status == StatusSent || i.Status == StatusOverdue
}

func (i *Invoice) Send() {
	now := time.Now()
	i.Status = StatusSent
	i.SentAt = &now
	i.UpdatedAt = now
}

func (i *Invoice) MarkPaid() {
	now := time.Now()
	i.Status = StatusPaid
	i.PaidAt = &now
	i.UpdatedAt = now
}

func (i *Invoice) Cancel() {
	i.Status = StatusCancelled
	i.UpdatedAt = time.Now()
}
