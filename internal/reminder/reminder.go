package reminder

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReminder tracks a payment obligation against a project, optionally
// linked to an approved expense. PENDING reminders past their due date are
// promoted to OVERDUE; a client payment submission parks the reminder in
// AWAITING_CONFIRMATION until finance confirms it, which settles it as
// PAID. PAID and CANCELLED are terminal.
type PaymentReminder struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	ProjectID        int64           `json:"project_id" gorm:"column:project_id;not null"`
	ExpenseID        *int64          `json:"expense_id,omitempty" gorm:"column:expense_id"`
	Description      string          `json:"description" gorm:"not null"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:numeric(15,2);not null"`
	DueDate          time.Time       `json:"due_date" gorm:"column:due_date;type:date;not null"`
	Recipient        string          `json:"recipient,omitempty"`
	RecipientContact string          `json:"recipient_contact,omitempty" gorm:"column:recipient_contact"`
	Status           string          `json:"status" gorm:"default:PENDING"`
	Priority         string          `json:"priority" gorm:"default:MEDIUM"`
	Notes            string          `json:"notes,omitempty"`
	CreatedBy        int64           `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	PaidAt *time.Time `json:"paid_at,omitempty" gorm:"column:paid_at"`
	PaidBy *int64     `json:"paid_by,omitempty" gorm:"column:paid_by"`

	// Client-side submission trail, filled when the reminder moves to
	// AWAITING_CONFIRMATION.
	IsClientSubmitted  bool       `json:"is_client_submitted" gorm:"column:is_client_submitted;default:false"`
	PaymentSubmitted   bool       `json:"payment_submitted" gorm:"column:payment_submitted;default:false"`
	PaymentSubmittedAt *time.Time `json:"payment_submitted_at,omitempty" gorm:"column:payment_submitted_at"`
	PaymentMethod      string     `json:"payment_method,omitempty" gorm:"column:payment_method"`
	TransactionID      string     `json:"transaction_id,omitempty" gorm:"column:transaction_id"`
	PaymentProofURL    string     `json:"payment_proof_url,omitempty" gorm:"column:payment_proof_url"`
	PaymentNotes       string     `json:"payment_notes,omitempty" gorm:"column:payment_notes"`

	PaymentConfirmed   bool       `json:"payment_confirmed" gorm:"column:payment_confirmed;default:false"`
	PaymentConfirmedAt *time.Time `json:"payment_confirmed_at,omitempty" gorm:"column:payment_confirmed_at"`
	PaymentConfirmedBy *int64     `json:"payment_confirmed_by,omitempty" gorm:"column:payment_confirmed_by"`
}

func (PaymentReminder) TableName() string {
	return "payment_reminders"
}

const (
	StatusPending              = "PENDING"
	StatusOverdue              = "OVERDUE"
	StatusAwaitingConfirmation = "AWAITING_CONFIRMATION"
	StatusPaid                 = "PAID"
	StatusCancelled            = "CANCELLED"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (r *PaymentReminder) IsTerminal() bool {
	return r.Status == StatusPaid || r.Status == StatusCancelled
}

// IsOverdue reports whether a PENDING reminder has slipped past its due
// date relative to the given day.
func (r *PaymentReminder) IsOverdue(today time.Time) bool {
	return r.Status == StatusPending && r.DueDate.Before(truncateToDay(today))
}

// SubmitPayment records the client's claim and parks the reminder until
// finance reviews it. An AWAITING_CONFIRMATION reminder is never promoted
// to OVERDUE; the ball is in finance's court.
func (r *PaymentReminder) SubmitPayment(method, transactionID, proofURL, notes string) {
	now := time.Now()
	r.Status = StatusAwaitingConfirmation
	r.PaymentSubmitted = true
	r.PaymentSubmittedAt = &now
	r.PaymentMethod = method
	r.TransactionID = transactionID
	r.PaymentProofURL = proofURL
	r.PaymentNotes = notes
	r.UpdatedAt = now
}

func (r *PaymentReminder) ConfirmPayment(confirmedBy int64) {
	now := time.Now()
	r.PaymentConfirmed = true
	r.PaymentConfirmedAt = &now
	r.PaymentConfirmedBy = &confirmedBy
	r.Status = StatusPaid
	r.PaidAt = &now
	r.PaidBy = &confirmedBy
	r.UpdatedAt = now
}

func (r *PaymentReminder) MarkPaid(paidBy int64) {
	now := time.Now()
	r.Status = StatusPaid
	r.PaidAt = &now
	r.PaidBy = &paidBy
	r.UpdatedAt = now
}

func (r *PaymentReminder) Cancel() {
	r.Status = StatusCancelled
	r.UpdatedAt = time.Now()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
