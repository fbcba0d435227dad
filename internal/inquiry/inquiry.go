package inquiry

import (
	"time"
)

// Inquiry is a prospective client's question, submitted without an
// account. Staff respond once, then close the thread.
type Inquiry struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	ClientName   string     `json:"client_name" gorm:"column:client_name;not null"`
	ClientEmail  string     `json:"client_email" gorm:"column:client_email;not null"`
	ClientPhone  string     `json:"client_phone,omitempty" gorm:"column:client_phone"`
	Subject      string     `json:"subject" gorm:"not null"`
	Message      string     `json:"message" gorm:"not null"`
	Status       string     `json:"status" gorm:"default:OPEN"`
	ResponseText string     `json:"response_text,omitempty" gorm:"column:response_text"`
	RespondedAt  *time.Time `json:"responded_at,omitempty" gorm:"column:responded_at"`
	RespondedBy  *int64     `json:"responded_by,omitempty" gorm:"column:responded_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}

const (
	StatusOpen      = "OPEN"
	StatusResponded = "RESPONDED"
	StatusClosed    = "CLOSED"
)

func (i *Inquiry) Respond(responderID int64, text string) {
	now := time.Now()
	i.ResponseText = text
	i.RespondedAt = &now
	i.RespondedBy = &responderID
	i.Status = StatusResponded
	i.UpdatedAt = now
}

func (i *Inquiry) Close() {
	i.Status = StatusClosed
	i.UpdatedAt = time.Now()
}
