package inquiry

import (
	"strings"

	internal "github.com/buildtrack/construction-api/internal"
)

type CreateInquiryDTO struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

func (d *CreateInquiryDTO) Validate() error {
	if d.ClientName == "" {
		return internal.NewValidationFieldError("client_name", "Name is required", internal.ErrCodeValidationFailed)
	}
	if d.ClientEmail == "" || !strings.Contains(d.ClientEmail, "@") {
		return internal.NewValidationFieldError("client_email", "A valid email is required", internal.ErrCodeValidationFailed)
	}
	if d.Subject == "" {
		return internal.NewValidationFieldError("subject", "Subject is required", internal.ErrCodeValidationFailed)
	}
	if d.Message == "" {
		return internal.NewValidationFieldError("message", "Message is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RespondInquiryDTO struct {
	ResponseText string `json:"response_text"`
}

func (d *RespondInquiryDTO) Validate() error {
	if d.ResponseText == "" {
		return internal.NewValidationFieldError("response_text", "Response text is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
