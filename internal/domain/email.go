package domain

import "context"

// OutgoingEmail is one rendered message. Either body may be empty, not both.
type OutgoingEmail struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers rendered messages (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg *OutgoingEmail) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationConfirmationEmailData holds data for the registration confirmation email.
type RegistrationConfirmationEmailData struct {
	Email      string
	Name       string
	EventTitle string
	Location   string
	StartDate  string
	Tickets    int
	TotalPrice string
	Token      string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationConfirmationEmailData) error
}
