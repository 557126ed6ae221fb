package domain

// EmailSender defines the interface for sending emails. Implementations
// include a console logger for development and the Resend HTTP API.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}
