package mailer

import "log"

// Mailer sends a templated email. Delivery is an external collaborator;
// the OTP flow only needs this much surface.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// LogMailer writes outgoing mail to the log instead of delivering it.
// Used in development and tests; production wires a real provider here.
type LogMailer struct{}

// Send logs the mail and always succeeds.
func (LogMailer) Send(to, subject, htmlBody string) error {
	log.Printf("[mail] to=%s subject=%q body=%d bytes", to, subject, len(htmlBody))
	return nil
}
