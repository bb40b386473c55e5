package mail

import "log"

// Mailer is the outbound delivery channel for account emails. Implementations
// report a failed send as an error; callers decide how to surface it.
type Mailer interface {
	Send(to string, subject string, body string) error
}

// LogMailer writes messages to the process log instead of delivering them.
// It keeps local development working when SMTP is not configured.
type LogMailer struct{}

func (LogMailer) Send(to string, subject string, body string) error {
	log.Printf("mail (not sent, SMTP unconfigured) to=%s subject=%q body=%q", to, subject, body)
	return nil
}
