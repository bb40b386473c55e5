package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
)

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
}

func NewSMTPMailer(host string, port string, username string, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

// Send delivers a plain-text message over implicit TLS (port 465 style).
func (mailer *SMTPMailer) Send(to string, subject string, body string) error {
	message := buildMessage(mailer.username, to, subject, body)

	serverAddr := mailer.host + ":" + mailer.port
	tlsConfig := &tls.Config{ServerName: mailer.host}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("dial smtp server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, mailer.host)
	if err != nil {
		return fmt.Errorf("open smtp session: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", mailer.username, mailer.password, mailer.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(mailer.username); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("open message body: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		return fmt.Errorf("write message body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close message body: %w", err)
	}

	return nil
}

func buildMessage(from string, to string, subject string, body string) []byte {
	return []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)
}
