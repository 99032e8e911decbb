package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, fullName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderName, clientURL string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendWelcome(toEmail, fullName string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to SmartNotes")
	m.SetBody("text/html", welcomeBody(fullName, s.clientURL))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome email to %s: %w", toEmail, err)
	}
	return nil
}

func welcomeBody(fullName, clientURL string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>Your SmartNotes account is ready. Start capturing ideas, meetings and snippets.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open SmartNotes</a>
		</div>
	`, fullName, clientURL)
}

// NopEmailService is used when SMTP is not configured.
type NopEmailService struct{}

func (NopEmailService) SendWelcome(string, string) error { return nil }
