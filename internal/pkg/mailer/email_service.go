package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendFollowUp(toEmail, question, guidance, serviceName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendFollowUp(toEmail, question, guidance, serviceName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "A follow-up on your guidance session")

	body := fmt.Sprintf(`
		<div style="font-family: Georgia, serif; padding: 20px; color: #333;">
			<h2>How has your journey unfolded?</h2>
			<p>A few days ago you asked through our %s service:</p>
			<blockquote style="border-left: 3px solid #8e44ad; padding-left: 12px; color: #555;">%s</blockquote>
			<p>The guidance you received:</p>
			<div style="background: #faf7fd; padding: 12px; border-radius: 6px;">%s</div>
			<p>If the suggested practice resonated, keep it going. If new questions surfaced, we are here.</p>
		</div>
	`, serviceName, question, guidance)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send follow-up to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Follow-up sent to %s\n", toEmail)
	return nil
}
