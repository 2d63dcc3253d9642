// Package mail delivers transactional email over SMTP.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config captures the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer sends mail through a configured SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// SendResetPin emails a password-reset PIN. The plain-text part carries the
// same content as the HTML part for clients that strip markup.
func (m *Mailer) SendResetPin(to, pin string) error {
	body := fmt.Sprintf("Your verification PIN is: %s. This PIN will expire in 15 minutes.", pin)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2 style="margin: 0 0 20px;">Trang Trại Gà</h2>
  <p>Your verification PIN is: <strong>%s</strong>. This PIN will expire in 15 minutes.</p>
</div>`, pin)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Verification")
	msg.SetBody("text/plain", body)
	msg.AddAlternative("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
