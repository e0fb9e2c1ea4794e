package utils

import (
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"bazario_back_end/internal/config"
)

// Mailer envoie un e-mail HTML. Interface pour pouvoir brancher un faux
// envoyeur dans les tests.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer implémente Mailer via go-mail.
type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.cfg.SMTPFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.SMTPUsername),
		mail.WithPassword(m.cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// ActivationEmailHTML génère le corps de l'e-mail d'activation de compte.
func ActivationEmailHTML(name, activationURL string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Activate your account</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Welcome to Bazario</h2>
		<p>Hello %s,</p>
		<p>Please click the link below to activate your account. The link expires in 15 minutes.</p>
		<p style="margin: 24px 0;">
			<a href="%s" style="background-color: #3321c8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px;">Activate my account</a>
		</p>
		<p style="color: #888; font-size: 12px;">If you did not create this account, you can ignore this e-mail.</p>
	</div>
</body>
</html>`, name, activationURL)
}
