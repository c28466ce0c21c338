package email

import (
	"context"
	"fmt"
	"log"

	mail "github.com/wneessen/go-mail"
)

const defaultSMTPPort = 587

type smtpMailer struct {
	client      *mail.Client
	fromAddress string
	fromName    string
}

func newSMTPMailer(config MailerConfig) (*smtpMailer, error) {
	sc := config.SMTP
	if sc.Host == "" {
		return nil, fmt.Errorf("smtp host is not set")
	}
	port := sc.Port
	if port == 0 {
		port = defaultSMTPPort
	}
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if sc.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(sc.Username),
			mail.WithPassword(sc.Password),
		)
	}
	client, err := mail.NewClient(sc.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &smtpMailer{client: client, fromAddress: config.FromAddress, fromName: config.FromName}, nil
}

func (s *smtpMailer) Send(ctx context.Context, to, subject, html, text string) error {
	msg, err := buildMessage(s.fromName, s.fromAddress, to, subject, html, text)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	log.Printf("[MAILER] Email sent via SMTP to %s", to)
	return nil
}

// buildMessage assembles a multipart message with the text body first and HTML as the alternative.
func buildMessage(fromName, fromAddress, to, subject, html, text string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(fromName, fromAddress); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	switch {
	case text != "" && html != "":
		msg.SetBodyString(mail.TypeTextPlain, text)
		msg.AddAlternativeString(mail.TypeTextHTML, html)
	case html != "":
		msg.SetBodyString(mail.TypeTextHTML, html)
	default:
		msg.SetBodyString(mail.TypeTextPlain, text)
	}
	return msg, nil
}
