package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/picineiros/pool-manager/internal/config"
)

// Mailer é o transporte de saída dos emails de verificação e reset.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New escolhe o provedor pela configuração: SendGrid quando há chave de
// API, SMTP quando há host, e um logger de desenvolvimento caso contrário.
func New(cfg *config.Config, log *zap.Logger) Mailer {
	switch {
	case cfg.SendGridKey != "":
		return NewSendGridMailer(cfg.SendGridKey, cfg.EmailFrom)
	case cfg.SMTPHost != "":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	default:
		return &logMailer{log: log}
	}
}

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: host + ":" + port,
		auth: auth,
		from: from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg.String()))
}

// logMailer só registra o email; serve para desenvolvimento local sem
// transporte configurado.
type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) Send(ctx context.Context, to, subject, body string) error {
	m.log.Info("email (no transport configured)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
