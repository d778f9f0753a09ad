// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers the confirmation codes of the signup flow.

Two [Sender] implementations exist:

  - [SMTPSender] speaks SMTP with STARTTLS to a relay.
  - [LogSender] writes the message to the structured log, for development.

[New] picks one from configuration.
*/
package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/config"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a [Message]. Implementations must honour ctx cancellation.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// New returns an [SMTPSender] when a host is configured and a [LogSender] otherwise.
func New(cfg config.Mail, logger *slog.Logger) Sender {
	if cfg.Host == "" {
		return NewLogSender(cfg.From, logger)
	}
	return NewSMTPSender(cfg)
}

// # Confirmation Email

const confirmationSubject = "YaMDb confirmation code"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(
	`Hello {{.Username}},

Your YaMDb confirmation code is:

    {{.Code}}

Exchange it together with your username at POST /v1/auth/token.
The code stays valid for {{.TTL}} and can be used once.
`))

// ConfirmationMessage renders the signup email for username.
func ConfirmationMessage(to, username, code string, ttl time.Duration) (Message, error) {
	var body bytes.Buffer
	err := confirmationTemplate.Execute(&body, map[string]any{
		"Username": username,
		"Code":     code,
		"TTL":      ttl.String(),
	})
	if err != nil {
		return Message{}, fmt.Errorf("mail: render confirmation: %w", err)
	}

	return Message{To: to, Subject: confirmationSubject, Body: body.String()}, nil
}

// # SMTP

// SMTPSender delivers messages through an SMTP relay, upgrading the
// connection with STARTTLS when the server offers it.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender builds a sender from the mail configuration.
func NewSMTPSender(cfg config.Mail) *SMTPSender {
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		host:     cfg.Host,
		port:     port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Send implements [Sender].
func (sender *SMTPSender) Send(ctx context.Context, message Message) error {
	address := net.JoinHostPort(sender.host, strconv.Itoa(sender.port))

	var dialer net.Dialer
	connection, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("mail: dial %s: %w", address, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = connection.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(connection, sender.host)
	if err != nil {
		_ = connection.Close()
		return fmt.Errorf("mail: handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: sender.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("mail: starttls: %w", err)
		}
	}

	if sender.username != "" {
		auth := smtp.PlainAuth("", sender.username, sender.password, sender.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("mail: auth: %w", err)
		}
	}

	if err := client.Mail(sender.from); err != nil {
		return fmt.Errorf("mail: sender: %w", err)
	}
	if err := client.Rcpt(message.To); err != nil {
		return fmt.Errorf("mail: recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("mail: data: %w", err)
	}
	if _, err := writer.Write(Compose(sender.from, message)); err != nil {
		return fmt.Errorf("mail: write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("mail: close: %w", err)
	}

	return client.Quit()
}

// Compose renders the RFC 5322 bytes of message.
func Compose(from string, message Message) []byte {
	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + message.To + "\r\n")
	builder.WriteString("Subject: " + message.Subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(strings.ReplaceAll(message.Body, "\n", "\r\n"))
	return []byte(builder.String())
}

// # Development

// LogSender writes messages to the structured log instead of sending them.
type LogSender struct {
	from   string
	logger *slog.Logger
}

// NewLogSender creates a [LogSender].
func NewLogSender(from string, logger *slog.Logger) *LogSender {
	return &LogSender{from: from, logger: logger}
}

// Send implements [Sender].
func (sender *LogSender) Send(ctx context.Context, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sender.logger.InfoContext(ctx, "mail_logged",
		slog.String("from", sender.from),
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("body", message.Body),
	)
	return nil
}
