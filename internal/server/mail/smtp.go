// Package mail delivers outbound email through an external SMTP relay.
// The gateway only validates and delegates; it does not speak the SMTP
// protocol itself beyond what net/smtp provides.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
)

// Message is one outbound email. Either Text or HTML may be empty, but the
// caller must ensure not both are.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Transport delivers a message and returns the transport-assigned
// message identifier.
type Transport interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// SMTPTransport sends mail through a single SMTP relay using PLAIN auth.
// Connection settings are fixed at construction time and never re-read.
type SMTPTransport struct {
	addr string
	host string
	auth smtp.Auth
}

// NewSMTPTransport creates a transport for the given relay.
func NewSMTPTransport(host string, port int, user, pass string) *SMTPTransport {
	return &SMTPTransport{
		addr: fmt.Sprintf("%s:%d", host, port),
		host: host,
		auth: smtp.PlainAuth("", user, pass, host),
	}
}

// Send assembles the RFC 822 payload and hands it to the relay in one
// synchronous call. There is no retry and no queueing; the relay's answer
// is the only delivery confirmation. net/smtp has no context support, so
// ctx is only checked before dialing.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), t.host)
	payload := buildPayload(msg, messageID)

	if err := smtp.SendMail(t.addr, t.auth, msg.From, []string{msg.To}, payload); err != nil {
		return "", fmt.Errorf("smtp send failed: %w", err)
	}
	return messageID, nil
}

// buildPayload renders the message as a CRLF-delimited RFC 822 document.
// When both bodies are present they are wrapped in multipart/alternative
// with the HTML part last, so capable clients prefer it.
func buildPayload(msg Message, messageID string) []byte {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	line("From: " + msg.From)
	line("To: " + msg.To)
	line("Subject: " + msg.Subject)
	line("Message-ID: " + messageID)
	line("MIME-Version: 1.0")

	switch {
	case msg.Text != "" && msg.HTML != "":
		boundary := strings.ReplaceAll(uuid.NewString(), "-", "")
		line(`Content-Type: multipart/alternative; boundary="` + boundary + `"`)
		line("")
		line("--" + boundary)
		line("Content-Type: text/plain; charset=UTF-8")
		line("")
		line(msg.Text)
		line("--" + boundary)
		line("Content-Type: text/html; charset=UTF-8")
		line("")
		line(msg.HTML)
		line("--" + boundary + "--")
	case msg.HTML != "":
		line("Content-Type: text/html; charset=UTF-8")
		line("")
		line(msg.HTML)
	default:
		line("Content-Type: text/plain; charset=UTF-8")
		line("")
		line(msg.Text)
	}

	return []byte(b.String())
}
