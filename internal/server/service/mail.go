package service

import (
	"context"

	"relaybox/internal/server/mail"
)

// SendRequest is the decoded body of a mail-send call.
type SendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// MailService validates send requests and delegates delivery to a
// transport. It never invokes the transport for an invalid request.
type MailService struct {
	transport mail.Transport
	from      string
}

// NewMailService creates a mail service sending from the given address.
func NewMailService(transport mail.Transport, from string) *MailService {
	return &MailService{transport: transport, from: from}
}

// Send dispatches one message and returns the transport-assigned message
// identifier. Validation failures are reported collectively as
// ErrMissingFields.
func (s *MailService) Send(ctx context.Context, req SendRequest) (string, error) {
	if req.To == "" || req.Subject == "" || (req.Text == "" && req.HTML == "") {
		return "", ErrMissingFields
	}

	return s.transport.Send(ctx, mail.Message{
		From:    s.from,
		To:      req.To,
		Subject: req.Subject,
		Text:    req.Text,
		HTML:    req.HTML,
	})
}
