package email

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	defaultHost  = "https://api.sendgrid.com"
	sendEndpoint = "/v3/mail/send"
)

// SendGridSender delivers notification emails through the SendGrid v3 API.
type SendGridSender struct {
	apiKey string
	from   *mail.Email
	host   string
	client *rest.Client
}

// NewSendGridSender creates a sender that issues requests with httpClient.
func NewSendGridSender(cfg Config, httpClient *http.Client) *SendGridSender {
	return &SendGridSender{
		apiKey: cfg.APIKey,
		from:   mail.NewEmail(cfg.FromName, cfg.From),
		host:   defaultHost,
		client: &rest.Client{HTTPClient: httpClient},
	}
}

// SendWelcome sends the signup greeting.
func (s *SendGridSender) SendWelcome(ctx context.Context, to, name string) error {
	return s.send(ctx, to, name, welcomeMessage(name))
}

// SendCancellation sends the account deletion farewell.
func (s *SendGridSender) SendCancellation(ctx context.Context, to, name string) error {
	return s.send(ctx, to, name, cancellationMessage(name))
}

func (s *SendGridSender) send(ctx context.Context, to, name string, msg message) error {
	m := mail.NewSingleEmail(s.from, msg.subject, mail.NewEmail(name, to), msg.text, "<p>"+html.EscapeString(msg.text)+"</p>")

	req := sendgrid.GetRequest(s.apiKey, sendEndpoint, s.host)
	req.Method = rest.Post
	req.Body = mail.GetRequestBody(m)

	resp, err := s.client.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
