package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

const brevoURL = "https://api.brevo.com/v3/smtp/email"

type Email struct {
	To      []string
	Subject string
	HTML    string
}

// Brevo sends transactional email through the Brevo HTTP API. Without an API
// key it only logs.
type Brevo struct {
	client   Poster
	apiKey   string
	from     string
	fromName string
	url      string
}

func NewBrevo(client Poster, apiKey, from, fromName string) *Brevo {
	if apiKey == "" {
		zap.L().Warn("brevo api key not configured, email disabled")
	}
	return &Brevo{client: client, apiKey: apiKey, from: from, fromName: fromName, url: brevoURL}
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (b *Brevo) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return nil
	}
	if b.apiKey == "" {
		zap.L().Info("email skipped, brevo disabled", zap.Strings("to", email.To), zap.String("subject", email.Subject))
		return nil
	}

	req := brevoRequest{
		Sender:      brevoAddress{Name: b.fromName, Email: b.from},
		Subject:     email.Subject,
		HTMLContent: email.HTML,
	}
	for _, to := range email.To {
		req.To = append(req.To, brevoAddress{Email: to})
	}
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	headers := http.Header{}
	headers.Set("api-key", b.apiKey)
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	status, respBody, err := b.client.Post(ctx, b.url, headers, body)
	if err != nil {
		return fmt.Errorf("brevo request failed: %w", err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("brevo responded %d: %s", status, respBody)
	}
	return nil
}
