package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/domain"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var (
	// ErrReferenceNotFound is returned while Paystack has not indexed the
	// transaction yet.
	ErrReferenceNotFound = errors.New("transaction reference not found")
	ErrNotSuccessful     = errors.New("payment not successful")
)

type Getter interface {
	Get(ctx context.Context, url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error)
}

type Transaction struct {
	ID              int64    `json:"id"`
	Status          string   `json:"status"`
	Reference       string   `json:"reference"`
	Amount          int64    `json:"amount"`
	GatewayResponse string   `json:"gateway_response"`
	Currency        string   `json:"currency"`
	Customer        Customer `json:"customer"`
}

type VerifyResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

// Successful reports whether Paystack confirmed the charge.
func (r *VerifyResponse) Successful() bool {
	return r.Status && r.Data.Status == "success"
}

type Client struct {
	client    Getter
	secret    string
	verifyURL string
	wait      func(ctx context.Context, d time.Duration) error
}

func New(client Getter, secret, verifyURL string) *Client {
	return &Client{
		client:    client,
		secret:    secret,
		verifyURL: verifyURL,
		wait:      sleep,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Verify fetches the transaction by reference. Transport failures and rate
// limiting are retried; API errors are returned as is.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	if reference == "" {
		return nil, fmt.Errorf("%w: payment reference is required", domain.ErrValidation)
	}
	target := c.verifyURL + url.PathEscape(reference)
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.secret)
	headers.Set("Content-Type", "application/json")

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		statusCode, respBody, respHeaders, err := c.client.Get(ctx, target, headers)
		if err != nil {
			lastErr = err
			zap.L().Warn("Paystack verify request failed", zap.String("reference", reference), zap.Int("attempt", attempt), zap.Error(err))
			if attempt < maxRetries {
				if werr := c.wait(ctx, retryInterval*time.Duration(attempt)); werr != nil {
					return nil, werr
				}
			}
			continue
		}

		if statusCode == http.StatusTooManyRequests {
			lastErr = errors.New("rate limited by paystack")
			if attempt < maxRetries {
				if werr := c.wait(ctx, retryAfter(respHeaders, attempt)); werr != nil {
					return nil, werr
				}
			}
			continue
		}

		var resp VerifyResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return nil, fmt.Errorf("%w: can't decode paystack response (status %d): %v", domain.ErrUpstream, statusCode, err)
		}
		if statusCode != http.StatusOK {
			if strings.Contains(strings.ToLower(resp.Message), "reference not found") {
				return nil, ErrReferenceNotFound
			}
			msg := resp.Message
			if msg == "" {
				msg = "Paystack verification failed"
			}
			return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, msg)
		}
		return &resp, nil
	}
	return nil, fmt.Errorf("%w: paystack verify failed after %d attempts: %v", domain.ErrUpstream, maxRetries, lastErr)
}

func retryAfter(headers http.Header, attempt int) time.Duration {
	d := retryInterval * time.Duration(attempt)
	if v := headers.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			d = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn("Paystack rate limit detected, retrying", zap.Int("attempt", attempt), zap.Duration("retryAfter", d))
	return d
}
