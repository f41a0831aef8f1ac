package ksef

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/magazyn-erp/magazyn-api/internal/application/billing"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/pkg/config"
	"github.com/magazyn-erp/magazyn-api/pkg/logger"
)

var _ billing.Submitter = (*Client)(nil)

// Client implements billing.Submitter over the KSeF HTTP gateway. With an
// empty BaseURL it runs in development mode: no network call, a synthetic
// reference is returned so the rest of the flow works offline.
type Client struct {
	httpClient *http.Client
	cfg        config.KSeFConfig
	log        *logger.Logger
}

// NewClient builds the client.
func NewClient(cfg config.KSeFConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		log:        log,
	}
}

type submitResponse struct {
	ReferenceNumber string `json:"referenceNumber"`
	Error           string `json:"error"`
}

// Submit posts the invoice XML and returns the reference number assigned by
// the service. Network failures are retried a fixed number of times with a
// constant delay; a still-failing submission surfaces ErrServiceUnavailable
// so the caller can distinguish it from a rejection.
func (c *Client) Submit(ctx context.Context, inv *entity.Invoice, company billing.Company, contractor *entity.Contractor, lines []entity.InvoiceLine) (string, error) {
	if c.cfg.BaseURL == "" {
		ref := "DEV-" + uuid.New().String()
		c.log.Info().Str("invoice", inv.Number).Str("ref", ref).
			Msg("ksef disabled, returning synthetic reference")
		return ref, nil
	}

	payload, err := BuildInvoiceXML(inv, company, contractor, lines)
	if err != nil {
		return "", fmt.Errorf("ksef: build payload: %w", err)
	}

	retries := c.cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	delay := c.cfg.RetryDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		ref, err := c.post(ctx, payload)
		if err == nil {
			return ref, nil
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			// Rejected by the service, retrying will not help.
			return "", err
		}
		lastErr = err
		c.log.Warn().Err(err).Int("attempt", attempt).Str("invoice", inv.Number).
			Msg("ksef submission failed")
		if attempt < retries {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	c.log.Error().Err(lastErr).Str("invoice", inv.Number).Msg("ksef submission gave up")
	return "", domain.ErrServiceUnavailable
}

func (c *Client) post(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/api/online/Invoice/Send", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ksef: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ksef: http call failed: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return "", fmt.Errorf("ksef: read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var sr submitResponse
		if err := json.Unmarshal(rawBody, &sr); err != nil {
			return "", fmt.Errorf("ksef: parse response: %w", err)
		}
		if sr.ReferenceNumber == "" {
			return "", fmt.Errorf("ksef: empty reference in response")
		}
		return sr.ReferenceNumber, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// The service rejected the document; do not retry.
		return "", domain.ErrInvalidInput
	default:
		return "", fmt.Errorf("ksef: unexpected status %d: %s", resp.StatusCode, string(rawBody))
	}
}
