package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// WebhookSink posts payloads as JSON to a URL.
type WebhookSink struct {
	url    string
	client *http.Client
}

// NewWebhookSink creates a sink for url. timeout bounds each request.
func NewWebhookSink(url string, timeout time.Duration) (*WebhookSink, error) {
	if url == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}
	return &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (w *WebhookSink) Send(ctx context.Context, p Payload) (*Receipt, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &UnavailableError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	receipt := &Receipt{StatusCode: resp.StatusCode, Attempts: 1}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		derr := &DeliveryError{StatusCode: resp.StatusCode}
		if s := strings.TrimSpace(string(snippet)); s != "" {
			derr.Err = errors.New(s)
		}
		return receipt, derr
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return receipt, nil
}

func (w *WebhookSink) Name() string {
	return "webhook"
}
