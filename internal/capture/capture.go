// Package capture wraps the external screenshot collaborator. Capture is
// best-effort: callers degrade to saving without a screenshot on any error.
package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/casebandit/casebandit/internal/utils"
)

// ErrDisabled is returned when no capture service is configured.
var ErrDisabled = errors.New("capture: no capture service configured")

// maxImageBytes caps a single screenshot; anything larger is refused
// rather than inflating the persisted collection.
const maxImageBytes = 8 << 20

// Capturer produces a data:image/... URL for a page, or an error.
type Capturer interface {
	Capture(ctx context.Context, pageURL string) (string, error)
}

// Disabled is the capturer used when auto-capture has nowhere to go.
type Disabled struct{}

func (Disabled) Capture(ctx context.Context, pageURL string) (string, error) {
	return "", ErrDisabled
}

// HTTPCapturer asks an external capture service (headless browser, shot
// proxy) to render the page. The deadline bounds the whole request.
type HTTPCapturer struct {
	endpoint string
	client   *http.Client
}

func NewHTTP(endpoint string, timeout time.Duration) *HTTPCapturer {
	return &HTTPCapturer{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPCapturer) Capture(ctx context.Context, pageURL string) (string, error) {
	reqURL := fmt.Sprintf("%s?url=%s", c.endpoint, url.QueryEscape(pageURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to build capture request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("capture request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("capture service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read capture response: %w", err)
	}
	if len(body) > maxImageBytes {
		return "", fmt.Errorf("screenshot exceeds %d bytes", maxImageBytes)
	}
	if len(body) == 0 {
		return "", errors.New("capture service returned an empty image")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(body)), nil
}
