package lemonsqueezy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bryanwahyu/esg-responder/internal/domain/license"
)

const DefaultBaseURL = "https://api.lemonsqueezy.com"

// maxBody caps how much of an upstream answer is relayed.
const maxBody = 1 << 20

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Call posts the form-encoded request to /v1/licenses/<action>. Any HTTP
// answer is returned as is; only transport failures are errors.
func (c *Client) Call(ctx context.Context, action license.Action, req license.Request) (license.Response, error) {
	form := url.Values{}
	form.Set("license_key", req.LicenseKey)
	if req.InstanceID != "" {
		form.Set("instance_id", req.InstanceID)
	}
	if req.InstanceName != "" {
		form.Set("instance_name", req.InstanceName)
	}

	endpoint := fmt.Sprintf("%s/v1/licenses/%s", c.BaseURL, action)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return license.Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return license.Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return license.Response{}, fmt.Errorf("read license response: %w", err)
	}
	return license.Response{StatusCode: resp.StatusCode, Body: body}, nil
}
