package vault

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	dserrors "github.com/systmms/vaultstep/internal/errors"
)

const (
	// TokenHeader carries the Vault token on every request.
	TokenHeader = "X-Vault-Token"
	// NamespaceHeader selects a Vault Enterprise namespace.
	NamespaceHeader = "X-Vault-Namespace"

	DefaultTimeout = 30 * time.Second

	maxBodySize = 10 << 20
)

// Reader reads raw response bodies from Vault. Implementations return a
// *errors.FetchError for transport failures and non-2xx responses.
type Reader interface {
	Read(ctx context.Context, url string, header http.Header) ([]byte, error)
}

// HTTPClient implements Reader over plain HTTP GET requests.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient returns a client with DefaultTimeout. A nil client uses
// a fresh http.Client.
func NewHTTPClient(client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPClient{client: client}
}

// Read fetches url and returns the response body.
func (c *HTTPClient) Read(ctx context.Context, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &dserrors.FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &dserrors.FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &dserrors.FetchError{URL: url, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &dserrors.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}
