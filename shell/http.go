package shell

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/tinkwell/twless/contracts"
)

const (
	IdentityFetchTimeout = 10 * time.Second
	maxIdentityBytes     = 64 * 1024
)

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 1 * time.Second,
			}).DialContext,
			MaxIdleConns:          4,
			IdleConnTimeout:       32 * time.Second,
			TLSHandshakeTimeout:   timeout,
			ExpectContinueTimeout: 1 * time.Second,
			DisableKeepAlives:     true,
		},
	}
}

// IdentityClient fetches the repository's public key. Each call issues exactly
// one request.
type IdentityClient struct {
	client  *http.Client
	timeout time.Duration
}

func NewIdentityClient(client *http.Client) *IdentityClient {
	return &IdentityClient{client: client, timeout: IdentityFetchTimeout}
}

func (this *IdentityClient) FetchIdentity(ctx context.Context, host string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, this.timeout)
	defer cancel()

	address := IdentityAddress(host)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, err
	}
	response, err := this.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", address, response.Status)
	}
	body, err := io.ReadAll(io.LimitReader(response.Body, maxIdentityBytes))
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", address, err)
	}
	return body, nil
}

func IdentityAddress(host string) string {
	return strings.TrimRight(strings.TrimSpace(host), "/") + contracts.IdentityEndpointPath
}
