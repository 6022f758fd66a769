package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/mvh/mvh-sync/internal/log"
)

type Config struct {
	BaseURL   string
	APIKey    string
	UserAgent string

	// TLS
	InsecureSkipVerify bool
	CACert             string

	// a zero timeout waits on the remote API indefinitely
	Timeout         time.Duration
	FollowRedirects bool
}

// Client fetches JSON documents from the remote API. Every request carries the bearer token and user agent.
type Client struct {
	httpClient *http.Client
	config     Config
}

func NewClient(fs afero.Fs, cfg Config) (*Client, error) {
	httpClient, err := defaultHTTPClient(fs, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient: httpClient,
		config:     cfg,
	}, nil
}

// Fetch issues a GET against the base URL concatenated with the given endpoint and returns the complete, validated
// JSON body. Errors are one of *RequestError, *HTTPError,
// *ParseError or *NetworkError.
func (c Client) Fetch(ctx context.Context, endpoint string) (json.RawMessage, error) {
	url := c.config.BaseURL + endpoint
	log.Debugf("fetching: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RequestError{URL: url, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer log.CloseAndLogError(resp.Body, url)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("unable to read response body: %w", err)}
	}

	// redirects that were not followed are not JSON payloads either
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !gjson.ValidBytes(body) {
		return nil, &ParseError{Endpoint: endpoint, Preview: preview(body)}
	}

	return body, nil
}

func defaultHTTPClient(fs afero.Fs, cfg Config) (*http.Client, error) {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = cfg.Timeout

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		// self-signed certificates are accepted so local WordPress instances can be synced
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	if cfg.CACert != "" {
		rootCAs := x509.NewCertPool()

		pemBytes, err := afero.ReadFile(fs, cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("unable to configure root CAs for client: %w", err)
		}
		if !rootCAs.AppendCertsFromPEM(pemBytes) {
			return nil, fmt.Errorf("no certificates found in CA cert %q", cfg.CACert)
		}
		tlsConfig.RootCAs = rootCAs
	}

	httpClient.Transport.(*http.Transport).TLSClientConfig = tlsConfig

	if !cfg.FollowRedirects {
		httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return httpClient, nil
}
