package client

import (
	"context"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, mutators ...func(*Config)) *Client {
	t.Helper()
	cfg := Config{
		BaseURL:            baseURL,
		APIKey:             "secret",
		UserAgent:          "MVH-Sync/1.0",
		InsecureSkipVerify: true,
		FollowRedirects:    true,
	}
	for _, m := range mutators {
		m(&cfg)
	}
	c, err := NewClient(afero.NewMemMapFs(), cfg)
	require.NoError(t, err)
	return c
}

func TestClient_Fetch(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		body     string
		expected string
		wantErr  require.ErrorAssertionFunc
		check    func(t *testing.T, err error)
	}{
		{
			name:     "array body",
			code:     http.StatusOK,
			body:     `[{"app_id":1}]`,
			expected: `[{"app_id":1}]`,
			wantErr:  require.NoError,
		},
		{
			name:     "object body",
			code:     http.StatusOK,
			body:     `{"app_id":"abc","name":"Game"}`,
			expected: `{"app_id":"abc","name":"Game"}`,
			wantErr:  require.NoError,
		},
		{
			name:    "server error keeps status and body",
			code:    http.StatusInternalServerError,
			body:    "boom",
			wantErr: require.Error,
			check: func(t *testing.T, err error) {
				var httpErr *HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
				assert.Equal(t, "boom", httpErr.Body)
			},
		},
		{
			name:    "not found",
			code:    http.StatusNotFound,
			body:    `{"code":"rest_no_route"}`,
			wantErr: require.Error,
			check: func(t *testing.T, err error) {
				var httpErr *HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
			},
		},
		{
			name:    "html instead of json",
			code:    http.StatusOK,
			body:    "<html>" + strings.Repeat("x", 300) + "</html>",
			wantErr: require.Error,
			check: func(t *testing.T, err error) {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, "/apps", parseErr.Endpoint)
				assert.Len(t, []rune(parseErr.Preview), 100)
				assert.True(t, strings.HasPrefix(parseErr.Preview, "<html>"))
			},
		},
		{
			name:    "empty body",
			code:    http.StatusOK,
			body:    "",
			wantErr: require.Error,
			check: func(t *testing.T, err error) {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Empty(t, parseErr.Preview)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/apps", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.code)
				_, _ = w.Write([]byte(test.body))
			})
			server := httptest.NewServer(mux)
			t.Cleanup(server.Close)

			actual, err := newTestClient(t, server.URL).Fetch(context.Background(), "/apps")
			test.wantErr(t, err)
			if test.check != nil {
				test.check(t, err)
			}
			if err != nil {
				return
			}
			assert.JSONEq(t, test.expected, string(actual))
		})
	}
}

func TestClient_Fetch_Headers(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "/wp-json/viethoa/v1/apps/42", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	_, err := newTestClient(t, server.URL+"/wp-json/viethoa/v1").Fetch(context.Background(), "/apps/42")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
	assert.Equal(t, "MVH-Sync/1.0", got.Get("User-Agent"))
}

func TestClient_Fetch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).Fetch(context.Background(), "/apps")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, url+"/apps", netErr.URL)
	assert.Error(t, netErr.Unwrap())
}

func TestClient_Fetch_InvalidRequestURL(t *testing.T) {
	_, err := newTestClient(t, "http://api.example").Fetch(context.Background(), "/apps/%zz")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "http://api.example/apps/%zz", reqErr.URL)
	assert.Contains(t, err.Error(), "invalid request URL")

	var netErr *NetworkError
	assert.False(t, errors.As(err, &netErr))
}

func TestClient_Fetch_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, server.URL).Fetch(ctx, "/apps")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Fetch_TLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	caPath := "/etc/mvh/ca.pem"
	fs := afero.NewMemMapFs()
	caPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	require.NoError(t, afero.WriteFile(fs, caPath, caPEM, 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "self-signed accepted when verification is skipped",
			cfg:  Config{InsecureSkipVerify: true},
		},
		{
			name:    "self-signed rejected when verification is on",
			cfg:     Config{InsecureSkipVerify: false},
			wantErr: true,
		},
		{
			name: "self-signed accepted with the CA configured",
			cfg:  Config{InsecureSkipVerify: false, CACert: caPath},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := test.cfg
			cfg.BaseURL = server.URL
			c, err := NewClient(fs, cfg)
			require.NoError(t, err)

			_, err = c.Fetch(context.Background(), "/apps")
			if !test.wantErr {
				assert.NoError(t, err)
				return
			}
			var netErr *NetworkError
			assert.ErrorAs(t, err, &netErr)
		})
	}
}

func TestNewClient_MissingCACert(t *testing.T) {
	_, err := NewClient(afero.NewMemMapFs(), Config{CACert: "/does/not/exist.pem"})
	assert.Error(t, err)
}

func TestClient_Fetch_Redirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old/apps", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new/apps", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new/apps", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"app_id":"7"}]`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Run("followed by default", func(t *testing.T) {
		body, err := newTestClient(t, server.URL+"/old").Fetch(context.Background(), "/apps")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"app_id":"7"}]`, string(body))
	})

	t.Run("reported when not followed", func(t *testing.T) {
		c := newTestClient(t, server.URL+"/old", func(cfg *Config) {
			cfg.FollowRedirects = false
		})
		_, err := c.Fetch(context.Background(), "/apps")

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusMovedPermanently, httpErr.StatusCode)
	})
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview([]byte("short")))
	assert.Equal(t, strings.Repeat("ê", 100), preview([]byte(strings.Repeat("ê", 150))))
}
