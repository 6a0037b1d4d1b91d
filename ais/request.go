package ais

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RequestClient issues raw API calls against a cluster gateway. Bucket and
// object handles are built on top of it; tests substitute ais/mocks.Client.
type RequestClient interface {
	// Request sends msg as a JSON body (nil means no body) and returns the
	// fully read response.
	Request(ctx context.Context, method, path string, params url.Values, msg any) (*Response, error)
	// RequestDeserialize sends msg and decodes the JSON response into out.
	RequestDeserialize(ctx context.Context, method, path string, params url.Values, msg, out any) error
	// RequestReader uploads data verbatim as the request body.
	RequestReader(ctx context.Context, method, path string, params url.Values, data io.Reader) (*Response, error)
	// RequestStream returns the response body as a stream. The caller must
	// close it.
	RequestStream(ctx context.Context, method, path string, params url.Values) (io.ReadCloser, http.Header, error)
}

// Response is a fully read cluster reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Text returns the body as a string. Job-starting actions reply with the
// job ID as plain text.
func (r *Response) Text() string { return string(r.Body) }

type requestClient struct {
	base   string
	hc     *http.Client
	logger *zap.Logger
}

// NewRequestClient creates the HTTP transport layer for a cluster gateway.
func NewRequestClient(cfg Config, logger *zap.Logger) (RequestClient, error) {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("cluster endpoint is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	hc := cfg.HTTPClient
	if hc == nil {
		// Create custom transport with strict timeouts
		transport := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   timeoutDuration,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   timeoutDuration,
			ExpectContinueTimeout: 1 * time.Second,
			ResponseHeaderTimeout: timeoutDuration,
		}
		if cfg.Insecure {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		hc = &http.Client{Transport: transport}
	}

	return &requestClient{
		base:   endpoint + "/v1",
		hc:     hc,
		logger: logger,
	}, nil
}

func (c *requestClient) Request(ctx context.Context, method, path string, params url.Values, msg any) (*Response, error) {
	var body io.Reader
	if msg != nil {
		data, err := json.Marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.do(ctx, method, path, params, body, msg != nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if err := checkStatus(method, path, resp.StatusCode, data); err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *requestClient) RequestDeserialize(ctx context.Context, method, path string, params url.Values, msg, out any) error {
	resp, err := c.Request(ctx, method, path, params, msg)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func (c *requestClient) RequestReader(ctx context.Context, method, path string, params url.Values, data io.Reader) (*Response, error) {
	resp, err := c.do(ctx, method, path, params, data, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if err := checkStatus(method, path, resp.StatusCode, body); err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (c *requestClient) RequestStream(ctx context.Context, method, path string, params url.Values) (io.ReadCloser, http.Header, error) {
	resp, err := c.do(ctx, method, path, params, nil, false)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, nil, checkStatus(method, path, resp.StatusCode, data)
	}
	return resp.Body, resp.Header, nil
}

func (c *requestClient) do(ctx context.Context, method, path string, params url.Values, body io.Reader, jsonBody bool) (*http.Response, error) {
	u := c.base + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if jsonBody {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}

	c.logger.Debug("cluster request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

// checkStatus maps non-2xx replies to HTTPError. A 404 whose message names
// a missing bucket additionally matches ErrBucketNotFound.
func checkStatus(method, path string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	herr := &HTTPError{
		Status:  status,
		Method:  method,
		Path:    path,
		Message: strings.TrimSpace(string(body)),
	}
	if status == http.StatusNotFound && strings.Contains(herr.Message, "does not exist") {
		herr.sentinel = ErrBucketNotFound
	}
	return herr
}
