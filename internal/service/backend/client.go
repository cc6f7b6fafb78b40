package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"

	applog "github.com/personavault/bridge/internal/platform/logging"
)

const defaultBaseURL = "http://127.0.0.1:8000/"

// Client implements Service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the URL fetched by the bridge command.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a backend client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL the client fetches.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch issues one GET to the base URL and returns the body text verbatim.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return "", newError(KindTransport, fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		applog.LogWarn(ctx, "backend request failed", zap.String("url", c.baseURL), zap.Error(err))
		return "", newError(KindTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		applog.LogWarn(ctx, "backend body read failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		kind := KindDecode
		if interruptedRead(ctx, err) {
			kind = KindTransport
		}
		return "", newError(kind, fmt.Errorf("reading response body: %w", err))
	}

	text, err := decodeText(body, resp.Header.Get("Content-Type"))
	if err != nil {
		applog.LogWarn(ctx, "backend body decode failed",
			zap.Int("status", resp.StatusCode),
			zap.String("contentType", resp.Header.Get("Content-Type")),
			zap.Error(err),
		)
		return "", newError(KindDecode, err)
	}

	applog.LogDebug(ctx, "backend response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)
	return text, nil
}

// interruptedRead reports whether a body read stopped because of cancellation or a
// timeout rather than a malformed response.
func interruptedRead(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// decodeText converts body to a string using the charset declared in contentType.
// Without a charset the body must be valid UTF-8. Unknown charsets are rejected
// rather than decoded lossily.
func decodeText(body []byte, contentType string) (string, error) {
	charset := charsetOf(contentType)
	if charset == "" || isUTF8(charset) {
		if !utf8.Valid(body) {
			return "", errors.New("response body is not valid UTF-8")
		}
		return string(body), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decoding %s body: %w", charset, err)
	}
	return string(decoded), nil
}

func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}

func isUTF8(charset string) bool {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// Compile-time interface check
var _ Service = (*Client)(nil)
