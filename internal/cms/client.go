package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher defines how the loader retrieves the raw document of a section.
type Fetcher interface {
	Fetch(ctx context.Context, section string) (body []byte, statusCode int, err error)
}

const (
	maxRedirects    = 5
	maxResponseBody = 5 << 20
	userAgent       = "FourceSite/1.0"
)

var errBodyTooLarge = errors.New("cms response body exceeds limit")

// ClientOptions configures an HTTPClient.
type ClientOptions struct {
	BaseURL  string
	APIToken string
	Populate string
	Timeout  time.Duration
}

// HTTPClient implements Fetcher against a Strapi-style REST API:
// GET <base>/<section>?populate=<populate>.
type HTTPClient struct {
	client   *resty.Client
	populate string
}

// NewHTTPClient returns a Fetcher backed by a resty client with the given
// timeout, a bounded redirect chain, and bearer authentication when a token
// is configured.
func NewHTTPClient(opts ClientOptions) *HTTPClient {
	return newHTTPClient(resty.New(), opts)
}

func newHTTPClient(rc *resty.Client, opts ClientOptions) *HTTPClient {
	rc.SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	if opts.APIToken != "" {
		rc.SetAuthToken(opts.APIToken)
	}
	return &HTTPClient{client: rc, populate: opts.Populate}
}

// Fetch retrieves the section document. The section name is sent verbatim;
// unknown sections are rejected by the CMS, not here.
func (c *HTTPClient) Fetch(ctx context.Context, section string) ([]byte, int, error) {
	req := c.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)
	if c.populate != "" {
		req.SetQueryParam("populate", c.populate)
	}

	resp, err := req.Get("/" + section)
	if err != nil {
		return nil, 0, err
	}

	raw := resp.RawBody()
	if raw == nil {
		return nil, resp.StatusCode(), nil
	}
	defer func() { _ = raw.Close() }()

	body, err := io.ReadAll(io.LimitReader(raw, maxResponseBody+1))
	if err != nil {
		return nil, resp.StatusCode(), fmt.Errorf("read cms response: %w", err)
	}
	if len(body) > maxResponseBody {
		return nil, resp.StatusCode(), fmt.Errorf("%w: %d bytes", errBodyTooLarge, maxResponseBody)
	}

	return body, resp.StatusCode(), nil
}

// statusOK reports whether a CMS status code carries a usable document.
func statusOK(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
