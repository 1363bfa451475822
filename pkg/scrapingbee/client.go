package scrapingbee

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/scrapebee/pkg/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/scrapebee", "scrapingbee")

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://app.scrapingbee.com/api/v1"
	// DefaultTimeout bounds a single request. Upstream renders JavaScript
	// and rotates proxies, so a scrape can legitimately take this long.
	DefaultTimeout = 90 * time.Second

	userAgent = "scrapebee"
)

// endpoint identifiers, used as metric tags and request paths.
const (
	endpointScrape = "scrape"
	endpointSearch = "search"
	endpointUsage  = "usage"
)

var endpointPaths = map[string]string{
	endpointScrape: "/",
	endpointSearch: "/store/google",
	endpointUsage:  "/usage",
}

// Doer performs a HTTP request.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the ScrapingBee API. It is stateless across calls
// and safe for concurrent use, the API key is read-only after construction.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient Doer
	timeout    time.Duration
}

// Option is an option for the client.
type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithHTTPClient(client Doer) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// New returns a new ScrapingBee client. The API key must be supplied
// explicitly, environment lookup belongs to the setup layer.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, NewInvalidRequestf("API key is required")
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Scrape fetches targetURL through the scraping service. Params are
// forwarded opaquely. Headers are forwarded to the target site with the
// Spb- prefix, which also enables forward_headers upstream.
func (c *Client) Scrape(ctx context.Context, targetURL string, params map[string]any, headers map[string]string) (*ScrapeResult, error) {
	query := url.Values{}
	query.Set("url", targetURL)
	for k, v := range stringifyParams(params) {
		query.Set(k, v)
	}

	var header http.Header
	if len(headers) > 0 {
		header = http.Header{}
		for k, v := range headers {
			header.Set("Spb-"+k, v)
		}
		query.Set("forward_headers", "true")
	}

	status, respHeader, body, err := c.send(ctx, endpointScrape, query, header)
	if err != nil {
		return nil, err
	}

	kind := sniffContentKind(respHeader.Get("Content-Type"))
	if isScreenshot(params) {
		kind = ContentBinaryDocument
	}
	return &ScrapeResult{
		ContentKind: kind,
		StatusCode:  status,
		Body:        body,
	}, nil
}

// Search performs a Google search through the scraping service.
func (c *Client) Search(ctx context.Context, search string, searchType SearchType, params map[string]any) (*SearchResult, error) {
	query := url.Values{}
	query.Set("search", search)
	if searchType != "" && searchType != SearchClassic {
		query.Set("search_type", string(searchType))
	}
	for k, v := range stringifyParams(params) {
		query.Set(k, v)
	}

	status, _, body, err := c.send(ctx, endpointSearch, query, nil)
	if err != nil {
		return nil, err
	}

	var res SearchResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, newError(KindUnknown, status, "malformed search response: "+excerpt(body))
	}
	res.Raw = json.RawMessage(body)
	return &res, nil
}

// Usage reports account credits and concurrency. Idempotent, safe to call
// repeatedly.
func (c *Client) Usage(ctx context.Context) (*UsageResult, error) {
	status, _, body, err := c.send(ctx, endpointUsage, url.Values{}, nil)
	if err != nil {
		return nil, err
	}

	var res UsageResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, newError(KindUnknown, status, "malformed usage response: "+excerpt(body))
	}
	return &res, nil
}

// send issues exactly one request against the named endpoint and returns the
// classified result. There is no retry here, blind retry against a metered
// service compounds cost; the caller owns any backoff policy.
func (c *Client) send(ctx context.Context, endpoint string, query url.Values, header http.Header) (int, http.Header, []byte, error) {
	query.Set("api_key", c.apiKey)
	u := c.baseURL + endpointPaths[endpoint] + "?" + query.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, nil, errors.Wrap(err, "create request")
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", userAgent)

	logger.ContextKV(ctx, xlog.DEBUG, "endpoint", endpoint)

	started := time.Now()
	defer metricskey.PerfUpstreamCall.MeasureSince(started, endpoint)

	r, err := c.httpClient.Do(req)
	if err != nil {
		metricskey.StatsUpstreamCallsFailed.IncrCounter(1, endpoint)
		// url.Error formats the full URL, which carries the api_key
		msg := err.Error()
		var uerr *url.Error
		if errors.As(err, &uerr) {
			msg = uerr.Err.Error()
		}
		return 0, nil, nil, &Error{
			Kind:      KindUpstreamUnavailable,
			Message:   msg,
			Retriable: true,
		}
	}
	defer func() { _ = r.Body.Close() }()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		metricskey.StatsUpstreamCallsFailed.IncrCounter(1, endpoint)
		return 0, nil, nil, &Error{
			Kind:      KindUpstreamUnavailable,
			Message:   "read body: " + err.Error(),
			Retriable: true,
		}
	}

	if err := classify(r.StatusCode, body); err != nil {
		metricskey.StatsUpstreamCallsFailed.IncrCounter(1, endpoint)
		return r.StatusCode, r.Header, body, err
	}

	metricskey.StatsUpstreamCallsSucceeded.IncrCounter(1, endpoint)
	metricskey.StatsUpstreamBytesReceived.IncrCounter(float64(len(body)), endpoint)
	return r.StatusCode, r.Header, body, nil
}
