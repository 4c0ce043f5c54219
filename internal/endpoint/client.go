package endpoint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/afternoon/ontopy/internal/sparql"
)

// maxErrorBody bounds how much of an error response is kept in messages.
const maxErrorBody = 4096

// Client is a SPARQL endpoint reachable over HTTP.
//
// Thread-safety: Client holds no mutable state after construction and is
// safe for concurrent use.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBasicAuth sends HTTP Basic credentials with every request. Empty
// username or password disables authentication.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithHTTPClient replaces the default http.Client. Timeouts belong here.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the endpoint at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint base URL.
func (c *Client) URL() string {
	return c.baseURL
}

func (c *Client) String() string {
	return fmt.Sprintf("<SPARQLEndpoint: %s>", c.baseURL)
}

// Query runs a SPARQL query and returns the parsed result set.
func (c *Client) Query(ctx context.Context, query string) (*Results, error) {
	reqURL, err := c.requestURL(query)
	if err != nil {
		return nil, &TransportError{URL: c.baseURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: c.baseURL, Err: err}
	}
	req.Header.Set("Accept", "application/sparql-results+xml")
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	c.logger.Debug("sparql request", "endpoint", c.baseURL, "query", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, &QueryError{Query: query, Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			URL:    c.baseURL,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected response: %s", readMessage(resp.Body)),
		}
	}

	results, err := ParseResults(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: c.baseURL, Status: resp.StatusCode, Err: err}
	}

	c.logger.Debug("sparql response", "endpoint", c.baseURL, "rows", len(results.Bindings))
	return results, nil
}

// Execute runs a query and returns its uri bindings in document order.
func (c *Client) Execute(ctx context.Context, query string) ([]string, error) {
	results, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return results.URIs(), nil
}

// Classes lists the classes of things stored in the endpoint's default graph.
func (c *Client) Classes(ctx context.Context) ([]string, error) {
	q := sparql.New().
		WithSelect("?class").
		WithDistinct().
		WithWhere(sparql.Var("a"), sparql.A, sparql.Var("class"))
	return c.executeExpression(ctx, q)
}

// Properties lists every predicate used on instances of classURI. This can be
// a wide selection spanning many namespaces.
func (c *Client) Properties(ctx context.Context, classURI string) ([]string, error) {
	q := sparql.New().
		WithSelect("?property").
		WithDistinct().
		WithWhere(sparql.Var("object"), sparql.A, sparql.IRI(classURI)).
		WithWhere(sparql.Var("object"), sparql.Var("property"), sparql.Var("x"))
	return c.executeExpression(ctx, q)
}

func (c *Client) executeExpression(ctx context.Context, q sparql.Expression) ([]string, error) {
	text, err := q.Serialize()
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, text)
}

func (c *Client) requestURL(query string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse endpoint url: %w", err)
	}
	values := u.Query()
	values.Set("query", query)
	u.RawQuery = values.Encode()
	return u.String(), nil
}

func readMessage(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(body))
}
