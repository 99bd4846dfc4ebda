package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/spacemeshos/solflood/types"
)

const DefaultTimeout = 5 * time.Second

type options struct {
	timeout time.Duration
	logger  *zap.Logger
}

type OptionFunc func(*options)

// WithTimeout bounds every request, including reading the response body.
func WithTimeout(timeout time.Duration) OptionFunc {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *options) {
		o.logger = logger
	}
}

// Client talks to a node's REST API.
//
// Every call is a single attempt; nothing is retried. Client keeps no
// per-call state and is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	client  *retryablehttp.Client
}

// New returns a Client for the node API rooted at baseURL,
// e.g. http://localhost:3030/testnet.
func New(baseURL string, opts ...OptionFunc) (*Client, error) {
	options := options{
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	raw := strings.TrimRight(baseURL, "/")
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing address: %w", err)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("parsing address: missing host in %q", baseURL)
	}

	cl := retryablehttp.NewClient()
	cl.RetryMax = 0
	cl.CheckRetry = func(context.Context, *http.Response, error) (bool, error) {
		return false, nil
	}
	cl.ErrorHandler = retryablehttp.PassthroughErrorHandler
	cl.HTTPClient.Timeout = options.timeout
	cl.Logger = leveledLogger{options.logger.Named("http").Sugar()}

	return &Client{
		baseURL: base,
		client:  cl,
	}, nil
}

// LatestBlock fetches the chain tip.
func (c *Client) LatestBlock(ctx context.Context) (*types.Block, error) {
	return c.block(ctx, "latest")
}

// Block fetches the block at the given height.
func (c *Client) Block(ctx context.Context, height uint32) (*types.Block, error) {
	return c.block(ctx, strconv.FormatUint(uint64(height), 10))
}

func (c *Client) block(ctx context.Context, id string) (*types.Block, error) {
	endpoint := c.baseURL.JoinPath("block", id).String()
	data, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var block *types.Block
	if err := json.Unmarshal(data, &block); err != nil {
		return nil, &DecodeError{URL: endpoint, Body: data, Err: err}
	}
	if block == nil {
		return nil, &DecodeError{URL: endpoint, Body: data, Err: fmt.Errorf("%w: block is null", types.ErrMissingField)}
	}
	return block, nil
}

// SubmitSolution broadcasts a solution. Any 2xx answer is a success.
func (c *Client) SubmitSolution(ctx context.Context, solution *types.Solution) error {
	body, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("marshaling solution: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, c.baseURL.JoinPath("solution", "broadcast").String(), body)
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reqBody interface{}
	if body != nil {
		reqBody = body
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: endpoint, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: endpoint, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &ProtocolError{
			Method:     method,
			URL:        endpoint,
			StatusCode: res.StatusCode,
			Body:       string(data),
		}
	}
	return data, nil
}
