package storage

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
	"github.com/Alwanly/ttn-storage-pull/pkg/logger"
)

const (
	DefaultTimeout   = 60 * time.Second
	DefaultV3BaseURL = "https://nam1.cloud.thethings.network"
	DefaultV2Domain  = "data.thethingsnetwork.org"
)

// Config holds the static endpoint and transport settings of a Client.
type Config struct {
	// Timeout bounds the whole round trip, body included. Zero or negative
	// selects DefaultTimeout.
	Timeout time.Duration
	// V3BaseURL is the cluster root, e.g. https://eu1.cloud.thethings.network.
	V3BaseURL string
	// V2Domain is suffixed to the application name to form the V2 host.
	V2Domain string
}

func DefaultConfig() Config {
	return Config{
		Timeout:   DefaultTimeout,
		V3BaseURL: DefaultV3BaseURL,
		V2Domain:  DefaultV2Domain,
	}
}

// Client pulls uplinks from the storage API. It holds no per-call state and
// is safe for concurrent use.
type Client struct {
	httpClient Doer
	cfg        Config
	logger     *logger.CanonicalLogger
}

type Option func(*Client)

// WithHTTPClient replaces the timeout-bound *http.Client built from Config.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.httpClient = d
		}
	}
}

// NewClient creates a storage client. A nil logger discards output.
func NewClient(cfg Config, log *logger.CanonicalLogger, opts ...Option) *Client {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.V3BaseURL == "" {
		cfg.V3BaseURL = def.V3BaseURL
	}
	if cfg.V2Domain == "" {
		cfg.V2Domain = def.V2Domain
	}
	if log == nil {
		log = logger.NewNop()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     log.Component("storage"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the effective configuration after defaults were applied.
func (c *Client) Config() Config { return c.cfg }

// Pull issues exactly one request for req and returns the decoded records
// (V3) or the raw body (V2). When req.OutputDir is set the raw body is also
// written to disk before decoding. Errors are returned, never logged here.
func (c *Client) Pull(ctx context.Context, req models.PullRequest) (*models.PullResult, error) {
	req.APIVersion = req.APIVersion.Resolve()

	httpReq, err := c.BuildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	body, err := c.do(httpReq, req)
	if err != nil {
		return nil, err
	}

	result := &models.PullResult{Version: req.APIVersion, Size: len(body)}
	if req.OutputDir != "" {
		path, err := writeOutput(req.OutputDir, body)
		if err != nil {
			return nil, err
		}
		result.OutputPath = path
	}

	switch req.APIVersion {
	case models.APIVersionV2:
		result.Raw = body
	case models.APIVersionV3:
		records, err := decodeUplinks(body, req.AccessKey)
		if err != nil {
			return nil, err
		}
		result.Records = records
	}

	return result, nil
}

func (c *Client) do(httpReq *http.Request, req models.PullRequest) ([]byte, error) {
	target := httpReq.URL.String()
	fail := func(status int, body []byte, err error) *TransportError {
		te := &TransportError{
			App:        req.AppName,
			Version:    req.APIVersion,
			TimeWindow: req.TimeWindow,
			URL:        target,
			StatusCode: status,
			Err:        err,
		}
		if len(body) > 0 {
			te.Body = excerpt(scrub(body, req.AccessKey))
		}
		return te
	}

	c.logger.Debug("sending storage request",
		logger.String(logger.FieldPullID, logger.GetCorrelationID(httpReq.Context())),
		logger.Object("request", req),
		logger.String(logger.FieldTargetURL, target),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fail(0, nil, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(resp.StatusCode, nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fail(resp.StatusCode, body, nil)
	}

	c.logger.Debug("storage response received",
		logger.String(logger.FieldPullID, logger.GetCorrelationID(httpReq.Context())),
		logger.Int(logger.FieldStatusCode, resp.StatusCode),
		logger.Int(logger.FieldBytes, len(body)),
		logger.Duration("duration", time.Since(start)),
	)

	return body, nil
}
