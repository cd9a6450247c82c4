// Package network provides the host implementation of the network collaborator
package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultDialTimeout    = 2 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// Client denotes a network stack backed by the host's connectivity. On a host
// there is no radio to associate, so association means the endpoint is
// reachable via TCP
type Client struct {
	endpoint       *url.URL
	dialTimeout    time.Duration
	requestTimeout time.Duration
	associated     atomic.Bool

	logger scale.Logger
}

// Ensure Client implements scale.Network
var _ scale.Network = (*Client)(nil)

// New instantiates a new Client for the given endpoint, executing functional options, if any
func New(endpoint string, options ...func(*Client)) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint `%s`: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported endpoint scheme `%s`", u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, errors.New("endpoint has no host")
	}

	c := &Client{
		endpoint:       u,
		dialTimeout:    defaultDialTimeout,
		requestTimeout: defaultRequestTimeout,
		logger:         &scale.NullLogger{},
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// WithDialTimeout sets the timeout of the reachability check
func WithDialTimeout(d time.Duration) func(*Client) {
	return func(c *Client) {
		c.dialTimeout = d
	}
}

// WithRequestTimeout sets the timeout of a single request
func WithRequestTimeout(d time.Duration) func(*Client) {
	return func(c *Client) {
		c.requestTimeout = d
	}
}

// WithLogger sets the logger
func WithLogger(logger scale.Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Associate checks if the endpoint can be reached. The credentials are not
// used by the host stack
func (c *Client) Associate(ctx context.Context, creds scale.Credentials) bool {
	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", hostPort(c.endpoint))
	if err != nil {
		c.logger.Debugf("endpoint unreachable for `%s`: %s", creds.SSID, err)
		c.associated.Store(false)
		return false
	}
	_ = conn.Close()

	c.associated.Store(true)
	return true
}

// Post issues a single request and returns the status code
func (c *Client) Post(ctx context.Context, url string, headers map[string]string, body []byte) (int, error) {
	if !c.associated.Load() {
		return 0, errors.New("not associated")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	agent := fiber.Post(url)
	for k, v := range headers {
		agent.Set(k, v)
	}
	agent.Body(body)
	agent.Timeout(c.requestTimeout)

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return 0, fmt.Errorf("failed to prepare request: %w", err)
	}

	code, resp, errs := agent.Bytes()
	if len(errs) > 0 {
		return code, fmt.Errorf("request failed: %w", errors.Join(errs...))
	}
	c.logger.Debugf("endpoint responded with %d (%d bytes)", code, len(resp))

	return code, nil
}

// Disconnect drops the association
func (c *Client) Disconnect() error {
	c.associated.Store(false)
	return nil
}

// Associated returns if the client is currently associated
func (c *Client) Associated() bool {
	return c.associated.Load()
}

func hostPort(u *url.URL) string {
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port)
}
