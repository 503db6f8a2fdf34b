package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New.
//
// Options run before the transport stack is installed, so they may adjust
// timeouts, retry policy and debug logging but not the wrappers themselves.
// Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the Timeout on both underlying http.Clients.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP
// request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		c.public.Timeout = d
		return nil
	}
}

// WithMaxRetries bounds the GET retry budget. Zero disables retries
// entirely; mutations are never retried regardless of this setting.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) error {
		c.maxRetries = n
		return nil
	}
}

// WithRetryBackoff sets the initial backoff interval for GET retries.
func WithRetryBackoff(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("retry backoff must be > 0")
		}
		c.retryBackoff = d
		return nil
	}
}

// WithDebugLogging logs each request/response through the debug transport
// when enabled is true.
//
// Do not enable this option in production environments: dumps include
// headers and bodies, credentials among them.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}
