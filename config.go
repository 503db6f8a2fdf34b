package client

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config captures the environment-driven client settings. All variables are
// prefixed FARMLINK_ (FARMLINK_API_URL, FARMLINK_TOKEN, ...).
type Config struct {
	APIURL       string        `envconfig:"API_URL" required:"true"`
	Token        string        `envconfig:"TOKEN"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	MaxRetries   uint64        `envconfig:"MAX_RETRIES" default:"3"`
	RetryBackoff time.Duration `envconfig:"RETRY_BACKOFF" default:"100ms"`
	Debug        bool          `envconfig:"DEBUG"`
}

// LoadConfig reads the FARMLINK_* environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("farmlink", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewFromEnv constructs a Client from the environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithHTTPTimeout(cfg.HTTPTimeout),
		WithMaxRetries(cfg.MaxRetries),
		WithRetryBackoff(cfg.RetryBackoff),
		WithDebugLogging(cfg.Debug),
	}
	return New(cfg.APIURL, cfg.Token, append(base, opts...)...), nil
}
