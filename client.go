// Package client is the FarmLink SDK: a typed Go client for the FarmLink
// marketplace and messaging REST backend. Client is the wire layer (one
// method per endpoint); Session layers the reconciliation components on top
// (identity cache, post store, conversation index, chat and post
// controllers).
package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/farmlink/client-go/internal/api"
)

const defaultMaxRetries = 3

// Client owns the HTTP transports and exposes the backend endpoints. It is
// safe for concurrent use; all state is set during construction.
type Client struct {
	baseURL string
	token   string
	http    *http.Client // bearer-authenticated stack (when a token is set)
	public  *http.Client // credential-free stack for public lookups

	maxRetries   uint64
	retryBackoff time.Duration
	debug        bool
}

// New constructs a Client for the backend at baseURL. token may be empty:
// the client then only serves unauthenticated endpoints and the controllers
// fail fast with AuthRequired. Additional options via functional arguments.
func New(baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		token:        token,
		http:         &http.Client{Timeout: 30 * time.Second},
		public:       &http.Client{Timeout: 30 * time.Second},
		maxRetries:   defaultMaxRetries,
		retryBackoff: 100 * time.Millisecond,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	c.wrapTransports()
	return c
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// HasToken reports whether the client carries a bearer credential. The
// credential itself is opaque to the SDK: it is never decoded, only attached.
func (c *Client) HasToken() bool { return c.token != "" }

// Close releases idle connections on both transports.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
	c.public.CloseIdleConnections()
}

// wrapTransports installs the round-tripper stack on both HTTP clients:
// bearer auth (authenticated client only) over retry over request-ID over
// optional debug logging.
func (c *Client) wrapTransports() {
	c.http.Transport = c.stack(c.http.Transport, c.token)
	c.public.Transport = c.stack(c.public.Transport, "")
}

func (c *Client) stack(base http.RoundTripper, token string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	if c.debug {
		rt = &debugTransport{base: rt}
	}
	rt = &requestIDTransport{base: rt}
	rt = &retryTransport{base: rt, maxRetries: c.maxRetries, interval: c.retryBackoff}
	if token != "" {
		rt = &bearerTransport{base: rt, token: token}
	}
	return rt
}

// bearerTransport adds the Authorization header to every request.
type bearerTransport struct {
	base  http.RoundTripper
	token string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone to avoid mutating the caller's request.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(cloned)
}

// requestIDTransport stamps each outgoing request with a correlation ID.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("X-Request-Id") != "" {
		return t.base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set("X-Request-Id", uuid.NewString())
	return t.base.RoundTrip(cloned)
}

// errTransientStatus signals a retryable 5xx inside the backoff loop.
var errTransientStatus = errors.New("transient server status")

// retryTransport retries idempotent GETs on transport failures and 5xx
// responses with bounded exponential backoff. Mutations pass through
// untouched: the SDK never retries a write automatically.
type retryTransport struct {
	base       http.RoundTripper
	maxRetries uint64
	interval   time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || t.maxRetries == 0 {
		return t.base.RoundTrip(req)
	}

	var resp, lastStatus *http.Response
	attempt := func() error {
		r, err := t.base.RoundTrip(req.Clone(req.Context()))
		if err != nil {
			return err
		}
		if r.StatusCode >= 500 {
			if lastStatus != nil {
				_ = lastStatus.Body.Close()
			}
			lastStatus = r
			return errTransientStatus
		}
		resp = r
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = t.interval
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, t.maxRetries), req.Context())
	if err := backoff.Retry(attempt, policy); err != nil {
		if errors.Is(err, errTransientStatus) && lastStatus != nil {
			// Exhausted retries on 5xx: hand the final response to the
			// caller so it classifies as a server failure, not a network one.
			return lastStatus, nil
		}
		return nil, err
	}
	if lastStatus != nil && lastStatus != resp {
		_ = lastStatus.Body.Close()
	}
	return resp, nil
}

// --------------------------------------------------------------------
// Post operations - delegated to internal/api
// --------------------------------------------------------------------

// ListPosts retrieves posts, optionally narrowed by filter.
func (c *Client) ListPosts(ctx context.Context, filter PostFilter) ([]Post, error) {
	return api.ListPosts(ctx, c.http, c.baseURL, filter)
}

// CreatePost submits a new post; the backend derives role and author from
// the bearer token.
func (c *Client) CreatePost(ctx context.Context, fields PostFields) (*Post, error) {
	return api.CreatePost(ctx, c.http, c.baseURL, fields)
}

// UpdatePost replaces the mutable fields of an existing post.
func (c *Client) UpdatePost(ctx context.Context, postID string, fields PostFields) (*Post, error) {
	return api.UpdatePost(ctx, c.http, c.baseURL, postID, fields)
}

// DeletePost removes a post by ID.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return api.DeletePost(ctx, c.http, c.baseURL, postID)
}

// --------------------------------------------------------------------
// User operations - delegated to internal/api
// --------------------------------------------------------------------

// GetUser retrieves a full user profile (authenticated; own profile only).
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	return api.GetUser(ctx, c.http, c.baseURL, userID)
}

// GetUserPublic retrieves the safe display subset of a profile. The request
// goes out on the credential-free transport even when a token is configured.
func (c *Client) GetUserPublic(ctx context.Context, userID string) (*User, error) {
	return api.GetUserPublic(ctx, c.public, c.baseURL, userID)
}

// GetProfile retrieves the caller's own extended profile.
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	return api.GetProfile(ctx, c.http, c.baseURL)
}

// Health probes the backend health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return api.Health(ctx, c.public, c.baseURL)
}

// --------------------------------------------------------------------
// Chat operations - delegated to internal/api
// --------------------------------------------------------------------

// CreateChat returns the thread with otherUserID, creating it when absent.
// Idempotent per participant pair.
func (c *Client) CreateChat(ctx context.Context, otherUserID string) (*ChatThread, error) {
	return api.CreateChat(ctx, c.http, c.baseURL, otherUserID)
}

// ListChats retrieves every thread the caller participates in.
func (c *Client) ListChats(ctx context.Context) ([]ChatThread, error) {
	return api.ListChats(ctx, c.http, c.baseURL)
}

// ListMessages retrieves the full ordered history of a thread.
func (c *Client) ListMessages(ctx context.Context, chatID string) ([]Message, error) {
	return api.ListMessages(ctx, c.http, c.baseURL, chatID)
}

// SendMessage appends one message to a thread.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) (*Message, error) {
	return api.SendMessage(ctx, c.http, c.baseURL, chatID, text)
}

// Compile-time check: the delegated functions accept our HTTP clients.
var _ api.HTTPClient = (*http.Client)(nil)
