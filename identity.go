package client

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Identity is the cached display profile for one user.
type Identity struct {
	Name  string
	Email string
}

// IdentityCache maps user IDs to display profiles, populated lazily from the
// user lookup endpoints. Entries are only ever refined, never proven wrong,
// so there is no invalidation: a fresher successful lookup overwrites the
// stale values and every reader sees the update immediately.
type IdentityCache struct {
	mu      sync.Mutex
	client  *Client
	entries map[string]Identity
}

func newIdentityCache(c *Client) *IdentityCache {
	return &IdentityCache{client: c, entries: make(map[string]Identity)}
}

// ResolveName returns the display name for userID. A cache hit with a
// non-empty name short-circuits; a miss issues a lookup (authenticated when
// a token is present, falling back to the public variant). Lookup failures
// return the raw id and cache nothing, so a later retry is attempted rather
// than permanently poisoned.
func (ic *IdentityCache) ResolveName(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}
	if id, ok := ic.Lookup(userID); ok && id.Name != "" {
		identityCacheHitsTotal.Inc()
		return id.Name
	}
	identityCacheMissesTotal.Inc()

	user, err := ic.lookupRemote(ctx, userID)
	if err != nil || user.Name == "" {
		identityLookupFailuresTotal.Inc()
		log.Debug().Err(err).Str("user_id", userID).Msg("identity lookup failed, using raw id")
		return userID
	}

	ic.put(userID, Identity{Name: user.Name, Email: user.Email})
	return user.Name
}

// lookupRemote picks the lookup variant. The authenticated endpoint only
// answers for the caller's own id, so a rejection falls back to the
// credential-free public variant.
func (ic *IdentityCache) lookupRemote(ctx context.Context, userID string) (*User, error) {
	if ic.client.HasToken() {
		if user, err := ic.client.GetUser(ctx, userID); err == nil {
			return user, nil
		}
	}
	return ic.client.GetUserPublic(ctx, userID)
}

// Lookup peeks the cache without touching the network.
func (ic *IdentityCache) Lookup(userID string) (Identity, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	id, ok := ic.entries[userID]
	return id, ok
}

func (ic *IdentityCache) put(userID string, id Identity) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.entries[userID] = id
}

func (ic *IdentityCache) reset() {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.entries = make(map[string]Identity)
}
