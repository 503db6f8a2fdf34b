package client

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// PostStore holds a read-only snapshot of the backend's post collection for
// the current view. Refresh replaces the whole snapshot, never patches it,
// so the caller can never observe a stale partial edit. Fetch errors are
// swallowed here and surface only as an empty snapshot: the store is a
// best-effort cache, not a source of truth.
//
// Refreshes are last-writer-wins; a slow refresh finishing after a newer one
// can overwrite it. Accepted: the UI issues one mutation per user action and
// each completion triggers the next read.
type PostStore struct {
	mu            sync.Mutex
	client        *Client
	currentUserID string
	posts         []Post
}

func newPostStore(c *Client, currentUserID string) *PostStore {
	return &PostStore{client: c, currentUserID: currentUserID}
}

// Refresh fetches posts matching filter and replaces the snapshot.
func (s *PostStore) Refresh(ctx context.Context, filter PostFilter) {
	posts, err := s.client.ListPosts(ctx, filter)
	if err != nil {
		postRefreshTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("post refresh failed, snapshot cleared")
		posts = nil
	} else {
		postRefreshTotal.WithLabelValues("ok").Inc()
	}
	s.replace(posts)
}

// RefreshMine replaces the snapshot with the current user's own posts. The
// author filter runs client-side over an unfiltered fetch: the backend
// contract does not guarantee the author parameter, and this fallback keeps
// "my posts" correct regardless. Deliberate, not a backend limitation to fix
// here.
func (s *PostStore) RefreshMine(ctx context.Context) {
	posts, err := s.client.ListPosts(ctx, PostFilter{})
	if err != nil {
		postRefreshTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("post refresh failed, snapshot cleared")
		s.replace(nil)
		return
	}
	postRefreshTotal.WithLabelValues("ok").Inc()
	var mine []Post
	for _, p := range posts {
		if p.AuthorID == s.currentUserID {
			mine = append(mine, p)
		}
	}
	s.replace(mine)
}

// Snapshot returns a copy of the stored posts in fetch order.
func (s *PostStore) Snapshot() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// CanEdit is the advisory ownership predicate: a post is editable by this
// session iff its author is the current user. Evaluated fresh on every call,
// never cached in rendering state; the backend remains the enforcer.
func (s *PostStore) CanEdit(p Post) bool {
	return p.AuthorID != "" && p.AuthorID == s.currentUserID
}

func (s *PostStore) replace(posts []Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
}

func (s *PostStore) reset() { s.replace(nil) }
