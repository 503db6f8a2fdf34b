package client

import (
	"context"
	"sync/atomic"

	clierr "github.com/farmlink/client-go/internal/errors"
)

// Session owns the reconciliation components for one signed-in (or browsing)
// user: identity cache, post store, conversation index, chat controller and
// post lifecycle. Constructed at session start, closed at logout; nothing is
// shared between sessions, which keeps tests isolated and logout a real
// reset.
type Session struct {
	client        *Client
	currentUserID string

	identities    *IdentityCache
	posts         *PostStore
	conversations *ConversationIndex
	chat          *ChatSession
	lifecycle     *PostLifecycle

	closedOnce uint32 // ensures Close is idempotent
}

// NewSession wires the components for currentUserID on top of c.
func NewSession(c *Client, currentUserID string) *Session {
	if c == nil {
		panic("client cannot be nil")
	}
	if currentUserID == "" {
		panic("currentUserID cannot be empty")
	}
	identities := newIdentityCache(c)
	posts := newPostStore(c, currentUserID)
	conversations := newConversationIndex(c, identities)
	return &Session{
		client:        c,
		currentUserID: currentUserID,
		identities:    identities,
		posts:         posts,
		conversations: conversations,
		chat:          newChatSession(c, conversations),
		lifecycle:     newPostLifecycle(c, posts),
	}
}

// Start resolves the session user's display profile through the
// authenticated lookup. The bearer credential stays opaque: display fields
// come from the backend, never from decoding embedded claims.
func (s *Session) Start(ctx context.Context) error {
	const op = "start session"
	if !s.client.HasToken() {
		return clierr.New(clierr.AuthRequired, op, nil)
	}
	user, err := s.client.GetUser(ctx, s.currentUserID)
	if err != nil {
		return err
	}
	s.identities.put(user.ID, Identity{Name: user.Name, Email: user.Email})
	return nil
}

// UserID returns the session user's id.
func (s *Session) UserID() string { return s.currentUserID }

// Identities returns the session's identity cache.
func (s *Session) Identities() *IdentityCache { return s.identities }

// Posts returns the session's post store.
func (s *Session) Posts() *PostStore { return s.posts }

// Conversations returns the session's conversation index.
func (s *Session) Conversations() *ConversationIndex { return s.conversations }

// Chat returns the session's chat controller.
func (s *Session) Chat() *ChatSession { return s.chat }

// CreatePost runs the post creation flow (validate, submit, refresh).
func (s *Session) CreatePost(ctx context.Context, role string, fields PostFields) (*Post, error) {
	return s.lifecycle.Create(ctx, role, fields)
}

// UpdatePost runs the post update flow (ownership, validate, submit, refresh).
func (s *Session) UpdatePost(ctx context.Context, post Post, fields PostFields) (*Post, error) {
	return s.lifecycle.Update(ctx, post, fields)
}

// DeletePost runs the post deletion flow (ownership, submit, refresh).
func (s *Session) DeletePost(ctx context.Context, post Post) error {
	return s.lifecycle.Delete(ctx, post)
}

// Close discards all cached session state. Safe to call multiple times; the
// underlying Client is untouched and may serve another session.
func (s *Session) Close() error {
	if !atomic.CompareAndSwapUint32(&s.closedOnce, 0, 1) {
		return nil
	}
	s.chat.Close()
	s.identities.reset()
	s.posts.reset()
	s.conversations.reset()
	return nil
}
