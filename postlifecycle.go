package client

import (
	"context"

	clierr "github.com/farmlink/client-go/internal/errors"
	"github.com/farmlink/client-go/internal/types"
)

// PostLifecycle owns the create/edit/delete flows. Preconditions run in a
// fixed order before any network call: token present, advisory ownership
// (update/delete), role-specific field validation. After every successful
// mutation the post store is refreshed wholesale — no partial patching of
// the in-memory snapshot, so client and server state cannot diverge.
type PostLifecycle struct {
	client *Client
	store  *PostStore
}

func newPostLifecycle(c *Client, store *PostStore) *PostLifecycle {
	return &PostLifecycle{client: c, store: store}
}

// Create validates fields for the role locally and submits the post. A
// missing required field fails with ValidationFailed naming every missing
// field, with zero network calls made.
func (pl *PostLifecycle) Create(ctx context.Context, role string, fields PostFields) (*Post, error) {
	const op = "create post"
	if !pl.client.HasToken() {
		return nil, clierr.New(clierr.AuthRequired, op, nil)
	}
	if err := types.ValidatePostFields(op, role, fields); err != nil {
		return nil, err
	}
	post, err := pl.client.CreatePost(ctx, fields)
	if err != nil {
		return nil, err
	}
	pl.store.Refresh(ctx, PostFilter{})
	return post, nil
}

// Update replaces the mutable fields of post. The ownership check here is
// advisory — it saves a doomed round trip and lets the UI hide controls —
// while the backend stays the enforcer.
func (pl *PostLifecycle) Update(ctx context.Context, post Post, fields PostFields) (*Post, error) {
	const op = "update post"
	if !pl.client.HasToken() {
		return nil, clierr.New(clierr.AuthRequired, op, nil)
	}
	if !pl.store.CanEdit(post) {
		return nil, ErrNotOwner
	}
	if err := types.ValidatePostFields(op, post.RoleTag, fields); err != nil {
		return nil, err
	}
	updated, err := pl.client.UpdatePost(ctx, post.ID, fields)
	if err != nil {
		return nil, err
	}
	pl.store.Refresh(ctx, PostFilter{})
	return updated, nil
}

// Delete removes post, advisory ownership check first.
func (pl *PostLifecycle) Delete(ctx context.Context, post Post) error {
	const op = "delete post"
	if !pl.client.HasToken() {
		return clierr.New(clierr.AuthRequired, op, nil)
	}
	if !pl.store.CanEdit(post) {
		return ErrNotOwner
	}
	if err := pl.client.DeletePost(ctx, post.ID); err != nil {
		return err
	}
	pl.store.Refresh(ctx, PostFilter{})
	return nil
}
