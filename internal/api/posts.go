package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	clierr "github.com/farmlink/client-go/internal/errors"
	"github.com/farmlink/client-go/internal/types"
)

// ListPosts retrieves posts, optionally narrowed by the filter.
func ListPosts(ctx context.Context, httpClient HTTPClient, baseURL string, filter types.PostFilter) ([]types.Post, error) {
	const op = "list posts"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := url.Values{}
	if filter.RoleTag != "" {
		q.Set("user_type", filter.RoleTag)
	}
	if filter.AuthorID != "" {
		q.Set("author_id", filter.AuthorID)
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	u := fmt.Sprintf("%s/api/posts", baseURL)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	req, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, clierr.NewNetwork(op, err)
	}
	var lr types.ListPostsResponse
	if err := decodeResponse(op, resp, http.StatusOK, &lr); err != nil {
		return nil, err
	}
	return lr.Posts, nil
}

// CreatePost submits a new post. The backend derives the role tag and author
// from the bearer token; the body carries only the role-specific fields.
func CreatePost(ctx context.Context, httpClient HTTPClient, baseURL string, fields types.PostFields) (*types.Post, error) {
	const op = "create post"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/posts", baseURL)
	req, err := newRequest(ctx, http.MethodPost, u, fields)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, clierr.NewNetwork(op, err)
	}
	var pr types.PostResponse
	if err := decodeResponse(op, resp, http.StatusCreated, &pr); err != nil {
		return nil, err
	}
	return &pr.Post, nil
}

// UpdatePost replaces the mutable fields of an existing post.
func UpdatePost(ctx context.Context, httpClient HTTPClient, baseURL, postID string, fields types.PostFields) (*types.Post, error) {
	const op = "update post"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(op, postID, "postId"); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/posts/%s", baseURL, url.PathEscape(postID))
	req, err := newRequest(ctx, http.MethodPut, u, fields)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, clierr.NewNetwork(op, err)
	}
	var pr types.PostResponse
	if err := decodeResponse(op, resp, http.StatusOK, &pr); err != nil {
		return nil, err
	}
	return &pr.Post, nil
}

// DeletePost removes a post by ID.
func DeletePost(ctx context.Context, httpClient HTTPClient, baseURL, postID string) error {
	const op = "delete post"
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(op, postID, "postId"); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/api/posts/%s", baseURL, url.PathEscape(postID))
	req, err := newRequest(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return clierr.NewNetwork(op, err)
	}
	return decodeResponse(op, resp, http.StatusOK, nil)
}
