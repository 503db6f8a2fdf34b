package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	clierr "github.com/farmlink/client-go/internal/errors"
	"github.com/farmlink/client-go/internal/types"
)

// GetUser retrieves the full profile of a user. Requires authentication; the
// backend only answers for the caller's own ID.
func GetUser(ctx context.Context, httpClient HTTPClient, baseURL, userID string) (*types.User, error) {
	const op = "get user"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(op, userID, "userId"); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/users/%s", baseURL, url.PathEscape(userID))
	req, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, clierr.NewNetwork(op, err)
	}
	var user types.User
	if err := decodeResponse(op, resp, http.StatusOK, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserPublic retrieves the safe display subset of a user profile. Must be
// called with a credential-free transport: the endpoint exists precisely so
// that post cards can show names without a session.
func GetUserPublic(ctx context.Context, httpClient HTTPClient, baseURL, userID string) (*types.User, error) {
	const op = "get user public"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(op, userID, "userId"); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/users/%s/public", baseURL, url.PathEscape(userID))
	req, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, clierr.NewNetwork(op, err)
	}
	var user types.User
	if err := decodeResponse(op, resp, http.StatusOK, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile retrieves the caller's own extended profile.
func GetProfile(ctx context.Context, httpClient HTTPClient, baseURL string) (*types.User, error) {
	const op = "get profile"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/profile", baseURL)
	req, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, clierr.NewNetwork(op, err)
	}
	var pr types.ProfileResponse
	if err := decodeResponse(op, resp, http.StatusOK, &pr); err != nil {
		return nil, err
	}
	return &pr.Profile, nil
}

// Health probes the backend health endpoint.
func Health(ctx context.Context, httpClient HTTPClient, baseURL string) error {
	const op = "health"
	if err := ctx.Err(); err != nil {
		return err
	}
	req, err := newRequest(ctx, http.MethodGet, fmt.Sprintf("%s/api/health", baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return clierr.NewNetwork(op, err)
	}
	return decodeResponse(op, resp, http.StatusOK, nil)
}
