package client

import "github.com/farmlink/client-go/internal/types"

// Public aliases for the wire and domain types so callers never import
// internal packages.

type (
	// User is a display profile as returned by the user lookup endpoints.
	User = types.User
	// Post is a marketplace listing.
	Post = types.Post
	// PostFields carries the role-specific attributes for create/update.
	PostFields = types.PostFields
	// PostFilter narrows a post listing.
	PostFilter = types.PostFilter
	// ChatThread is a two-party messaging channel.
	ChatThread = types.ChatThread
	// Message is one immutable chat message.
	Message = types.Message
	// Conversation is the derived per-counterparty view of a thread.
	Conversation = types.Conversation
)

// Role tags carried on posts.
const (
	RoleFarmer = types.RoleFarmer
	RoleBuyer  = types.RoleBuyer
)
