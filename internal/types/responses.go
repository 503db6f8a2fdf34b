package types

// ListPostsResponse wraps GET /api/posts.
type ListPostsResponse struct {
	Posts []Post `json:"posts"`
	Count int    `json:"count"`
}

// PostResponse wraps the create/update post endpoints.
type PostResponse struct {
	Message string `json:"message,omitempty"`
	Post    Post   `json:"post"`
}

// ChatResponse wraps POST /api/chats.
type ChatResponse struct {
	Chat ChatThread `json:"chat"`
}

// ListChatsResponse wraps GET /api/chats.
type ListChatsResponse struct {
	Chats []ChatThread `json:"chats"`
	Count int          `json:"count,omitempty"`
}

// ListMessagesResponse wraps GET /api/chats/{id}/messages.
type ListMessagesResponse struct {
	Messages []Message `json:"messages"`
}

// SendMessageResponse wraps POST /api/chats/{id}/messages.
type SendMessageResponse struct {
	Message     string  `json:"message,omitempty"`
	MessageData Message `json:"message_data"`
}

// ProfileResponse wraps GET /api/profile.
type ProfileResponse struct {
	Profile User `json:"profile"`
}
