package types

// PostFields carries the role-specific attributes of a post being created or
// updated. Keys are the backend column names (see RequiredFields).
type PostFields map[string]string

// CreateChatRequest asks the backend for the thread with another user,
// creating it when absent. The call is idempotent per participant pair.
type CreateChatRequest struct {
	OtherUserID string `json:"other_user_id"`
}

// SendMessageRequest appends one message to a thread.
type SendMessageRequest struct {
	Message string `json:"message"`
}

// PostFilter narrows a post listing. Zero values mean "no constraint".
type PostFilter struct {
	RoleTag  string // "farmer" or "buyer"
	AuthorID string
	Location string // substring match, backend-side
	Search   string // free-text match over role fields, backend-side
}
