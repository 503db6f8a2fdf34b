package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Role tags carried on posts; the backend derives them from the session.
const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
)

// User represents a user profile as returned by the user lookup endpoints.
// The public variant omits Email and Mobile.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	UserType  string    `json:"user_type,omitempty"`
	Mobile    string    `json:"mobile,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Post represents a marketplace listing. Farmer posts populate the crop
// columns, buyer posts the organization columns; both carry Location.
type Post struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
	RoleTag  string `json:"user_type"`

	// Farmer fields.
	CropName    string `json:"crop_name,omitempty"`
	CropDetails string `json:"crop_details,omitempty"`
	Quantity    string `json:"quantity,omitempty"`

	// Buyer fields.
	Name         string `json:"name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Requirements string `json:"requirements,omitempty"`

	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// ChatThread is a two-party messaging channel. The participant pair is not
// orderable: the current user may sit on either side.
type ChatThread struct {
	ID          string    `json:"id"`
	User1ID     string    `json:"user1_id"`
	User2ID     string    `json:"user2_id"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	LastMessage *Message  `json:"last_message,omitempty"`
}

// Includes reports whether userID participates in the thread.
func (t ChatThread) Includes(userID string) bool {
	return t.User1ID == userID || t.User2ID == userID
}

// Counterparty returns the other participant relative to userID, checking
// both positions, and ok=false when userID is not in the thread at all.
func (t ChatThread) Counterparty(userID string) (string, bool) {
	switch userID {
	case t.User1ID:
		return t.User2ID, true
	case t.User2ID:
		return t.User1ID, true
	}
	return "", false
}

// Message is an immutable, append-only chat message.
type Message struct {
	ID        string    `json:"id,omitempty"`
	ChatID    string    `json:"chat_id,omitempty"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is the derived per-counterparty view of a thread. It is
// computed on demand and never persisted; display names are resolved through
// the identity cache at read time, not stored here.
type Conversation struct {
	CounterpartyID string
	ThreadID       string
	LastMessage    *Message
}
