package client

import (
	"context"
	"strings"

	clierr "github.com/farmlink/client-go/internal/errors"
)

// ChatState is the controller's lifecycle state: Closed -> Opening -> Open.
type ChatState int

const (
	// StateClosed: no conversation; Send fails, Open may be called.
	StateClosed ChatState = iota
	// StateOpening: thread resolution in flight.
	StateOpening
	// StateOpen: a thread is resolved and its history confirmed.
	StateOpen
)

// String returns a human-readable representation of the state.
func (s ChatState) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpening:
		return "Opening"
	case StateOpen:
		return "Open"
	default:
		return "Unknown"
	}
}

// ChatSession owns the currently open conversation. Every write is a
// confirmed round trip: send, then re-fetch the full history before the
// caller is told the message landed. No optimistic appends — they risk
// duplicate-message bugs when the server assigns a different ordering.
type ChatSession struct {
	client *Client
	index  *ConversationIndex

	state          ChatState
	thread         ChatThread
	counterpartyID string
	messages       []Message
}

func newChatSession(c *Client, index *ConversationIndex) *ChatSession {
	return &ChatSession{client: c, index: index}
}

// Open resolves (get-or-create, idempotent per pair) the thread with
// counterpartyID and loads its history. On any failure the session returns
// to Closed and the typed failure (AuthRequired, NotFound, ServerError,
// NetworkError, MalformedResponse) is surfaced so the caller can render a
// distinct message.
func (cs *ChatSession) Open(ctx context.Context, counterpartyID string) error {
	const op = "open chat"
	if !cs.client.HasToken() {
		return clierr.New(clierr.AuthRequired, op, nil)
	}
	if strings.TrimSpace(counterpartyID) == "" {
		return clierr.NewValidation(op, "counterpartyId")
	}

	cs.state = StateOpening
	thread, err := cs.client.CreateChat(ctx, counterpartyID)
	if err != nil {
		cs.state = StateClosed
		return err
	}
	messages, err := cs.client.ListMessages(ctx, thread.ID)
	if err != nil {
		cs.state = StateClosed
		return err
	}

	cs.state = StateOpen
	cs.thread = *thread
	cs.counterpartyID = counterpartyID
	cs.messages = messages
	cs.index.Observe(cs.thread, messages)
	return nil
}

// Send appends text to the open conversation. Empty or whitespace-only text
// is a no-op. Success means the message was confirmed by a full history
// re-fetch; the conversation index is re-observed so the list preview stays
// consistent with the open thread.
func (cs *ChatSession) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if cs.state != StateOpen {
		return ErrConversationClosed
	}

	if _, err := cs.client.SendMessage(ctx, cs.thread.ID, text); err != nil {
		return err
	}
	messages, err := cs.client.ListMessages(ctx, cs.thread.ID)
	if err != nil {
		// The send may have landed; without a confirmed history the
		// controller cannot claim it did.
		return err
	}

	cs.messages = messages
	messagesSentTotal.Inc()
	cs.index.Observe(cs.thread, messages)
	return nil
}

// Close always succeeds and returns the session to Closed from any state.
func (cs *ChatSession) Close() {
	cs.state = StateClosed
	cs.thread = ChatThread{}
	cs.counterpartyID = ""
	cs.messages = nil
}

// State returns the current lifecycle state.
func (cs *ChatSession) State() ChatState { return cs.state }

// ThreadID returns the open thread's backend-assigned id, or "" when closed.
func (cs *ChatSession) ThreadID() string { return cs.thread.ID }

// CounterpartyID returns the open conversation's other participant.
func (cs *ChatSession) CounterpartyID() string { return cs.counterpartyID }

// Messages returns a copy of the last confirmed history, oldest first.
func (cs *ChatSession) Messages() []Message {
	out := make([]Message, len(cs.messages))
	copy(out, cs.messages)
	return out
}
