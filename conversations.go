package client

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// ConversationIndex derives a deduplicated per-counterparty view of
// conversations from the flat set of chat threads it has observed. Threads
// are keyed by the backend-assigned thread id — the authoritative identity;
// the participant pair is only a lookup predicate, never an id.
//
// The index is fed two ways: Refresh pulls the caller's threads from the
// backend, and the chat controller Observes each confirmed round trip so the
// list's last-message preview stays consistent with the open thread.
type ConversationIndex struct {
	mu         sync.Mutex
	client     *Client
	identities *IdentityCache
	threads    map[string]threadRecord
}

type threadRecord struct {
	thread   ChatThread
	messages []Message
}

// last returns the most recent message: the tail of the fetched history, or
// the preview embedded in the thread listing when no history was fetched.
func (r threadRecord) last() *Message {
	if n := len(r.messages); n > 0 {
		m := r.messages[n-1]
		return &m
	}
	return r.thread.LastMessage
}

func newConversationIndex(c *Client, identities *IdentityCache) *ConversationIndex {
	return &ConversationIndex{
		client:     c,
		identities: identities,
		threads:    make(map[string]threadRecord),
	}
}

// Refresh pulls the caller's threads and their histories. Best-effort: a
// listing failure keeps the previously observed threads, and a per-thread
// history failure keeps the listing's embedded preview.
func (ix *ConversationIndex) Refresh(ctx context.Context) {
	threads, err := ix.client.ListChats(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("chat listing failed, keeping observed threads")
		return
	}
	fresh := make(map[string]threadRecord, len(threads))
	for _, t := range threads {
		msgs, err := ix.client.ListMessages(ctx, t.ID)
		if err != nil {
			log.Debug().Err(err).Str("thread_id", t.ID).Msg("history fetch failed, keeping preview")
			msgs = nil
		}
		fresh[t.ID] = threadRecord{thread: t, messages: msgs}
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.threads = fresh
}

// Observe records one thread and its confirmed message history, overwriting
// any prior observation of the same thread id.
func (ix *ConversationIndex) Observe(thread ChatThread, messages []Message) {
	msgs := make([]Message, len(messages))
	copy(msgs, messages)
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.threads[thread.ID] = threadRecord{thread: thread, messages: msgs}
}

// ListForUser derives the conversation list for userID: one entry per
// distinct counterparty. Should two threads share a participant pair (a
// backend anomaly the index must survive), the one whose last message is
// most recent wins; a timestamp tie goes to the greater thread id so output
// is stable for a given snapshot. Entries come back sorted by counterparty
// id — deterministic, deliberately not recency-ordered; callers sort.
func (ix *ConversationIndex) ListForUser(userID string) []Conversation {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	best := make(map[string]Conversation)
	for _, rec := range ix.threads {
		counterparty, ok := rec.thread.Counterparty(userID)
		if !ok {
			continue
		}
		cand := Conversation{
			CounterpartyID: counterparty,
			ThreadID:       rec.thread.ID,
			LastMessage:    rec.last(),
		}
		cur, exists := best[counterparty]
		if !exists {
			best[counterparty] = cand
			continue
		}
		conversationsDedupedTotal.Inc()
		if newerConversation(cand, cur) {
			best[counterparty] = cand
		}
	}

	out := make([]Conversation, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CounterpartyID < out[j].CounterpartyID })
	return out
}

// DisplayName resolves the counterparty's name through the identity cache at
// read time, so a later name correction shows up without rebuilding the
// index.
func (ix *ConversationIndex) DisplayName(ctx context.Context, c Conversation) string {
	return ix.identities.ResolveName(ctx, c.CounterpartyID)
}

// newerConversation reports whether a should replace b for the same
// counterparty. A missing last message always loses.
func newerConversation(a, b Conversation) bool {
	switch {
	case a.LastMessage == nil:
		return false
	case b.LastMessage == nil:
		return true
	case !a.LastMessage.CreatedAt.Equal(b.LastMessage.CreatedAt):
		return a.LastMessage.CreatedAt.After(b.LastMessage.CreatedAt)
	default:
		return a.ThreadID > b.ThreadID
	}
}

func (ix *ConversationIndex) reset() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.threads = make(map[string]threadRecord)
}
