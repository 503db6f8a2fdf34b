package client_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	client "github.com/farmlink/client-go"
)

// fakeBackend is an in-memory stand-in for the FarmLink REST backend. It
// implements enough of the wire contract for end-to-end session tests:
// bearer-token auth, server-assigned ids, ownership enforcement on post
// mutations and get-or-create chat threads.
type fakeBackend struct {
	mu       sync.Mutex
	users    map[string]client.User // user id -> profile
	tokens   map[string]string      // bearer token -> user id
	posts    []client.Post
	chats    []client.ChatThread
	messages map[string][]client.Message // chat id -> history, oldest first
	nextID   int

	requests atomic.Int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users:    make(map[string]client.User),
		tokens:   make(map[string]string),
		messages: make(map[string][]client.Message),
	}
}

// addUser registers a user and returns the bearer token that authenticates as
// them.
func (b *fakeBackend) addUser(id, name, userType string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[id] = client.User{ID: id, Name: name, Email: id + "@example.com", UserType: userType}
	token := "tok-" + id
	b.tokens[token] = id
	return token
}

func (b *fakeBackend) newID(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s%d", prefix, b.nextID)
}

// requestCount reports how many requests the backend has served so far.
func (b *fakeBackend) requestCount() int32 { return b.requests.Load() }

func (b *fakeBackend) authenticate(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return "", false
	}
	id, ok := b.tokens[token]
	return id, ok
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// applyFields copies role-specific post fields from the request body onto p.
func applyFields(p *client.Post, fields map[string]string) {
	for key, value := range fields {
		switch key {
		case "crop_name":
			p.CropName = value
		case "crop_details":
			p.CropDetails = value
		case "quantity":
			p.Quantity = value
		case "name":
			p.Name = value
		case "organization":
			p.Organization = value
		case "requirements":
			p.Requirements = value
		case "location":
			p.Location = value
		}
	}
}

func (b *fakeBackend) serve(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		q := r.URL.Query()
		var out []client.Post
		for _, p := range b.posts {
			if v := q.Get("user_type"); v != "" && p.RoleTag != v {
				continue
			}
			if v := q.Get("author_id"); v != "" && p.AuthorID != v {
				continue
			}
			if v := q.Get("location"); v != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(v)) {
				continue
			}
			if v := q.Get("search"); v != "" {
				hay := strings.ToLower(p.CropName + " " + p.CropDetails + " " + p.Requirements + " " + p.Organization)
				if !strings.Contains(hay, strings.ToLower(v)) {
					continue
				}
			}
			out = append(out, p)
		}
		writeJSON(w, http.StatusOK, map[string]any{"posts": out, "count": len(out)})
	})

	mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		uid, ok := b.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var fields map[string]string
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		post := client.Post{
			ID:        b.newID("p"),
			AuthorID:  uid,
			RoleTag:   b.users[uid].UserType,
			CreatedAt: time.Now().UTC(),
		}
		applyFields(&post, fields)
		b.posts = append(b.posts, post)
		writeJSON(w, http.StatusCreated, map[string]any{"message": "post created", "post": post})
	})

	mux.HandleFunc("PUT /api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		uid, ok := b.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var fields map[string]string
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		id := r.PathValue("id")
		for i := range b.posts {
			if b.posts[i].ID != id {
				continue
			}
			if b.posts[i].AuthorID != uid {
				writeError(w, http.StatusForbidden, "not the author")
				return
			}
			applyFields(&b.posts[i], fields)
			b.posts[i].UpdatedAt = time.Now().UTC()
			writeJSON(w, http.StatusOK, map[string]any{"message": "post updated", "post": b.posts[i]})
			return
		}
		writeError(w, http.StatusNotFound, "post not found")
	})

	mux.HandleFunc("DELETE /api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		uid, ok := b.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id := r.PathValue("id")
		for i := range b.posts {
			if b.posts[i].ID != id {
				continue
			}
			if b.posts[i].AuthorID != uid {
				writeError(w, http.StatusForbidden, "not the author")
				return
			}
			b.posts = append(b.posts[:i], b.posts[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
			return
		}
		writeError(w, http.StatusNotFound, "post not found")
	})

	mux.HandleFunc("GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		uid, ok := b.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id := r.PathValue("id")
		if id != uid {
			writeError(w, http.StatusForbidden, "may only fetch own profile")
			return
		}
		writeJSON(w, http.StatusOK, b.users[uid])
	})

	mux.HandleFunc("GET /api/users/{id}/public", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		user, ok := b.users[r.PathValue("id")]
		if !ok {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeJSON(w, http.StatusOK, client.User{ID: user.ID, Name: user.Name, UserType: user.UserType})
	})

	mux.HandleFunc("GET /api/profile", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		uid, ok := b.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profile": b.users[uid]})
	})

	mux.HandleFunc("POST /api/chats", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		uid, ok := b.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var req struct {
			OtherUserID string `json:"other_user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OtherUserID == "" {
			writeError(w, http.StatusBadRequest, "other_user_id required")
			return
		}
		if _, ok := b.users[req.OtherUserID]; !ok {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		for _, chat := range b.chats {
			if chat.Includes(uid) && chat.Includes(req.OtherUserID) {
				writeJSON(w, http.StatusOK, map[string]any{"chat": chat})
				return
			}
		}
		chat := client.ChatThread{ID: b.newID("c"), User1ID: uid, User2ID: req.OtherUserID, CreatedAt: time.Now().UTC()}
		b.chats = append(b.chats, chat)
		writeJSON(w, http.StatusCreated, map[string]any{"chat": chat})
	})

	mux.HandleFunc("GET /api/chats", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		uid, ok := b.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var out []client.ChatThread
		for _, chat := range b.chats {
			if !chat.Includes(uid) {
				continue
			}
			if history := b.messages[chat.ID]; len(history) > 0 {
				last := history[len(history)-1]
				chat.LastMessage = &last
			}
			out = append(out, chat)
		}
		writeJSON(w, http.StatusOK, map[string]any{"chats": out, "count": len(out)})
	})

	mux.HandleFunc("GET /api/chats/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		uid, ok := b.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id := r.PathValue("id")
		chat, found := b.findChat(id)
		if !found {
			writeError(w, http.StatusNotFound, "chat not found")
			return
		}
		if !chat.Includes(uid) {
			writeError(w, http.StatusForbidden, "not a participant")
			return
		}
		history := b.messages[id]
		if history == nil {
			history = []client.Message{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"messages": history})
	})

	mux.HandleFunc("POST /api/chats/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		uid, ok := b.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id := r.PathValue("id")
		chat, found := b.findChat(id)
		if !found {
			writeError(w, http.StatusNotFound, "chat not found")
			return
		}
		if !chat.Includes(uid) {
			writeError(w, http.StatusForbidden, "not a participant")
			return
		}
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
			writeError(w, http.StatusBadRequest, "message required")
			return
		}
		msg := client.Message{
			ID:        b.newID("m"),
			ChatID:    id,
			SenderID:  uid,
			Text:      req.Message,
			CreatedAt: time.Now().UTC(),
		}
		b.messages[id] = append(b.messages[id], msg)
		writeJSON(w, http.StatusCreated, map[string]any{"message": "sent", "message_data": msg})
	})

	counted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		mux.ServeHTTP(w, r)
	})
	srv := httptest.NewServer(counted)
	t.Cleanup(srv.Close)
	return srv
}

// findChat must be called with b.mu held.
func (b *fakeBackend) findChat(id string) (client.ChatThread, bool) {
	for _, chat := range b.chats {
		if chat.ID == id {
			return chat, true
		}
	}
	return client.ChatThread{}, false
}
