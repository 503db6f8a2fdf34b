package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	clierr "github.com/farmlink/client-go/internal/errors"
	"github.com/farmlink/client-go/internal/types"
)

// CreateChat returns the thread between the caller and otherUserID, creating
// it when absent. Idempotent per participant pair: the backend answers 200
// with the existing thread or 201 with a fresh one.
func CreateChat(ctx context.Context, httpClient HTTPClient, baseURL, otherUserID string) (*types.ChatThread, error) {
	const op = "create chat"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(op, otherUserID, "otherUserId"); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/chats", baseURL)
	req, err := newRequest(ctx, http.MethodPost, u, types.CreateChatRequest{OtherUserID: otherUserID})
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, clierr.NewNetwork(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, clierr.FromStatus(op, resp.StatusCode)
	}
	var cr types.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, clierr.NewMalformed(op, err)
	}
	return &cr.Chat, nil
}

// ListChats retrieves every thread the caller participates in.
func ListChats(ctx context.Context, httpClient HTTPClient, baseURL string) ([]types.ChatThread, error) {
	const op = "list chats"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/chats", baseURL)
	req, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, clierr.NewNetwork(op, err)
	}
	var lr types.ListChatsResponse
	if err := decodeResponse(op, resp, http.StatusOK, &lr); err != nil {
		return nil, err
	}
	return lr.Chats, nil
}

// ListMessages retrieves the full ordered history of a thread.
func ListMessages(ctx context.Context, httpClient HTTPClient, baseURL, chatID string) ([]types.Message, error) {
	const op = "list messages"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(op, chatID, "chatId"); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/chats/%s/messages", baseURL, url.PathEscape(chatID))
	req, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, clierr.NewNetwork(op, err)
	}
	var lr types.ListMessagesResponse
	if err := decodeResponse(op, resp, http.StatusOK, &lr); err != nil {
		return nil, err
	}
	return lr.Messages, nil
}

// SendMessage appends one message to a thread.
func SendMessage(ctx context.Context, httpClient HTTPClient, baseURL, chatID, text string) (*types.Message, error) {
	const op = "send message"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(op, chatID, "chatId"); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/chats/%s/messages", baseURL, url.PathEscape(chatID))
	req, err := newRequest(ctx, http.MethodPost, u, types.SendMessageRequest{Message: text})
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, clierr.NewNetwork(op, err)
	}
	var sr types.SendMessageResponse
	if err := decodeResponse(op, resp, http.StatusCreated, &sr); err != nil {
		return nil, err
	}
	return &sr.MessageData, nil
}
