// Package chat orchestrates the conversation flow: session resolution,
// context assembly, completion invocation, and atomic persistence of the
// resulting exchange.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/Dilshanrad22/mind-case-backend/server/ai"
	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
	"github.com/Dilshanrad22/mind-case-backend/store"
)

const (
	// sessionWindow caps how many prior messages are sent to the gateway.
	sessionWindow = 10
	// titleMaxLen is the character budget for a derived session title.
	titleMaxLen = 50
	// defaultTitle is assigned until the first user message derives one.
	defaultTitle = "New Conversation"
)

// Store is the conversation persistence surface the service depends on.
// *store.Store satisfies it.
type Store interface {
	SignalStore

	CreateChatSession(ctx context.Context, create *store.ChatSession) (*store.ChatSession, error)
	ListChatSessions(ctx context.Context, find *store.FindChatSession) ([]*store.ChatSession, error)
	DeleteChatSession(ctx context.Context, delete *store.DeleteChatSession) error
	CreateChatMessage(ctx context.Context, create *store.ChatMessage) (*store.ChatMessage, error)
	ListChatMessages(ctx context.Context, find *store.FindChatMessage) ([]*store.ChatMessage, error)
	DeleteChatMessages(ctx context.Context, delete *store.DeleteChatMessage) error
	AppendChatExchange(ctx context.Context, append *store.AppendChatExchange) error
}

// Service is the chat orchestrator.
type Service struct {
	store          Store
	gateway        ai.CompletionGateway
	contextBuilder *ContextBuilder
}

// NewService creates a chat service over the given store and gateway.
func NewService(st Store, gateway ai.CompletionGateway) *Service {
	return &Service{
		store:          st,
		gateway:        gateway,
		contextBuilder: NewContextBuilder(st),
	}
}

// SessionDetail is a session with its full message history.
type SessionDetail struct {
	Session  *store.ChatSession
	Messages []*store.ChatMessage
}

// SendResult is the outcome of a successful SendMessage call.
type SendResult struct {
	Session *store.ChatSession
	Reply   *store.ChatMessage
}

// SendMessage handles one inbound user message end to end. The exchange is
// all-or-nothing: nothing is persisted unless the gateway succeeds, so a
// failed call leaves the session exactly as it was and the caller retries
// by resubmitting.
func (s *Service) SendMessage(ctx context.Context, userID int32, text, sessionUID string) (*SendResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apierr.Validation("message is required")
	}
	if err := s.gateway.Ready(); err != nil {
		return nil, err
	}

	session, err := s.resolveOrCreate(ctx, userID, sessionUID)
	if err != nil {
		return nil, err
	}

	history, err := s.store.ListChatMessages(ctx, &store.FindChatMessage{SessionID: &session.ID})
	if err != nil {
		return nil, err
	}

	userMessage := &store.ChatMessage{
		SessionID: session.ID,
		Role:      store.ChatMessageRoleUser,
		Content:   text,
		CreatedTs: time.Now().Unix(),
	}

	summary, err := s.contextBuilder.BuildUserContext(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	window := messageWindow(append(history, userMessage), sessionWindow)
	request := make([]ai.Message, 0, len(window)+1)
	request = append(request, ai.Message{
		Role:    string(store.ChatMessageRoleSystem),
		Content: systemDirective + summary,
	})
	for _, m := range window {
		request = append(request, ai.Message{Role: string(m.Role), Content: m.Content})
	}

	replyText, err := s.gateway.Complete(ctx, request)
	if err != nil {
		// The pending user message is discarded along with the reply.
		return nil, err
	}

	now := time.Now().Unix()
	reply := &store.ChatMessage{
		SessionID: session.ID,
		Role:      store.ChatMessageRoleAssistant,
		Content:   replyText,
		CreatedTs: now,
	}

	exchange := &store.AppendChatExchange{
		SessionID: session.ID,
		Messages:  []*store.ChatMessage{userMessage, reply},
		UpdatedTs: now,
	}
	// Title is derived exactly once, from the first user-authored message.
	if !hasUserMessage(history) {
		title := deriveTitle(text)
		exchange.Title = &title
		session.Title = title
	}
	if err := s.store.AppendChatExchange(ctx, exchange); err != nil {
		return nil, err
	}
	session.UpdatedTs = now

	slog.Info("chat exchange persisted",
		slog.Int64("user_id", int64(userID)),
		slog.String("session_uid", session.UID),
		slog.Int("window_size", len(window)),
	)

	return &SendResult{Session: session, Reply: reply}, nil
}

// NewSession creates an empty session seeded with the assistant greeting.
func (s *Service) NewSession(ctx context.Context, userID int32) (*SessionDetail, error) {
	now := time.Now().Unix()
	session, err := s.store.CreateChatSession(ctx, &store.ChatSession{
		UID:       shortuuid.New(),
		CreatorID: userID,
		Title:     defaultTitle,
		CreatedTs: now,
		UpdatedTs: now,
	})
	if err != nil {
		return nil, err
	}

	greeting, err := s.store.CreateChatMessage(ctx, &store.ChatMessage{
		SessionID: session.ID,
		Role:      store.ChatMessageRoleAssistant,
		Content:   greetingMessage,
		CreatedTs: now,
	})
	if err != nil {
		return nil, err
	}

	return &SessionDetail{Session: session, Messages: []*store.ChatMessage{greeting}}, nil
}

// GetSession returns the full detail of a session owned by userID.
func (s *Service) GetSession(ctx context.Context, userID int32, sessionUID string) (*SessionDetail, error) {
	session, err := s.findOwned(ctx, userID, sessionUID)
	if err != nil {
		return nil, err
	}

	messages, err := s.store.ListChatMessages(ctx, &store.FindChatMessage{SessionID: &session.ID})
	if err != nil {
		return nil, err
	}
	return &SessionDetail{Session: session, Messages: messages}, nil
}

// ListSessions returns the user's sessions ordered by most recent activity.
func (s *Service) ListSessions(ctx context.Context, userID int32) ([]*store.ChatSession, error) {
	return s.store.ListChatSessions(ctx, &store.FindChatSession{CreatorID: &userID})
}

// DeleteSession removes a session owned by userID together with its messages.
func (s *Service) DeleteSession(ctx context.Context, userID int32, sessionUID string) error {
	session, err := s.findOwned(ctx, userID, sessionUID)
	if err != nil {
		return err
	}
	return s.store.DeleteChatSession(ctx, &store.DeleteChatSession{ID: session.ID})
}

// ClearMessages replaces the session history with a single synthetic
// assistant greeting. The title is left untouched.
func (s *Service) ClearMessages(ctx context.Context, userID int32, sessionUID string) (*SessionDetail, error) {
	session, err := s.findOwned(ctx, userID, sessionUID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteChatMessages(ctx, &store.DeleteChatMessage{SessionID: &session.ID}); err != nil {
		return nil, err
	}
	greeting, err := s.store.CreateChatMessage(ctx, &store.ChatMessage{
		SessionID: session.ID,
		Role:      store.ChatMessageRoleAssistant,
		Content:   clearedMessage,
		CreatedTs: time.Now().Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &SessionDetail{Session: session, Messages: []*store.ChatMessage{greeting}}, nil
}

// resolveOrCreate returns the session identified by sessionUID when it is
// owned by userID, and otherwise creates a fresh one. Falling back on a
// missing or foreign session id is a deliberate permissive policy: the
// caller gets a working conversation instead of an authorization error.
func (s *Service) resolveOrCreate(ctx context.Context, userID int32, sessionUID string) (*store.ChatSession, error) {
	if sessionUID != "" {
		sessions, err := s.store.ListChatSessions(ctx, &store.FindChatSession{
			UID:       &sessionUID,
			CreatorID: &userID,
		})
		if err != nil {
			return nil, err
		}
		if len(sessions) > 0 {
			return sessions[0], nil
		}
	}

	now := time.Now().Unix()
	return s.store.CreateChatSession(ctx, &store.ChatSession{
		UID:       shortuuid.New(),
		CreatorID: userID,
		Title:     defaultTitle,
		CreatedTs: now,
		UpdatedTs: now,
	})
}

func (s *Service) findOwned(ctx context.Context, userID int32, sessionUID string) (*store.ChatSession, error) {
	sessions, err := s.store.ListChatSessions(ctx, &store.FindChatSession{
		UID:       &sessionUID,
		CreatorID: &userID,
	})
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, apierr.NotFound("chat not found")
	}
	return sessions[0], nil
}

// messageWindow returns the trailing limit messages, oldest first.
func messageWindow(messages []*store.ChatMessage, limit int) []*store.ChatMessage {
	if len(messages) <= limit {
		return messages
	}
	return messages[len(messages)-limit:]
}

// hasUserMessage reports whether any persisted message is user-authored.
func hasUserMessage(messages []*store.ChatMessage) bool {
	for _, m := range messages {
		if m.Role == store.ChatMessageRoleUser {
			return true
		}
	}
	return false
}

// deriveTitle truncates text to the title budget, marking truncation with
// an ellipsis.
func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleMaxLen {
		return text
	}
	return string(runes[:titleMaxLen]) + "..."
}
