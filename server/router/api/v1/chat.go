package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Dilshanrad22/mind-case-backend/server/auth"
	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
	"github.com/Dilshanrad22/mind-case-backend/server/service/chat"
	"github.com/Dilshanrad22/mind-case-backend/store"
)

type chatMessageRequest struct {
	Message string `json:"message"`
	ChatID  string `json:"chatId"`
}

type chatMessageView struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func toChatMessageView(m *store.ChatMessage) chatMessageView {
	return chatMessageView{
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: formatTime(m.CreatedTs),
	}
}

type chatSessionView struct {
	ChatID    string `json:"chatId"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toChatSessionView(s *store.ChatSession) chatSessionView {
	return chatSessionView{
		ChatID:    s.UID,
		Title:     s.Title,
		CreatedAt: formatTime(s.CreatedTs),
		UpdatedAt: formatTime(s.UpdatedTs),
	}
}

type chatDetailView struct {
	ChatID   string            `json:"chatId"`
	Title    string            `json:"title"`
	Messages []chatMessageView `json:"messages"`
}

func toChatDetailView(d *chat.SessionDetail) chatDetailView {
	view := chatDetailView{
		ChatID:   d.Session.UID,
		Title:    d.Session.Title,
		Messages: make([]chatMessageView, len(d.Messages)),
	}
	for i, m := range d.Messages {
		view.Messages[i] = toChatMessageView(m)
	}
	return view
}

// SendChatMessage forwards one user message through the chat service and
// returns the assistant reply.
func (s *APIV1Service) SendChatMessage(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	var req chatMessageRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierr.Validation("invalid request body"))
	}

	result, err := s.ChatService.SendMessage(ctx, userID, req.Message, req.ChatID)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, echo.Map{
		"chatId":  result.Session.UID,
		"title":   result.Session.Title,
		"message": toChatMessageView(result.Reply),
	})
}

// CreateNewChat starts an empty conversation seeded with a greeting.
func (s *APIV1Service) CreateNewChat(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	detail, err := s.ChatService.NewSession(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, toChatDetailView(detail))
}

// ListChats returns the caller's conversations, most recent activity first.
func (s *APIV1Service) ListChats(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	sessions, err := s.ChatService.ListSessions(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	views := make([]chatSessionView, len(sessions))
	for i, session := range sessions {
		views[i] = toChatSessionView(session)
	}
	return respondList(c, len(views), views)
}

// GetChatHistory returns one conversation with its full message history.
func (s *APIV1Service) GetChatHistory(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	detail, err := s.ChatService.GetSession(ctx, userID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, toChatDetailView(detail))
}

// DeleteChat removes a conversation and all of its messages.
func (s *APIV1Service) DeleteChat(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	if err := s.ChatService.DeleteSession(ctx, userID, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Chat deleted successfully")
}

// ClearChatMessages wipes a conversation's history, leaving a fresh greeting.
func (s *APIV1Service) ClearChatMessages(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	detail, err := s.ChatService.ClearMessages(ctx, userID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, toChatDetailView(detail))
}
