package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dilshanrad22/mind-case-backend/server/ai"
	"github.com/Dilshanrad22/mind-case-backend/server/auth"
	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
	"github.com/Dilshanrad22/mind-case-backend/server/service/chat"
	"github.com/Dilshanrad22/mind-case-backend/store"
)

// fakeChatStore is an in-memory chat.Store for exercising the handlers
// end to end without a database.
type fakeChatStore struct {
	mu       sync.Mutex
	nextID   int32
	sessions []*store.ChatSession
	messages []*store.ChatMessage
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{nextID: 1}
}

func (f *fakeChatStore) ListMoods(_ context.Context, _ *store.FindMood) ([]*store.Mood, error) {
	return nil, nil
}

func (f *fakeChatStore) ListJournals(_ context.Context, _ *store.FindJournal) ([]*store.Journal, error) {
	return nil, nil
}

func (f *fakeChatStore) CreateChatSession(_ context.Context, create *store.ChatSession) (*store.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	create.ID = f.nextID
	f.nextID++
	f.sessions = append(f.sessions, create)
	return create, nil
}

func (f *fakeChatStore) ListChatSessions(_ context.Context, find *store.FindChatSession) ([]*store.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*store.ChatSession
	for _, s := range f.sessions {
		if find.UID != nil && s.UID != *find.UID {
			continue
		}
		if find.CreatorID != nil && s.CreatorID != *find.CreatorID {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeChatStore) DeleteChatSession(_ context.Context, delete *store.DeleteChatSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.sessions[:0]
	for _, s := range f.sessions {
		if s.ID != delete.ID {
			kept = append(kept, s)
		}
	}
	f.sessions = kept
	remaining := f.messages[:0]
	for _, m := range f.messages {
		if m.SessionID != delete.ID {
			remaining = append(remaining, m)
		}
	}
	f.messages = remaining
	return nil
}

func (f *fakeChatStore) CreateChatMessage(_ context.Context, create *store.ChatMessage) (*store.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	create.ID = f.nextID
	f.nextID++
	f.messages = append(f.messages, create)
	return create, nil
}

func (f *fakeChatStore) ListChatMessages(_ context.Context, find *store.FindChatMessage) ([]*store.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*store.ChatMessage
	for _, m := range f.messages {
		if find.SessionID != nil && m.SessionID != *find.SessionID {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func (f *fakeChatStore) DeleteChatMessages(_ context.Context, delete *store.DeleteChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.messages[:0]
	for _, m := range f.messages {
		if delete.SessionID != nil && m.SessionID == *delete.SessionID {
			continue
		}
		kept = append(kept, m)
	}
	f.messages = kept
	return nil
}

func (f *fakeChatStore) AppendChatExchange(_ context.Context, exchange *store.AppendChatExchange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range exchange.Messages {
		m.ID = f.nextID
		f.nextID++
		f.messages = append(f.messages, m)
	}
	for _, s := range f.sessions {
		if s.ID == exchange.SessionID {
			if exchange.Title != nil {
				s.Title = *exchange.Title
			}
			s.UpdatedTs = exchange.UpdatedTs
		}
	}
	return nil
}

// stubGateway always replies with the same text.
type stubGateway struct {
	reply string
	err   error
}

func (g *stubGateway) Ready() error { return g.err }

func (g *stubGateway) Complete(_ context.Context, _ []ai.Message) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newChatTestService(gateway ai.CompletionGateway, st chat.Store) *APIV1Service {
	return &APIV1Service{ChatService: chat.NewService(st, gateway)}
}

func doRequest(t *testing.T, handler echo.HandlerFunc, method, path, body string, userID int32, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	auth.SetUserID(c, userID)
	for name, value := range params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	require.NoError(t, handler(c))
	return rec
}

func TestChatLifecycle(t *testing.T) {
	st := newFakeChatStore()
	svc := newChatTestService(&stubGateway{reply: "I hear you"}, st)

	// A fresh chat holds exactly the greeting.
	rec := doRequest(t, svc.CreateNewChat, http.MethodPost, "/api/chat/new", "", 1, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			ChatID   string `json:"chatId"`
			Title    string `json:"title"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "New Conversation", created.Data.Title)
	require.Len(t, created.Data.Messages, 1)
	assert.Equal(t, "assistant", created.Data.Messages[0].Role)
	assert.Contains(t, created.Data.Messages[0].Content, "MindBot")

	// The first user message derives the title and stores the exchange.
	body := `{"message": "I feel anxious today", "chatId": "` + created.Data.ChatID + `"}`
	rec = doRequest(t, svc.SendChatMessage, http.MethodPost, "/api/chat/message", body, 1, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sent struct {
		Data struct {
			ChatID  string `json:"chatId"`
			Title   string `json:"title"`
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sent))
	assert.Equal(t, created.Data.ChatID, sent.Data.ChatID)
	assert.Equal(t, "I feel anxious today", sent.Data.Title)
	assert.Equal(t, "assistant", sent.Data.Message.Role)
	assert.Equal(t, "I hear you", sent.Data.Message.Content)

	// History now holds greeting, user message, and reply in order.
	rec = doRequest(t, svc.GetChatHistory, http.MethodGet, "/api/chat/"+created.Data.ChatID, "", 1, map[string]string{"id": created.Data.ChatID})
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Data struct {
			Title    string `json:"title"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Data.Messages, 3)
	assert.Equal(t, "user", history.Data.Messages[1].Role)
	assert.Equal(t, "I feel anxious today", history.Data.Messages[1].Content)

	// Clearing resets the history but keeps the derived title.
	rec = doRequest(t, svc.ClearChatMessages, http.MethodDelete, "/api/chat/"+created.Data.ChatID+"/messages", "", 1, map[string]string{"id": created.Data.ChatID})
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared struct {
		Data struct {
			Title    string `json:"title"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cleared))
	assert.Equal(t, "I feel anxious today", cleared.Data.Title)
	require.Len(t, cleared.Data.Messages, 1)
	assert.Contains(t, cleared.Data.Messages[0].Content, "Chat cleared")
}

func TestSendChatMessage_ValidationAndGatewayErrors(t *testing.T) {
	st := newFakeChatStore()

	svc := newChatTestService(&stubGateway{reply: "ok"}, st)
	rec := doRequest(t, svc.SendChatMessage, http.MethodPost, "/api/chat/message", `{"message": ""}`, 1, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	unconfigured := newChatTestService(&stubGateway{err: apierr.Configuration("completion service credential is not configured")}, st)
	rec = doRequest(t, unconfigured.SendChatMessage, http.MethodPost, "/api/chat/message", `{"message": "hi"}`, 1, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Nothing was persisted on the failed path.
	assert.Empty(t, st.messages)
}

func TestChatOwnership(t *testing.T) {
	st := newFakeChatStore()
	svc := newChatTestService(&stubGateway{reply: "ok"}, st)

	rec := doRequest(t, svc.CreateNewChat, http.MethodPost, "/api/chat/new", "", 1, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data struct {
			ChatID string `json:"chatId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Another user cannot read or delete the session.
	rec = doRequest(t, svc.GetChatHistory, http.MethodGet, "/api/chat/"+created.Data.ChatID, "", 2, map[string]string{"id": created.Data.ChatID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(t, svc.DeleteChat, http.MethodDelete, "/api/chat/"+created.Data.ChatID, "", 2, map[string]string{"id": created.Data.ChatID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The owner can delete it.
	rec = doRequest(t, svc.DeleteChat, http.MethodDelete, "/api/chat/"+created.Data.ChatID, "", 1, map[string]string{"id": created.Data.ChatID})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, st.sessions)
}

func TestListChats(t *testing.T) {
	st := newFakeChatStore()
	svc := newChatTestService(&stubGateway{reply: "ok"}, st)

	for i := 0; i < 2; i++ {
		rec := doRequest(t, svc.CreateNewChat, http.MethodPost, "/api/chat/new", "", 1, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		time.Sleep(time.Millisecond)
	}
	doRequest(t, svc.CreateNewChat, http.MethodPost, "/api/chat/new", "", 2, nil)

	rec := doRequest(t, svc.ListChats, http.MethodGet, "/api/chat", "", 1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Count *int `json:"count"`
		Data  []struct {
			ChatID string `json:"chatId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.NotNil(t, listed.Count)
	assert.Equal(t, 2, *listed.Count)
	assert.Len(t, listed.Data, 2)
}
