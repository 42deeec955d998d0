package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Dilshanrad22/mind-case-backend/server/ai"
	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
	"github.com/Dilshanrad22/mind-case-backend/store"
)

// MockStore is a mock for the chat Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListMoods(ctx context.Context, find *store.FindMood) ([]*store.Mood, error) {
	args := m.Called(ctx, find)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Mood), args.Error(1)
}

func (m *MockStore) ListJournals(ctx context.Context, find *store.FindJournal) ([]*store.Journal, error) {
	args := m.Called(ctx, find)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Journal), args.Error(1)
}

func (m *MockStore) CreateChatSession(ctx context.Context, create *store.ChatSession) (*store.ChatSession, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ChatSession), args.Error(1)
}

func (m *MockStore) ListChatSessions(ctx context.Context, find *store.FindChatSession) ([]*store.ChatSession, error) {
	args := m.Called(ctx, find)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.ChatSession), args.Error(1)
}

func (m *MockStore) DeleteChatSession(ctx context.Context, delete *store.DeleteChatSession) error {
	args := m.Called(ctx, delete)
	return args.Error(0)
}

func (m *MockStore) CreateChatMessage(ctx context.Context, create *store.ChatMessage) (*store.ChatMessage, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ChatMessage), args.Error(1)
}

func (m *MockStore) ListChatMessages(ctx context.Context, find *store.FindChatMessage) ([]*store.ChatMessage, error) {
	args := m.Called(ctx, find)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.ChatMessage), args.Error(1)
}

func (m *MockStore) DeleteChatMessages(ctx context.Context, delete *store.DeleteChatMessage) error {
	args := m.Called(ctx, delete)
	return args.Error(0)
}

func (m *MockStore) AppendChatExchange(ctx context.Context, append *store.AppendChatExchange) error {
	args := m.Called(ctx, append)
	return args.Error(0)
}

// MockGateway is a mock for the completion gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Ready() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockGateway) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func newTestSession(userID int32) *store.ChatSession {
	return &store.ChatSession{
		ID:        1,
		UID:       "test-session",
		CreatorID: userID,
		Title:     defaultTitle,
		CreatedTs: time.Now().Unix(),
		UpdatedTs: time.Now().Unix(),
	}
}

func capturedExchange(t *testing.T, st *MockStore) *store.AppendChatExchange {
	t.Helper()
	for _, call := range st.Calls {
		if call.Method == "AppendChatExchange" {
			return call.Arguments.Get(1).(*store.AppendChatExchange)
		}
	}
	t.Fatal("AppendChatExchange was not called")
	return nil
}

func expectNoSignals(st *MockStore) {
	st.On("ListMoods", mock.Anything, mock.Anything).Return([]*store.Mood{}, nil)
	st.On("ListJournals", mock.Anything, mock.Anything).Return([]*store.Journal{}, nil)
}

func TestSendMessage_PersistsExchangeAtomically(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)
	session := newTestSession(7)

	st.On("ListChatSessions", mock.Anything, mock.Anything).Return([]*store.ChatSession{session}, nil)
	st.On("ListChatMessages", mock.Anything, mock.Anything).Return([]*store.ChatMessage{}, nil)
	expectNoSignals(st)
	st.On("AppendChatExchange", mock.Anything, mock.Anything).Return(nil)

	gw.On("Ready").Return(nil)
	gw.On("Complete", mock.Anything, mock.Anything).Return("I hear you", nil)

	svc := NewService(st, gw)
	result, err := svc.SendMessage(context.Background(), 7, "I feel anxious today", session.UID)

	assert.NoError(t, err)
	assert.Equal(t, "I hear you", result.Reply.Content)
	assert.Equal(t, store.ChatMessageRoleAssistant, result.Reply.Role)

	st.AssertNumberOfCalls(t, "AppendChatExchange", 1)
	st.AssertNotCalled(t, "CreateChatMessage", mock.Anything, mock.Anything)

	exchange := capturedExchange(t, st)
	assert.Len(t, exchange.Messages, 2)
	assert.Equal(t, store.ChatMessageRoleUser, exchange.Messages[0].Role)
	assert.Equal(t, "I feel anxious today", exchange.Messages[0].Content)
	assert.Equal(t, store.ChatMessageRoleAssistant, exchange.Messages[1].Role)
}

func TestSendMessage_GatewayFailureLeavesNothingPersisted(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)
	session := newTestSession(7)

	st.On("ListChatSessions", mock.Anything, mock.Anything).Return([]*store.ChatSession{session}, nil)
	st.On("ListChatMessages", mock.Anything, mock.Anything).Return([]*store.ChatMessage{}, nil)
	expectNoSignals(st)

	gw.On("Ready").Return(nil)
	gw.On("Complete", mock.Anything, mock.Anything).Return("", apierr.Upstream("failed to get AI response", assert.AnError))

	svc := NewService(st, gw)
	result, err := svc.SendMessage(context.Background(), 7, "hello", session.UID)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apierr.CodeUpstream, apierr.CodeOf(err))
	st.AssertNotCalled(t, "AppendChatExchange", mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "CreateChatMessage", mock.Anything, mock.Anything)
}

func TestSendMessage_EmptyTextRejectedBeforeAnyWork(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)

	svc := NewService(st, gw)
	_, err := svc.SendMessage(context.Background(), 7, "   ", "")

	assert.Error(t, err)
	assert.Equal(t, apierr.CodeValidation, apierr.CodeOf(err))
	gw.AssertNotCalled(t, "Ready")
	st.AssertNotCalled(t, "ListChatSessions", mock.Anything, mock.Anything)
}

func TestSendMessage_GatewayNotReadyRejectedBeforeSessionWork(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)
	gw.On("Ready").Return(apierr.Configuration("AI service is not configured"))

	svc := NewService(st, gw)
	_, err := svc.SendMessage(context.Background(), 7, "hello", "")

	assert.Error(t, err)
	assert.Equal(t, apierr.CodeConfiguration, apierr.CodeOf(err))
	st.AssertNotCalled(t, "ListChatSessions", mock.Anything, mock.Anything)
}

func TestSendMessage_TitleDerivedOnlyFromFirstUserMessage(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)
	session := newTestSession(7)

	longText := strings.Repeat("a", 60)
	st.On("ListChatSessions", mock.Anything, mock.Anything).Return([]*store.ChatSession{session}, nil)
	st.On("ListChatMessages", mock.Anything, mock.Anything).Return([]*store.ChatMessage{
		{SessionID: session.ID, Role: store.ChatMessageRoleAssistant, Content: greetingMessage},
	}, nil)
	expectNoSignals(st)
	st.On("AppendChatExchange", mock.Anything, mock.Anything).Return(nil)

	gw.On("Ready").Return(nil)
	gw.On("Complete", mock.Anything, mock.Anything).Return("ok", nil)

	svc := NewService(st, gw)
	result, err := svc.SendMessage(context.Background(), 7, longText, session.UID)
	assert.NoError(t, err)

	// A greeting-only history still counts as "no user message yet".
	exchange := capturedExchange(t, st)
	assert.NotNil(t, exchange.Title)
	assert.Equal(t, strings.Repeat("a", 50)+"...", *exchange.Title)
	assert.Equal(t, *exchange.Title, result.Session.Title)
}

func TestSendMessage_TitleNotRederivedOnLaterMessages(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)
	session := newTestSession(7)
	session.Title = "first message"

	st.On("ListChatSessions", mock.Anything, mock.Anything).Return([]*store.ChatSession{session}, nil)
	st.On("ListChatMessages", mock.Anything, mock.Anything).Return([]*store.ChatMessage{
		{SessionID: session.ID, Role: store.ChatMessageRoleUser, Content: "first message"},
		{SessionID: session.ID, Role: store.ChatMessageRoleAssistant, Content: "ok"},
	}, nil)
	expectNoSignals(st)
	st.On("AppendChatExchange", mock.Anything, mock.Anything).Return(nil)

	gw.On("Ready").Return(nil)
	gw.On("Complete", mock.Anything, mock.Anything).Return("ok again", nil)

	svc := NewService(st, gw)
	_, err := svc.SendMessage(context.Background(), 7, "second message", session.UID)
	assert.NoError(t, err)

	exchange := capturedExchange(t, st)
	assert.Nil(t, exchange.Title)
}

func TestSendMessage_WindowCapsHistorySentUpstream(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)
	session := newTestSession(7)

	history := make([]*store.ChatMessage, 0, 100)
	for i := 0; i < 100; i++ {
		role := store.ChatMessageRoleUser
		if i%2 == 1 {
			role = store.ChatMessageRoleAssistant
		}
		history = append(history, &store.ChatMessage{SessionID: session.ID, Role: role, Content: "m"})
	}

	st.On("ListChatSessions", mock.Anything, mock.Anything).Return([]*store.ChatSession{session}, nil)
	st.On("ListChatMessages", mock.Anything, mock.Anything).Return(history, nil)
	expectNoSignals(st)
	st.On("AppendChatExchange", mock.Anything, mock.Anything).Return(nil)

	gw.On("Ready").Return(nil)
	var captured []ai.Message
	gw.On("Complete", mock.Anything, mock.MatchedBy(func(messages []ai.Message) bool {
		captured = messages
		return true
	})).Return("ok", nil)

	svc := NewService(st, gw)
	_, err := svc.SendMessage(context.Background(), 7, "latest", session.UID)
	assert.NoError(t, err)

	// One system message plus the trailing window.
	assert.Len(t, captured, sessionWindow+1)
	assert.Equal(t, "system", captured[0].Role)
	assert.Equal(t, "latest", captured[len(captured)-1].Content)
}

func TestSendMessage_UnknownSessionFallsBackToFreshOne(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)

	created := newTestSession(7)
	st.On("ListChatSessions", mock.Anything, mock.Anything).Return([]*store.ChatSession{}, nil)
	st.On("CreateChatSession", mock.Anything, mock.Anything).Return(created, nil)
	st.On("ListChatMessages", mock.Anything, mock.Anything).Return([]*store.ChatMessage{}, nil)
	expectNoSignals(st)
	st.On("AppendChatExchange", mock.Anything, mock.Anything).Return(nil)

	gw.On("Ready").Return(nil)
	gw.On("Complete", mock.Anything, mock.Anything).Return("ok", nil)

	svc := NewService(st, gw)
	result, err := svc.SendMessage(context.Background(), 7, "hello", "someone-elses-session")

	assert.NoError(t, err)
	assert.Equal(t, created.UID, result.Session.UID)
	st.AssertNumberOfCalls(t, "CreateChatSession", 1)
}

func TestNewSession_SeedsGreeting(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)

	session := newTestSession(7)
	st.On("CreateChatSession", mock.Anything, mock.Anything).Return(session, nil)
	st.On("CreateChatMessage", mock.Anything, mock.MatchedBy(func(create *store.ChatMessage) bool {
		return create.Role == store.ChatMessageRoleAssistant && create.Content == greetingMessage
	})).Return(&store.ChatMessage{SessionID: session.ID, Role: store.ChatMessageRoleAssistant, Content: greetingMessage}, nil)

	svc := NewService(st, gw)
	detail, err := svc.NewSession(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, detail.Messages, 1)
	assert.Equal(t, greetingMessage, detail.Messages[0].Content)
}

func TestClearMessages_ReplacesHistoryKeepsTitle(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)

	session := newTestSession(7)
	session.Title = "my anxiety"
	st.On("ListChatSessions", mock.Anything, mock.Anything).Return([]*store.ChatSession{session}, nil)
	st.On("DeleteChatMessages", mock.Anything, mock.Anything).Return(nil)
	st.On("CreateChatMessage", mock.Anything, mock.Anything).Return(&store.ChatMessage{
		SessionID: session.ID,
		Role:      store.ChatMessageRoleAssistant,
		Content:   clearedMessage,
	}, nil)

	svc := NewService(st, gw)
	detail, err := svc.ClearMessages(context.Background(), 7, session.UID)

	assert.NoError(t, err)
	assert.Len(t, detail.Messages, 1)
	assert.Equal(t, clearedMessage, detail.Messages[0].Content)
	assert.Equal(t, "my anxiety", detail.Session.Title)
}

func TestDeleteSession_RejectsForeignSession(t *testing.T) {
	st := new(MockStore)
	gw := new(MockGateway)
	st.On("ListChatSessions", mock.Anything, mock.Anything).Return([]*store.ChatSession{}, nil)

	svc := NewService(st, gw)
	err := svc.DeleteSession(context.Background(), 7, "not-mine")

	assert.Error(t, err)
	assert.Equal(t, apierr.CodeNotFound, apierr.CodeOf(err))
	st.AssertNotCalled(t, "DeleteChatSession", mock.Anything, mock.Anything)
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "short", deriveTitle("short"))
	assert.Equal(t, strings.Repeat("x", 50)+"...", deriveTitle(strings.Repeat("x", 51)))
	// Multi-byte text is truncated on rune boundaries.
	long := strings.Repeat("å", 60)
	assert.Equal(t, strings.Repeat("å", 50)+"...", deriveTitle(long))
}
