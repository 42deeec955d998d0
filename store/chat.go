package store

// ChatMessageRole tags how the completion gateway treats a message.
type ChatMessageRole string

const (
	ChatMessageRoleUser      ChatMessageRole = "user"
	ChatMessageRoleAssistant ChatMessageRole = "assistant"
	ChatMessageRoleSystem    ChatMessageRole = "system"
)

// ChatSession is a persisted conversation thread belonging to one user.
// It is addressed externally by its UID.
type ChatSession struct {
	ID        int32
	UID       string
	CreatorID int32
	Title     string
	CreatedTs int64
	UpdatedTs int64
}

// ChatMessage is a single message within a session. Messages are append-only;
// ordering is creation order (created_ts, then insertion id).
type ChatMessage struct {
	ID        int32
	SessionID int32
	Role      ChatMessageRole
	Content   string
	CreatedTs int64
}

type FindChatSession struct {
	ID        *int32
	UID       *string
	CreatorID *int32
}

type UpdateChatSession struct {
	ID        int32
	Title     *string
	UpdatedTs *int64
}

type DeleteChatSession struct {
	ID int32
}

type FindChatMessage struct {
	ID        *int32
	SessionID *int32
}

type DeleteChatMessage struct {
	SessionID *int32
}

// AppendChatExchange atomically appends messages to a session, optionally
// sets its title, and bumps updated_ts. It is the single write covering one
// user/assistant exchange: either everything lands or nothing does.
type AppendChatExchange struct {
	SessionID int32
	Messages  []*ChatMessage
	Title     *string
	UpdatedTs int64
}
