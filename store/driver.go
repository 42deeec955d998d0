package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that a store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate brings the schema up to date. Safe to call on every start.
	Migrate(ctx context.Context) error

	// User model related methods.
	CreateUser(ctx context.Context, create *User) (*User, error)
	ListUsers(ctx context.Context, find *FindUser) ([]*User, error)
	UpdateUser(ctx context.Context, update *UpdateUser) (*User, error)
	DeleteUser(ctx context.Context, delete *DeleteUser) error

	// Mood model related methods.
	CreateMood(ctx context.Context, create *Mood) (*Mood, error)
	ListMoods(ctx context.Context, find *FindMood) ([]*Mood, error)
	UpdateMood(ctx context.Context, update *UpdateMood) (*Mood, error)
	DeleteMood(ctx context.Context, delete *DeleteMood) error

	// Journal model related methods. CreateJournal persists both the journal
	// and its linked entry; DeleteJournal removes both.
	CreateJournal(ctx context.Context, create *Journal) (*Journal, error)
	ListJournals(ctx context.Context, find *FindJournal) ([]*Journal, error)
	UpdateJournalEntry(ctx context.Context, update *UpdateJournalEntry) (*Journal, error)
	DeleteJournal(ctx context.Context, delete *DeleteJournal) error

	// ChatSession model related methods.
	CreateChatSession(ctx context.Context, create *ChatSession) (*ChatSession, error)
	ListChatSessions(ctx context.Context, find *FindChatSession) ([]*ChatSession, error)
	UpdateChatSession(ctx context.Context, update *UpdateChatSession) (*ChatSession, error)
	DeleteChatSession(ctx context.Context, delete *DeleteChatSession) error

	// ChatMessage model related methods.
	CreateChatMessage(ctx context.Context, create *ChatMessage) (*ChatMessage, error)
	ListChatMessages(ctx context.Context, find *FindChatMessage) ([]*ChatMessage, error)
	DeleteChatMessages(ctx context.Context, delete *DeleteChatMessage) error
	// AppendChatExchange runs in a single transaction.
	AppendChatExchange(ctx context.Context, append *AppendChatExchange) error

	// Nutrition model related methods.
	CreateFood(ctx context.Context, create *Food) (*Food, error)
	ListFoods(ctx context.Context, find *FindFood) ([]*Food, error)
	DeleteFood(ctx context.Context, delete *DeleteFood) error
	UpsertDailyNutrition(ctx context.Context, upsert *UpsertDailyNutrition) (*DailyNutrition, error)
	ListDailyNutrition(ctx context.Context, find *FindDailyNutrition) ([]*DailyNutrition, error)
}
