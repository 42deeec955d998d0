package store

import (
	"context"

	"github.com/Dilshanrad22/mind-case-backend/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	return s.driver.CreateUser(ctx, create)
}

func (s *Store) ListUsers(ctx context.Context, find *FindUser) ([]*User, error) {
	return s.driver.ListUsers(ctx, find)
}

// GetUser returns the first user matching find, or nil when absent.
func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	users, err := s.driver.ListUsers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func (s *Store) UpdateUser(ctx context.Context, update *UpdateUser) (*User, error) {
	return s.driver.UpdateUser(ctx, update)
}

func (s *Store) DeleteUser(ctx context.Context, delete *DeleteUser) error {
	return s.driver.DeleteUser(ctx, delete)
}

func (s *Store) CreateMood(ctx context.Context, create *Mood) (*Mood, error) {
	return s.driver.CreateMood(ctx, create)
}

func (s *Store) ListMoods(ctx context.Context, find *FindMood) ([]*Mood, error) {
	return s.driver.ListMoods(ctx, find)
}

// GetMood returns the first mood matching find, or nil when absent.
func (s *Store) GetMood(ctx context.Context, find *FindMood) (*Mood, error) {
	moods, err := s.driver.ListMoods(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(moods) == 0 {
		return nil, nil
	}
	return moods[0], nil
}

func (s *Store) UpdateMood(ctx context.Context, update *UpdateMood) (*Mood, error) {
	return s.driver.UpdateMood(ctx, update)
}

func (s *Store) DeleteMood(ctx context.Context, delete *DeleteMood) error {
	return s.driver.DeleteMood(ctx, delete)
}

func (s *Store) CreateJournal(ctx context.Context, create *Journal) (*Journal, error) {
	return s.driver.CreateJournal(ctx, create)
}

func (s *Store) ListJournals(ctx context.Context, find *FindJournal) ([]*Journal, error) {
	return s.driver.ListJournals(ctx, find)
}

// GetJournal returns the first journal matching find, or nil when absent.
func (s *Store) GetJournal(ctx context.Context, find *FindJournal) (*Journal, error) {
	journals, err := s.driver.ListJournals(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(journals) == 0 {
		return nil, nil
	}
	return journals[0], nil
}

func (s *Store) UpdateJournalEntry(ctx context.Context, update *UpdateJournalEntry) (*Journal, error) {
	return s.driver.UpdateJournalEntry(ctx, update)
}

func (s *Store) DeleteJournal(ctx context.Context, delete *DeleteJournal) error {
	return s.driver.DeleteJournal(ctx, delete)
}

func (s *Store) CreateChatSession(ctx context.Context, create *ChatSession) (*ChatSession, error) {
	return s.driver.CreateChatSession(ctx, create)
}

func (s *Store) ListChatSessions(ctx context.Context, find *FindChatSession) ([]*ChatSession, error) {
	return s.driver.ListChatSessions(ctx, find)
}

// GetChatSession returns the first session matching find, or nil when absent.
func (s *Store) GetChatSession(ctx context.Context, find *FindChatSession) (*ChatSession, error) {
	sessions, err := s.driver.ListChatSessions(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return sessions[0], nil
}

func (s *Store) UpdateChatSession(ctx context.Context, update *UpdateChatSession) (*ChatSession, error) {
	return s.driver.UpdateChatSession(ctx, update)
}

func (s *Store) DeleteChatSession(ctx context.Context, delete *DeleteChatSession) error {
	return s.driver.DeleteChatSession(ctx, delete)
}

func (s *Store) CreateChatMessage(ctx context.Context, create *ChatMessage) (*ChatMessage, error) {
	return s.driver.CreateChatMessage(ctx, create)
}

func (s *Store) ListChatMessages(ctx context.Context, find *FindChatMessage) ([]*ChatMessage, error) {
	return s.driver.ListChatMessages(ctx, find)
}

func (s *Store) DeleteChatMessages(ctx context.Context, delete *DeleteChatMessage) error {
	return s.driver.DeleteChatMessages(ctx, delete)
}

func (s *Store) AppendChatExchange(ctx context.Context, append *AppendChatExchange) error {
	return s.driver.AppendChatExchange(ctx, append)
}

func (s *Store) CreateFood(ctx context.Context, create *Food) (*Food, error) {
	return s.driver.CreateFood(ctx, create)
}

func (s *Store) ListFoods(ctx context.Context, find *FindFood) ([]*Food, error) {
	return s.driver.ListFoods(ctx, find)
}

func (s *Store) DeleteFood(ctx context.Context, delete *DeleteFood) error {
	return s.driver.DeleteFood(ctx, delete)
}

func (s *Store) UpsertDailyNutrition(ctx context.Context, upsert *UpsertDailyNutrition) (*DailyNutrition, error) {
	return s.driver.UpsertDailyNutrition(ctx, upsert)
}

func (s *Store) ListDailyNutrition(ctx context.Context, find *FindDailyNutrition) ([]*DailyNutrition, error) {
	return s.driver.ListDailyNutrition(ctx, find)
}
