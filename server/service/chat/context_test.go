package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Dilshanrad22/mind-case-backend/store"
)

func TestBuildUserContext_NoSignalsYieldsEmptySummary(t *testing.T) {
	st := new(MockStore)
	st.On("ListMoods", mock.Anything, mock.Anything).Return([]*store.Mood{}, nil)
	st.On("ListJournals", mock.Anything, mock.Anything).Return([]*store.Journal{}, nil)

	builder := NewContextBuilder(st)
	summary, err := builder.BuildUserContext(context.Background(), 1, time.Now())

	assert.NoError(t, err)
	assert.Empty(t, summary)
}

func TestBuildUserContext_FormatsMoodsAndJournals(t *testing.T) {
	st := new(MockStore)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	st.On("ListMoods", mock.Anything, mock.Anything).Return([]*store.Mood{
		{MoodType: store.MoodHappy, CreatedTs: now.Unix()},
		{MoodType: store.MoodHappy, CreatedTs: now.AddDate(0, 0, -1).Unix()},
		{MoodType: store.MoodSad, CreatedTs: now.AddDate(0, 0, -2).Unix()},
	}, nil)
	st.On("ListJournals", mock.Anything, mock.Anything).Return([]*store.Journal{
		{Entry: &store.JournalEntry{Title: "A good morning"}},
		{Entry: &store.JournalEntry{Title: "Work stress"}},
	}, nil)

	builder := NewContextBuilder(st)
	summary, err := builder.BuildUserContext(context.Background(), 1, now)

	assert.NoError(t, err)
	assert.Contains(t, summary, "User's recent moods (last 7 days): ")
	assert.Contains(t, summary, "2026-03-10: happy")
	assert.Contains(t, summary, "Dominant mood this week: happy")
	assert.Contains(t, summary, "Recent journal topics: A good morning, Work stress")
}

func TestBuildUserContext_QueryBoundsAndLimits(t *testing.T) {
	st := new(MockStore)
	now := time.Now()

	st.On("ListMoods", mock.Anything, mock.MatchedBy(func(find *store.FindMood) bool {
		if find.CreatedTsAfter == nil || find.Limit == nil {
			return false
		}
		return *find.CreatedTsAfter == now.Add(-7*24*time.Hour).Unix() && *find.Limit == 7
	})).Return([]*store.Mood{}, nil)
	st.On("ListJournals", mock.Anything, mock.MatchedBy(func(find *store.FindJournal) bool {
		return find.Limit != nil && *find.Limit == 3
	})).Return([]*store.Journal{}, nil)

	builder := NewContextBuilder(st)
	_, err := builder.BuildUserContext(context.Background(), 1, now)

	assert.NoError(t, err)
	st.AssertExpectations(t)
}

func TestBuildUserContext_SkipsUnresolvedJournalEntries(t *testing.T) {
	st := new(MockStore)
	st.On("ListMoods", mock.Anything, mock.Anything).Return([]*store.Mood{}, nil)
	st.On("ListJournals", mock.Anything, mock.Anything).Return([]*store.Journal{
		{Entry: nil},
		{Entry: &store.JournalEntry{Title: ""}},
		{Entry: &store.JournalEntry{Title: "Still here"}},
	}, nil)

	builder := NewContextBuilder(st)
	summary, err := builder.BuildUserContext(context.Background(), 1, time.Now())

	assert.NoError(t, err)
	assert.Contains(t, summary, "Recent journal topics: Still here")
}

func TestDominantMood(t *testing.T) {
	tests := []struct {
		name  string
		moods []store.MoodType
		want  store.MoodType
	}{
		{"empty", nil, ""},
		{"single", []store.MoodType{store.MoodCalm}, store.MoodCalm},
		{"majority wins", []store.MoodType{store.MoodHappy, store.MoodHappy, store.MoodSad}, store.MoodHappy},
		{"tie breaks toward newest", []store.MoodType{store.MoodSad, store.MoodHappy}, store.MoodSad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moods := make([]*store.Mood, len(tt.moods))
			for i, moodType := range tt.moods {
				moods[i] = &store.Mood{MoodType: moodType}
			}
			assert.Equal(t, tt.want, dominantMood(moods))
		})
	}
}
