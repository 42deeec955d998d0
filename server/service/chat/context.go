package chat

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dilshanrad22/mind-case-backend/store"
)

// Context window policy.
const (
	moodLookback = 7 * 24 * time.Hour
	moodLimit    = 7
	journalLimit = 3
)

// SignalStore loads the read-only mood and journal signals used for
// context building.
type SignalStore interface {
	ListMoods(ctx context.Context, find *store.FindMood) ([]*store.Mood, error)
	ListJournals(ctx context.Context, find *store.FindJournal) ([]*store.Journal, error)
}

// ContextBuilder reduces a user's recent mood and journal signals into a
// short natural-language summary. It is a pure read: absence of signals
// yields an empty summary, never an error.
type ContextBuilder struct {
	store SignalStore
}

// NewContextBuilder creates a new ContextBuilder.
func NewContextBuilder(store SignalStore) *ContextBuilder {
	return &ContextBuilder{store: store}
}

// BuildUserContext summarizes the trailing 7 days of moods (newest first,
// capped at 7 records) and the 3 most recent journal topics.
// The two reads are independent and issued concurrently.
func (b *ContextBuilder) BuildUserContext(ctx context.Context, userID int32, now time.Time) (string, error) {
	var moods []*store.Mood
	var journals []*store.Journal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		since := now.Add(-moodLookback).Unix()
		limit := moodLimit
		var err error
		moods, err = b.store.ListMoods(gctx, &store.FindMood{
			CreatorID:      &userID,
			CreatedTsAfter: &since,
			Limit:          &limit,
		})
		return err
	})
	g.Go(func() error {
		limit := journalLimit
		var err error
		journals, err = b.store.ListJournals(gctx, &store.FindJournal{
			CreatorID: &userID,
			Limit:     &limit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	var sb strings.Builder

	if len(moods) > 0 {
		entries := make([]string, len(moods))
		for i, m := range moods {
			day := time.Unix(m.CreatedTs, 0).Format("2006-01-02")
			entries[i] = day + ": " + string(m.MoodType)
		}
		sb.WriteString("\n\nUser's recent moods (last 7 days): ")
		sb.WriteString(strings.Join(entries, ", "))
		if dominant := dominantMood(moods); dominant != "" {
			sb.WriteString("\nDominant mood this week: ")
			sb.WriteString(string(dominant))
		}
	}

	if titles := journalTopics(journals); len(titles) > 0 {
		sb.WriteString("\nRecent journal topics: ")
		sb.WriteString(strings.Join(titles, ", "))
	}

	return sb.String(), nil
}

// dominantMood returns the most frequent mood type. Ties break toward the
// type encountered first in the given (newest-first) ordering.
func dominantMood(moods []*store.Mood) store.MoodType {
	counts := make(map[store.MoodType]int, len(moods))
	for _, m := range moods {
		counts[m.MoodType]++
	}

	var dominant store.MoodType
	best := 0
	for _, m := range moods {
		if counts[m.MoodType] > best {
			dominant = m.MoodType
			best = counts[m.MoodType]
		}
	}
	return dominant
}

// journalTopics extracts entry titles, skipping journals whose linked
// entry failed to resolve.
func journalTopics(journals []*store.Journal) []string {
	titles := make([]string, 0, len(journals))
	for _, j := range journals {
		if j.Entry == nil || j.Entry.Title == "" {
			continue
		}
		titles = append(titles, j.Entry.Title)
	}
	return titles
}
