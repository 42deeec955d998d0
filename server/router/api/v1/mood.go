package v1

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Dilshanrad22/mind-case-backend/server/auth"
	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
	"github.com/Dilshanrad22/mind-case-backend/store"
)

type moodRequest struct {
	MoodType string `json:"moodType"`
}

type moodView struct {
	ID        int32  `json:"id"`
	MoodType  string `json:"moodType"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toMoodView(m *store.Mood) moodView {
	return moodView{
		ID:        m.ID,
		MoodType:  string(m.MoodType),
		CreatedAt: formatTime(m.CreatedTs),
		UpdatedAt: formatTime(m.UpdatedTs),
	}
}

// CreateMood records a mood entry for the caller.
func (s *APIV1Service) CreateMood(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	var req moodRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierr.Validation("invalid request body"))
	}
	if req.MoodType == "" {
		return respondError(c, apierr.Validation("Mood type is required"))
	}
	moodType := store.MoodType(req.MoodType)
	if !moodType.IsValid() {
		return respondError(c, apierr.Validation("Invalid mood type"))
	}

	now := time.Now().Unix()
	mood, err := s.Store.CreateMood(ctx, &store.Mood{
		CreatorID: userID,
		MoodType:  moodType,
		CreatedTs: now,
		UpdatedTs: now,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusCreated, toMoodView(mood))
}

// ListMoods returns the caller's moods, optionally filtered by date range
// and mood type.
func (s *APIV1Service) ListMoods(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	find := &store.FindMood{CreatorID: &userID}
	if raw := c.QueryParam("startDate"); raw != "" {
		ts, err := parseDateParam(raw)
		if err != nil {
			return respondError(c, apierr.Validation("invalid startDate"))
		}
		find.CreatedTsAfter = &ts
	}
	if raw := c.QueryParam("endDate"); raw != "" {
		ts, err := parseDateParam(raw)
		if err != nil {
			return respondError(c, apierr.Validation("invalid endDate"))
		}
		find.CreatedTsBefore = &ts
	}
	if raw := c.QueryParam("moodType"); raw != "" {
		moodType := store.MoodType(raw)
		find.MoodType = &moodType
	}

	moods, err := s.Store.ListMoods(ctx, find)
	if err != nil {
		return respondError(c, err)
	}

	views := make([]moodView, len(moods))
	for i, m := range moods {
		views[i] = toMoodView(m)
	}
	return respondList(c, len(views), views)
}

// GetMood returns one mood owned by the caller.
func (s *APIV1Service) GetMood(c echo.Context) error {
	userID := auth.UserID(c)

	mood, err := s.findMood(c, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if mood.CreatorID != userID {
		return respondError(c, apierr.Forbidden("Not authorized to access this mood"))
	}

	return respondData(c, http.StatusOK, toMoodView(mood))
}

// UpdateMood changes the mood type of an entry owned by the caller.
func (s *APIV1Service) UpdateMood(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	mood, err := s.findMood(c, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if mood.CreatorID != userID {
		return respondError(c, apierr.Forbidden("Not authorized to update this mood"))
	}

	var req moodRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierr.Validation("invalid request body"))
	}

	update := &store.UpdateMood{ID: mood.ID}
	if req.MoodType != "" {
		moodType := store.MoodType(req.MoodType)
		if !moodType.IsValid() {
			return respondError(c, apierr.Validation("Invalid mood type"))
		}
		update.MoodType = &moodType
	}
	now := time.Now().Unix()
	update.UpdatedTs = &now

	updated, err := s.Store.UpdateMood(ctx, update)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, toMoodView(updated))
}

// DeleteMood removes a mood entry owned by the caller.
func (s *APIV1Service) DeleteMood(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	mood, err := s.findMood(c, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if mood.CreatorID != userID {
		return respondError(c, apierr.Forbidden("Not authorized to delete this mood"))
	}

	if err := s.Store.DeleteMood(ctx, &store.DeleteMood{ID: mood.ID}); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Mood deleted successfully")
}

type moodStat struct {
	MoodType string `json:"moodType"`
	Count    int    `json:"count"`
}

// GetMoodStats aggregates the caller's moods per type, most frequent first.
func (s *APIV1Service) GetMoodStats(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	find := &store.FindMood{CreatorID: &userID}
	if raw := c.QueryParam("startDate"); raw != "" {
		ts, err := parseDateParam(raw)
		if err != nil {
			return respondError(c, apierr.Validation("invalid startDate"))
		}
		find.CreatedTsAfter = &ts
	}
	if raw := c.QueryParam("endDate"); raw != "" {
		ts, err := parseDateParam(raw)
		if err != nil {
			return respondError(c, apierr.Validation("invalid endDate"))
		}
		find.CreatedTsBefore = &ts
	}

	moods, err := s.Store.ListMoods(ctx, find)
	if err != nil {
		return respondError(c, err)
	}

	counts := make(map[store.MoodType]int)
	for _, m := range moods {
		counts[m.MoodType]++
	}
	stats := make([]moodStat, 0, len(counts))
	for moodType, count := range counts {
		stats = append(stats, moodStat{MoodType: string(moodType), Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].MoodType < stats[j].MoodType
	})

	return respondData(c, http.StatusOK, stats)
}

func (s *APIV1Service) findMood(c echo.Context, rawID string) (*store.Mood, error) {
	id, err := strconv.ParseInt(rawID, 10, 32)
	if err != nil {
		return nil, apierr.NotFound("Mood not found")
	}
	moodID := int32(id)
	mood, lookupErr := s.Store.GetMood(c.Request().Context(), &store.FindMood{ID: &moodID})
	if lookupErr != nil {
		return nil, lookupErr
	}
	if mood == nil {
		return nil, apierr.NotFound("Mood not found")
	}
	return mood, nil
}

// parseDateParam accepts either a YYYY-MM-DD date or a unix timestamp.
func parseDateParam(raw string) (int64, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Unix(), nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
