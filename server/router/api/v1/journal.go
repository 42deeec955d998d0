package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Dilshanrad22/mind-case-backend/server/auth"
	apierr "github.com/Dilshanrad22/mind-case-backend/server/internal/errors"
	"github.com/Dilshanrad22/mind-case-backend/store"
)

type journalRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type journalView struct {
	ID        int32  `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toJournalView(j *store.Journal) journalView {
	view := journalView{
		ID:        j.ID,
		CreatedAt: formatTime(j.CreatedTs),
		UpdatedAt: formatTime(j.UpdatedTs),
	}
	if j.Entry != nil {
		view.Title = j.Entry.Title
		view.Text = j.Entry.Text
	}
	return view
}

// CreateJournal writes a new journal entry for the caller.
func (s *APIV1Service) CreateJournal(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	var req journalRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierr.Validation("invalid request body"))
	}
	if req.Title == "" || req.Text == "" {
		return respondError(c, apierr.Validation("Title and text are required"))
	}

	now := time.Now().Unix()
	journal, err := s.Store.CreateJournal(ctx, &store.Journal{
		CreatorID: userID,
		CreatedTs: now,
		UpdatedTs: now,
		Entry: &store.JournalEntry{
			Title:     req.Title,
			Text:      req.Text,
			CreatedTs: now,
			UpdatedTs: now,
		},
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusCreated, toJournalView(journal))
}

// ListJournals returns the caller's journals, newest first.
func (s *APIV1Service) ListJournals(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	journals, err := s.Store.ListJournals(ctx, &store.FindJournal{CreatorID: &userID})
	if err != nil {
		return respondError(c, err)
	}

	views := make([]journalView, len(journals))
	for i, j := range journals {
		views[i] = toJournalView(j)
	}
	return respondList(c, len(views), views)
}

// GetJournal returns one journal owned by the caller.
func (s *APIV1Service) GetJournal(c echo.Context) error {
	userID := auth.UserID(c)

	journal, err := s.findJournal(c, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if journal.CreatorID != userID {
		return respondError(c, apierr.Forbidden("Not authorized to access this journal"))
	}

	return respondData(c, http.StatusOK, toJournalView(journal))
}

// UpdateJournal patches the title and/or text of a journal owned by the
// caller. Omitted fields keep their current value.
func (s *APIV1Service) UpdateJournal(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	journal, err := s.findJournal(c, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if journal.CreatorID != userID {
		return respondError(c, apierr.Forbidden("Not authorized to update this journal"))
	}

	var req struct {
		Title *string `json:"title"`
		Text  *string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierr.Validation("invalid request body"))
	}
	if req.Title == nil && req.Text == nil {
		return respondError(c, apierr.Validation("Nothing to update"))
	}

	now := time.Now().Unix()
	updated, err := s.Store.UpdateJournalEntry(ctx, &store.UpdateJournalEntry{
		JournalID: journal.ID,
		Title:     req.Title,
		Text:      req.Text,
		UpdatedTs: &now,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, toJournalView(updated))
}

// DeleteJournal removes a journal owned by the caller along with its entry.
func (s *APIV1Service) DeleteJournal(c echo.Context) error {
	ctx := c.Request().Context()
	userID := auth.UserID(c)

	journal, err := s.findJournal(c, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if journal.CreatorID != userID {
		return respondError(c, apierr.Forbidden("Not authorized to delete this journal"))
	}

	if err := s.Store.DeleteJournal(ctx, &store.DeleteJournal{ID: journal.ID}); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Journal deleted successfully")
}

func (s *APIV1Service) findJournal(c echo.Context, rawID string) (*store.Journal, error) {
	id, err := strconv.ParseInt(rawID, 10, 32)
	if err != nil {
		return nil, apierr.NotFound("Journal not found")
	}
	journalID := int32(id)
	journal, lookupErr := s.Store.GetJournal(c.Request().Context(), &store.FindJournal{ID: &journalID})
	if lookupErr != nil {
		return nil, lookupErr
	}
	if journal == nil {
		return nil, apierr.NotFound("Journal not found")
	}
	return journal, nil
}
