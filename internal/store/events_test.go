package store

import (
	"database/sql"
	"testing"

	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetEvent(t *testing.T) {
	s := newTestStore(t)

	chapterID, err := s.CreateChapter(model.Chapter{Title: "P", StartDate: "2020-01-01"})
	require.NoError(t, err)

	id, err := s.CreateEvent(model.Event{
		Chapter: &chapterID,
		Title:   "Moved",
		Date:    "2020-02-01",
		Content: "Big day.",
	})
	require.NoError(t, err)

	e, err := s.GetEvent(id)
	require.NoError(t, err)
	assert.Equal(t, "Moved", e.Title)
	assert.Equal(t, "2020-02-01", e.Date)
	assert.Equal(t, "Big day.", e.Content)
	require.NotNil(t, e.Chapter)
	assert.Equal(t, chapterID, *e.Chapter)
}

func TestCreateEventUncategorized(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateEvent(model.Event{Title: "Loose", Date: "2021-01-01"})
	require.NoError(t, err)

	e, err := s.GetEvent(id)
	require.NoError(t, err)
	assert.Nil(t, e.Chapter)
}

func TestListEventsChronological(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateEvent(model.Event{Title: "Second", Date: "2020-06-01"})
	require.NoError(t, err)
	_, err = s.CreateEvent(model.Event{Title: "First", Date: "2020-01-01"})
	require.NoError(t, err)
	_, err = s.CreateEvent(model.Event{Title: "SameDayLater", Date: "2020-01-01", Order: 5})
	require.NoError(t, err)

	events, err := s.ListEvents()
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "First", events[0].Title)
	assert.Equal(t, "SameDayLater", events[1].Title)
	assert.Equal(t, "Second", events[2].Title)
}

func TestUpdateEvent(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateEvent(model.Event{Title: "Before", Date: "2020-01-01"})
	require.NoError(t, err)

	e, err := s.GetEvent(id)
	require.NoError(t, err)
	e.Title = "After"
	e.Date = "2020-02-02"
	require.NoError(t, s.UpdateEvent(e))

	updated, err := s.GetEvent(id)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "2020-02-02", updated.Date)
}

func TestDeleteEventRemovesSpawnedBranches(t *testing.T) {
	s := newTestStore(t)

	eventID, err := s.CreateEvent(model.Event{Title: "Origin", Date: "2020-01-01"})
	require.NoError(t, err)

	_, err = s.CreateBranch(
		model.Chapter{Title: "Branch: Spawned", StartDate: "2020-01-01", SourceEntry: &eventID},
		model.Chapter{Title: "New Period", StartDate: "2020-01-01"},
	)
	require.NoError(t, err)

	// An unrelated branch survives.
	_, err = s.CreateBranch(
		model.Chapter{Title: "Branch: Other", StartDate: "2020-06-01"},
		model.Chapter{Title: "New Period", StartDate: "2020-06-01"},
	)
	require.NoError(t, err)

	require.NoError(t, s.DeleteEvent(eventID))

	_, err = s.GetEvent(eventID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	chapters, err := s.ListChapters()
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	for _, c := range chapters {
		assert.NotEqual(t, "Branch: Spawned", c.Title)
	}
}
