package interaction

import (
	"testing"
	"time"

	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/mpetrov/lifeline/internal/presentation/layout"
	"github.com/mpetrov/lifeline/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFrozenNow(t *testing.T, now time.Time) {
	t.Helper()
	util.GetTimeProvider().SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { util.GetTimeProvider().SetNowFunc(nil) })
}

func TestLocateClickTooFarFromSpine(t *testing.T) {
	c := newTestController(newMockMutator())
	spineX := layout.DefaultConfig().SpineX

	_, ok := c.LocateClick(spineX+101, 100, 0)
	assert.False(t, ok)

	_, ok = c.LocateClick(spineX-101, 100, 0)
	assert.False(t, ok)

	_, ok = c.LocateClick(spineX+100, 100, 0)
	assert.True(t, ok)
}

func TestLocateClickInterpolatesWithinPeriod(t *testing.T) {
	c := newTestController(newMockMutator())
	spineX := layout.DefaultConfig().SpineX

	firstY, _ := c.Layout().Positions.Get(layout.PeriodKey(model.PersistedID(1)))
	secondY, _ := c.Layout().Positions.Get(layout.PeriodKey(model.PersistedID(2)))

	// Click at the exact middle of the first period's span.
	midY := firstY + (secondY-firstY)/2
	target, ok := c.LocateClick(spineX, midY, 0)
	require.True(t, ok)
	require.NotNil(t, target.ChapterID)
	assert.Equal(t, int64(1), *target.ChapterID)
	// Midpoint of Jan 1 .. Dec 31 2020 lands at the start of July.
	assert.Equal(t, 2020, target.Date.Year())
	assert.Equal(t, time.July, target.Date.Month())

	// Click at the very top maps to the start date.
	target, ok = c.LocateClick(spineX, firstY, 0)
	require.True(t, ok)
	assert.Equal(t, date(2020, time.January, 1), target.Date)
}

func TestLocateClickTopTolerance(t *testing.T) {
	c := newTestController(newMockMutator())
	spineX := layout.DefaultConfig().SpineX
	firstY, _ := c.Layout().Positions.Get(layout.PeriodKey(model.PersistedID(1)))

	// Just above the header still counts, clamped to the start date.
	target, ok := c.LocateClick(spineX, firstY-DefaultConfig().SpanTopTolerance, 0)
	require.True(t, ok)
	require.NotNil(t, target.ChapterID)
	assert.Equal(t, int64(1), *target.ChapterID)
	assert.Equal(t, date(2020, time.January, 1), target.Date)
}

func TestLocateClickScrollOffset(t *testing.T) {
	c := newTestController(newMockMutator())
	spineX := layout.DefaultConfig().SpineX
	secondY, _ := c.Layout().Positions.Get(layout.PeriodKey(model.PersistedID(2)))

	// Viewport-local y plus scrollTop addresses the second period.
	target, ok := c.LocateClick(spineX, 10, secondY)
	require.True(t, ok)
	require.NotNil(t, target.ChapterID)
	assert.Equal(t, int64(2), *target.ChapterID)
}

func TestLocateClickLastPeriodSpansToBottom(t *testing.T) {
	c := newTestController(newMockMutator())
	spineX := layout.DefaultConfig().SpineX

	// Deep below the last header but above the total height: still the last
	// period, clamped to its end date.
	target, ok := c.LocateClick(spineX, c.Layout().TotalHeight-1, 0)
	require.True(t, ok)
	require.NotNil(t, target.ChapterID)
	assert.Equal(t, int64(2), *target.ChapterID)
}

func TestLocateClickSyntheticPeriodFallsBackToNow(t *testing.T) {
	now := date(2024, time.June, 1)
	withFrozenNow(t, now)

	data := testData()
	data.MainTimeline = append(data.MainTimeline, model.TimelinePeriod{
		ID:        model.SyntheticID("uncategorized"),
		Title:     "Uncategorized",
		StartDate: date(9999, time.January, 1),
		EndDate:   date(9999, time.December, 31),
	})
	c := NewController(DefaultConfig(), layout.NewEngine(layout.DefaultConfig()), newMockMutator())
	c.SetData(data, 800)

	uncatY, _ := c.Layout().Positions.Get(layout.PeriodKey(model.SyntheticID("uncategorized")))
	target, ok := c.LocateClick(layout.DefaultConfig().SpineX, uncatY+5, 0)
	require.True(t, ok)
	assert.Nil(t, target.ChapterID)
	assert.True(t, target.Date.Equal(now))
}

func TestLocateClickAboveEverything(t *testing.T) {
	now := date(2024, time.June, 1)
	withFrozenNow(t, now)

	c := newTestController(newMockMutator())
	target, ok := c.LocateClick(layout.DefaultConfig().SpineX, -100, 0)
	require.True(t, ok)
	assert.Nil(t, target.ChapterID)
	assert.True(t, target.Date.Equal(now))
}
