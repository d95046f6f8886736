package layout

import (
	"testing"
	"time"

	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func period(id int64, title string, start, end time.Time, entries ...model.TimelineEntry) model.TimelinePeriod {
	return model.TimelinePeriod{
		ID:        model.PersistedID(id),
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Entries:   entries,
	}
}

func entry(id int64, d time.Time) model.TimelineEntry {
	return model.TimelineEntry{ID: id, Date: d}
}

func TestLayoutSinglePeriod(t *testing.T) {
	e := NewEngine(DefaultConfig())
	main := []model.TimelinePeriod{
		period(1, "Only", date(2020, time.January, 1), date(2020, time.December, 31),
			entry(10, date(2020, time.February, 1))),
	}

	result := e.Layout(main, 0)

	y, ok := result.Positions.Get(PeriodKey(model.PersistedID(1)))
	require.True(t, ok)
	assert.Equal(t, 10.0, y)

	dotY, ok := result.Positions.Get(PeriodDotKey(model.PersistedID(1)))
	require.True(t, ok)
	assert.Equal(t, 25.0, dotY)

	entryY, ok := result.Positions.Get(EntryKey(10))
	require.True(t, ok)
	assert.Equal(t, 55.0, entryY)

	entryDotY, ok := result.Positions.Get(EntryDotKey(10))
	require.True(t, ok)
	assert.Equal(t, 73.0, entryDotY)
}

func TestLayoutPeriodGapFormula(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)

	tests := []struct {
		name       string
		numEntries int
	}{
		{name: "empty period", numEntries: 0},
		{name: "one entry", numEntries: 1},
		{name: "three entries", numEntries: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []model.TimelineEntry
			for i := 0; i < tt.numEntries; i++ {
				entries = append(entries, entry(int64(100+i), date(2020, time.March, i+1)))
			}
			main := []model.TimelinePeriod{
				period(1, "First", date(2020, time.January, 1), date(2020, time.June, 30), entries...),
				period(2, "Second", date(2020, time.July, 1), date(2020, time.December, 31)),
			}

			result := e.Layout(main, 0)

			first, _ := result.Positions.Get(PeriodKey(model.PersistedID(1)))
			second, _ := result.Positions.Get(PeriodKey(model.PersistedID(2)))

			want := cfg.PeriodHeaderHeight
			if tt.numEntries > 0 {
				n := float64(tt.numEntries)
				want += n*cfg.EntryCardHeight + (n-1)*cfg.MainEntrySpacing + cfg.MainEntryToChapterGap
			} else {
				want += cfg.MainChapterToChapterGap
			}
			assert.Equal(t, want, second-first)
		})
	}
}

func TestLayoutMonotone(t *testing.T) {
	e := NewEngine(DefaultConfig())
	main := []model.TimelinePeriod{
		period(1, "A", date(2019, time.January, 1), date(2019, time.June, 30),
			entry(10, date(2019, time.February, 1)),
			entry(11, date(2019, time.March, 1))),
		period(2, "B", date(2019, time.July, 1), date(2019, time.December, 31),
			entry(12, date(2019, time.August, 1))),
		period(3, "C", date(2020, time.January, 1), date(2020, time.December, 31)),
	}

	result := e.Layout(main, 0)

	order := []Key{
		PeriodKey(model.PersistedID(1)),
		EntryKey(10),
		EntryKey(11),
		PeriodKey(model.PersistedID(2)),
		EntryKey(12),
		PeriodKey(model.PersistedID(3)),
	}
	prev := -1.0
	for _, key := range order {
		y, ok := result.Positions.Get(key)
		require.True(t, ok, "missing %s", key)
		assert.Greater(t, y, prev, "%s must sit below its predecessor", key)
		prev = y
	}
}

func TestLayoutCollapsedPeriodSkipsEntries(t *testing.T) {
	e := NewEngine(DefaultConfig())
	collapsed := period(1, "Hidden", date(2020, time.January, 1), date(2020, time.June, 30),
		entry(10, date(2020, time.February, 1)))
	collapsed.Collapsed = true
	main := []model.TimelinePeriod{
		collapsed,
		period(2, "Visible", date(2020, time.July, 1), date(2020, time.December, 31)),
	}

	result := e.Layout(main, 0)

	_, ok := result.Positions.Get(EntryKey(10))
	assert.False(t, ok, "collapsed period entries get no positions")

	first, _ := result.Positions.Get(PeriodKey(model.PersistedID(1)))
	second, _ := result.Positions.Get(PeriodKey(model.PersistedID(2)))
	cfg := e.Config()
	assert.Equal(t, cfg.PeriodHeaderHeight+cfg.MainChapterToChapterGap, second-first)
}

func TestLayoutTotalHeight(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)
	main := []model.TimelinePeriod{
		period(1, "Only", date(2020, time.January, 1), date(2020, time.December, 31)),
	}

	// Short content: the viewport height wins.
	result := e.Layout(main, 900)
	assert.Equal(t, 900.0, result.TotalHeight)

	// No viewport: the configured minimum is the floor.
	result = e.Layout(main, 0)
	assert.Equal(t, cfg.MinViewportHeight, result.TotalHeight)

	// Tall content: content plus tail padding wins.
	var entries []model.TimelineEntry
	for i := 0; i < 30; i++ {
		entries = append(entries, entry(int64(100+i), date(2020, time.March, 1)))
	}
	tall := []model.TimelinePeriod{
		period(1, "Tall", date(2020, time.January, 1), date(2020, time.December, 31), entries...),
	}
	result = e.Layout(tall, 800)
	contentBottom := cfg.StartY + cfg.PeriodHeaderHeight +
		30*cfg.EntryCardHeight + 29*cfg.MainEntrySpacing
	assert.Equal(t, contentBottom+cfg.TailPadding, result.TotalHeight)
}

func TestLayoutDeterministic(t *testing.T) {
	e := NewEngine(DefaultConfig())
	main := []model.TimelinePeriod{
		period(1, "A", date(2019, time.January, 1), date(2019, time.December, 31),
			entry(10, date(2019, time.February, 1))),
		period(2, "B", date(2020, time.January, 1), date(2020, time.December, 31)),
	}

	first := e.Layout(main, 800)
	second := e.Layout(main, 800)
	assert.Equal(t, first, second)
}

func TestBranchLayoutAnchoredToEntry(t *testing.T) {
	e := NewEngine(DefaultConfig())
	main := []model.TimelinePeriod{
		period(1, "Main", date(2020, time.January, 1), date(2020, time.December, 31),
			entry(10, date(2020, time.February, 1))),
	}
	result := e.Layout(main, 0)

	branch := model.TimelineBranch{
		ID:     5,
		Anchor: model.EntryAnchor(10),
		Periods: []model.TimelinePeriod{
			period(6, "Side", date(2020, time.March, 1), date(2020, time.June, 30),
				entry(20, date(2020, time.April, 1))),
		},
	}

	branchPositions := e.BranchLayout(branch, main, result.Positions)

	entryDotY, _ := result.Positions.Get(EntryDotKey(10))
	sourceY, ok := branchPositions.Get(BranchSourceKey(5))
	require.True(t, ok)
	assert.Equal(t, entryDotY, sourceY)

	headerY, ok := branchPositions.Get(BranchPeriodKey(5, model.PersistedID(6)))
	require.True(t, ok)
	assert.Equal(t, sourceY, headerY)

	entryY, ok := branchPositions.Get(BranchEntryKey(5, 20))
	require.True(t, ok)
	assert.Equal(t, headerY+e.Config().PeriodHeaderHeight, entryY)
}

func TestBranchSourceYFallbacks(t *testing.T) {
	e := NewEngine(DefaultConfig())
	main := []model.TimelinePeriod{
		period(1, "Main", date(2020, time.January, 1), date(2020, time.December, 31)),
	}
	result := e.Layout(main, 0)

	// Period anchor resolves to the period dot.
	anchored := model.TimelineBranch{ID: 5, Anchor: model.PeriodAnchor(1)}
	periodDotY, _ := result.Positions.Get(PeriodDotKey(model.PersistedID(1)))
	assert.Equal(t, periodDotY, e.BranchSourceY(anchored, main, result.Positions))

	// No anchor: date containment of the first branch period.
	byDate := model.TimelineBranch{
		ID: 6,
		Periods: []model.TimelinePeriod{
			period(7, "Inside", date(2020, time.May, 1), date(2020, time.June, 30)),
		},
	}
	assert.Equal(t, periodDotY, e.BranchSourceY(byDate, main, result.Positions))

	// Nothing resolves: top of the timeline.
	dangling := model.TimelineBranch{ID: 8, Anchor: model.EntryAnchor(999)}
	assert.Equal(t, e.Config().StartY, e.BranchSourceY(dangling, main, result.Positions))
}

func TestBranchPeriodHidden(t *testing.T) {
	e := NewEngine(DefaultConfig())
	collapsed := period(1, "Collapsed", date(2020, time.January, 1), date(2020, time.June, 30))
	collapsed.Collapsed = true
	main := []model.TimelinePeriod{
		collapsed,
		period(2, "Open", date(2020, time.July, 1), date(2020, time.December, 31)),
	}

	inside := period(3, "Nested", date(2020, time.March, 1), date(2020, time.April, 30))
	assert.True(t, e.BranchPeriodHidden(main, inside))

	later := period(4, "Elsewhere", date(2020, time.August, 1), date(2020, time.September, 30))
	assert.False(t, e.BranchPeriodHidden(main, later))

	outside := period(5, "Unmatched", date(2023, time.January, 1), date(2023, time.June, 30))
	assert.False(t, e.BranchPeriodHidden(main, outside))
}

func TestPlusButtonY(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)
	positions := PositionMap{EntryDotKey(1): 500}
	assert.Equal(t, 500+cfg.EntryCardHeight+cfg.EntryDotOffset, e.PlusButtonY(positions))
}

func TestPositionMapMaxY(t *testing.T) {
	assert.Equal(t, 0.0, PositionMap{}.MaxY())
	m := PositionMap{EntryKey(1): 10, EntryKey(2): 120, EntryKey(3): 60}
	assert.Equal(t, 120.0, m.MaxY())
}
