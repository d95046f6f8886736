package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() TimelineData {
	return TimelineData{
		MainTimeline: []TimelinePeriod{
			{
				ID:      PersistedID(1),
				Title:   "First",
				Entries: []TimelineEntry{{ID: 10, Title: "A"}, {ID: 11, Title: "B"}},
			},
			{
				ID:    SyntheticID("uncategorized"),
				Title: "Uncategorized",
			},
		},
		Branches: []TimelineBranch{
			{
				ID:   5,
				Name: "Branch: Side",
				Periods: []TimelinePeriod{
					{ID: PersistedID(6), Entries: []TimelineEntry{{ID: 20, Title: "C"}}},
				},
			},
		},
	}
}

func TestFindEntry(t *testing.T) {
	data := sampleData()

	e, ok := data.FindEntry(11)
	require.True(t, ok)
	assert.Equal(t, "B", e.Title)

	e, ok = data.FindEntry(20)
	require.True(t, ok)
	assert.Equal(t, "C", e.Title)

	_, ok = data.FindEntry(999)
	assert.False(t, ok)
}

func TestFindEntryReturnsPointerIntoTree(t *testing.T) {
	data := sampleData()
	e, ok := data.FindEntry(10)
	require.True(t, ok)

	e.Title = "renamed"
	assert.Equal(t, "renamed", data.MainTimeline[0].Entries[0].Title)
}

func TestFindMainPeriod(t *testing.T) {
	data := sampleData()

	p, ok := data.FindMainPeriod(PersistedID(1))
	require.True(t, ok)
	assert.Equal(t, "First", p.Title)

	p, ok = data.FindMainPeriod(SyntheticID("uncategorized"))
	require.True(t, ok)
	assert.Equal(t, "Uncategorized", p.Title)

	_, ok = data.FindMainPeriod(PersistedID(404))
	assert.False(t, ok)
}

func TestFindBranch(t *testing.T) {
	data := sampleData()

	b, ok := data.FindBranch(5)
	require.True(t, ok)
	assert.Equal(t, "Branch: Side", b.Name)

	_, ok = data.FindBranch(6)
	assert.False(t, ok)
}

func TestCountEntries(t *testing.T) {
	data := sampleData()
	assert.Equal(t, 3, data.CountEntries())

	empty := TimelineData{}
	assert.Equal(t, 0, empty.CountEntries())
}
