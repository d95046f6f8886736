// Package timeline derives the renderable timeline tree from persisted
// chapters and events. Derivation is pure: the same inputs always produce
// the same tree, and malformed input degrades instead of failing.
package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/mpetrov/lifeline/internal/util"
)

// previewLimit caps the entry preview at the first 100 characters of content.
const previewLimit = 100

// UncategorizedID is the synthetic period collecting orphaned events.
var UncategorizedID = model.SyntheticID("uncategorized")

// uncategorizedSortYear forces the synthetic catch-all period after every
// real period in a chronological-ascending sort. It is a sort key, not a
// real date; the displayed range still comes from the actual entry dates.
const uncategorizedSortYear = 9999

// Derive builds the TimelineData tree from the full chapter and event lists.
// The now argument supplies the fallback date for malformed or missing dates.
func Derive(chapters []model.Chapter, events []model.Event, now time.Time) model.TimelineData {
	chapterIDs := make(map[int64]bool, len(chapters))
	branchByID := make(map[int64]bool)
	for _, c := range chapters {
		chapterIDs[c.ID] = true
		if c.Type == model.TypeBranch {
			branchByID[c.ID] = true
		}
	}

	var main []model.TimelinePeriod
	for _, c := range chapters {
		if c.Type != model.TypeMainPeriod {
			continue
		}
		main = append(main, buildPeriod(c, events, now))
	}
	sort.SliceStable(main, func(i, j int) bool {
		return main[i].StartDate.Before(main[j].StartDate)
	})

	if uncat := buildUncategorized(chapterIDs, events, now); uncat != nil {
		main = append(main, *uncat)
	}

	var branches []model.TimelineBranch
	for _, c := range chapters {
		if c.Type != model.TypeBranch {
			continue
		}
		branches = append(branches, buildBranch(c, chapters, events, now))
	}

	// Branch periods whose parent_branch references a chapter that no longer
	// exists are invisible: no branch collects them and their events never
	// reach the uncategorized bucket. Keep a trace so the data loss shows up
	// somewhere.
	for _, c := range chapters {
		if c.Type == model.TypeBranchPeriod && (c.ParentBranch == nil || !branchByID[*c.ParentBranch]) {
			util.LogWarnf("branch period %d (%s) has no parent branch; dropped from timeline", c.ID, c.Title)
		}
	}

	return model.TimelineData{MainTimeline: main, Branches: branches}
}

// buildPeriod projects a main_period or branch_period chapter plus its
// events into a TimelinePeriod with derived dates.
func buildPeriod(c model.Chapter, events []model.Event, now time.Time) model.TimelinePeriod {
	entries := entriesFor(c.ID, events, now)

	var start, end time.Time
	if len(entries) > 0 {
		start = entries[0].Date
		end = entries[len(entries)-1].Date
	} else {
		start, end = storedRange(c, now)
	}

	return model.TimelinePeriod{
		ID:        model.PersistedID(c.ID),
		Title:     c.Title,
		StartDate: start,
		EndDate:   end,
		DateRange: FormatDateRange(start, end),
		Collapsed: c.Collapsed,
		Entries:   entries,
	}
}

func buildUncategorized(chapterIDs map[int64]bool, events []model.Event, now time.Time) *model.TimelinePeriod {
	var orphaned []model.TimelineEntry
	for _, e := range events {
		if e.Chapter == nil || !chapterIDs[*e.Chapter] {
			orphaned = append(orphaned, transformEvent(e, now))
		}
	}
	if len(orphaned) == 0 {
		return nil
	}
	sortEntries(orphaned)

	return &model.TimelinePeriod{
		ID:        UncategorizedID,
		Title:     "Uncategorized",
		StartDate: time.Date(uncategorizedSortYear, time.January, 1, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(uncategorizedSortYear, time.December, 31, 0, 0, 0, 0, time.Local),
		DateRange: FormatDateRange(orphaned[0].Date, orphaned[len(orphaned)-1].Date),
		Entries:   orphaned,
	}
}

func buildBranch(branch model.Chapter, chapters []model.Chapter, events []model.Event, now time.Time) model.TimelineBranch {
	var periods []model.TimelinePeriod
	for _, c := range chapters {
		if c.Type == model.TypeBranchPeriod && c.ParentBranch != nil && *c.ParentBranch == branch.ID {
			periods = append(periods, buildPeriod(c, events, now))
		}
	}
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})

	anchor := model.Anchor{}
	switch {
	case branch.SourceEntry != nil:
		anchor = model.EntryAnchor(*branch.SourceEntry)
	case branch.SourceChapter != nil:
		anchor = model.PeriodAnchor(*branch.SourceChapter)
	}

	if len(periods) == 0 {
		periods = []model.TimelinePeriod{defaultBranchPeriod(branch, events, now)}
	}

	color := branch.Color
	if color == "" {
		color = model.DefaultChapterColor
	}

	return model.TimelineBranch{
		ID:        branch.ID,
		Name:      branch.Title,
		Color:     color,
		X:         branch.XPosition,
		Collapsed: branch.Collapsed,
		Anchor:    anchor,
		Periods:   periods,
	}
}

// defaultBranchPeriod synthesizes the single period shown for a branch with
// no branch_period children: "Entries" spanning the branch's direct events
// when it has any, otherwise an empty "New Period" spanning the stored dates.
func defaultBranchPeriod(branch model.Chapter, events []model.Event, now time.Time) model.TimelinePeriod {
	direct := entriesFor(branch.ID, events, now)
	if len(direct) > 0 {
		start := direct[0].Date
		end := direct[len(direct)-1].Date
		return model.TimelinePeriod{
			ID:        model.SyntheticID(fmt.Sprintf("branch-%d-entries", branch.ID)),
			Title:     "Entries",
			StartDate: start,
			EndDate:   end,
			DateRange: FormatDateRange(start, end),
			Entries:   direct,
		}
	}

	start, _ := storedRange(branch, now)
	end := now
	if branch.EndDate != nil {
		if parsed, err := ParseLocalDate(*branch.EndDate); err == nil {
			end = parsed
		}
	}
	return model.TimelinePeriod{
		ID:        model.SyntheticID(fmt.Sprintf("branch-%d-default", branch.ID)),
		Title:     "New Period",
		StartDate: start,
		EndDate:   end,
		DateRange: FormatDateRange(start, end),
		Entries:   []model.TimelineEntry{},
	}
}

// entriesFor selects, transforms and sorts the events owned by a chapter.
func entriesFor(chapterID int64, events []model.Event, now time.Time) []model.TimelineEntry {
	var entries []model.TimelineEntry
	for _, e := range events {
		if e.Chapter != nil && *e.Chapter == chapterID {
			entries = append(entries, transformEvent(e, now))
		}
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []model.TimelineEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}

func transformEvent(e model.Event, now time.Time) model.TimelineEntry {
	date, err := ParseLocalDate(e.Date)
	if err != nil {
		util.LogDebugf("event %d has malformed date %q, using current date", e.ID, e.Date)
		date = now
	}
	return model.TimelineEntry{
		ID:       e.ID,
		Date:     date,
		DateText: FormatEntryDate(date),
		Title:    e.Title,
		Preview:  makePreview(e.Content),
		Content:  e.Content,
	}
}

// makePreview truncates content to the first previewLimit characters,
// appending an ellipsis when anything was cut.
func makePreview(content string) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(string(runes[:previewLimit])) + "..."
}

// storedRange parses a chapter's stored dates, falling back to now for a
// malformed start and mirroring the start for a missing end.
func storedRange(c model.Chapter, now time.Time) (time.Time, time.Time) {
	start, err := ParseLocalDate(c.StartDate)
	if err != nil {
		util.LogDebugf("chapter %d has malformed start date %q, using current date", c.ID, c.StartDate)
		start = now
	}
	end := start
	if c.EndDate != nil {
		if parsed, perr := ParseLocalDate(*c.EndDate); perr == nil {
			end = parsed
		}
	}
	return start, end
}

// FindMainPeriodForDate returns the first main-timeline period whose date
// range contains the given date.
func FindMainPeriodForDate(main []model.TimelinePeriod, date time.Time) (*model.TimelinePeriod, bool) {
	for i := range main {
		if !main[i].StartDate.After(date) && !main[i].EndDate.Before(date) {
			return &main[i], true
		}
	}
	return nil, false
}
