package interaction

import (
	"fmt"
	"time"

	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/mpetrov/lifeline/internal/core/timeline"
	"github.com/mpetrov/lifeline/internal/util"
)

// ExpandedRange grows a chapter's stored date range to include the given
// date. Bounds are only ever extended, never shrunk, so the displayed range
// stays a superset of the entry dates. changed is false when the date
// already falls inside the range, making repeated application a no-op.
func ExpandedRange(chapter model.Chapter, date time.Time) (start, end string, changed bool) {
	startDate, err := timeline.ParseLocalDate(chapter.StartDate)
	if err != nil {
		// Without a parseable start there is no range to preserve.
		iso := timeline.FormatISODate(date)
		return iso, iso, true
	}

	endDate := startDate
	if chapter.EndDate != nil {
		if parsed, perr := timeline.ParseLocalDate(*chapter.EndDate); perr == nil {
			endDate = parsed
		}
	}

	if date.Before(startDate) {
		startDate = date
		changed = true
	}
	if date.After(endDate) {
		endDate = date
		changed = true
	}
	return timeline.FormatISODate(startDate), timeline.FormatISODate(endDate), changed
}

// ExpandChapterRange persists a grow-only range extension for the chapter
// when the date falls outside its current bounds.
func (c *Controller) ExpandChapterRange(chapter model.Chapter, date time.Time) error {
	start, end, changed := ExpandedRange(chapter, date)
	if !changed {
		return nil
	}
	util.LogDebugf("expanding chapter %d range to [%s, %s]", chapter.ID, start, end)
	if err := c.mutator.UpdateChapterRange(chapter.ID, start, end); err != nil {
		util.LogErrorf("expanding chapter %d range failed: %v", chapter.ID, err)
		return fmt.Errorf("expand chapter range: %w", err)
	}
	return nil
}
