package interaction

import (
	"math"
	"time"

	"github.com/mpetrov/lifeline/internal/presentation/layout"
	"github.com/mpetrov/lifeline/internal/util"
)

// ClickTarget is the outcome of mapping a timeline click back to a date:
// the interpolated calendar date and, when the click landed inside a real
// period, the chapter the new entry should be assigned to.
type ClickTarget struct {
	Date      time.Time
	ChapterID *int64
}

// LocateClick converts a diagram-local pointer position into a creation
// target. x and y are SVG-local coordinates; scrollTop is the scroll offset
// of the containing viewport. The second return value is false when the
// click is too far from the spine to mean anything.
func (c *Controller) LocateClick(x, y, scrollTop float64) (ClickTarget, bool) {
	if math.Abs(x-c.engine.Config().SpineX) > c.cfg.ClickSpineRange {
		return ClickTarget{}, false
	}

	contentY := y + scrollTop
	main := c.data.MainTimeline

	for i := range main {
		period := &main[i]
		periodY, ok := c.result.Positions.Get(layout.PeriodKey(period.ID))
		if !ok {
			continue
		}

		spanEnd := c.result.TotalHeight
		if i < len(main)-1 {
			if nextY, found := c.result.Positions.Get(layout.PeriodKey(main[i+1].ID)); found {
				spanEnd = nextY
			}
		}
		if contentY < periodY-c.cfg.SpanTopTolerance || contentY >= spanEnd {
			continue
		}

		// Synthetic periods are never assignable and their sort-key dates
		// are not real; fall back to the current date for those.
		id, persisted := period.ID.Persisted()
		if !persisted {
			return ClickTarget{Date: util.Now()}, true
		}

		spanHeight := spanEnd - periodY
		ratio := clamp01((contentY - periodY) / spanHeight)
		return ClickTarget{
			Date:      interpolateDate(period.StartDate, period.EndDate, ratio),
			ChapterID: &id,
		}, true
	}

	return ClickTarget{Date: util.Now()}, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
