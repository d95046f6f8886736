// Package interaction owns the transient UI state of the timeline diagram
// and translates raw pointer coordinates into domain operations. All methods
// are single-goroutine by contract, mirroring the event-loop model of the
// rendering host.
package interaction

import (
	"time"

	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/mpetrov/lifeline/internal/presentation/layout"
)

// Mutator is the persistence boundary the controller triggers writes
// through. Implementations are expected to be the only source of durable
// state; the controller applies optimistic local changes and reports errors
// to the caller instead of swallowing them.
type Mutator interface {
	UpdateBranchPosition(id int64, x float64) error
	UpdateChapterRange(id int64, startDate, endDate string) error
	CreateBranch(branch model.Chapter, defaultPeriod model.Chapter) (int64, error)
}

// Controller holds the derived timeline, its layout and the transient
// interaction state built on top of both.
type Controller struct {
	cfg     Config
	engine  *layout.Engine
	mutator Mutator

	data           model.TimelineData
	result         *layout.Result
	viewportHeight float64

	expandedEntry *int64
	sticky        *model.TimelinePeriod
	drag          dragState
}

type dragKind int

const (
	dragNone dragKind = iota
	dragBranch
	dragCreating
)

type dragState struct {
	kind     dragKind
	branchID int64
	offsetX  float64

	anchor   model.Anchor
	startX   float64
	startY   float64
	currentX float64
	currentY float64
}

// NewController creates a controller over the given layout engine and
// persistence boundary.
func NewController(cfg Config, engine *layout.Engine, mutator Mutator) *Controller {
	return &Controller{cfg: cfg, engine: engine, mutator: mutator}
}

// SetData replaces the derived timeline and rebuilds the position map from
// scratch. There is no incremental update path.
func (c *Controller) SetData(data model.TimelineData, viewportHeight float64) {
	c.data = data
	c.viewportHeight = viewportHeight
	c.relayout()
}

// Data returns the current derived timeline.
func (c *Controller) Data() *model.TimelineData {
	return &c.data
}

// Layout returns the current main-timeline layout result.
func (c *Controller) Layout() *layout.Result {
	return c.result
}

// BranchPositions computes the branch-local position map for one branch.
func (c *Controller) BranchPositions(branch model.TimelineBranch) layout.PositionMap {
	return c.engine.BranchLayout(branch, c.data.MainTimeline, c.result.Positions)
}

func (c *Controller) relayout() {
	c.result = c.engine.Layout(c.data.MainTimeline, c.viewportHeight)
}

// ToggleMainPeriod flips the collapsed flag on a main period and cascades
// the same value into every branch period whose start date falls inside the
// toggled period's range. The cascade is one-way: branch toggles never
// propagate back up.
func (c *Controller) ToggleMainPeriod(id model.PeriodID) {
	period, ok := c.data.FindMainPeriod(id)
	if !ok {
		return
	}
	collapsed := !period.Collapsed
	period.Collapsed = collapsed

	for bi := range c.data.Branches {
		for pi := range c.data.Branches[bi].Periods {
			bp := &c.data.Branches[bi].Periods[pi]
			inRange := !bp.StartDate.Before(period.StartDate) && !bp.StartDate.After(period.EndDate)
			if inRange {
				bp.Collapsed = collapsed
			}
		}
	}
	c.relayout()
}

// ToggleBranchPeriod flips the collapsed flag on a single branch period.
func (c *Controller) ToggleBranchPeriod(branchID int64, id model.PeriodID) {
	branch, ok := c.data.FindBranch(branchID)
	if !ok {
		return
	}
	for i := range branch.Periods {
		if branch.Periods[i].ID == id {
			branch.Periods[i].Collapsed = !branch.Periods[i].Collapsed
			break
		}
	}
	c.relayout()
}

// ToggleBranch flips the collapsed flag on a branch as a whole.
func (c *Controller) ToggleBranch(branchID int64) {
	if branch, ok := c.data.FindBranch(branchID); ok {
		branch.Collapsed = !branch.Collapsed
	}
}

// ToggleEntry expands the given entry, or collapses it when it is already
// the expanded one.
func (c *Controller) ToggleEntry(entryID int64) {
	if c.expandedEntry != nil && *c.expandedEntry == entryID {
		c.expandedEntry = nil
		return
	}
	c.expandedEntry = &entryID
}

// ExpandedEntry returns the currently expanded entry, if any.
func (c *Controller) ExpandedEntry() (int64, bool) {
	if c.expandedEntry == nil {
		return 0, false
	}
	return *c.expandedEntry, true
}

// CollapseEntry clears the expanded entry.
func (c *Controller) CollapseEntry() {
	c.expandedEntry = nil
}

// StickyPeriod selects the last main period whose header has scrolled to or
// above the sticky band, i.e. the period pinned at the top of the viewport.
// Returns nil near the top of the list when no header qualifies.
func (c *Controller) StickyPeriod(scrollTop float64) *model.TimelinePeriod {
	var current *model.TimelinePeriod
	for i := range c.data.MainTimeline {
		period := &c.data.MainTimeline[i]
		y, ok := c.result.Positions.Get(layout.PeriodKey(period.ID))
		if ok && y <= scrollTop+c.cfg.HeaderHeight {
			current = period
		}
	}
	c.sticky = current
	return current
}

// interpolateDate maps a 0..1 ratio onto the span between two dates.
func interpolateDate(start, end time.Time, ratio float64) time.Time {
	span := end.Sub(start)
	return start.Add(time.Duration(float64(span) * ratio))
}
