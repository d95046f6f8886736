// Package layout converts the derived timeline tree into vertical pixel
// positions. The computation is a single monotone top-to-bottom pass per
// timeline: same tree and same Config always yield the same positions.
package layout

import (
	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/mpetrov/lifeline/internal/core/timeline"
)

// Engine computes position maps from an immutable spacing Config.
type Engine struct {
	cfg Config
}

// NewEngine creates a layout engine with the given spacing.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's spacing configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Result is the outcome of a main-timeline layout pass.
type Result struct {
	Positions   PositionMap
	TotalHeight float64
}

// Layout walks the main timeline top to bottom, assigning a monotonically
// increasing y to every period header, entry card and dot. viewportHeight
// may be zero, in which case the configured minimum is used as the floor.
func (e *Engine) Layout(main []model.TimelinePeriod, viewportHeight float64) *Result {
	cfg := e.cfg
	positions := make(PositionMap)
	currentY := cfg.StartY

	for i, period := range main {
		positions[PeriodKey(period.ID)] = currentY
		positions[PeriodDotKey(period.ID)] = currentY + cfg.PeriodDotOffset
		currentY += cfg.PeriodHeaderHeight

		last := i == len(main)-1
		if !period.Collapsed && len(period.Entries) > 0 {
			for j, entry := range period.Entries {
				positions[EntryKey(entry.ID)] = currentY
				positions[EntryDotKey(entry.ID)] = currentY + cfg.EntryDotOffset
				currentY += cfg.EntryCardHeight
				if j < len(period.Entries)-1 {
					currentY += cfg.MainEntrySpacing
				}
			}
			if !last {
				currentY += cfg.MainEntryToChapterGap
			}
		} else if !last {
			currentY += cfg.MainChapterToChapterGap
		}
	}

	if viewportHeight <= 0 {
		viewportHeight = cfg.MinViewportHeight
	}
	total := currentY + cfg.TailPadding
	if viewportHeight > total {
		total = viewportHeight
	}

	return &Result{Positions: positions, TotalHeight: total}
}

// BranchLayout runs the period/entry walk for one branch, anchored at the
// branch's source point on the main spine. The returned map uses the
// branch-prefixed keys and includes the source key itself.
func (e *Engine) BranchLayout(branch model.TimelineBranch, main []model.TimelinePeriod, positions PositionMap) PositionMap {
	cfg := e.cfg
	branchPositions := make(PositionMap)

	sourceY := e.BranchSourceY(branch, main, positions)
	branchPositions[BranchSourceKey(branch.ID)] = sourceY

	currentY := sourceY
	for i, period := range branch.Periods {
		branchPositions[BranchPeriodKey(branch.ID, period.ID)] = currentY
		branchPositions[BranchPeriodDotKey(branch.ID, period.ID)] = currentY + cfg.PeriodDotOffset
		currentY += cfg.PeriodHeaderHeight

		last := i == len(branch.Periods)-1
		if !period.Collapsed && len(period.Entries) > 0 {
			for j, entry := range period.Entries {
				branchPositions[BranchEntryKey(branch.ID, entry.ID)] = currentY
				branchPositions[BranchEntryDotKey(branch.ID, entry.ID)] = currentY + cfg.EntryDotOffset
				currentY += cfg.EntryCardHeight
				if j < len(period.Entries)-1 {
					currentY += cfg.BranchEntrySpacing
				}
			}
			if !last {
				currentY += cfg.BranchEntryToChapterGap
			}
		} else if !last {
			currentY += cfg.BranchChapterToChapterGap
		}
	}

	return branchPositions
}

// BranchSourceY resolves the y coordinate a branch hangs from: the dot of
// its anchor entry or period when recorded, else the dot of the main period
// whose date range contains the branch's first period, else StartY.
func (e *Engine) BranchSourceY(branch model.TimelineBranch, main []model.TimelinePeriod, positions PositionMap) float64 {
	switch branch.Anchor.Kind {
	case model.AnchorEntry:
		if y, ok := positions.Get(EntryDotKey(branch.Anchor.ID)); ok {
			return y
		}
	case model.AnchorPeriod:
		if y, ok := positions.Get(PeriodDotKey(model.PersistedID(branch.Anchor.ID))); ok {
			return y
		}
	}

	if len(branch.Periods) > 0 {
		if p, ok := timeline.FindMainPeriodForDate(main, branch.Periods[0].StartDate); ok {
			if y, found := positions.Get(PeriodDotKey(p.ID)); found {
				return y
			}
		}
	}
	return e.cfg.StartY
}

// BranchPeriodHidden reports whether a branch period falls inside a
// collapsed main-timeline period. Collapsing a main period hides all branch
// content temporally nested within it; the position is still computed, the
// renderer just skips it.
func (e *Engine) BranchPeriodHidden(main []model.TimelinePeriod, period model.TimelinePeriod) bool {
	p, ok := timeline.FindMainPeriodForDate(main, period.StartDate)
	return ok && p.Collapsed
}

// PlusButtonY places the trailing "add entry" affordance below the last
// positioned element.
func (e *Engine) PlusButtonY(positions PositionMap) float64 {
	return positions.MaxY() + e.cfg.EntryCardHeight + e.cfg.EntryDotOffset
}
