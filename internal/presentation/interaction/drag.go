package interaction

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/mpetrov/lifeline/internal/core/timeline"
	"github.com/mpetrov/lifeline/internal/util"
)

// StartBranchDrag begins repositioning a branch, capturing the horizontal
// offset between the pointer and the branch's current x so the branch does
// not jump under the cursor.
func (c *Controller) StartBranchDrag(branchID int64, pointerX float64) {
	branch, ok := c.data.FindBranch(branchID)
	if !ok {
		return
	}
	c.drag = dragState{
		kind:     dragBranch,
		branchID: branchID,
		offsetX:  pointerX - branch.X,
	}
}

// DragBranch moves the dragged branch to follow the pointer, clamped so it
// stays clear of the spine and inside the viewport.
func (c *Controller) DragBranch(pointerX, viewportWidth float64) {
	if c.drag.kind != dragBranch {
		return
	}
	branch, ok := c.data.FindBranch(c.drag.branchID)
	if !ok {
		return
	}

	minX := c.engine.Config().SpineX + c.cfg.BranchDragMinGap
	maxX := viewportWidth - c.cfg.BranchDragRightMargin
	target := pointerX - c.drag.offsetX
	if target < minX {
		target = minX
	}
	if target > maxX {
		target = maxX
	}
	branch.X = target
}

// EndBranchDrag releases the drag and persists the branch's final position.
// The local position is already applied; a persistence failure is returned
// so the caller can surface it, with the divergence logged.
func (c *Controller) EndBranchDrag() error {
	if c.drag.kind != dragBranch {
		return nil
	}
	branchID := c.drag.branchID
	c.drag = dragState{}

	branch, ok := c.data.FindBranch(branchID)
	if !ok {
		return nil
	}
	if err := c.mutator.UpdateBranchPosition(branchID, branch.X); err != nil {
		util.LogErrorf("saving branch %d position failed: %v", branchID, err)
		return fmt.Errorf("save branch position: %w", err)
	}
	return nil
}

// Dragging reports whether any drag gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.drag.kind != dragNone
}

// StartBranchCreation begins a drag-to-branch gesture from the connector dot
// of an entry or period.
func (c *Controller) StartBranchCreation(source model.Anchor, x, y float64) {
	c.drag = dragState{
		kind:     dragCreating,
		anchor:   source,
		startX:   x,
		startY:   y,
		currentX: x,
		currentY: y,
	}
}

// TrackBranchCreation follows the pointer during a drag-to-branch gesture.
func (c *Controller) TrackBranchCreation(x, y float64) {
	if c.drag.kind != dragCreating {
		return
	}
	c.drag.currentX = x
	c.drag.currentY = y
}

// FinishBranchCreation ends the gesture. A drag shorter than the threshold
// is treated as accidental and abandoned without mutation (nil, nil).
// Otherwise a new branch is materialized at the release point with one
// default period spanning a day from the source date, appended to the local
// tree, and persisted.
func (c *Controller) FinishBranchCreation() (*model.TimelineBranch, error) {
	if c.drag.kind != dragCreating {
		return nil, nil
	}
	drag := c.drag
	c.drag = dragState{}

	if drag.currentX-drag.startX <= c.cfg.BranchDragThreshold {
		return nil, nil
	}

	sourceDate, sourceTitle, ok := c.resolveSource(drag.anchor)
	if !ok {
		return nil, nil
	}

	branch := model.TimelineBranch{
		ID:     util.Now().UnixMilli(),
		Name:   "Branch: " + sourceTitle,
		Color:  branchPalette[rand.Intn(len(branchPalette))],
		X:      drag.currentX,
		Anchor: drag.anchor,
		Periods: []model.TimelinePeriod{{
			ID:        model.SyntheticID(fmt.Sprintf("branch-period-%d", util.Now().UnixMilli())),
			Title:     "New Period",
			StartDate: sourceDate,
			EndDate:   sourceDate.Add(24 * time.Hour),
			DateRange: timeline.FormatDateRange(sourceDate, sourceDate.Add(24*time.Hour)),
			Entries:   []model.TimelineEntry{},
		}},
	}
	c.data.Branches = append(c.data.Branches, branch)

	if err := c.persistBranch(branch); err != nil {
		util.LogErrorf("saving new branch failed: %v", err)
		return &branch, fmt.Errorf("save branch: %w", err)
	}
	return &branch, nil
}

// resolveSource finds the date and title behind a branch-creation anchor.
func (c *Controller) resolveSource(anchor model.Anchor) (time.Time, string, bool) {
	switch anchor.Kind {
	case model.AnchorEntry:
		if entry, ok := c.data.FindEntry(anchor.ID); ok {
			return entry.Date, entry.Title, true
		}
	case model.AnchorPeriod:
		if period, ok := c.data.FindMainPeriod(model.PersistedID(anchor.ID)); ok {
			return period.StartDate, period.Title, true
		}
	}
	return time.Time{}, "", false
}

func (c *Controller) persistBranch(branch model.TimelineBranch) error {
	branchChapter := model.Chapter{
		Type:      model.TypeBranch,
		Title:     branch.Name,
		StartDate: timeline.FormatISODate(util.Now()),
		Color:     branch.Color,
		XPosition: branch.X,
	}
	switch branch.Anchor.Kind {
	case model.AnchorEntry:
		id := branch.Anchor.ID
		branchChapter.SourceEntry = &id
	case model.AnchorPeriod:
		id := branch.Anchor.ID
		branchChapter.SourceChapter = &id
	}

	period := branch.Periods[0]
	endDate := timeline.FormatISODate(period.EndDate)
	periodChapter := model.Chapter{
		Type:      model.TypeBranchPeriod,
		Title:     period.Title,
		StartDate: timeline.FormatISODate(period.StartDate),
		EndDate:   &endDate,
	}

	_, err := c.mutator.CreateBranch(branchChapter, periodChapter)
	return err
}
