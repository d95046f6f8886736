// Package render draws the timeline diagram as SVG. It is pure
// presentation: every coordinate comes from the layout engine, and nothing
// here feeds back into the data model.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/mpetrov/lifeline/internal/presentation/layout"
)

// approxCharWidth approximates the pixel width of one display column at the
// card font size. Good enough for truncation; exact metrics would need the
// font itself.
const approxCharWidth = 7.2

const (
	cardWidth      = 320
	cardOffsetX    = 30
	spineColor     = "#1f2937"
	headerColor    = "#111827"
	mutedColor     = "#6b7280"
	cardFill       = "#f9fafb"
	cardStroke     = "#e5e7eb"
	dotRadius      = 5
	entryDotRadius = 4
)

// Renderer draws a derived timeline using a layout engine's coordinates.
type Renderer struct {
	engine *layout.Engine
	width  float64
}

// New creates a renderer for the given engine and canvas width.
func New(engine *layout.Engine, width float64) *Renderer {
	if width <= 0 {
		width = 1440
	}
	return &Renderer{engine: engine, width: width}
}

// SVG renders the full diagram: spine, main periods and entries, branch
// lines, connectors and branch content. Branch periods temporally nested in
// a collapsed main period are skipped.
func (r *Renderer) SVG(data *model.TimelineData, result *layout.Result) []byte {
	cfg := r.engine.Config()
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		r.width, result.TotalHeight, r.width, result.TotalHeight)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="#ffffff"/>`+"\n")

	// Main spine.
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
		cfg.SpineX, cfg.StartY, cfg.SpineX, result.TotalHeight, spineColor)

	for i := range data.MainTimeline {
		r.renderMainPeriod(&b, &data.MainTimeline[i], result.Positions)
	}
	for i := range data.Branches {
		r.renderBranch(&b, &data.Branches[i], data, result)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func (r *Renderer) renderMainPeriod(b *strings.Builder, period *model.TimelinePeriod, positions layout.PositionMap) {
	cfg := r.engine.Config()
	y, ok := positions.Get(layout.PeriodKey(period.ID))
	if !ok {
		return
	}
	dotY, _ := positions.Get(layout.PeriodDotKey(period.ID))

	fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="%d" fill="%s"/>`+"\n", cfg.SpineX, dotY, dotRadius, spineColor)
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="16" font-weight="600" fill="%s">%s</text>`+"\n",
		cfg.SpineX+20, y+18, headerColor, esc(truncate(period.Title, cardWidth)))
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="12" fill="%s">%s</text>`+"\n",
		cfg.SpineX+20, y+34, mutedColor, esc(period.DateRange))

	if period.Collapsed {
		return
	}
	for j := range period.Entries {
		entry := &period.Entries[j]
		entryY, found := positions.Get(layout.EntryKey(entry.ID))
		if !found {
			continue
		}
		entryDotY, _ := positions.Get(layout.EntryDotKey(entry.ID))
		r.renderEntryCard(b, entry, cfg.SpineX, entryY, entryDotY)
	}
}

func (r *Renderer) renderBranch(b *strings.Builder, branch *model.TimelineBranch, data *model.TimelineData, result *layout.Result) {
	cfg := r.engine.Config()
	branchPositions := r.engine.BranchLayout(*branch, data.MainTimeline, result.Positions)

	sourceY, _ := branchPositions.Get(layout.BranchSourceKey(branch.ID))

	// Connector from the spine out to the branch line.
	fmt.Fprintf(b, `<path d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="%s" stroke-width="2" stroke-dasharray="4 3"/>`+"\n",
		cfg.SpineX, sourceY,
		cfg.SpineX+(branch.X-cfg.SpineX)/2, sourceY,
		cfg.SpineX+(branch.X-cfg.SpineX)/2, sourceY,
		branch.X, sourceY, branch.Color)

	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="14" font-weight="600" fill="%s">%s</text>`+"\n",
		branch.X+12, sourceY+4, branch.Color, esc(truncate(branch.Name, cardWidth)))

	if branch.Collapsed {
		return
	}

	bottom := branchPositions.MaxY()
	fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
		branch.X, sourceY, branch.X, bottom, branch.Color)

	for i := range branch.Periods {
		period := &branch.Periods[i]
		// Collapsing a main period hides all branch content nested in its
		// date range; the positions exist but nothing is drawn.
		if r.engine.BranchPeriodHidden(data.MainTimeline, *period) {
			continue
		}
		y, ok := branchPositions.Get(layout.BranchPeriodKey(branch.ID, period.ID))
		if !ok {
			continue
		}
		dotY, _ := branchPositions.Get(layout.BranchPeriodDotKey(branch.ID, period.ID))

		fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="%d" fill="%s"/>`+"\n", branch.X, dotY, dotRadius, branch.Color)
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="14" font-weight="600" fill="%s">%s</text>`+"\n",
			branch.X+16, y+16, headerColor, esc(truncate(period.Title, cardWidth)))
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="11" fill="%s">%s</text>`+"\n",
			branch.X+16, y+30, mutedColor, esc(period.DateRange))

		if period.Collapsed {
			continue
		}
		for j := range period.Entries {
			entry := &period.Entries[j]
			entryY, found := branchPositions.Get(layout.BranchEntryKey(branch.ID, entry.ID))
			if !found {
				continue
			}
			entryDotY, _ := branchPositions.Get(layout.BranchEntryDotKey(branch.ID, entry.ID))
			r.renderEntryCard(b, entry, branch.X, entryY, entryDotY)
		}
	}
}

func (r *Renderer) renderEntryCard(b *strings.Builder, entry *model.TimelineEntry, lineX, y, dotY float64) {
	cfg := r.engine.Config()
	x := lineX + cardOffsetX

	fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="%d" fill="#ffffff" stroke="%s" stroke-width="2"/>`+"\n",
		lineX, dotY, entryDotRadius, spineColor)
	fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%d" height="%.1f" rx="8" fill="%s" stroke="%s"/>`+"\n",
		x, y, cardWidth, cfg.EntryCardHeight-4, cardFill, cardStroke)
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="13" font-weight="600" fill="%s">%s</text>`+"\n",
		x+12, y+20, headerColor, esc(truncate(entry.Title, cardWidth-24)))
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="11" fill="%s">%s</text>`+"\n",
		x+12, y+36, mutedColor, esc(entry.DateText))
	if entry.Preview != "" {
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="11" fill="%s">%s</text>`+"\n",
			x+12, y+52, mutedColor, esc(truncate(entry.Preview, cardWidth-24)))
	}
}

// truncate shortens a string so its display width fits maxPx, appending an
// ellipsis when anything was cut. Width is measured in display columns so
// wide runes count double.
func truncate(s string, maxPx float64) string {
	maxCols := int(maxPx / approxCharWidth)
	if maxCols <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxCols {
		return s
	}
	return runewidth.Truncate(s, maxCols, "…")
}

func esc(s string) string {
	return html.EscapeString(s)
}
