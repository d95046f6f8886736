package interaction

// Config holds the geometric thresholds for pointer interactions.
type Config struct {
	// HeaderHeight is the sticky header band at the top of the viewport.
	HeaderHeight float64
	// ClickSpineRange is the maximum horizontal distance from the spine at
	// which a click still creates an entry.
	ClickSpineRange float64
	// SpanTopTolerance extends each period's clickable span above its header.
	SpanTopTolerance float64
	// BranchDragThreshold is the minimum horizontal drag distance that turns
	// a dot drag into a new branch. Anything below is treated as accidental.
	BranchDragThreshold float64
	// BranchDragMinGap keeps a dragged branch clear of the spine.
	BranchDragMinGap float64
	// BranchDragRightMargin keeps a dragged branch inside the viewport.
	BranchDragRightMargin float64
}

// DefaultConfig returns the interaction thresholds the diagram ships with.
func DefaultConfig() Config {
	return Config{
		HeaderHeight:          64,
		ClickSpineRange:       100,
		SpanTopTolerance:      20,
		BranchDragThreshold:   100,
		BranchDragMinGap:      130,
		BranchDragRightMargin: 350,
	}
}

// branchPalette is the set of colors a newly created branch draws from.
var branchPalette = []string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b",
	"#8b5cf6", "#ec4899", "#06b6d4", "#f97316",
}
