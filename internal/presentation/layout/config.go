package layout

// Config holds every spacing constant the layout pass uses. It is passed by
// value and never mutated after construction; callers that want different
// spacing build a new Config instead of poking shared globals.
type Config struct {
	// SpineX is the horizontal position of the main chronological axis.
	SpineX float64 `yaml:"spine_x"`
	// StartY is the vertical position of the first period header.
	StartY float64 `yaml:"start_y"`

	EntryCardHeight    float64 `yaml:"entry_card_height"`
	PeriodHeaderHeight float64 `yaml:"period_header_height"`
	PeriodDotOffset    float64 `yaml:"period_dot_offset"`
	EntryDotOffset     float64 `yaml:"entry_dot_offset"`

	// Main timeline spacing.
	MainEntrySpacing        float64 `yaml:"main_entry_spacing"`
	MainEntryToChapterGap   float64 `yaml:"main_entry_to_chapter_gap"`
	MainChapterToChapterGap float64 `yaml:"main_chapter_to_chapter_gap"`

	// Branch spacing.
	BranchEntrySpacing        float64 `yaml:"branch_entry_spacing"`
	BranchEntryToChapterGap   float64 `yaml:"branch_entry_to_chapter_gap"`
	BranchChapterToChapterGap float64 `yaml:"branch_chapter_to_chapter_gap"`
	BranchMinSpacing          float64 `yaml:"branch_min_spacing"`

	// TailPadding is added below the last element so the scrollable area
	// never ends flush with the content.
	TailPadding float64 `yaml:"tail_padding"`
	// MinViewportHeight is the total-height floor when no viewport height
	// is supplied.
	MinViewportHeight float64 `yaml:"min_viewport_height"`
}

// DefaultConfig returns the spacing the diagram ships with.
func DefaultConfig() Config {
	return Config{
		SpineX:                    250,
		StartY:                    10,
		EntryCardHeight:           64,
		PeriodHeaderHeight:        45,
		PeriodDotOffset:           15,
		EntryDotOffset:            18,
		MainEntrySpacing:          1,
		MainEntryToChapterGap:     30,
		MainChapterToChapterGap:   20,
		BranchEntrySpacing:        1,
		BranchEntryToChapterGap:   17,
		BranchChapterToChapterGap: 15,
		BranchMinSpacing:          400,
		TailPadding:               100,
		MinViewportHeight:         800,
	}
}
