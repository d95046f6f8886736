package model

// ChapterType distinguishes the three kinds of persisted chapter records.
type ChapterType string

const (
	TypeMainPeriod   ChapterType = "main_period"
	TypeBranch       ChapterType = "branch"
	TypeBranchPeriod ChapterType = "branch_period"
)

// Chapter is the persisted record behind every time span on the diagram:
// a main-timeline period, a branch, or a period nested inside a branch.
// StartDate and EndDate are ISO dates ("2006-01-02"); they are authoritative
// only when the chapter has no entries.
type Chapter struct {
	ID            int64       `json:"id"`
	Type          ChapterType `json:"type"`
	Title         string      `json:"title"`
	StartDate     string      `json:"start_date"`
	EndDate       *string     `json:"end_date,omitempty"`
	Color         string      `json:"color"`
	XPosition     float64     `json:"x_position"`
	ParentBranch  *int64      `json:"parent_branch,omitempty"`
	SourceEntry   *int64      `json:"source_entry,omitempty"`
	SourceChapter *int64      `json:"source_chapter,omitempty"`
	Collapsed     bool        `json:"collapsed"`
	Order         int         `json:"order"`
	CreatedAt     string      `json:"created_at,omitempty"`
	UpdatedAt     string      `json:"updated_at,omitempty"`
}

// Event is a single dated record attached to a chapter. A nil Chapter means
// the event is uncategorized.
type Event struct {
	ID        int64  `json:"id"`
	Chapter   *int64 `json:"chapter,omitempty"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	Order     int    `json:"order"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// DefaultChapterColor is applied when a chapter record carries no color.
const DefaultChapterColor = "#3B82F6"
