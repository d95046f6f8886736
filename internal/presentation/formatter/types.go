package formatter

import (
	"fmt"

	"github.com/mpetrov/lifeline/internal/core/model"
)

// Formatter renders a derived timeline to stdout.
type Formatter interface {
	Format(data *model.TimelineData) error
}

// NewFormatter returns the formatter for the requested output format.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (supported: table, json)", format)
	}
}

// row is one line of the table output: a period on the main timeline or
// inside a branch.
type row struct {
	Track     string
	Title     string
	DateRange string
	Entries   int
	Collapsed bool
}

func flatten(data *model.TimelineData) []row {
	var rows []row
	for _, p := range data.MainTimeline {
		rows = append(rows, row{
			Track:     "main",
			Title:     p.Title,
			DateRange: p.DateRange,
			Entries:   len(p.Entries),
			Collapsed: p.Collapsed,
		})
	}
	for _, b := range data.Branches {
		for _, p := range b.Periods {
			rows = append(rows, row{
				Track:     b.Name,
				Title:     p.Title,
				DateRange: p.DateRange,
				Entries:   len(p.Entries),
				Collapsed: p.Collapsed,
			})
		}
	}
	return rows
}
