package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mpetrov/lifeline/internal/core/model"
	"golang.org/x/term"
)

// TableFormatter prints the timeline as an aligned text table sized to the
// terminal.
type TableFormatter struct {
	headers []string
}

// NewTableFormatter creates a table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"Track", "Period", "Date Range", "Entries", "Collapsed"},
	}
}

// Format prints one row per period, main timeline first, then each branch.
func (f *TableFormatter) Format(data *model.TimelineData) error {
	rows := flatten(data)
	maxTitle := maxTitleWidth()

	widths := make([]int, len(f.headers))
	for i, h := range f.headers {
		widths[i] = runewidth.StringWidth(h)
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		collapsed := ""
		if r.Collapsed {
			collapsed = "yes"
		}
		line := []string{
			clip(r.Track, maxTitle),
			clip(r.Title, maxTitle),
			r.DateRange,
			fmt.Sprintf("%d", r.Entries),
			collapsed,
		}
		for i, cell := range line {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
		cells = append(cells, line)
	}

	printRule(widths)
	printRow(f.headers, widths)
	printRule(widths)
	for _, line := range cells {
		printRow(line, widths)
	}
	printRule(widths)
	fmt.Printf("%d periods, %d entries, %d branches\n",
		len(rows), data.CountEntries(), len(data.Branches))
	return nil
}

func printRow(cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = pad(cell, widths[i])
	}
	fmt.Println("| " + strings.Join(parts, " | ") + " |")
}

func printRule(widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	fmt.Println("+" + strings.Join(parts, "+") + "+")
}

// pad right-pads a cell to a display width, counting wide runes correctly.
func pad(s string, width int) string {
	actual := runewidth.StringWidth(s)
	if actual >= width {
		return s
	}
	return s + strings.Repeat(" ", width-actual)
}

func clip(s string, maxCols int) string {
	if runewidth.StringWidth(s) <= maxCols {
		return s
	}
	return runewidth.Truncate(s, maxCols, "…")
}

// maxTitleWidth caps title columns so the table stays inside the terminal.
func maxTitleWidth() int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth < 80 {
		termWidth = 80
	}
	max := (termWidth - 40) / 2
	if max < 16 {
		max = 16
	}
	return max
}
