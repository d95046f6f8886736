package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseLocalDate parses an ISO "2006-01-02" date in the local timezone.
// Parsing the components by hand avoids the UTC shift that time.Parse would
// introduce for dates that are then compared against local midnights.
func ParseLocalDate(s string) (time.Time, error) {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed date %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("malformed date %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("malformed date %q", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// FormatISODate renders a time as the ISO date the persistence layer stores.
func FormatISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatEntryDate renders a single entry date ("Jan 2, 2006").
func FormatEntryDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDateRange renders a period's date range label, collapsing the label
// when both dates share a month or a year: "Jan 2020", "Jan - Jun 2020",
// "Jan 2019 - Jun 2020".
func FormatDateRange(start, end time.Time) string {
	startMonth := start.Format("Jan")
	endMonth := end.Format("Jan")
	startYear := start.Year()
	endYear := end.Year()

	if startYear == endYear {
		if startMonth == endMonth {
			return fmt.Sprintf("%s %d", startMonth, startYear)
		}
		return fmt.Sprintf("%s - %s %d", startMonth, endMonth, startYear)
	}
	return fmt.Sprintf("%s %d - %s %d", startMonth, startYear, endMonth, endYear)
}
