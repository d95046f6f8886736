package model

import "time"

// TimelineEntry is the rendering projection of an Event.
type TimelineEntry struct {
	ID       int64     `json:"id"`
	Date     time.Time `json:"date"`
	DateText string    `json:"dateText"`
	Title    string    `json:"title"`
	Preview  string    `json:"preview"`
	Content  string    `json:"content"`
}

// TimelinePeriod is a derived time span with its chronologically sorted
// entries. StartDate/EndDate are the min/max entry dates when entries exist,
// otherwise the stored chapter dates.
type TimelinePeriod struct {
	ID        PeriodID       `json:"id"`
	Title     string         `json:"title"`
	StartDate time.Time      `json:"startDate"`
	EndDate   time.Time      `json:"endDate"`
	DateRange string         `json:"dateRange"`
	Collapsed bool           `json:"collapsed"`
	Entries   []TimelineEntry `json:"entries"`
}

// TimelineBranch is a side-track anchored to a point on the main spine.
type TimelineBranch struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Color     string           `json:"color"`
	X         float64          `json:"x"`
	Collapsed bool             `json:"collapsed"`
	Anchor    Anchor           `json:"-"`
	Periods   []TimelinePeriod `json:"periods"`
}

// TimelineData is the full derived tree the layout engine consumes.
// It is recomputed wholesale on every data change.
type TimelineData struct {
	MainTimeline []TimelinePeriod `json:"mainTimeline"`
	Branches     []TimelineBranch `json:"branches"`
}

// FindEntry returns the entry with the given event id, searching the main
// timeline first and then every branch.
func (d *TimelineData) FindEntry(id int64) (*TimelineEntry, bool) {
	for i := range d.MainTimeline {
		for j := range d.MainTimeline[i].Entries {
			if d.MainTimeline[i].Entries[j].ID == id {
				return &d.MainTimeline[i].Entries[j], true
			}
		}
	}
	for i := range d.Branches {
		for j := range d.Branches[i].Periods {
			for k := range d.Branches[i].Periods[j].Entries {
				if d.Branches[i].Periods[j].Entries[k].ID == id {
					return &d.Branches[i].Periods[j].Entries[k], true
				}
			}
		}
	}
	return nil, false
}

// FindMainPeriod returns the main-timeline period with the given id.
func (d *TimelineData) FindMainPeriod(id PeriodID) (*TimelinePeriod, bool) {
	for i := range d.MainTimeline {
		if d.MainTimeline[i].ID == id {
			return &d.MainTimeline[i], true
		}
	}
	return nil, false
}

// FindBranch returns the branch with the given chapter id.
func (d *TimelineData) FindBranch(id int64) (*TimelineBranch, bool) {
	for i := range d.Branches {
		if d.Branches[i].ID == id {
			return &d.Branches[i], true
		}
	}
	return nil, false
}

// CountEntries returns the total number of entries across the main timeline
// and all branches.
func (d *TimelineData) CountEntries() int {
	n := 0
	for _, p := range d.MainTimeline {
		n += len(p.Entries)
	}
	for _, b := range d.Branches {
		for _, p := range b.Periods {
			n += len(p.Entries)
		}
	}
	return n
}
