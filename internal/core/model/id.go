package model

import "strconv"

// PeriodID identifies a timeline period. A period is either backed by a
// persisted chapter (numeric id) or synthesized during derivation
// ("uncategorized", "branch-{id}-entries", "branch-{id}-default").
// Keeping the two id spaces in one tagged value stops synthetic ids from
// being mistaken for real foreign keys.
type PeriodID struct {
	num  int64
	name string
}

// PersistedID returns the id of a period backed by a chapter record.
func PersistedID(n int64) PeriodID {
	return PeriodID{num: n}
}

// SyntheticID returns the id of a period that exists only in the derived tree.
func SyntheticID(name string) PeriodID {
	return PeriodID{name: name}
}

// Persisted reports the chapter id behind this period, if any.
func (id PeriodID) Persisted() (int64, bool) {
	if id.name != "" {
		return 0, false
	}
	return id.num, true
}

// IsSynthetic reports whether the period was synthesized during derivation.
func (id PeriodID) IsSynthetic() bool {
	return id.name != ""
}

func (id PeriodID) String() string {
	if id.name != "" {
		return id.name
	}
	return strconv.FormatInt(id.num, 10)
}

// MarshalJSON emits the numeric id for persisted periods and the synthetic
// name as a string otherwise, matching the wire shape clients expect.
func (id PeriodID) MarshalJSON() ([]byte, error) {
	if id.name != "" {
		return []byte(strconv.Quote(id.name)), nil
	}
	return []byte(strconv.FormatInt(id.num, 10)), nil
}

// AnchorKind tags the Anchor union.
type AnchorKind int

const (
	// AnchorNone means the branch has no recorded origin.
	AnchorNone AnchorKind = iota
	// AnchorEntry anchors a branch to a main-timeline entry.
	AnchorEntry
	// AnchorPeriod anchors a branch to a main-timeline period header.
	AnchorPeriod
)

// Anchor names the point on the main spine a branch visually originates
// from. It replaces the "entry id or 'period-{id}' string" convention with
// an explicit tagged variant.
type Anchor struct {
	Kind AnchorKind
	ID   int64
}

// EntryAnchor anchors to the entry with the given event id.
func EntryAnchor(id int64) Anchor {
	return Anchor{Kind: AnchorEntry, ID: id}
}

// PeriodAnchor anchors to the period backed by the given chapter id.
func PeriodAnchor(id int64) Anchor {
	return Anchor{Kind: AnchorPeriod, ID: id}
}
