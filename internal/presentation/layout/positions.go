package layout

import (
	"fmt"

	"github.com/mpetrov/lifeline/internal/core/model"
)

// Key addresses one visual element in a position map. Keys are built through
// the constructors below so the composite formats stay in one place.
type Key string

// PeriodKey addresses a main-timeline period header.
func PeriodKey(id model.PeriodID) Key {
	return Key("period-" + id.String())
}

// PeriodDotKey addresses the anchor dot of a main-timeline period.
func PeriodDotKey(id model.PeriodID) Key {
	return Key("period-" + id.String() + "-dot")
}

// EntryKey addresses a main-timeline entry card.
func EntryKey(id int64) Key {
	return Key(fmt.Sprintf("entry-%d", id))
}

// EntryDotKey addresses the anchor dot of a main-timeline entry.
func EntryDotKey(id int64) Key {
	return Key(fmt.Sprintf("entry-%d-dot", id))
}

// BranchSourceKey addresses the point where a branch leaves the main spine.
func BranchSourceKey(branchID int64) Key {
	return Key(fmt.Sprintf("branch-%d-source", branchID))
}

// BranchPeriodKey addresses a period header inside a branch.
func BranchPeriodKey(branchID int64, id model.PeriodID) Key {
	return Key(fmt.Sprintf("branch-%d-period-%s", branchID, id))
}

// BranchPeriodDotKey addresses the anchor dot of a branch period.
func BranchPeriodDotKey(branchID int64, id model.PeriodID) Key {
	return Key(fmt.Sprintf("branch-%d-period-%s-dot", branchID, id))
}

// BranchEntryKey addresses an entry card inside a branch.
func BranchEntryKey(branchID, entryID int64) Key {
	return Key(fmt.Sprintf("branch-%d-entry-%d", branchID, entryID))
}

// BranchEntryDotKey addresses the anchor dot of a branch entry.
func BranchEntryDotKey(branchID, entryID int64) Key {
	return Key(fmt.Sprintf("branch-%d-entry-%d-dot", branchID, entryID))
}

// PositionMap maps element keys to vertical pixel coordinates. It is derived,
// ephemeral state: rebuilt from scratch on every data change, never patched.
type PositionMap map[Key]float64

// Get returns the coordinate for a key.
func (m PositionMap) Get(key Key) (float64, bool) {
	y, ok := m[key]
	return y, ok
}

// MaxY returns the largest coordinate in the map, or 0 when empty.
func (m PositionMap) MaxY() float64 {
	max := 0.0
	for _, y := range m {
		if y > max {
			max = y
		}
	}
	return max
}
