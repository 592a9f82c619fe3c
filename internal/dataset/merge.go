package dataset

import (
	"fighterdata/internal/fighters"
	"fighterdata/internal/profile"
	"slices"
	"time"
)

// MergeAppend appends every incoming record whose name is not already
// present, in order, and reports how many were added. existing is left
// untouched, the result never shares its backing array.
func MergeAppend(existing, incoming []fighters.Fighter) ([]fighters.Fighter, int) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, f := range existing {
		seen[fighters.NameKey(f.Name)] = struct{}{}
	}

	merged := slices.Clone(existing)
	added := 0
	for _, f := range incoming {
		key := fighters.NameKey(f.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, f)
		added++
	}
	return merged, added
}

// MergeReplaceByName overwrites the first existing record with the same name
// as each incoming record. Incoming records with no match are dropped.
func MergeReplaceByName(existing, incoming []fighters.Fighter) ([]fighters.Fighter, int) {
	replaced := 0
	for _, f := range incoming {
		i := IndexOf(existing, f.Name)
		if i < 0 {
			continue
		}
		existing[i] = f
		replaced++
	}
	return existing, replaced
}

// IndexOf returns the position of the first record named name, or -1.
func IndexOf(records []fighters.Fighter, name string) int {
	key := fighters.NameKey(name)
	for i, f := range records {
		if fighters.NameKey(f.Name) == key {
			return i
		}
	}
	return -1
}

// ReplaceHistory sets the recent fights of the record named name.
func ReplaceHistory(records []fighters.Fighter, name string, fights []fighters.FightSummary) bool {
	i := IndexOf(records, name)
	if i < 0 {
		return false
	}
	if fights == nil {
		fights = []fighters.FightSummary{}
	}
	records[i].LastFights = fights
	return true
}

// FillAges computes the age of every record that has a parseable birth date
// but no age yet, returning how many were filled.
func FillAges(records []fighters.Fighter, now time.Time) int {
	filled := 0
	for i := range records {
		if records[i].Age != nil {
			continue
		}
		age, ok := profile.ComputeAge(records[i].Dob, now)
		if !ok {
			continue
		}
		records[i].SetAge(age, true)
		filled++
	}
	return filled
}
