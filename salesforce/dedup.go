package salesforce

import (
	"sort"
	"strconv"
	"strings"
)

type dedupKey struct {
	facilityID string
	year       int
	hasYear    bool
}

func rowKey(r *Record) dedupKey {
	key := dedupKey{facilityID: r.FacilityID}
	if r.CalendarYear != nil {
		key.year = *r.CalendarYear
		key.hasYear = true
	}
	return key
}

// Deduplicate drops all but the most recently modified record per
// (facility, calendar year) and returns which calendar years had duplicates
// for each affected facility ({"SW0123": "2022, 2023"}). Duplicates are a data
// quality note for the run summary, not an error.
func (r *Records) Deduplicate() map[string]string {
	duplicated := make(map[string][]string)
	counts := make(map[dedupKey]int, len(r.Rows))
	for i := range r.Rows {
		counts[rowKey(&r.Rows[i])]++
	}

	seenYear := make(map[dedupKey]bool)
	for i := range r.Rows {
		key := rowKey(&r.Rows[i])
		if counts[key] < 2 || seenYear[key] {
			continue
		}
		seenYear[key] = true
		year := "unknown"
		if key.hasYear {
			year = strconv.Itoa(key.year)
		}
		duplicated[key.facilityID] = append(duplicated[key.facilityID], year)
	}

	// Stable sort by modification time, so for identical timestamps the row
	// that came later in the source result still wins
	sort.SliceStable(r.Rows, func(i, j int) bool {
		return r.Rows[i].LastModified.Before(r.Rows[j].LastModified)
	})

	latest := make(map[dedupKey]int, len(r.Rows))
	for i := range r.Rows {
		latest[rowKey(&r.Rows[i])] = i
	}

	kept := make([]Record, 0, len(latest))
	for i := range r.Rows {
		if latest[rowKey(&r.Rows[i])] == i {
			kept = append(kept, r.Rows[i])
		}
	}
	r.Rows = kept

	out := make(map[string]string, len(duplicated))
	for id, years := range duplicated {
		out[id] = strings.Join(years, ", ")
	}
	return out
}
