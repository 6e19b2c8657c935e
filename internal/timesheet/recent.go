package timesheet

import "sort"

// DefaultRecentLimit bounds the recent-entries listing.
const DefaultRecentLimit = 5

// UnknownProjectName is substituted when an entry references a project id
// that is not present in the projects table.
const UnknownProjectName = "Unknown Project"

// RecentEntries sorts entries by (date, start_time) descending, keeps the
// first limit rows, and joins each with its project display name. Ordering
// is plain lexicographic string comparison; the zero-padded formats make
// that chronological. The sort is stable for equal keys.
func RecentEntries(entries []Entry, names map[string]string, limit int) ([]DisplayEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].StartTime > sorted[j].StartTime
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]DisplayEntry, 0, len(sorted))
	for _, entry := range sorted {
		name, ok := names[entry.ProjectID]
		if !ok {
			name = UnknownProjectName
		}
		hours, err := ComputeHours(entry.StartTime, entry.EndTime, entry.Break)
		if err != nil {
			return nil, err
		}
		out = append(out, DisplayEntry{
			ProjectName: name,
			Date:        entry.Date,
			StartTime:   entry.StartTime,
			EndTime:     entry.EndTime,
			Hours:       hours,
		})
	}
	return out, nil
}
