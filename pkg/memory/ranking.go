package memory

import "sort"

// RankByRecency orders records newest first. Undated records go last and
// ties keep their input order.
func RankByRecency(records []Record) []Record {
	ranked := make([]Record, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Meta, ranked[j].Meta
		if !a.HasDate() || !b.HasDate() {
			return a.HasDate() && !b.HasDate()
		}
		return a.Date.After(b.Date)
	})
	return ranked
}

// FilterByImportance keeps records at or above min, preserving order
func FilterByImportance(records []Record, min Importance) []Record {
	threshold := 0
	if min.IsValid() {
		threshold = min.Rank()
	}

	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Meta.Importance.Rank() >= threshold {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
