package memory

import (
	"sort"
	"strings"
)

// Matcher selects the records that belong to one versioned subject
type Matcher func(Record) bool

// MatchAll selects every record
func MatchAll(Record) bool { return true }

// ContainsText selects records whose stored text contains s
func ContainsText(s string) Matcher {
	return func(r Record) bool {
		return strings.Contains(r.Text, s)
	}
}

// FindOutdated groups matching versioned records by version and returns every
// record not in the latest group. Versions compare as plain strings, so "9"
// sorts above "10".
func FindOutdated(records []Record, match Matcher) []Record {
	groups := make(map[string][]Record)
	for _, r := range records {
		if r.Meta.Version == "" || !match(r) {
			continue
		}
		groups[r.Meta.Version] = append(groups[r.Meta.Version], r)
	}

	if len(groups) < 2 {
		return nil
	}

	versions := make([]string, 0, len(groups))
	for v := range groups {
		versions = append(versions, v)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(versions)))

	var outdated []Record
	for _, v := range versions[1:] {
		outdated = append(outdated, groups[v]...)
	}
	return outdated
}

// LatestVersion returns the greatest version among matching records
func LatestVersion(records []Record, match Matcher) (string, bool) {
	latest := ""
	for _, r := range records {
		if r.Meta.Version == "" || !match(r) {
			continue
		}
		if r.Meta.Version > latest {
			latest = r.Meta.Version
		}
	}
	return latest, latest != ""
}
