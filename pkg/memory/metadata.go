package memory

import (
	"strings"
	"time"
)

// Importance is the ordinal weight attached to a stored memory
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceNormal   Importance = "normal"
	ImportanceLow      Importance = "low"
)

var importanceRank = map[Importance]int{
	ImportanceCritical: 3,
	ImportanceHigh:     2,
	ImportanceNormal:   1,
	ImportanceLow:      0,
}

// Rank maps the importance to its numeric order. Unknown values rank as normal.
func (i Importance) Rank() int {
	if r, ok := importanceRank[i]; ok {
		return r
	}
	return importanceRank[ImportanceNormal]
}

// IsValid reports whether i is one of the four known levels
func (i Importance) IsValid() bool {
	_, ok := importanceRank[i]
	return ok
}

// ParseImportance validates a caller-supplied level. Empty input means normal.
func ParseImportance(s string) (Importance, error) {
	if s == "" {
		return ImportanceNormal, nil
	}
	i := Importance(strings.ToLower(strings.TrimSpace(s)))
	if !i.IsValid() {
		return "", ErrInvalidImportance().WithDetail("importance", s)
	}
	return i, nil
}

// Metadata is the structured header carried in front of a memory's text
type Metadata struct {
	Importance Importance
	Version    string
	Source     string
	Tags       []string
	Date       time.Time
}

// HasDate reports whether a timestamp was decoded
func (m Metadata) HasDate() bool {
	return !m.Date.IsZero()
}

const (
	labelImportance = "[IMPORTANCE:"
	labelVersion    = "[VERSION:"
	labelSource     = "[SOURCE:"
	labelTags       = "[TAGS:"
	labelDate       = "[DATE:"
)

// Encode renders the header line followed by a newline and body
func Encode(meta Metadata, body string) string {
	importance := meta.Importance
	if importance == "" {
		importance = ImportanceNormal
	}

	parts := []string{labelImportance + " " + string(importance) + "]"}
	if meta.Version != "" {
		parts = append(parts, labelVersion+" "+meta.Version+"]")
	}
	if meta.Source != "" {
		parts = append(parts, labelSource+" "+meta.Source+"]")
	}
	if len(meta.Tags) > 0 {
		parts = append(parts, labelTags+" "+strings.Join(meta.Tags, ", ")+"]")
	}
	date := meta.Date
	if date.IsZero() {
		date = time.Now()
	}
	parts = append(parts, labelDate+" "+date.Format(time.RFC3339Nano)+"]")

	return strings.Join(parts, " ") + "\n" + body
}

// Decode extracts header fields from text. Absent or unterminated fields
// fall back to their defaults; Decode never fails.
func Decode(text string) Metadata {
	meta := Metadata{Importance: ImportanceNormal}

	if v, ok := field(text, labelImportance); ok && v != "" {
		meta.Importance = Importance(v)
	}
	if v, ok := field(text, labelVersion); ok {
		meta.Version = v
	}
	if v, ok := field(text, labelSource); ok {
		meta.Source = v
	}
	if v, ok := field(text, labelTags); ok && v != "" {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				meta.Tags = append(meta.Tags, tag)
			}
		}
	}
	if v, ok := field(text, labelDate); ok {
		meta.Date = parseDate(v)
	}
	return meta
}

// field returns the trimmed value between the first occurrence of label and the next ']'
func field(text, label string) (string, bool) {
	start := strings.Index(text, label)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(label):]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
