package memory

import "strings"

// Record is a recalled memory decoded once at the edge of the core
type Record struct {
	Text string
	Meta Metadata
	Body string
}

// ParseRecord decodes the header of text. Body is the text after the header
// line when the first line carries an importance label, otherwise the whole text.
func ParseRecord(text string) Record {
	body := text
	if first, rest, found := strings.Cut(text, "\n"); found && strings.Contains(first, labelImportance) {
		body = rest
	}
	return Record{
		Text: text,
		Meta: Decode(text),
		Body: body,
	}
}

func ParseRecords(texts []string) []Record {
	records := make([]Record, 0, len(texts))
	for _, t := range texts {
		records = append(records, ParseRecord(t))
	}
	return records
}

// Texts returns the raw stored text of each record
func Texts(records []Record) []string {
	texts := make([]string, 0, len(records))
	for _, r := range records {
		texts = append(texts, r.Text)
	}
	return texts
}

// HasTag reports whether the record's header carries tag
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Meta.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
