package memory

import (
	"reflect"
	"testing"
	"time"
)

func dated(label string, date time.Time) Record {
	return ParseRecord(Encode(Metadata{Date: date}, label))
}

func bodies(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Body)
	}
	return out
}

func TestRankByRecencyStable(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		dated("A", day),
		dated("B", day),
		ParseRecord("C"),
	}

	got := bodies(RankByRecency(records))
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestRankByRecencyOrdering(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	records := []Record{
		ParseRecord("undated-1"),
		dated("jan", jan),
		dated("mar", mar),
		ParseRecord("undated-2"),
		dated("feb", feb),
	}

	got := bodies(RankByRecency(records))
	want := []string{"mar", "feb", "jan", "undated-1", "undated-2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}

	if records[0].Body != "undated-1" {
		t.Error("RankByRecency must not reorder its input")
	}
}

func TestFilterByImportance(t *testing.T) {
	var records []Record
	for _, level := range []Importance{ImportanceLow, ImportanceNormal, ImportanceHigh, ImportanceCritical} {
		records = append(records, ParseRecord(Encode(Metadata{Importance: level}, string(level))))
	}

	got := bodies(FilterByImportance(records, ImportanceHigh))
	if want := []string{"high", "critical"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestFilterByImportanceDefaults(t *testing.T) {
	records := []Record{
		ParseRecord("headerless counts as normal"),
		ParseRecord("[IMPORTANCE: whatever] unknown counts as normal"),
		ParseRecord("[IMPORTANCE: low] low"),
	}

	if got := FilterByImportance(records, ImportanceNormal); len(got) != 2 {
		t.Errorf("expected 2 records at normal, got %d", len(got))
	}
	if got := FilterByImportance(records, Importance("bogus")); len(got) != 3 {
		t.Errorf("unknown threshold should keep everything, got %d", len(got))
	}
}
