package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubBackend struct {
	retained  []string
	contexts  []string
	recall    []string
	recallErr error
	retainErr error
}

func (s *stubBackend) Retain(_ context.Context, _ string, content, contextLabel string) error {
	if s.retainErr != nil {
		return s.retainErr
	}
	s.retained = append(s.retained, content)
	s.contexts = append(s.contexts, contextLabel)
	return nil
}

func (s *stubBackend) Recall(_ context.Context, _, _ string, _ int) ([]string, error) {
	return s.recall, s.recallErr
}

type stubReflector struct {
	stubBackend
	answer string
	err    error
}

func (s *stubReflector) Reflect(_ context.Context, _, _ string) (string, error) {
	return s.answer, s.err
}

func TestBankDisabled(t *testing.T) {
	backend := &stubBackend{recall: []string{"something"}}
	bank := NewBank(backend, "user-u1", false)

	if st := bank.Retain(context.Background(), "hello", "chat_turn"); st != StatusDisabled {
		t.Errorf("expected disabled, got %s", st)
	}
	if len(backend.retained) != 0 {
		t.Error("disabled bank must not write")
	}
	if res := bank.Recall(context.Background(), "q", 0); res.Status != StatusDisabled || len(res.Records) != 0 {
		t.Errorf("disabled bank must not recall, got %+v", res)
	}
	if _, ok := bank.Reflect(context.Background(), "q"); ok {
		t.Error("disabled bank must not reflect")
	}
}

func TestBankUnavailable(t *testing.T) {
	backend := &stubBackend{recallErr: errors.New("dial tcp: connection refused"), retainErr: errors.New("boom")}
	bank := NewBank(backend, "company-acme-kb", true)

	if st := bank.Retain(context.Background(), "x", ""); st != StatusUnavailable {
		t.Errorf("expected unavailable, got %s", st)
	}
	res := bank.RecallWithPriority(context.Background(), "q", DefaultPriorityOptions())
	if res.Status != StatusUnavailable || res.Records != nil {
		t.Errorf("expected unavailable empty result, got %+v", res)
	}
}

func TestRetainWithMetadata(t *testing.T) {
	backend := &stubBackend{}
	bank := NewBank(backend, "company-acme-kb", true)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	bank.now = func() time.Time { return fixed }

	st := bank.RetainWithMetadata(context.Background(), "content", RetainOptions{
		Importance: ImportanceHigh,
		Source:     "handbook.md",
		Tags:       []string{"dfx_rule"},
	})
	if st != StatusOK {
		t.Fatalf("expected ok, got %s", st)
	}

	want := "[IMPORTANCE: high] [SOURCE: handbook.md] [TAGS: dfx_rule] [DATE: 2024-06-01T12:00:00Z]\ncontent"
	if backend.retained[0] != want {
		t.Errorf("got %q want %q", backend.retained[0], want)
	}
	if backend.contexts[0] != "general" {
		t.Errorf("empty context should default to general, got %q", backend.contexts[0])
	}
}

func TestRecallWithPriority(t *testing.T) {
	old := Encode(Metadata{Importance: ImportanceHigh, Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}, "old")
	recent := Encode(Metadata{Importance: ImportanceNormal, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, "recent")
	low := Encode(Metadata{Importance: ImportanceLow, Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}, "low")

	backend := &stubBackend{recall: []string{old, "plain", low, recent}}
	bank := NewBank(backend, "b", true)

	res := bank.RecallWithPriority(context.Background(), "q", DefaultPriorityOptions())
	got := bodies(res.Records)
	want := []string{"recent", "old", "plain"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v want %v", got, want)
	}

	opts := DefaultPriorityOptions()
	opts.Limit = 1
	opts.PrioritizeRecent = false
	res = bank.RecallWithPriority(context.Background(), "q", opts)
	if len(res.Records) != 1 || res.Records[0].Body != "old" {
		t.Errorf("expected service order truncated to one, got %v", bodies(res.Records))
	}
}

func TestReflectFallback(t *testing.T) {
	var recall []string
	for i := 0; i < 8; i++ {
		recall = append(recall, Encode(Metadata{Date: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC)}, string(rune('a'+i))))
	}
	bank := NewBank(&stubBackend{recall: recall}, "b", true)

	text, ok := bank.Reflect(context.Background(), "topic")
	if !ok {
		t.Fatal("fallback should produce a summary")
	}
	lines := strings.Split(text, "\n")
	// each record contributes its header line and its body line
	if len(lines) != 10 {
		t.Fatalf("expected top 5 records, got %d lines: %q", len(lines), text)
	}
	if lines[1] != "h" {
		t.Errorf("expected newest record first, got %q", lines[1])
	}

	empty := NewBank(&stubBackend{}, "b", true)
	if _, ok := empty.Reflect(context.Background(), "topic"); ok {
		t.Error("no memories means no reflection")
	}
}

func TestReflectWithReflector(t *testing.T) {
	bank := NewBank(&stubReflector{answer: "pricing is tiered"}, "b", true)
	if text, ok := bank.Reflect(context.Background(), "q"); !ok || text != "pricing is tiered" {
		t.Errorf("got %q %v", text, ok)
	}

	failing := NewBank(&stubReflector{err: errors.New("timeout")}, "b", true)
	if _, ok := failing.Reflect(context.Background(), "q"); ok {
		t.Error("reflect failure must yield nothing")
	}

	blank := NewBank(&stubReflector{answer: "  "}, "b", true)
	if _, ok := blank.Reflect(context.Background(), "q"); ok {
		t.Error("blank reflection must yield nothing")
	}
}

func TestManagerBankIDs(t *testing.T) {
	m := NewManager(&stubBackend{}, "acme")

	cases := []struct {
		got  string
		want string
	}{
		{m.CompanyKB().ID(), "company-acme-kb"},
		{m.ProductKB("p9").ID(), "company-acme-product-p9"},
		{m.DepartmentKB("eng").ID(), "company-acme-dept-eng"},
		{m.UserMemory("u1", true).ID(), "company-acme-user-u1"},
		{m.PersonalMemory("u1", true).ID(), "user-u1"},
		{m.ScopedKB("", "ops").ID(), "company-acme-dept-ops"},
		{m.ScopedKB("p1", "ops").ID(), "company-acme-product-p1"},
		{m.ScopedKB("", "").ID(), "company-acme-kb"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("got %s want %s", tc.got, tc.want)
		}
	}

	if m.UserMemory("u1", false).Enabled() {
		t.Error("user memory without consent must be disabled")
	}
}
