package memory

import (
	"context"
	"strings"
	"time"

	"github.com/aidul23/agent-mem/pkg/logx"
)

const (
	// DefaultRecallLimit bounds prioritized recalls when the caller does not
	DefaultRecallLimit = 10
	// reflectFallbackLimit and reflectFallbackTop shape the summary built when
	// the backend cannot reflect
	reflectFallbackLimit = 20
	reflectFallbackTop   = 5
)

// Bank is a handle to one partition of the memory service. It holds no state
// beyond its address, so it is cheap to build per request.
type Bank struct {
	id      string
	backend Backend
	enabled bool
	now     func() time.Time
}

// NewBank creates a bank handle. A disabled bank ignores writes and recalls nothing.
func NewBank(backend Backend, id string, enabled bool) *Bank {
	return &Bank{
		id:      id,
		backend: backend,
		enabled: enabled,
		now:     time.Now,
	}
}

func (b *Bank) ID() string {
	return b.id
}

func (b *Bank) Enabled() bool {
	return b.enabled
}

// RetainOptions carry the header fields written in front of the content
type RetainOptions struct {
	Context    string
	Importance Importance
	Source     string
	Version    string
	Tags       []string
}

// Retain stores content as-is
func (b *Bank) Retain(ctx context.Context, content, contextLabel string) Status {
	if !b.enabled {
		return StatusDisabled
	}
	if err := b.backend.Retain(ctx, b.id, content, contextLabel); err != nil {
		logx.WithFields(logx.Fields{"bank_id": b.id, "error": err.Error()}).Warn("Failed to retain memory")
		return StatusUnavailable
	}
	return StatusOK
}

// RetainWithMetadata prefixes content with an encoded header and stores it
func (b *Bank) RetainWithMetadata(ctx context.Context, content string, opts RetainOptions) Status {
	if !b.enabled {
		return StatusDisabled
	}

	importance := opts.Importance
	if importance == "" {
		importance = ImportanceNormal
	}
	contextLabel := opts.Context
	if contextLabel == "" {
		contextLabel = "general"
	}

	encoded := Encode(Metadata{
		Importance: importance,
		Version:    opts.Version,
		Source:     opts.Source,
		Tags:       opts.Tags,
		Date:       b.now(),
	}, content)

	return b.Retain(ctx, encoded, contextLabel)
}

// Recall returns the backend's relevance-ranked matches, decoded
func (b *Bank) Recall(ctx context.Context, query string, limit int) RecallResult {
	if !b.enabled {
		return RecallResult{Status: StatusDisabled}
	}
	texts, err := b.backend.Recall(ctx, b.id, query, limit)
	if err != nil {
		logx.WithFields(logx.Fields{"bank_id": b.id, "error": err.Error()}).Warn("Failed to recall memory")
		return RecallResult{Status: StatusUnavailable}
	}
	return RecallResult{Records: ParseRecords(texts), Status: StatusOK}
}

// PriorityOptions shape RecallWithPriority
type PriorityOptions struct {
	PrioritizeRecent bool
	MinImportance    Importance
	Limit            int
}

// DefaultPriorityOptions: newest first, normal importance and up, ten results
func DefaultPriorityOptions() PriorityOptions {
	return PriorityOptions{
		PrioritizeRecent: true,
		MinImportance:    ImportanceNormal,
		Limit:            DefaultRecallLimit,
	}
}

// RecallWithPriority recalls, optionally ranks by recency, drops records
// below the importance threshold and truncates to the limit.
func (b *Bank) RecallWithPriority(ctx context.Context, query string, opts PriorityOptions) RecallResult {
	result := b.Recall(ctx, query, 0)
	if result.Status != StatusOK {
		return result
	}

	records := result.Records
	if opts.PrioritizeRecent {
		records = RankByRecency(records)
	}
	records = FilterByImportance(records, opts.MinImportance)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultRecallLimit
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return RecallResult{Records: records, Status: StatusOK}
}

// Reflect asks the backend for a synthesized answer. Backends that cannot
// reflect get the top few prioritized recalls joined by newlines instead.
// The bool is false when nothing was produced.
func (b *Bank) Reflect(ctx context.Context, query string) (string, bool) {
	if !b.enabled {
		return "", false
	}

	reflector, ok := b.backend.(Reflector)
	if !ok {
		opts := DefaultPriorityOptions()
		opts.Limit = reflectFallbackLimit
		result := b.RecallWithPriority(ctx, query, opts)
		if len(result.Records) == 0 {
			return "", false
		}
		top := result.Records
		if len(top) > reflectFallbackTop {
			top = top[:reflectFallbackTop]
		}
		return strings.Join(Texts(top), "\n"), true
	}

	text, err := reflector.Reflect(ctx, b.id, query)
	if err != nil {
		logx.WithFields(logx.Fields{"bank_id": b.id, "error": err.Error()}).Warn("Reflection failed")
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
