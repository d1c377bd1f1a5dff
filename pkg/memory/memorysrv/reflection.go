package memorysrv

import (
	"context"
	"strings"

	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/aidul23/agent-mem/pkg/memory"
)

const (
	reflectPromptPrefix = "Summarize and consolidate knowledge about: "
	outdatedRecallLimit = 50
)

// ReflectionService consolidates what a bank knows about a topic
type ReflectionService struct {
	bank *memory.Bank
}

func NewReflectionService(bank *memory.Bank) *ReflectionService {
	return &ReflectionService{bank: bank}
}

// ReflectAndSummarize asks the memory service for a consolidated summary and
// stores it back as high-importance knowledge. The bool is false when the
// service produced nothing; nothing is stored in that case.
func (s *ReflectionService) ReflectAndSummarize(ctx context.Context, topic string) (string, bool, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", false, memory.ErrInvalidTopic()
	}

	summary, ok := s.bank.Reflect(ctx, reflectPromptPrefix+topic)
	if !ok {
		logx.WithField("topic", topic).Warn("Reflection produced no summary")
		return "", false, nil
	}

	status := s.bank.RetainWithMetadata(ctx, summary, memory.RetainOptions{
		Context:    "reflection",
		Importance: memory.ImportanceHigh,
		Source:     "reflection",
		Tags:       []string{"summary", "consolidated_knowledge", TopicTag(topic)},
	})
	if status != memory.StatusOK {
		logx.WithFields(logx.Fields{"topic": topic, "status": status.String()}).Warn("Reflection summary not stored")
	}

	return summary, true, nil
}

// IdentifyOutdated returns the records about topic whose version is not the
// newest one present
func (s *ReflectionService) IdentifyOutdated(ctx context.Context, topic string) ([]memory.Record, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, memory.ErrInvalidTopic()
	}

	result := s.bank.RecallWithPriority(ctx, topic, memory.PriorityOptions{
		PrioritizeRecent: true,
		MinImportance:    memory.ImportanceLow,
		Limit:            outdatedRecallLimit,
	})
	return memory.FindOutdated(result.Records, memory.MatchAll), nil
}

// TopicTag lower-cases a topic and replaces spaces with underscores
func TopicTag(topic string) string {
	return strings.ReplaceAll(strings.ToLower(topic), " ", "_")
}
