package memorysrv

import (
	"context"
	"fmt"
	"strings"

	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/aidul23/agent-mem/pkg/memory"
)

// DefaultRuleLookupLimit bounds the recall that looks for older versions of a rule
const DefaultRuleLookupLimit = 20

const (
	sourceRuleUpdate   = "rule_update"
	tagDFXRule         = "dfx_rule"
	tagCurrent         = "current"
	tagSuperseded      = "superseded"
	contextSuperseded  = "superseded_rule"
	ruleIDLinePrefix   = "RULE ID: "
	changeSummaryLabel = "CHANGE SUMMARY: "
)

// UpdateTracker versions company rules. Every update appends the new version
// and a low-importance marker for each older version it finds; nothing is
// ever rewritten. Two concurrent updates of the same rule may both see the
// other's version as old.
type UpdateTracker struct {
	kb          *memory.Bank
	lookupLimit int
}

func NewUpdateTracker(kb *memory.Bank, lookupLimit int) *UpdateTracker {
	if lookupLimit <= 0 {
		lookupLimit = DefaultRuleLookupLimit
	}
	return &UpdateTracker{
		kb:          kb,
		lookupLimit: lookupLimit,
	}
}

type UpdateRuleRequest struct {
	RuleID        string
	Content       string
	Version       string
	ChangeSummary string
}

// UpdateRuleResult reports what was written. Failed counts writes the
// memory service did not accept.
type UpdateRuleResult struct {
	RuleID     string `json:"rule_id"`
	Version    string `json:"version"`
	Stored     bool   `json:"stored"`
	Superseded int    `json:"superseded"`
	Failed     int    `json:"failed"`
}

func (t *UpdateTracker) UpdateRule(ctx context.Context, req UpdateRuleRequest) (*UpdateRuleResult, error) {
	ruleID := strings.TrimSpace(req.RuleID)
	version := strings.TrimSpace(req.Version)
	if ruleID == "" {
		return nil, memory.ErrInvalidRuleID()
	}
	if version == "" {
		return nil, memory.ErrInvalidVersion().WithDetail("rule_id", ruleID)
	}

	result := &UpdateRuleResult{RuleID: ruleID, Version: version}

	status := t.kb.RetainWithMetadata(ctx, RuleBody(ruleID, req.ChangeSummary, req.Content), memory.RetainOptions{
		Context:    "dfx_rule_" + ruleID,
		Importance: memory.ImportanceCritical,
		Source:     sourceRuleUpdate,
		Version:    version,
		Tags:       []string{tagDFXRule, ruleID, tagCurrent},
	})
	if status == memory.StatusOK {
		result.Stored = true
	} else {
		result.Failed++
	}

	marker := ruleIDLinePrefix + ruleID
	recalled := t.kb.RecallWithPriority(ctx, marker, memory.PriorityOptions{
		PrioritizeRecent: true,
		MinImportance:    memory.ImportanceNormal,
		Limit:            t.lookupLimit,
	})

	for _, old := range recalled.Records {
		if !strings.Contains(old.Text, marker) || old.Meta.Version == "" || old.Meta.Version == version {
			continue
		}
		st := t.kb.RetainWithMetadata(ctx, SupersededMarker(version, old.Text), memory.RetainOptions{
			Context:    contextSuperseded,
			Importance: memory.ImportanceLow,
			Source:     sourceRuleUpdate,
			Tags:       []string{tagSuperseded, ruleID},
		})
		if st == memory.StatusOK {
			result.Superseded++
		} else {
			result.Failed++
		}
	}

	logx.WithFields(logx.Fields{
		"rule_id":    ruleID,
		"version":    version,
		"superseded": result.Superseded,
		"failed":     result.Failed,
	}).Info("Updated rule")

	return result, nil
}

// RuleBody renders the stored text of a rule version
func RuleBody(ruleID, changeSummary, content string) string {
	var b strings.Builder
	b.WriteString(ruleIDLinePrefix + ruleID + "\n")
	if changeSummary != "" {
		b.WriteString(changeSummaryLabel + changeSummary + "\n")
	}
	b.WriteString("\n")
	b.WriteString(content)
	return b.String()
}

// SupersededMarker renders the marker stored for an older rule version
func SupersededMarker(newVersion, oldText string) string {
	return fmt.Sprintf("[SUPERSEDED BY v%s] %s", newVersion, oldText)
}
