package chatsrv

import (
	"fmt"
	"strings"

	"github.com/aidul23/agent-mem/pkg/memory"
)

const simpleSystemTemplate = `You are a helpful assistant for GPT-Lab.
You can use the following long-term memory about the user:

%s

When answering, prefer using the user-specific information when relevant.
If memory_snippets is empty, just answer normally.
`

const enterpriseSystemTemplate = `You are an expert assistant for %s.

COMPANY KNOWLEDGE BASE (DFX Rules, Standards):
%s

PRODUCT-SPECIFIC INFORMATION:
%s

DEPARTMENT-SPECIFIC INFORMATION:
%s

USER-SPECIFIC CONTEXT:
%s

IMPORTANT INSTRUCTIONS:
- Always prioritize the most recent information
- If there are conflicting rules or standards, use the most up-to-date version
- When answering, cite which knowledge source you're using (company KB, product KB, etc.)
- Be precise and reference specific rules when applicable
- If information is outdated, mention that and use the latest version`

// snippets renders recalled records as "- text" lines, or "None."
func snippets(records []memory.Record) string {
	if len(records) == 0 {
		return "None."
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = "- " + r.Text
	}
	return strings.Join(lines, "\n")
}

func simpleSystemPrompt(records []memory.Record) string {
	return fmt.Sprintf(simpleSystemTemplate, snippets(records))
}

type enterpriseContext struct {
	company    []memory.Record
	product    []memory.Record
	department []memory.Record
	user       []memory.Record
}

func enterpriseSystemPrompt(companyID string, ec enterpriseContext) string {
	return fmt.Sprintf(enterpriseSystemTemplate,
		companyID,
		snippets(ec.company),
		snippets(ec.product),
		snippets(ec.department),
		snippets(ec.user),
	)
}
