package main

import (
	"os"
	"strings"

	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/aidul23/agent-mem/pkg/memory/memorysrv"
	"github.com/spf13/cobra"
)

type recordOutput struct {
	Importance string   `json:"importance"`
	Version    string   `json:"version,omitempty"`
	Source     string   `json:"source,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Body       string   `json:"body"`
}

func toOutput(records []memory.Record) []recordOutput {
	out := make([]recordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, recordOutput{
			Importance: string(r.Meta.Importance),
			Version:    r.Meta.Version,
			Source:     r.Meta.Source,
			Tags:       r.Meta.Tags,
			Body:       r.Body,
		})
	}
	return out
}

func (c *cli) recallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall [query]",
		Short: "Recall memories from a knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minRaw, _ := cmd.Flags().GetString("min-importance")
			limit, _ := cmd.Flags().GetInt("limit")
			recent, _ := cmd.Flags().GetBool("recent")

			minImportance, err := memory.ParseImportance(minRaw)
			if err != nil {
				return err
			}

			s, err := c.session()
			if err != nil {
				return err
			}
			defer s.close()

			bank := scopedBank(cmd, s.manager)
			result := bank.RecallWithPriority(cmd.Context(), strings.Join(args, " "), memory.PriorityOptions{
				PrioritizeRecent: recent,
				MinImportance:    minImportance,
				Limit:            limit,
			})
			return c.printJSON(map[string]any{
				"bank_id": bank.ID(),
				"status":  result.Status.String(),
				"records": toOutput(result.Records),
			})
		},
	}
	scopeFlags(cmd)
	cmd.Flags().String("min-importance", "normal", "Lowest importance returned: critical, high, normal or low")
	cmd.Flags().IntP("limit", "l", memory.DefaultRecallLimit, "Max records")
	cmd.Flags().Bool("recent", true, "Order newest first")
	return cmd
}

func (c *cli) ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Chunk a document into a knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docType, _ := cmd.Flags().GetString("type")
			version, _ := cmd.Flags().GetString("version")
			importanceRaw, _ := cmd.Flags().GetString("importance")
			product, _ := cmd.Flags().GetString("product")
			department, _ := cmd.Flags().GetString("department")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			s, err := c.session()
			if err != nil {
				return err
			}
			defer s.close()

			result, err := memorysrv.NewIngestionService(s.manager, nil).Ingest(cmd.Context(), memorysrv.IngestRequest{
				FileName:     args[0],
				Data:         data,
				DocumentType: docType,
				Version:      version,
				Importance:   memory.Importance(strings.ToLower(importanceRaw)),
				ProductID:    product,
				Department:   department,
			})
			if err != nil {
				return err
			}
			return c.printJSON(result)
		},
	}
	scopeFlags(cmd)
	cmd.Flags().StringP("type", "t", memorysrv.DefaultDocumentType, "Document type tag")
	cmd.Flags().StringP("version", "v", memorysrv.DefaultDocumentVersion, "Document version")
	cmd.Flags().String("importance", string(memory.ImportanceHigh), "Importance of every chunk")
	return cmd
}

func (c *cli) ruleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule <rule-id>",
		Short: "Store a new version of a rule and supersede older ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, _ := cmd.Flags().GetString("content")
			file, _ := cmd.Flags().GetString("file")
			version, _ := cmd.Flags().GetString("version")
			summary, _ := cmd.Flags().GetString("summary")

			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				content = string(data)
			}

			s, err := c.session()
			if err != nil {
				return err
			}
			defer s.close()

			tracker := memorysrv.NewUpdateTracker(scopedBank(cmd, s.manager), s.lookupLimit)
			result, err := tracker.UpdateRule(cmd.Context(), memorysrv.UpdateRuleRequest{
				RuleID:        args[0],
				Content:       content,
				Version:       version,
				ChangeSummary: summary,
			})
			if err != nil {
				return err
			}
			return c.printJSON(result)
		},
	}
	scopeFlags(cmd)
	cmd.Flags().StringP("content", "c", "", "Rule text")
	cmd.Flags().String("file", "", "Read the rule text from a file")
	cmd.Flags().StringP("version", "v", "", "New version (required)")
	cmd.Flags().StringP("summary", "s", "", "Change summary")
	cmd.MarkFlagRequired("version")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
	return cmd
}

func (c *cli) reflectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflect [topic]",
		Short: "Consolidate what a knowledge base knows about a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			defer s.close()

			topic := strings.Join(args, " ")
			summary, found, err := memorysrv.NewReflectionService(scopedBank(cmd, s.manager)).ReflectAndSummarize(cmd.Context(), topic)
			if err != nil {
				return err
			}
			return c.printJSON(map[string]any{
				"topic":   topic,
				"summary": summary,
				"found":   found,
			})
		},
	}
	scopeFlags(cmd)
	return cmd
}

func (c *cli) outdatedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outdated [topic]",
		Short: "List records older than the newest version about a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			defer s.close()

			bank := scopedBank(cmd, s.manager)
			records, err := memorysrv.NewReflectionService(bank).IdentifyOutdated(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return c.printJSON(map[string]any{
				"bank_id": bank.ID(),
				"records": toOutput(records),
			})
		},
	}
	scopeFlags(cmd)
	return cmd
}
