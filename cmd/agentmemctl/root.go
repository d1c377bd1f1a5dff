package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	backend string
	company string
}

// session is what every command works against
type session struct {
	manager     *memory.Manager
	lookupLimit int
	close       func()
}

type opener func(globalOptions) (*session, error)

type cli struct {
	open opener
	out  io.Writer
	opts globalOptions
}

func newRootCmd(open opener, out io.Writer) *cobra.Command {
	c := &cli{open: open, out: out}

	root := &cobra.Command{
		Use:           "agentmemctl",
		Short:         "Manage company knowledge bases",
		Long:          "Admin tool for agent-mem: ingest documents, version rules, recall and reflect on knowledge bases.",
		SilenceUsage:  true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.opts.backend, "backend", "", "Memory backend override: hindsight, local or inmemory")
	root.PersistentFlags().StringVar(&c.opts.company, "company", "", "Company id override (default: $COMPANY_ID)")

	root.AddCommand(
		c.recallCmd(),
		c.ingestCmd(),
		c.ruleCmd(),
		c.reflectCmd(),
		c.outdatedCmd(),
	)
	return root
}

func (c *cli) session() (*session, error) {
	s, err := c.open(c.opts)
	if err != nil {
		return nil, fmt.Errorf("open memory: %w", err)
	}
	return s, nil
}

func (c *cli) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, string(b))
	return err
}

// scopeFlags registers the knowledge-base selectors shared by most commands
func scopeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("product", "p", "", "Product knowledge base")
	cmd.Flags().String("department", "", "Department knowledge base")
}

func scopedBank(cmd *cobra.Command, m *memory.Manager) *memory.Bank {
	product, _ := cmd.Flags().GetString("product")
	department, _ := cmd.Flags().GetString("department")
	return m.ScopedKB(product, department)
}
