package main

import (
	"os"

	"github.com/aidul23/agent-mem/pkg/config"
	"github.com/aidul23/agent-mem/pkg/kernel"
	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/aidul23/agent-mem/pkg/memory"
	"github.com/aidul23/agent-mem/pkg/memory/memoryinfra"
)

func main() {
	if err := newRootCmd(openFromConfig, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// openFromConfig builds the manager from the environment, letting flags
// override the backend and company
func openFromConfig(opts globalOptions) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logx.SetLevel(logx.ParseLevel(cfg.Server.LogLevel))

	if opts.backend != "" {
		cfg.Memory.Backend = config.MemoryBackend(opts.backend)
	}
	if opts.company != "" {
		cfg.Memory.CompanyID = opts.company
	}

	backend, closeFn, err := memoryinfra.NewBackend(cfg.Memory, cfg.OpenAI)
	if err != nil {
		return nil, err
	}
	return &session{
		manager:     memory.NewManager(backend, kernel.NewCompanyID(cfg.Memory.CompanyID)),
		lookupLimit: cfg.Memory.RuleLookupLimit,
		close:       closeFn,
	}, nil
}
