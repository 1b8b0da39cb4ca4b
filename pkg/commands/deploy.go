// Package commands holds the business logic behind each CLI command. The
// cmd/ layer stays thin: it parses flags, calls a workflow here, and
// maps the returned error to an exit status.
package commands

import (
	"os"
	"runtime"
	"sync"

	"github.com/arthur-debert/lkdots/pkg/config"
	"github.com/arthur-debert/lkdots/pkg/executor"
	"github.com/arthur-debert/lkdots/pkg/gitignore"
	"github.com/arthur-debert/lkdots/pkg/logging"
	"github.com/arthur-debert/lkdots/pkg/output"
	"github.com/arthur-debert/lkdots/pkg/paths"
	"github.com/arthur-debert/lkdots/pkg/planner"
)

// DeployOptions configures a deploy run.
type DeployOptions struct {
	ConfigPath string
	Simulate   bool
	Workers    int
}

// Deploy loads and validates the manifest, plans every entry that
// matches the running platform, executes the plans (or just prints them
// in simulate mode), and finally syncs the gitignore managed block.
func Deploy(opts DeployOptions) error {
	logger := logging.GetLogger("commands.deploy")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	entries := cfg.ActiveEntries()
	logger.Info().Int("entries", len(entries)).Bool("simulate", opts.Simulate).Msg("Deploying entries")

	plans, err := planAll(cfg, entries, opts.Workers)
	if err != nil {
		return err
	}

	if opts.Simulate {
		output.SimulateBanner()
	}
	for _, plan := range plans {
		for _, op := range plan {
			output.PrintOp(op)
		}
	}

	if opts.Simulate {
		return gitignore.Sync(cfg, true, os.Stdout)
	}

	if _, err := executor.ExecuteAll(plans, opts.Workers); err != nil {
		return err
	}
	return gitignore.Sync(cfg, false, nil)
}

// planAll plans one task per entry, bounded by workers. Planning is
// read-only, so a failing entry cannot leave anything behind; the first
// error in entry order wins after all tasks drain.
func planAll(cfg *config.Config, entries []config.Entry, workers int) ([]planner.Plan, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	plans := make([]planner.Plan, len(entries))
	errs := make([]error, len(entries))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range entries {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			plans[idx], errs[idx] = planEntry(cfg, &entries[idx])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func planEntry(cfg *config.Config, entry *config.Entry) (planner.Plan, error) {
	from, err := paths.ResolveFrom(cfg.BaseDir, entry.From)
	if err != nil {
		return nil, err
	}
	to, err := paths.ExpandHome(entry.To)
	if err != nil {
		return nil, err
	}
	return planner.CreatePlan(from, to)
}
