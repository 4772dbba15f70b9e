package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/store"
)

func init() {
	Register(&SyncCmd{})
}

// SyncCmd migrates tasks created while signed out into the remote store.
type SyncCmd struct{}

func (c *SyncCmd) Name() string      { return "sync" }
func (c *SyncCmd) Aliases() []string { return []string{"migrate"} }
func (c *SyncCmd) Synopsis() string  { return "Migrate local tasks to the cloud" }
func (c *SyncCmd) Usage() string     { return "taskflow sync" }
func (c *SyncCmd) NeedsAuth() bool   { return true }

func (c *SyncCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SyncCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	// No Load first: loading would overwrite the cached local tasks with
	// the remote snapshot before they are read.
	report, err := st.Tasks.ImportLocal(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		switch {
		case report.Migrated == 0 && report.Skipped == 0:
			fmt.Fprintln(out, "nothing to migrate")
		case report.Warning != "":
			fmt.Fprintf(out, "migrated %d tasks\nwarning: %s\n", report.Migrated, report.Warning)
		default:
			fmt.Fprintf(out, "migrated %d tasks\n", report.Migrated)
		}
	}
	return exitcode.Success
}
