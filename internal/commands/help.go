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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskflow help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskflow                                           Show today's tasks
  taskflow list [--date YYYY-MM-DD] [--bucket all|work|personal]
  taskflow add [--bucket work|personal] [--date YYYY-MM-DD] <title...>
  taskflow done [--date YYYY-MM-DD] <n>
  taskflow rm [--date YYYY-MM-DD] <n>
  taskflow cal [YYYY-MM|+N|-N]
  taskflow note <text...>
  taskflow notes
  taskflow rmnote <n>
  taskflow promote [--bucket work|personal] [--date YYYY-MM-DD] <n>
  taskflow sync
  taskflow login [--email <address>]
  taskflow logout
  taskflow reset
  taskflow help
  taskflow version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Dates accept YYYY-MM-DD, today, yesterday, tomorrow and +N/-N day offsets.

Tasks work with or without an account; notes, promotion and sync require
signing in. At most 8 tasks fit on one day.
`
