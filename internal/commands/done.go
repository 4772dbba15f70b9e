package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"taskflow/internal/config"
	"taskflow/internal/datekey"
	"taskflow/internal/exitcode"
	"taskflow/internal/store"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles: running it on a
// completed task reopens it.
type DoneCmd struct {
	date string
}

// SetDate sets the date flag (for testing).
func (c *DoneCmd) SetDate(date string) { c.date = date }

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "taskflow done [--date YYYY-MM-DD] <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	num, day, code := parseDayRef(c.date, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := st.Tasks.Load(ctx); err != nil {
		return fail(errOut, err)
	}
	task, err := taskByNumber(st, day, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if _, err := st.Tasks.ToggleComplete(ctx, task.ID); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parseDayRef parses the shared <n> argument and --date flag of the
// task-reference commands.
func parseDayRef(date string, args []string, errOut io.Writer) (num int, day datekey.Key, code int) {
	day, err := parseDay(date)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, day, exitcode.UserError
	}
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task number required")
		return 0, day, exitcode.UserError
	}
	num, err = strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid task number: %s\n", args[0])
		return 0, day, exitcode.UserError
	}
	return num, day, exitcode.Success
}
