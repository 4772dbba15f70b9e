package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/emoji"
	"taskflow/internal/exitcode"
	"taskflow/internal/policy"
	"taskflow/internal/store"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	date   string
	bucket string
}

// SetDate sets the date flag (for testing).
func (c *AddCmd) SetDate(date string) { c.date = date }

// SetBucket sets the bucket flag (for testing).
func (c *AddCmd) SetBucket(bucket string) { c.bucket = bucket }

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskflow add [--bucket work|personal] [--date YYYY-MM-DD] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
	fs.StringVar(&c.bucket, "bucket", "", "")
	fs.StringVar(&c.bucket, "b", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	title := emoji.Replace(strings.Join(args, " "))

	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	bucket, err := parseBucket(c.bucket)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := st.Tasks.Load(ctx); err != nil {
		return fail(errOut, err)
	}
	if _, err := st.Tasks.Add(ctx, title, bucket, day); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		used := len(st.Tasks.OnDay(day))
		fmt.Fprintln(out, "ok")
		if free := policy.SlotsAvailable(used); free <= 2 {
			fmt.Fprintf(out, "%d of %d slots left on %s\n", free, policy.DayLimit, day)
		}
	}
	return exitcode.Success
}
