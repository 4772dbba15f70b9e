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
	Register(&PromoteCmd{})
}

// PromoteCmd turns a scratchpad note into a scheduled task.
type PromoteCmd struct {
	date   string
	bucket string
}

// SetDate sets the date flag (for testing).
func (c *PromoteCmd) SetDate(date string) { c.date = date }

// SetBucket sets the bucket flag (for testing).
func (c *PromoteCmd) SetBucket(bucket string) { c.bucket = bucket }

func (c *PromoteCmd) Name() string      { return "promote" }
func (c *PromoteCmd) Aliases() []string { return nil }
func (c *PromoteCmd) Synopsis() string  { return "Turn a note into a task" }
func (c *PromoteCmd) Usage() string {
	return "taskflow promote [--bucket work|personal] [--date YYYY-MM-DD] <n>"
}
func (c *PromoteCmd) NeedsAuth() bool { return true }

func (c *PromoteCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
	fs.StringVar(&c.bucket, "bucket", "", "")
	fs.StringVar(&c.bucket, "b", "", "")
}

func (c *PromoteCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
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

	item, code := noteByNumber(ctx, st, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if err := st.Tasks.Load(ctx); err != nil {
		return fail(errOut, err)
	}

	if _, err := st.Promote(ctx, item.ID, bucket, day); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
