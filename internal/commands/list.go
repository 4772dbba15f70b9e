package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/service"
	"taskflow/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command: the day view.
type ListCmd struct {
	date   string
	bucket string
}

// SetDate sets the date flag (for testing).
func (c *ListCmd) SetDate(date string) { c.date = date }

// SetBucket sets the bucket flag (for testing).
func (c *ListCmd) SetBucket(bucket string) { c.bucket = bucket }

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Show the tasks of one day" }
func (c *ListCmd) Usage() string {
	return "taskflow list [--date YYYY-MM-DD] [--bucket all|work|personal]"
}
func (c *ListCmd) NeedsAuth() bool { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
	fs.StringVar(&c.bucket, "bucket", "all", "")
	fs.StringVar(&c.bucket, "b", "all", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if c.bucket != "all" && c.bucket != string(service.BucketWork) && c.bucket != string(service.BucketPersonal) {
		fmt.Fprintf(errOut, "error: unknown bucket %q (want all, work or personal)\n", c.bucket)
		return exitcode.UserError
	}

	if err := st.Tasks.Load(ctx); err != nil {
		return fail(errOut, err)
	}

	view := dayView(st, day)
	output.FormatDayHeader(out, day.String(), len(view))

	for _, bucket := range []service.Bucket{service.BucketWork, service.BucketPersonal} {
		if c.bucket != "all" && c.bucket != string(bucket) {
			continue
		}
		first := true
		// Numbers index into the unfiltered view so done/rm references
		// stay valid under a bucket filter.
		for i, t := range view {
			if t.Bucket != bucket {
				continue
			}
			if first {
				output.FormatBucketHeader(out, bucket)
				first = false
			}
			output.FormatTask(out, i+1, t)
		}
	}

	if len(view) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks for this day")
	}
	return exitcode.Success
}
