package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/datekey"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/store"
)

func init() {
	Register(&CalCmd{})
}

// CalCmd implements the cal command: a monthly calendar with per-day task
// counts.
type CalCmd struct{}

func (c *CalCmd) Name() string      { return "cal" }
func (c *CalCmd) Aliases() []string { return []string{"calendar"} }
func (c *CalCmd) Synopsis() string  { return "Show a month of tasks" }
func (c *CalCmd) Usage() string     { return "taskflow cal [YYYY-MM|+N|-N]" }
func (c *CalCmd) NeedsAuth() bool   { return false }

func (c *CalCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CalCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	today := datekey.Today()
	month := datekey.MonthOf(today)
	if len(args) > 1 {
		fmt.Fprintln(errOut, "error: at most one month argument")
		return exitcode.UserError
	}
	if len(args) == 1 {
		arg := args[0]
		if strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-") {
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintf(errOut, "error: invalid month offset %q (want +N or -N)\n", arg)
				return exitcode.UserError
			}
			month = month.Add(n)
		} else {
			m, err := datekey.ParseMonth(arg)
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.UserError
			}
			month = m
		}
	}

	if err := st.Tasks.Load(ctx); err != nil {
		return fail(errOut, err)
	}

	counts := make(map[datekey.Key]int)
	for _, t := range st.Tasks.List() {
		counts[datekey.Key(t.Date)]++
	}

	output.FormatCalendar(out, month, counts, today)
	return exitcode.Success
}
