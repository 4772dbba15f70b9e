package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/emoji"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/service"
	"taskflow/internal/store"
)

func init() {
	Register(&NoteCmd{})
	Register(&NotesCmd{})
	Register(&RmNoteCmd{})
}

// NoteCmd captures a scratchpad note.
type NoteCmd struct{}

func (c *NoteCmd) Name() string      { return "note" }
func (c *NoteCmd) Aliases() []string { return []string{"capture"} }
func (c *NoteCmd) Synopsis() string  { return "Capture a scratchpad note" }
func (c *NoteCmd) Usage() string     { return "taskflow note <text...>" }
func (c *NoteCmd) NeedsAuth() bool   { return true }

func (c *NoteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NoteCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: note text required")
		return exitcode.UserError
	}
	title := emoji.Replace(strings.Join(args, " "))

	if _, err := st.Scratchpad.Add(ctx, title); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// NotesCmd lists scratchpad notes.
type NotesCmd struct{}

func (c *NotesCmd) Name() string      { return "notes" }
func (c *NotesCmd) Aliases() []string { return nil }
func (c *NotesCmd) Synopsis() string  { return "List scratchpad notes" }
func (c *NotesCmd) Usage() string     { return "taskflow notes" }
func (c *NotesCmd) NeedsAuth() bool   { return true }

func (c *NotesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NotesCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	if err := st.Scratchpad.Load(ctx); err != nil {
		return fail(errOut, err)
	}

	items := st.Scratchpad.List()
	if len(items) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no notes")
		}
		return exitcode.Success
	}
	for i, item := range items {
		output.FormatNote(out, i+1, item)
	}
	return exitcode.Success
}

// RmNoteCmd deletes a scratchpad note.
type RmNoteCmd struct{}

func (c *RmNoteCmd) Name() string      { return "rmnote" }
func (c *RmNoteCmd) Aliases() []string { return nil }
func (c *RmNoteCmd) Synopsis() string  { return "Delete a scratchpad note" }
func (c *RmNoteCmd) Usage() string     { return "taskflow rmnote <n>" }
func (c *RmNoteCmd) NeedsAuth() bool   { return true }

func (c *RmNoteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmNoteCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	item, code := noteByNumber(ctx, st, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if _, err := st.Scratchpad.Delete(ctx, item.ID); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// noteByNumber loads the scratchpad and resolves a 1-based note number.
func noteByNumber(ctx context.Context, st *store.Stores, args []string, errOut io.Writer) (item service.ScratchpadItem, code int) {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: note number required")
		return item, exitcode.UserError
	}
	num, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid note number: %s\n", args[0])
		return item, exitcode.UserError
	}

	if err := st.Scratchpad.Load(ctx); err != nil {
		return item, fail(errOut, err)
	}
	items := st.Scratchpad.List()
	if num < 1 || num > len(items) {
		fmt.Fprintf(errOut, "error: note number out of range: %d\n", num)
		return item, exitcode.UserError
	}
	return items[num-1], exitcode.Success
}
