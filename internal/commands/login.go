package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/session"
	"taskflow/internal/store"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in to TaskFlow" }
func (c *LoginCmd) Usage() string     { return "taskflow login [--email <address>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	if cfg.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in (run: taskflow logout first to switch accounts)")
		}
		return exitcode.Success
	}

	reader := bufio.NewReader(os.Stdin)

	email := strings.TrimSpace(c.email)
	if email == "" {
		fmt.Fprint(errOut, "email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read email: %v\n", err)
			return exitcode.AuthError
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	password, err := readPassword(reader, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
		return exitcode.AuthError
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	if _, err := session.Login(ctx, cfg, email, password); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
		if tasks, err := st.Cache.Tasks(); err == nil {
			local := 0
			for _, t := range tasks {
				if t.UserID == session.LocalOwner {
					local++
				}
			}
			if local > 0 {
				fmt.Fprintf(out, "%d local tasks on this device; run 'taskflow sync' to migrate them\n", local)
			}
		}
	}
	return exitcode.Success
}

// readPassword reads the password without echo when stdin is a terminal,
// falling back to a plain line read for piped input.
func readPassword(reader *bufio.Reader, errOut io.Writer) (string, error) {
	fmt.Fprint(errOut, "password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(errOut)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
