package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"taskflow/internal/cli"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/localcache"
	"taskflow/internal/session"
	"taskflow/internal/store"
	"taskflow/internal/testutil"
)

// remoteFactory builds stores backed by the given FakeService for a
// signed-in session.
func remoteFactory(svc *testutil.FakeService) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (*store.Stores, error) {
		return store.New(session.Static(testutil.FakeUserID), svc, localcache.New(cfg.Dir)), nil
	}
}

// localFactory builds signed-out stores over the config directory.
func localFactory() cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (*store.Stores, error) {
		return store.New(session.Anonymous(), nil, localcache.New(cfg.Dir)), nil
	}
}

// run dispatches args with --config pointed at a temp directory.
func run(t *testing.T, factory cli.StoreFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	if len(args) > 0 {
		args = append([]string{args[0], "--config", t.TempDir()}, args[1:]...)
	}
	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, localFactory(), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, localFactory(), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsRunsList(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, localFactory())

	var outBuf, errBuf bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d: %s", exitcode.Success, code, errBuf.String())
	}
	if !strings.Contains(outBuf.String(), "slots used") {
		t.Errorf("expected the day view, got %q", outBuf.String())
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, localFactory(), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskflow 0.1.0\n" {
		t.Errorf("expected 'taskflow 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_Alias(t *testing.T) {
	svc := testutil.NewFakeService()
	stdout, stderr, code := run(t, remoteFactory(svc), "ls", "--date", "2024-03-01")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "2024-03-01") {
		t.Errorf("expected day view for the flag date, got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, localFactory(), "version", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsValue(t *testing.T) {
	_, stderr, code := run(t, localFactory(), "list", "--date")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "flag needs an argument") {
		t.Errorf("expected flag error, got %q", stderr)
	}
}

func TestDispatcher_AuthGate(t *testing.T) {
	tests := []string{"note", "notes", "rmnote", "promote", "sync"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, stderr, code := run(t, localFactory(), name)

			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
			}
			expected := "error: not logged in (run: taskflow login)\n"
			if stderr != expected {
				t.Errorf("expected %q, got %q", expected, stderr)
			}
		})
	}
}

func TestDispatcher_TaskCommandsRunSignedOut(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, localFactory())
	dir := t.TempDir()

	var outBuf, errBuf bytes.Buffer
	code := dispatcher.Run(context.Background(),
		[]string{"add", "--config", dir, "--date", "2024-03-01", "Buy", "milk"}, &outBuf, &errBuf)
	if code != exitcode.Success {
		t.Fatalf("add: expected exit code %d, got %d: %s", exitcode.Success, code, errBuf.String())
	}

	outBuf.Reset()
	code = dispatcher.Run(context.Background(),
		[]string{"list", "--config", dir, "--date", "2024-03-01"}, &outBuf, &errBuf)
	if code != exitcode.Success {
		t.Fatalf("list: expected exit code %d, got %d: %s", exitcode.Success, code, errBuf.String())
	}
	if !strings.Contains(outBuf.String(), "Buy milk") {
		t.Errorf("expected the added task in the day view, got %q", outBuf.String())
	}
}

func TestDispatcher_QuietFlag(t *testing.T) {
	stdout, _, code := run(t, localFactory(), "add", "--quiet", "--date", "2024-03-01", "Buy", "milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("quiet mode should print nothing, got %q", stdout)
	}
}
