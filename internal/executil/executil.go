package executil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
)

// Command is a single external process invocation.
type Command struct {
	Name string
	Args []string
	// Env is appended to the inherited environment.
	Env map[string]string
	Dir string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + ShellQuoteArgs(c.Args)
}

type Runner interface {
	// Run streams the process output to the configured writers.
	Run(ctx context.Context, cmd Command) error
	// Output captures stdout and returns it trimmed. Stderr is still streamed.
	Output(ctx context.Context, cmd Command) (string, error)
}

type CLIRunner struct {
	streams lib.Streams
	dryRun  bool
}

func NewCLIRunner(streams lib.Streams, dryRun bool) *CLIRunner {
	return &CLIRunner{streams: streams, dryRun: dryRun}
}

func (r *CLIRunner) Run(ctx context.Context, cmd Command) error {
	if r.dryRun {
		r.printDryRun(cmd)
		return nil
	}

	command := r.command(ctx, cmd)
	command.Stdin = r.streams.In
	command.Stdout = r.streams.Out

	slog.DebugContext(ctx, "running external command", "cmd", cmd.String(), "dir", cmd.Dir)

	if err := command.Run(); err != nil {
		return wrapRunError(cmd, err)
	}
	return nil
}

func (r *CLIRunner) Output(ctx context.Context, cmd Command) (string, error) {
	if r.dryRun {
		r.printDryRun(cmd)
		return "", nil
	}

	var stdout bytes.Buffer
	command := r.command(ctx, cmd)
	command.Stdout = &stdout

	slog.DebugContext(ctx, "capturing external command output", "cmd", cmd.String(), "dir", cmd.Dir)

	if err := command.Run(); err != nil {
		return "", wrapRunError(cmd, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (r *CLIRunner) command(ctx context.Context, cmd Command) *exec.Cmd {
	command := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	command.Dir = cmd.Dir
	command.Stderr = r.streams.Err
	command.Env = os.Environ()
	for k, v := range cmd.Env {
		command.Env = append(command.Env, k+"="+v)
	}
	return command
}

func (r *CLIRunner) printDryRun(cmd Command) {
	if cmd.Dir != "" {
		fmt.Fprintf(r.streams.Out, "[DRY RUN in %s] %s\n", cmd.Dir, cmd)
		return
	}
	fmt.Fprintf(r.streams.Out, "[DRY RUN] %s\n", cmd)
}

func wrapRunError(cmd Command, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s exited with code %d: %w", cmd.Name, exitErr.ExitCode(), err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s canceled: %w", cmd.Name, err)
	}
	return fmt.Errorf("running %s: %w", cmd.Name, err)
}

// ExitCode returns the exit status of a failed external command wrapped in err, or fallback.
func ExitCode(err error, fallback int) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return fallback
}

// ShellQuoteArgs returns a printable, shell-safe representation of args.
func ShellQuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'`$\\*?[]{}()<>|&;") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}
