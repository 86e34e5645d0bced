// Package generator invokes the external static-site generator. The
// generator is a collaborator, never implemented here: blogpub only runs
// its build and deploy commands and interprets their exit status.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/nnduc/blogpub/internal/logfields"
)

// Result is the structured outcome of one external command invocation.
// Capturing output here keeps failure handling and test assertions free of
// ambient process state.
type Result struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner abstracts the generator's two external commands so the pipeline
// can be tested against a fake without spawning real subprocesses.
type Runner interface {
	// Build renders the content store into the staging directory.
	Build(ctx context.Context) (*Result, error)
	// Deploy commits and pushes the staged output to the publishing branch.
	Deploy(ctx context.Context) (*Result, error)
}

// CommandRunner runs the configured generator commands via os/exec.
type CommandRunner struct {
	buildCmd  []string
	deployCmd []string
	dir       string // working directory, usually the blog root
	echo      bool   // also stream output to the console
}

// NewCommandRunner creates a runner for the given argv-style commands.
func NewCommandRunner(buildCmd, deployCmd []string, dir string, echo bool) *CommandRunner {
	return &CommandRunner{buildCmd: buildCmd, deployCmd: deployCmd, dir: dir, echo: echo}
}

func (r *CommandRunner) Build(ctx context.Context) (*Result, error) {
	return r.run(ctx, r.buildCmd)
}

func (r *CommandRunner) Deploy(ctx context.Context) (*Result, error) {
	return r.run(ctx, r.deployCmd)
}

func (r *CommandRunner) run(ctx context.Context, argv []string) (*Result, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty generator command")
	}

	display := strings.Join(argv, " ")
	slog.Info("Running generator command", logfields.Command(display))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	if r.echo {
		cmd.Stdout = io.MultiWriter(&stdout, os.Stdout)
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Command:  display,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, fmt.Errorf("%s exited with status %d: %w", display, res.ExitCode, err)
		}
		res.ExitCode = -1
		return res, fmt.Errorf("%s failed to start: %w", display, err)
	}

	slog.Debug("Generator command finished",
		logfields.Command(display), logfields.DurationMS(float64(res.Duration.Milliseconds())))
	return res, nil
}
