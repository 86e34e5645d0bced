package generator

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestCommandRunnerCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX sh")
	}

	r := NewCommandRunner(
		[]string{"sh", "-c", "echo built; echo warn >&2"},
		[]string{"sh", "-c", "echo deployed"},
		t.TempDir(), false)

	res, err := r.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("expected exit 0, got %d", res.ExitCode)
	}
	if strings.TrimSpace(res.Stdout) != "built" {
		t.Errorf("stdout not captured: %q", res.Stdout)
	}
	if strings.TrimSpace(res.Stderr) != "warn" {
		t.Errorf("stderr not captured: %q", res.Stderr)
	}

	res, err = r.Deploy(context.Background())
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "deployed" {
		t.Errorf("deploy stdout not captured: %q", res.Stdout)
	}
}

func TestCommandRunnerPropagatesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX sh")
	}

	r := NewCommandRunner([]string{"sh", "-c", "echo broken >&2; exit 3"}, nil, t.TempDir(), false)

	res, err := r.Build(context.Background())
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if res.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "broken") {
		t.Errorf("stderr should carry the diagnostic, got %q", res.Stderr)
	}
}

func TestCommandRunnerMissingProgram(t *testing.T) {
	r := NewCommandRunner([]string{"definitely-not-a-real-program-xyz"}, nil, t.TempDir(), false)
	res, err := r.Build(context.Background())
	if err == nil {
		t.Fatal("expected start failure")
	}
	if res.ExitCode != -1 {
		t.Errorf("start failure should report exit code -1, got %d", res.ExitCode)
	}
}

func TestCommandRunnerEmptyCommand(t *testing.T) {
	r := NewCommandRunner(nil, nil, t.TempDir(), false)
	if _, err := r.Build(context.Background()); err == nil {
		t.Fatal("empty command must error")
	}
}
