package generator

import (
	"context"
	"fmt"
)

// FakeRunner is a Runner for tests. Each call is recorded in Calls; the
// configured errors are returned in order of invocation.
type FakeRunner struct {
	BuildErr  error
	DeployErr error
	OnBuild   func(ctx context.Context) // optional hook, runs before returning
	OnDeploy  func(ctx context.Context)

	Calls []string
}

var _ Runner = (*FakeRunner)(nil)

func (f *FakeRunner) Build(ctx context.Context) (*Result, error) {
	f.Calls = append(f.Calls, "build")
	if f.OnBuild != nil {
		f.OnBuild(ctx)
	}
	if f.BuildErr != nil {
		return &Result{Command: "fake build", ExitCode: 1, Stderr: f.BuildErr.Error()}, fmt.Errorf("fake build: %w", f.BuildErr)
	}
	return &Result{Command: "fake build"}, nil
}

func (f *FakeRunner) Deploy(ctx context.Context) (*Result, error) {
	f.Calls = append(f.Calls, "deploy")
	if f.OnDeploy != nil {
		f.OnDeploy(ctx)
	}
	if f.DeployErr != nil {
		return &Result{Command: "fake deploy", ExitCode: 1, Stderr: f.DeployErr.Error()}, fmt.Errorf("fake deploy: %w", f.DeployErr)
	}
	return &Result{Command: "fake deploy"}, nil
}
