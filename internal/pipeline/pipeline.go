// Package pipeline orchestrates the publish sequence: clear the staging
// directory, shallow-clone the publishing branch into it, clear its
// contents again, run the generator's build, then its deploy.
//
// The sequence is strictly linear. Any stage failure moves the run to a
// terminal failed state; there is no retry, no rollback, and no
// partial-success reporting.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nnduc/blogpub/internal/config"
	pubErrors "github.com/nnduc/blogpub/internal/errors"
	"github.com/nnduc/blogpub/internal/generator"
	"github.com/nnduc/blogpub/internal/gitops"
	"github.com/nnduc/blogpub/internal/logfields"
	"github.com/nnduc/blogpub/internal/metrics"
)

// Stager owns the staging directory lifecycle. Satisfied by staging.Manager.
type Stager interface {
	Path() string
	Clear() error
	ClearContents() error
}

// Cloner clones the publishing branch into the staging directory.
// Satisfied by gitops.Client.
type Cloner interface {
	CloneBranch(ctx context.Context, remoteURL, branch string, depth int, dir string) error
	HeadCommit(dir string) (string, error)
}

// Pipeline wires the collaborators of one publish run.
type Pipeline struct {
	cfg      config.DeployConfig
	stager   Stager
	cloner   Cloner
	runner   generator.Runner
	recorder metrics.Recorder
	lock     *Lock
}

// Option configures optional pipeline collaborators.
type Option func(*Pipeline)

// WithRecorder attaches a metrics recorder (default: noop).
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithLock attaches a lock-file guard around the whole run.
func WithLock(l *Lock) Option {
	return func(p *Pipeline) { p.lock = l }
}

// New creates a publish pipeline.
func New(deploy config.DeployConfig, stager Stager, cloner Cloner, runner generator.Runner, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      deploy,
		stager:   stager,
		cloner:   cloner,
		runner:   runner,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// stageDef binds a stage name to its state and implementation.
type stageDef struct {
	name  StageName
	state State
	fn    func(ctx context.Context) error
}

func (p *Pipeline) stages() []stageDef {
	return []stageDef{
		{StageCleanStaging, StateCleaning, p.cleanStaging},
		{StageClone, StateCloning, p.clone},
		{StageCleanContents, StateCleaning2, p.cleanContents},
		{StageGenerate, StateGenerating, p.generate},
		{StageDeploy, StateDeploying, p.deployStage},
	}
}

// Run executes the full publish sequence and returns the run report. The
// report is returned for failed runs too, with Outcome and FailedStage set.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		State:     StateIdle,
	}

	if p.lock != nil {
		if err := p.lock.Acquire(); err != nil {
			report.State = StateFailed
			report.Outcome = "failed"
			report.FinishedAt = time.Now()
			return report, pubErrors.Wrap(err, pubErrors.CategoryRuntime, pubErrors.SeverityFatal, "publish lock held")
		}
		defer func() {
			if err := p.lock.Release(); err != nil {
				slog.Warn("Failed to release publish lock", logfields.Error(err))
			}
		}()
	}

	slog.Info("Starting publish run",
		logfields.RunID(report.RunID),
		logfields.URL(p.cfg.RemoteURL),
		logfields.Branch(p.cfg.Branch),
		logfields.Path(p.stager.Path()))

	err := p.runStages(ctx, report)
	report.FinishedAt = time.Now()
	p.recorder.ObservePublishDuration(report.Duration())

	if err != nil {
		report.State = StateFailed
		if ctx.Err() != nil {
			report.Outcome = "canceled"
		} else {
			report.Outcome = "failed"
		}
		p.recorder.IncPublishOutcome(report.Outcome)
		slog.Error("Publish run failed",
			logfields.RunID(report.RunID),
			logfields.Stage(string(report.FailedStage)),
			logfields.Error(err))
		return report, err
	}

	report.State = StateDone
	report.Outcome = "success"
	p.recorder.IncPublishOutcome(report.Outcome)
	slog.Info("Publish run complete",
		logfields.RunID(report.RunID),
		logfields.DurationMS(float64(report.Duration().Milliseconds())))
	return report, nil
}

func (p *Pipeline) runStages(ctx context.Context, report *Report) error {
	for _, st := range p.stages() {
		select {
		case <-ctx.Done():
			report.FailedStage = st.name
			report.Stages = append(report.Stages, StageResult{
				Name: st.name, Result: string(metrics.ResultCanceled), Error: ctx.Err().Error(),
			})
			p.recorder.IncStageResult(string(st.name), metrics.ResultCanceled)
			return pubErrors.Wrap(ctx.Err(), pubErrors.CategoryRuntime, pubErrors.SeverityFatal, "publish canceled")
		default:
		}

		report.State = st.state
		slog.Debug("Stage starting", logfields.RunID(report.RunID), logfields.Stage(string(st.name)))

		t0 := time.Now()
		err := st.fn(ctx)
		dur := time.Since(t0)
		p.recorder.ObserveStageDuration(string(st.name), dur)

		sr := StageResult{Name: st.name, Duration: dur}
		if err != nil {
			sr.Result = string(metrics.ResultFatal)
			sr.Error = err.Error()
			report.FailedStage = st.name
			report.Stages = append(report.Stages, sr)
			p.recorder.IncStageResult(string(st.name), metrics.ResultFatal)
			return err
		}

		sr.Result = string(metrics.ResultSuccess)
		report.Stages = append(report.Stages, sr)
		p.recorder.IncStageResult(string(st.name), metrics.ResultSuccess)
		slog.Debug("Stage complete",
			logfields.RunID(report.RunID),
			logfields.Stage(string(st.name)),
			logfields.DurationMS(float64(dur.Milliseconds())))

		if st.name == StageClone {
			if head, herr := p.cloner.HeadCommit(p.stager.Path()); herr == nil {
				report.HeadCommit = head
			}
		}
	}
	return nil
}

// cleanStaging removes any previous staging directory so stale generated
// output never leaks into a new deployment. "Already absent" is success.
// Removal failure aborts the run unless ignore_clean_failure is set.
func (p *Pipeline) cleanStaging(ctx context.Context) error {
	if err := p.stager.Clear(); err != nil {
		if p.cfg.IgnoreCleanFailure {
			slog.Warn("Ignoring staging cleanup failure", logfields.Error(err))
			return nil
		}
		return pubErrors.StagingError("clear", err)
	}
	return nil
}

func (p *Pipeline) clone(ctx context.Context) error {
	err := p.cloner.CloneBranch(ctx, p.cfg.RemoteURL, p.cfg.Branch, p.cfg.CloneDepth, p.stager.Path())
	if err != nil {
		var authErr *gitops.AuthError
		if errors.As(err, &authErr) {
			return pubErrors.GitAuthError(p.cfg.RemoteURL, err)
		}
		return pubErrors.GitCloneError(p.cfg.RemoteURL, err)
	}
	return nil
}

func (p *Pipeline) cleanContents(ctx context.Context) error {
	if err := p.stager.ClearContents(); err != nil {
		return pubErrors.StagingError("clear_contents", err)
	}
	return nil
}

func (p *Pipeline) generate(ctx context.Context) error {
	res, err := p.runner.Build(ctx)
	if err != nil {
		return generatorFailure("build", res, err)
	}
	return nil
}

func (p *Pipeline) deployStage(ctx context.Context) error {
	res, err := p.runner.Deploy(ctx)
	if err != nil {
		return generatorFailure("deploy", res, err)
	}
	return nil
}

func generatorFailure(step string, res *generator.Result, err error) error {
	pe := pubErrors.GeneratorError(step, err)
	if res != nil {
		pe = pe.WithContext("exit_code", res.ExitCode)
		if res.Stderr != "" {
			pe = pe.WithContext("stderr", truncate(res.Stderr, 2000))
		}
	}
	return pe
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s... (%d bytes truncated)", s[:n], len(s)-n)
}
