package pipeline

import "time"

// State names the position of a run in the publish state machine.
type State string

const (
	StateIdle       State = "idle"
	StateCleaning   State = "cleaning"
	StateCloning    State = "cloning"
	StateCleaning2  State = "cleaning_contents"
	StateGenerating State = "generating"
	StateDeploying  State = "deploying"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// StageName identifies one of the five pipeline stages.
type StageName string

const (
	StageCleanStaging  StageName = "clean_staging"
	StageClone         StageName = "clone"
	StageCleanContents StageName = "clean_contents"
	StageGenerate      StageName = "generate"
	StageDeploy        StageName = "deploy"
)

// StageResult records the outcome of a single executed stage.
type StageResult struct {
	Name     StageName     `json:"name"`
	Result   string        `json:"result"` // success|fatal|skipped|canceled
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Report collects the observable outcome of one publish run. There is no
// partial-success notion: the run either reaches Done or stops at the
// first failing stage.
type Report struct {
	RunID       string        `json:"run_id"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`
	State       State         `json:"state"`
	Outcome     string        `json:"outcome"` // success|failed|canceled
	FailedStage StageName     `json:"failed_stage,omitempty"`
	Stages      []StageResult `json:"stages"`
	HeadCommit  string        `json:"head_commit,omitempty"`
}

// Duration returns the total wall-clock time of the run.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// StageTrace returns the executed stage names in order. Tests use this to
// assert that no stage ever runs out of order.
func (r *Report) StageTrace() []StageName {
	out := make([]StageName, 0, len(r.Stages))
	for _, s := range r.Stages {
		out = append(out, s.Name)
	}
	return out
}
