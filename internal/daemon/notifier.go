package daemon

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/nnduc/blogpub/internal/logfields"
	"github.com/nnduc/blogpub/internal/pipeline"
)

// Notifier publishes a run-completed event to NATS after each publish run.
// It is optional; daemons without a configured NATS URL run without one.
type Notifier struct {
	conn    *nats.Conn
	subject string
}

// runEvent is the JSON payload published per run.
type runEvent struct {
	RunID       string `json:"run_id"`
	Outcome     string `json:"outcome"`
	FailedStage string `json:"failed_stage,omitempty"`
	HeadCommit  string `json:"head_commit,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
}

// NewNotifier connects to the NATS server at url.
func NewNotifier(url, subject string) (*Notifier, error) {
	conn, err := nats.Connect(url, nats.Name("blogpub"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	slog.Info("NATS notifier connected", logfields.URL(url), slog.String("subject", subject))
	return &Notifier{conn: conn, subject: subject}, nil
}

// NotifyRun publishes the outcome of one publish run. Failures are logged,
// not propagated: notification is best effort and never affects the run.
func (n *Notifier) NotifyRun(report *pipeline.Report) {
	if n == nil {
		return
	}
	payload, err := json.Marshal(runEvent{
		RunID:       report.RunID,
		Outcome:     report.Outcome,
		FailedStage: string(report.FailedStage),
		HeadCommit:  report.HeadCommit,
		DurationMS:  report.Duration().Milliseconds(),
	})
	if err != nil {
		slog.Warn("Failed to encode run event", logfields.Error(err))
		return
	}
	if err := n.conn.Publish(n.subject, payload); err != nil {
		slog.Warn("Failed to publish run event", logfields.Error(err))
	}
}

// Close drains and closes the NATS connection.
func (n *Notifier) Close() {
	if n == nil {
		return
	}
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
	}
}
