package progress

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// SpinnerProgressReporter implements progress reporting with a spinner on stderr
type SpinnerProgressReporter struct {
	spinner *spinner.Spinner
	stages  []stageInfo
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.HideCursor = false

	return &SpinnerProgressReporter{spinner: s}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.recordStage(event.Stage)

	if event.Spinner {
		suffix := " " + r.suffix(event.Message)
		r.spinner.Lock()
		r.spinner.Suffix = suffix
		r.spinner.Unlock()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerProgressReporter) recordStage(stage usecase.ExecutionStage) {
	if stage == "" {
		return
	}
	now := time.Now()
	if n := len(r.stages); n > 0 {
		if r.stages[n-1].Stage == stage {
			return
		}
		r.stages[n-1].EndTime = now
	}
	r.stages = append(r.stages, stageInfo{Stage: stage, StartTime: now})
}

// suffix renders the current stage with the elapsed time of the previous one
func (r *SpinnerProgressReporter) suffix(message string) string {
	n := len(r.stages)
	if n == 0 {
		return message
	}

	current := color.New(color.FgYellow).Sprint(string(r.stages[n-1].Stage))
	if n == 1 {
		return fmt.Sprintf("%s %s", current, message)
	}

	previous := r.stages[n-2]
	done := color.New(color.FgGreen).Sprintf("✓ %s (%s)", previous.Stage, previous.EndTime.Sub(previous.StartTime).Round(time.Millisecond))
	return fmt.Sprintf("%s → %s %s", done, current, message)
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
