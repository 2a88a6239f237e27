//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fraccalc/internal/format"
	"github.com/agbru/fraccalc/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner,
// so batch progress can be tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerReporter implements orchestration.ProgressReporter with a spinner
// followed by a progress bar and an ETA.
type SpinnerReporter struct {
	out     io.Writer
	spinner Spinner
	started time.Time
	mu      sync.Mutex
}

// Verify that SpinnerReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = (*SpinnerReporter)(nil)

// NewSpinnerReporter returns a reporter that draws on out.
func NewSpinnerReporter(out io.Writer) *SpinnerReporter {
	return &SpinnerReporter{
		out:     out,
		spinner: newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true)),
	}
}

// Start shows the spinner with an empty bar.
func (r *SpinnerReporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = time.Now()
	r.spinner.UpdateSuffix(" " + format.FormatBatchProgress(0, total, 0, ProgressBarWidth))
	r.spinner.Start()
}

// Advance refreshes the bar. It is safe for concurrent use.
func (r *SpinnerReporter) Advance(done, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spinner.UpdateSuffix(" " + format.FormatBatchProgress(done, total, time.Since(r.started), ProgressBarWidth))
}

// Stop removes the spinner.
func (r *SpinnerReporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spinner.Stop()
}
