package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
)

// projectLabelWidth is the cell width reserved for the current project name
// so the single-line display does not jitter as names change.
const projectLabelWidth = 24

// StateReader is the read surface the monitor polls. build.RunState
// implements it.
type StateReader interface {
	// Progress returns a consistent snapshot: completed commands, total
	// expected commands, the failure flag, and the project being built.
	Progress() (done, total int, failed bool, project string)
}

// Monitor renders a continuously updated single-line progress display by
// polling shared run state at a fixed interval. It has no correctness
// dependency on its polling cadence: it only reads snapshots.
type Monitor struct {
	state    StateReader
	interval time.Duration
	out      io.Writer
	bar      *Bar
}

// NewMonitor creates a monitor polling state every interval and writing the
// progress line to out.
func NewMonitor(state StateReader, interval time.Duration, barWidth int, out io.Writer) *Monitor {
	return &Monitor{
		state:    state,
		interval: interval,
		out:      out,
		bar:      NewBar(barWidth),
	}
}

// Watch runs until the completed count reaches the total or the failure flag
// is set, rendering on every poll. A final render and newline always close
// the display, so the line never hangs mid-update on completion or failure.
// Watch returns early on context cancellation.
func (m *Monitor) Watch(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		done, total, failed, project := m.state.Progress()
		m.render(done, total, project)
		if failed || done >= total {
			break
		}

		select {
		case <-ctx.Done():
			m.finalize()
			return
		case <-ticker.C:
		}
	}

	m.finalize()
}

// render redraws the progress line in place.
func (m *Monitor) render(done, total int, project string) {
	percent := 1.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}

	label := runewidth.FillRight(runewidth.Truncate(project, projectLabelWidth, "…"), projectLabelWidth)
	fmt.Fprintf(m.out, "\r%s %3d%% %d/%d %s", m.bar.Render(percent), int(percent*100), done, total, label)
}

// finalize redraws once from the latest snapshot and terminates the line.
func (m *Monitor) finalize() {
	done, total, _, project := m.state.Progress()
	m.render(done, total, project)
	fmt.Fprintln(m.out)
}
