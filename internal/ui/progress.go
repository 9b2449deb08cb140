package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
)

const barWidth = 40

// Bar is a single-line progress indicator ("Publishing |████░░| 40% | 4/10 products | ETA: 3s").
// It is safe for concurrent Increment calls.
type Bar struct {
	mu      sync.Mutex
	out     io.Writer
	model   progress.Model
	label   string
	unit    string
	total   int
	current int
	started time.Time
	now     func() time.Time
}

// NewBar creates a bar that renders to out. label prefixes the line and unit names the
// counted items.
func NewBar(out io.Writer, label, unit string) *Bar {
	m := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	return &Bar{out: out, model: m, label: label, unit: unit, now: time.Now}
}

// Start resets the bar. A total of 0 means unknown; the total then follows the count.
func (b *Bar) Start(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total = total
	b.current = 0
	b.started = b.now()
	b.render()
}

// Increment advances the bar by n items.
func (b *Bar) Increment(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current += n
	b.render()
}

// SetTotal changes the expected item count.
func (b *Bar) SetTotal(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total = total
	b.render()
}

// Stop ends the bar's line.
func (b *Bar) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.out)
}

// Current returns the number of items counted so far.
func (b *Bar) Current() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Bar) render() {
	total := b.total
	if total < b.current {
		total = b.current
	}
	ratio := 0.0
	if total > 0 {
		ratio = float64(b.current) / float64(total)
	}

	eta := "-"
	if b.current > 0 && total > b.current {
		elapsed := b.now().Sub(b.started)
		remaining := time.Duration(float64(elapsed) / float64(b.current) * float64(total-b.current))
		eta = fmt.Sprintf("%ds", int(remaining.Round(time.Second).Seconds()))
	} else if total > 0 && b.current >= total {
		eta = "0s"
	}

	fmt.Fprintf(b.out, "\r%s |%s| %3.0f%% | %d/%d %s | ETA: %s",
		b.label, b.model.ViewAs(ratio), ratio*100, b.current, total, b.unit, eta)
}
