package output

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/hashcompare/pkg/models"
)

const barTemplate = `{{string . "label"}} {{bar . "[" "=" ">" " " "]"}} {{percent .}} {{counters .}}`

// ProgressBars shows one bar per input, fed by progress snapshots
type ProgressBars struct {
	one  *pb.ProgressBar
	two  *pb.ProgressBar
	pool *pb.Pool
	mu   sync.Mutex
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewProgressBars creates the two bars without rendering them
func NewProgressBars(labelOne, labelTwo string) *ProgressBars {
	return &ProgressBars{
		one: newBar(labelOne),
		two: newBar(labelTwo),
	}
}

func newBar(label string) *pb.ProgressBar {
	bar := pb.New64(0)
	bar.SetTemplateString(barTemplate)
	bar.Set("label", label)
	bar.Set(pb.Bytes, true)
	return bar
}

// Start renders the bars to w, which must be a terminal
func (p *ProgressBars) Start(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pool := pb.NewPool(p.one, p.two)
	pool.Output = w
	if err := pool.Start(); err != nil {
		return err
	}
	p.pool = pool
	return nil
}

// Observe updates the bars from a snapshot; it is usable as a progress observer
func (p *ProgressBars) Observe(s models.ProgressSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	update(p.one, s.One)
	update(p.two, s.Two)
}

func update(bar *pb.ProgressBar, side models.SideProgress) {
	if side.Known {
		bar.SetTotal(side.ExpectedTotal)
	}
	current := side.BytesProcessed
	if side.Known && current > side.ExpectedTotal {
		current = side.ExpectedTotal
	}
	bar.SetCurrent(current)
}

// Stop finishes both bars and restores the terminal
func (p *ProgressBars) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.one.Finish()
	p.two.Finish()
	if p.pool == nil {
		return nil
	}
	err := p.pool.Stop()
	p.pool = nil
	return err
}
