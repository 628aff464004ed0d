// Package linear provides a synchronous, line-oriented renderer for build phases.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/unbundle/internal/ui/output"
	"go.trai.ch/unbundle/internal/ui/style"
)

// Renderer implements ports.Renderer for terminals and CI logs.
// Each phase prints one line when it starts and one when it finishes,
// indented by its depth in the span tree.
type Renderer struct {
	out *termenv.Output

	mu     sync.Mutex
	phases map[string]*phaseState // spanID -> phase
}

type phaseState struct {
	name      string
	depth     int
	startTime time.Time
}

// NewRenderer creates a Renderer writing to w. If w is nil, os.Stderr is used.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	return &Renderer{
		out:    output.NewPlain(w),
		phases: make(map[string]*phaseState),
	}
}

// Start is a no-op; the renderer writes synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop reports phases that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	open := make([]string, 0, len(r.phases))
	for id := range r.phases {
		open = append(open, id)
	}
	slices.SortFunc(open, func(a, b string) int {
		return r.phases[a].startTime.Compare(r.phases[b].startTime)
	})
	for _, id := range open {
		p := r.phases[id]
		symbol := r.out.String(style.Warning).Foreground(termenv.RGBColor(string(style.Yellow))).String()
		r.printLocked(p.depth, fmt.Sprintf("%s %s interrupted", symbol, p.name))
	}
	clear(r.phases)
	return nil
}

// OnPhaseStart prints a phase start line.
func (r *Renderer) OnPhaseStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	depth := 0
	if parent, ok := r.phases[parentID]; ok {
		depth = parent.depth + 1
	}
	r.phases[spanID] = &phaseState{name: name, depth: depth, startTime: startTime}

	symbol := r.out.String(style.Dot).Foreground(termenv.RGBColor(string(style.Indigo))).String()
	label := r.out.String(name + "...").Faint().String()
	r.printLocked(depth, symbol+" "+label)
}

// OnPhaseComplete prints the phase outcome and its duration.
func (r *Renderer) OnPhaseComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.phases[spanID]
	if !ok {
		return
	}
	delete(r.phases, spanID)

	duration := endTime.Sub(p.startTime).Round(time.Millisecond)
	if err != nil {
		symbol := r.out.String(style.Cross).Foreground(termenv.RGBColor(string(style.Red))).String()
		r.printLocked(p.depth, fmt.Sprintf("%s %s failed after %v: %v", symbol, p.name, duration, err))
		return
	}
	symbol := r.out.String(style.Check).Foreground(termenv.RGBColor(string(style.Green))).String()
	r.printLocked(p.depth, fmt.Sprintf("%s %s (%v)", symbol, p.name, duration))
}

// printLocked writes one indented line. Callers hold mu.
func (r *Renderer) printLocked(depth int, line string) {
	_, _ = fmt.Fprintf(r.out, "%s%s\n", strings.Repeat("  ", depth), line)
}
