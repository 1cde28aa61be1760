package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/dynvec/internal/viz"
	"github.com/san-kum/dynvec/internal/workload"
)

const (
	width       = 64
	maxCells    = 64 * 8
	historyLen  = 60
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws the slot diagram of a running workload. It is a
// workload.Observer and draws at most frameRate frames per second.
type LiveRenderer struct {
	out       io.Writer
	workload  string
	frameRate int
	lastFrame time.Time
	lens      []int
	caps      []int
	frames    int
}

func NewLiveRenderer(out io.Writer, workloadName string, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		workload:  workloadName,
		frameRate: frameRate,
		lens:      make([]int, 0, historyLen),
		caps:      make([]int, 0, historyLen),
	}
}

func (r *LiveRenderer) OnStep(snap workload.Snapshot) {
	r.lens = appendHistory(r.lens, snap.Len)
	r.caps = appendHistory(r.caps, snap.Cap)

	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.render(snap)
}

// Frames reports how many frames were drawn.
func (r *LiveRenderer) Frames() int { return r.frames }

func appendHistory(h []int, v int) []int {
	if len(h) == historyLen {
		copy(h, h[1:])
		h = h[:historyLen-1]
	}
	return append(h, v)
}

func (r *LiveRenderer) render(snap workload.Snapshot) {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s  step=%d  %s\n", r.workload, snap.Step, snap.Op)
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range strings.Split(viz.RenderSlots(snap.Len, snap.Cap, width, maxCells), "\n") {
		b.WriteString("  ")
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	fmt.Fprintf(&b, "  len %s\n", viz.Sparkline(r.lens, historyLen))
	fmt.Fprintf(&b, "  cap %s\n", viz.Sparkline(r.caps, historyLen))
	fmt.Fprintf(&b, "  len=%d cap=%d reallocs=%d copies=%d\n",
		snap.Len, snap.Cap, snap.Stats.Reallocations, snap.Stats.ElementCopies)

	r.frames++
	io.WriteString(r.out, b.String())
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }
