package viz

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/dynvec/internal/vector"
	"github.com/san-kum/dynvec/internal/workload"
)

const historyLen = 48

// Playground is a Bubble Tea model that applies single ops to a live vector
// and redraws its storage after each key press.
type Playground struct {
	vec     *vector.Vector[int]
	undo    *vector.Vector[int]
	canUndo bool
	next    int
	lens    []int
	caps    []int
	last    string
	err     error
	width   int
	quit    bool
}

var errNothingToUndo = errors.New("nothing to undo")

func NewPlayground(cfg workload.Config) Playground {
	v := workload.NewVector(cfg)
	return Playground{
		vec:   v,
		undo:  vector.WithCapacity[int](0),
		next:  1,
		lens:  []int{v.Len()},
		caps:  []int{v.Cap()},
		width: 80,
	}
}

// Vector exposes the vector being driven.
func (m Playground) Vector() *vector.Vector[int] { return m.vec }

// Err returns the error produced by the last key press, if any.
func (m Playground) Err() error { return m.err }

func (m Playground) Init() tea.Cmd { return nil }

func (m Playground) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Playground) handleKey(msg tea.KeyMsg) (Playground, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quit = true
		return m, tea.Quit
	case "u":
		if !m.canUndo {
			m.last, m.err = "undo", errNothingToUndo
			return m, nil
		}
		m.vec.MoveFrom(m.undo)
		m.canUndo = false
		m.last, m.err = "undo", nil
		m.record()
		return m, nil
	}

	op, ok := m.opFor(key)
	if !ok {
		return m, nil
	}

	// refused ops leave the vector untouched and keep the previous undo point
	snap := vector.WithCapacity[int](0)
	snap.CopyFrom(m.vec)
	m.err = workload.Apply(m.vec, op)
	m.last = op.String()
	if m.err != nil {
		return m, nil
	}

	m.undo, m.canUndo = snap, true
	if op.Kind == workload.OpPush || op.Kind == workload.OpEmplace || op.Kind == workload.OpAssign || op.Kind == workload.OpResize {
		m.next++
	}
	m.record()
	return m, nil
}

func (m Playground) opFor(key string) (workload.Op, bool) {
	n := m.vec.Len()
	switch key {
	case "p":
		return workload.Op{Kind: workload.OpPush, Value: m.next}, true
	case "e":
		return workload.Op{Kind: workload.OpEmplace, Value: m.next}, true
	case "x":
		return workload.Op{Kind: workload.OpPop}, true
	case "c":
		return workload.Op{Kind: workload.OpClear}, true
	case "r":
		return workload.Op{Kind: workload.OpReserve, Count: max(m.vec.Cap()*2, 1)}, true
	case "s":
		return workload.Op{Kind: workload.OpSwap, Index: 0, Other: n - 1}, true
	case "g":
		return workload.Op{Kind: workload.OpResize, Count: n + 5, Value: m.next}, true
	case "z":
		return workload.Op{Kind: workload.OpResize, Count: n / 2}, true
	case "a":
		return workload.Op{Kind: workload.OpAssign, Count: 3, Value: m.next}, true
	case "i":
		return workload.Op{Kind: workload.OpAt, Index: n}, true
	}
	return workload.Op{}, false
}

func (m *Playground) record() {
	m.lens = append(m.lens, m.vec.Len())
	m.caps = append(m.caps, m.vec.Cap())
	if len(m.lens) > historyLen {
		m.lens = m.lens[1:]
		m.caps = m.caps[1:]
	}
}

func (m Playground) View() string {
	if m.quit {
		return ""
	}
	inner := max(m.width-6, 10)
	st := m.vec.Stats()

	var b strings.Builder
	b.WriteString(Title.Render("dynvec playground") + "\n\n")
	b.WriteString(RenderSlots(m.vec.Len(), m.vec.Cap(), inner, inner*8) + "\n\n")
	b.WriteString(RenderValues(m.vec, 24) + "\n\n")

	b.WriteString(strings.Join([]string{
		Metric("len", fmt.Sprint(m.vec.Len())),
		Metric("cap", fmt.Sprint(m.vec.Cap())),
		Metric("reallocs", fmt.Sprint(st.Reallocations)),
		Metric("copies/append", fmt.Sprintf("%.2f", st.CopiesPerAppend())),
	}, "  ") + "\n")
	b.WriteString(MetricLabel.Render("len ") + Sparkline(m.lens, historyLen) + "\n")
	b.WriteString(MetricLabel.Render("cap ") + Sparkline(m.caps, historyLen) + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(ErrorText.Render(m.last+": "+m.err.Error()) + "\n")
	case m.last != "":
		b.WriteString(Subtle.Render("last: "+m.last) + "\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString(KeyHint.Render("p push  e emplace  x pop  c clear  r reserve  s swap  g grow  z shrink  a assign  i at  u undo  q quit"))
	return Panel.Render(b.String())
}

// RunPlayground starts the interactive playground.
func RunPlayground(cfg workload.Config) error {
	p := tea.NewProgram(NewPlayground(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
