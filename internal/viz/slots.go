package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/dynvec/internal/vector"
)

const (
	liveCell  = "■"
	spareCell = "□"
)

// RenderSlots draws one cell per allocated slot, wrapping at width cells.
// Storage larger than maxCells is summarised on the last line.
func RenderSlots(length, capacity, width, maxCells int) string {
	if capacity == 0 {
		return Subtle.Render("(no storage)")
	}
	if width <= 0 {
		width = 1
	}

	shown := capacity
	if maxCells > 0 && shown > maxCells {
		shown = maxCells
	}

	var b strings.Builder
	for i := 0; i < shown; i++ {
		if i > 0 && i%width == 0 {
			b.WriteByte('\n')
		}
		if i < length {
			b.WriteString(LiveSlot.Render(liveCell))
		} else {
			b.WriteString(SpareSlot.Render(spareCell))
		}
	}
	if shown < capacity {
		b.WriteString("\n" + Subtle.Render(fmt.Sprintf("… %d more slots", capacity-shown)))
	}
	return b.String()
}

// RenderValues lists up to limit live elements front to back.
func RenderValues[T any](v *vector.Vector[T], limit int) string {
	if v.Empty() {
		return Subtle.Render("[]")
	}
	parts := make([]string, 0, min(v.Len(), limit)+1)
	for it := v.CBegin(); !it.Equal(v.CEnd()); it.Inc() {
		if len(parts) == limit {
			parts = append(parts, "…")
			break
		}
		parts = append(parts, fmt.Sprint(it.Value()))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
