package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/dynvec/internal/storage"
)

// Series is one polyline of an SVG chart.
type Series struct {
	Name   string
	Values []float64
	Stroke string
}

// ChartSVG draws every series against the step axis on a shared scale.
// Series with fewer than two points are skipped.
func ChartSVG(series []Series, width, height int) string {
	points := 0
	first := true
	var minY, maxY float64
	for _, s := range series {
		points = max(points, len(s.Values))
		for _, v := range s.Values {
			if first {
				minY, maxY = v, v
				first = false
			}
			minY = min(minY, v)
			maxY = max(maxY, v)
		}
	}
	if points < 2 {
		return ""
	}

	// Add padding
	rangeX := float64(points - 1)
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, s := range series {
		if len(s.Values) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, s.Name, s.Stroke)
		for i, v := range s.Values {
			x := float64(i) / rangeX * float64(width)
			y := float64(height) - (v-minY)/rangeY*float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TraceToSVG charts capacity and length of a saved run.
func TraceToSVG(trace []storage.TracePoint, width, height int) string {
	lens := make([]float64, len(trace))
	caps := make([]float64, len(trace))
	for i, p := range trace {
		lens[i] = float64(p.Len)
		caps[i] = float64(p.Cap)
	}
	return ChartSVG([]Series{
		{Name: "capacity", Values: caps, Stroke: "#4488ff"},
		{Name: "length", Values: lens, Stroke: "#00ff88"},
	}, width, height)
}

// WriteTraceSVG loads runID from st and writes its chart to w.
func WriteTraceSVG(w io.Writer, st *storage.Store, runID string, width, height int) error {
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	svg := TraceToSVG(trace, width, height)
	if svg == "" {
		return fmt.Errorf("run %s: not enough trace points to chart", runID)
	}
	_, err = io.WriteString(w, svg)
	return err
}
