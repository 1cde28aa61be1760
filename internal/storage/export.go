package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run        RunMetadata `json:"run"`
	Steps      int         `json:"steps"`
	Ops        []string    `json:"ops"`
	Sizes      []int       `json:"sizes"`
	Capacities []int       `json:"capacities"`
}

// ExportJSON writes a run's metadata and full trace to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	trace, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:        *meta,
		Steps:      len(trace),
		Ops:        make([]string, len(trace)),
		Sizes:      make([]int, len(trace)),
		Capacities: make([]int, len(trace)),
	}
	for i, p := range trace {
		data.Ops[i] = p.Op
		data.Sizes[i] = p.Len
		data.Capacities[i] = p.Cap
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
