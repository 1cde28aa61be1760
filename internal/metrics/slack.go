package metrics

import "github.com/san-kum/dynvec/internal/workload"

// Slack is the mean fraction of allocated slots left unused across a run.
// A vector that never holds more than it needs scores 0.
type Slack struct {
	name    string
	total   float64
	samples int
}

func NewSlack() *Slack {
	return &Slack{name: "slack"}
}

func (s *Slack) Name() string {
	return s.name
}

func (s *Slack) Observe(snap workload.Snapshot) {
	s.samples++
	if snap.Cap == 0 {
		return
	}
	s.total += float64(snap.Cap-snap.Len) / float64(snap.Cap)
}

func (s *Slack) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Slack) Reset() {
	s.total = 0
	s.samples = 0
}
