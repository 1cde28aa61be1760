package metrics

import "github.com/san-kum/dynvec/internal/workload"

// AmortizedCopies reports element copies paid per appended element. It stays
// bounded for any growth factor above 1.
type AmortizedCopies struct {
	last workload.Snapshot
	seen bool
}

func NewAmortizedCopies() *AmortizedCopies {
	return &AmortizedCopies{}
}

func (a *AmortizedCopies) Name() string { return "copies_per_append" }

func (a *AmortizedCopies) Observe(snap workload.Snapshot) {
	a.last = snap
	a.seen = true
}

func (a *AmortizedCopies) Value() float64 {
	if !a.seen {
		return 0
	}
	return a.last.Stats.CopiesPerAppend()
}

func (a *AmortizedCopies) Reset() {
	a.last = workload.Snapshot{}
	a.seen = false
}

// Reallocations counts storage reallocations.
type Reallocations struct {
	count int
}

func NewReallocations() *Reallocations {
	return &Reallocations{}
}

func (r *Reallocations) Name() string { return "reallocations" }

func (r *Reallocations) Observe(snap workload.Snapshot) {
	r.count = snap.Stats.Reallocations
}

func (r *Reallocations) Value() float64 { return float64(r.count) }
func (r *Reallocations) Reset()         { r.count = 0 }

// PeakCapacity tracks the largest capacity seen.
type PeakCapacity struct {
	peak int
}

func NewPeakCapacity() *PeakCapacity {
	return &PeakCapacity{}
}

func (p *PeakCapacity) Name() string { return "peak_capacity" }

func (p *PeakCapacity) Observe(snap workload.Snapshot) {
	p.peak = max(p.peak, snap.Cap)
}

func (p *PeakCapacity) Value() float64 { return float64(p.peak) }
func (p *PeakCapacity) Reset()         { p.peak = 0 }

// Defaults returns one of each metric.
func Defaults() []workload.Metric {
	return []workload.Metric{
		NewAmortizedCopies(),
		NewReallocations(),
		NewPeakCapacity(),
		NewSlack(),
	}
}
