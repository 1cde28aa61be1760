package experiment

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/dynvec/internal/workload"
)

// Sweep runs one workload under several growth factors concurrently. Every
// run replays the same op script because they share a seed.
type Sweep struct {
	base    Config
	gen     Generator
	metrics func() []workload.Metric
}

// NewSweep builds a sweep around base. metrics is called once per run so
// runs never share metric state.
func NewSweep(base Config, gen Generator, metrics func() []workload.Metric) *Sweep {
	return &Sweep{base: base, gen: gen, metrics: metrics}
}

// Run returns one result per factor, in the order given. The first failing
// run's error is returned.
func (s *Sweep) Run(ctx context.Context, factors []float64) ([]*workload.Result, error) {
	results := make([]*workload.Result, len(factors))
	errs := make([]error, len(factors))

	var wg sync.WaitGroup
	for i, f := range factors {
		wg.Add(1)
		go func(idx int, factor float64) {
			defer wg.Done()

			cfg := s.base
			cfg.GrowthFactor = factor

			var ms []workload.Metric
			if s.metrics != nil {
				ms = s.metrics()
			}

			exp := New(cfg)
			if err := exp.Setup(s.gen, ms); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i, f)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("growth %.2f: %w", factors[i], err)
		}
	}

	return results, nil
}
