package experiment

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/san-kum/dynvec/internal/workload"
)

type Config struct {
	Workload        string
	Ops             int
	InitialCapacity int
	GrowthFactor    float64
	Seed            int64
	RecordTrace     bool
	Logger          *log.Logger
}

type Experiment struct {
	cfg       Config
	runner    *workload.Runner
	generator Generator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(gen Generator, metrics []workload.Metric) error {
	if gen == nil {
		return fmt.Errorf("experiment: nil workload generator")
	}
	if e.cfg.Ops < 0 {
		return fmt.Errorf("experiment: ops must be non-negative, got %d", e.cfg.Ops)
	}
	e.generator = gen
	e.runner = workload.New()
	for _, m := range metrics {
		e.runner.AddMetric(m)
	}
	return nil
}

// Ops generates the experiment's op script. The same seed always yields the
// same script.
func (e *Experiment) Ops() []workload.Op {
	rng := rand.New(rand.NewSource(e.cfg.Seed))
	return e.generator(e.cfg.Ops, rng)
}

func (e *Experiment) Run(ctx context.Context) (*workload.Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	cfg := workload.Config{
		InitialCapacity: e.cfg.InitialCapacity,
		GrowthFactor:    e.cfg.GrowthFactor,
		RecordTrace:     e.cfg.RecordTrace,
		Logger:          e.cfg.Logger,
	}

	return e.runner.Run(ctx, e.Ops(), cfg)
}

// GetRunner returns the underlying runner for adding observers
func (e *Experiment) GetRunner() *workload.Runner {
	return e.runner
}
