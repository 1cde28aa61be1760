package workload

import (
	"context"
	"fmt"

	"github.com/san-kum/dynvec/internal/vector"
)

type Runner struct {
	metrics   []Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// NewVector builds the vector a run starts from.
func NewVector(cfg Config) *vector.Vector[int] {
	return vector.New[int](
		vector.InitialCapacity(cfg.InitialCapacity),
		vector.GrowthFactor(cfg.GrowthFactor),
	)
}

// Run applies ops to a fresh vector, feeding every metric and observer a
// snapshot after each step. Ops that fail are recorded in Result.Errors and
// the run carries on; only cancellation stops it early.
func (r *Runner) Run(ctx context.Context, ops []Op, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	log := cfg.logger()

	result := &Result{
		Ops:     ops,
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	if cfg.RecordTrace {
		result.Sizes = make([]int, 0, len(ops))
		result.Capacities = make([]int, 0, len(ops))
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	v := NewVector(cfg)
	log.Printf("running %d ops (initial capacity %d, growth %.2f)", len(ops), v.Cap(), cfg.GrowthFactor)

	for i, op := range ops {
		select {
		case <-ctx.Done():
			r.finish(result, v)
			return result, ctx.Err()
		default:
		}

		if err := Apply(v, op); err != nil {
			result.Errors = append(result.Errors, &StepError{Step: i, Op: op, Wrapped: err})
		}

		snap := Snapshot{Step: i, Op: op, Len: v.Len(), Cap: v.Cap(), Stats: v.Stats()}
		for _, m := range r.metrics {
			m.Observe(snap)
		}
		for _, obs := range r.observers {
			obs.OnStep(snap)
		}

		if cfg.RecordTrace {
			result.Sizes = append(result.Sizes, snap.Len)
			result.Capacities = append(result.Capacities, snap.Cap)
		}
		result.StepsTaken++
	}

	r.finish(result, v)
	log.Printf("done: len %d cap %d reallocations %d errors %d",
		v.Len(), v.Cap(), result.Stats.Reallocations, len(result.Errors))
	return result, nil
}

func (r *Runner) finish(result *Result, v *vector.Vector[int]) {
	result.Stats = v.Stats()
	result.Final = append([]int(nil), v.Slice()...)
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if err := vector.ValidateGrowth(cfg.GrowthFactor); err != nil {
		return fmt.Errorf("%w: %w (got %v)", ErrInvalidConfig, err, cfg.GrowthFactor)
	}
	if cfg.InitialCapacity < 0 {
		return fmt.Errorf("%w: initial capacity must be non-negative, got %d", ErrInvalidConfig, cfg.InitialCapacity)
	}
	return nil
}

// Apply performs op on v. Ops whose preconditions do not hold are refused
// with ErrPrecondition instead of reaching the vector; a failed checked
// access returns the vector's *IndexError.
func Apply(v *vector.Vector[int], op Op) error {
	switch op.Kind {
	case OpPush:
		v.PushBack(op.Value)
	case OpEmplace:
		v.EmplaceBack(func(x *int) { *x = op.Value })
	case OpPop:
		if v.Empty() {
			return fmt.Errorf("%w: pop on empty vector", ErrPrecondition)
		}
		v.PopBack()
	case OpClear:
		v.Clear()
	case OpReserve:
		v.Reserve(op.Count)
	case OpResize:
		v.ResizeWith(op.Count, op.Value)
	case OpAssign:
		v.Assign(op.Count, op.Value)
	case OpSwap:
		if !live(v, op.Index) || !live(v, op.Other) {
			return fmt.Errorf("%w: swap %d, %d with len %d", ErrPrecondition, op.Index, op.Other, v.Len())
		}
		v.Swap(op.Index, op.Other)
	case OpAt:
		if _, err := v.At(op.Index); err != nil {
			return err
		}
	case OpSet:
		p, err := v.At(op.Index)
		if err != nil {
			return err
		}
		*p = op.Value
	default:
		return fmt.Errorf("unknown op kind: %s", op.Kind)
	}
	return nil
}

func live(v *vector.Vector[int], i int) bool {
	return i >= 0 && i < v.Len()
}
