package experiment

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/slices"

	"github.com/san-kum/dynvec/internal/metrics"
	"github.com/san-kum/dynvec/internal/workload"
)

// Generator builds a workload of roughly n ops.
type Generator func(n int, rng *rand.Rand) []workload.Op

type Registry struct {
	workloads    map[string]Generator
	descriptions map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		workloads:    make(map[string]Generator),
		descriptions: make(map[string]string),
	}

	r.Register("append", "push n values", appendOnly)
	r.Register("emplace", "emplace n values in place", emplaceOnly)
	r.Register("stack", "push/pop with a slow upward drift", stackLike)
	r.Register("churn", "fill, clear, refill", churn)
	r.Register("resize", "grow and shrink through resize", resizeSteps)
	r.Register("assign", "repeated assign of growing counts", assignSteps)
	r.Register("random", "uniform mix of every op", randomMix)

	return r
}

func (r *Registry) Register(name, description string, gen Generator) {
	r.workloads[name] = gen
	r.descriptions[name] = description
}

func (r *Registry) GetWorkload(name string) (Generator, error) {
	gen, ok := r.workloads[name]
	if !ok {
		return nil, fmt.Errorf("unknown workload: %s", name)
	}
	return gen, nil
}

func (r *Registry) Describe(name string) string {
	return r.descriptions[name]
}

// ListWorkloads returns the registered names in sorted order.
func (r *Registry) ListWorkloads() []string {
	names := make([]string, 0, len(r.workloads))
	for name := range r.workloads {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) DefaultMetrics() []workload.Metric {
	return metrics.Defaults()
}

func appendOnly(n int, rng *rand.Rand) []workload.Op {
	ops := make([]workload.Op, n)
	for i := range ops {
		ops[i] = workload.Op{Kind: workload.OpPush, Value: rng.Intn(1000)}
	}
	return ops
}

func emplaceOnly(n int, rng *rand.Rand) []workload.Op {
	ops := make([]workload.Op, n)
	for i := range ops {
		ops[i] = workload.Op{Kind: workload.OpEmplace, Value: rng.Intn(1000)}
	}
	return ops
}

func stackLike(n int, rng *rand.Rand) []workload.Op {
	ops := make([]workload.Op, 0, n)
	depth := 0
	for len(ops) < n {
		// pushes win 60% of the time so the stack slowly deepens
		if depth == 0 || rng.Float64() < 0.6 {
			ops = append(ops, workload.Op{Kind: workload.OpPush, Value: rng.Intn(1000)})
			depth++
		} else {
			ops = append(ops, workload.Op{Kind: workload.OpPop})
			depth--
		}
	}
	return ops
}

func churn(n int, rng *rand.Rand) []workload.Op {
	ops := make([]workload.Op, 0, n)
	batch := max(n/8, 1)
	for len(ops) < n {
		for i := 0; i < batch && len(ops) < n; i++ {
			ops = append(ops, workload.Op{Kind: workload.OpPush, Value: rng.Intn(1000)})
		}
		if len(ops) < n {
			ops = append(ops, workload.Op{Kind: workload.OpClear})
		}
	}
	return ops
}

func resizeSteps(n int, rng *rand.Rand) []workload.Op {
	ops := make([]workload.Op, n)
	size := 0
	for i := range ops {
		if rng.Float64() < 0.7 {
			size += rng.Intn(16) + 1
		} else {
			size = rng.Intn(size + 1)
		}
		ops[i] = workload.Op{Kind: workload.OpResize, Count: size, Value: i}
	}
	return ops
}

func assignSteps(n int, rng *rand.Rand) []workload.Op {
	ops := make([]workload.Op, n)
	for i := range ops {
		ops[i] = workload.Op{Kind: workload.OpAssign, Count: i + 1, Value: rng.Intn(1000)}
	}
	return ops
}

func randomMix(n int, rng *rand.Rand) []workload.Op {
	kinds := []workload.OpKind{
		workload.OpPush, workload.OpPush, workload.OpPush, workload.OpEmplace,
		workload.OpPop, workload.OpAt, workload.OpSet, workload.OpSwap,
		workload.OpResize, workload.OpReserve, workload.OpClear,
	}
	ops := make([]workload.Op, n)
	for i := range ops {
		kind := kinds[rng.Intn(len(kinds))]
		op := workload.Op{Kind: kind, Value: rng.Intn(1000)}
		switch kind {
		case workload.OpAt, workload.OpSet:
			op.Index = rng.Intn(64)
		case workload.OpSwap:
			op.Index, op.Other = rng.Intn(64), rng.Intn(64)
		case workload.OpResize:
			op.Count = rng.Intn(64)
		case workload.OpReserve:
			op.Count = rng.Intn(256)
		}
		ops[i] = op
	}
	return ops
}
