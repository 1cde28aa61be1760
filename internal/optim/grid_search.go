package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/dynvec/internal/experiment"
)

// Parameter names understood by ExperimentFor.
const (
	ParamGrowth   = "growth"
	ParamCapacity = "capacity"
)

var ErrNoTrials = errors.New("optim: no trial completed")

// BuildFunc turns one point of the grid into a ready experiment.
type BuildFunc func(params map[string]float64) (*experiment.Experiment, error)

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Score  float64
	Err    error
}

// GridSearch evaluates every combination of parameter values and keeps the
// one scoring lowest on a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search returns the best trial and every trial sorted by score. Trials whose
// build or run failed are kept with Err set and sort last.
func (g *GridSearch) Search(ctx context.Context, build BuildFunc, metricName string) (*Trial, []Trial, error) {
	var trials []Trial
	if err := g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &trials); err != nil {
		return nil, trials, err
	}

	sort.SliceStable(trials, func(i, j int) bool {
		return trials[i].Score < trials[j].Score
	})

	if len(trials) == 0 || trials[0].Err != nil {
		return nil, trials, ErrNoTrials
	}
	best := trials[0]
	return &best, trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build BuildFunc,
	metricName string,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		trial := Trial{Params: current, Score: math.Inf(1)}

		exp, err := build(current)
		if err != nil {
			trial.Err = err
			*trials = append(*trials, trial)
			return nil
		}

		result, err := exp.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			trial.Err = err
			*trials = append(*trials, trial)
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: run reported no metric %q", metricName)
		}
		trial.Score = val
		*trials = append(*trials, trial)
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, build, metricName, trials); err != nil {
			return err
		}
	}
	return nil
}

// ExperimentFor returns a BuildFunc that overrides base's growth factor and
// initial capacity from the grid point.
func ExperimentFor(base experiment.Config, gen experiment.Generator, registry *experiment.Registry) BuildFunc {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := base
		if g, ok := params[ParamGrowth]; ok {
			cfg.GrowthFactor = g
		}
		if c, ok := params[ParamCapacity]; ok {
			cfg.InitialCapacity = int(c)
		}
		exp := experiment.New(cfg)
		if err := exp.Setup(gen, registry.DefaultMetrics()); err != nil {
			return nil, err
		}
		return exp, nil
	}
}
