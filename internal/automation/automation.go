package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynvec/internal/config"
	"github.com/san-kum/dynvec/internal/experiment"
	"github.com/san-kum/dynvec/internal/storage"
	"github.com/san-kum/dynvec/internal/workload"
)

// Scenario defines a scripted sequence of workload runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Omitted fields fall back to
// the preset when one is named, then to config defaults. Ops, capacity and
// seed are pointers because zero is a valid explicit value for each.
type ScenarioStep struct {
	Workload        string  `yaml:"workload"`
	Preset          string  `yaml:"preset"`
	Ops             *int    `yaml:"ops"`
	InitialCapacity *int    `yaml:"initial_capacity"`
	GrowthFactor    float64 `yaml:"growth_factor"`
	Seed            *int64  `yaml:"seed"`
	Save            bool    `yaml:"save"`
}

// StepResult is the outcome of one scenario step. RunID is empty unless the
// step was saved.
type StepResult struct {
	Step   int
	Config config.Config
	RunID  string
	Result *workload.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}

	return &scenario, nil
}

// resolve merges a step over its preset and the defaults.
func (s ScenarioStep) resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		p := config.GetPreset(s.Workload, s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %s for workload %s", s.Preset, s.Workload)
		}
		c := *p
		cfg = &c
	}
	cfg.Workload = s.Workload
	if s.Ops != nil {
		cfg.Ops = *s.Ops
	}
	if s.InitialCapacity != nil {
		cfg.InitialCapacity = *s.InitialCapacity
	}
	if s.GrowthFactor != 0 {
		cfg.GrowthFactor = s.GrowthFactor
	}
	if s.Seed != nil {
		cfg.Seed = *s.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario, saving the ones marked save
// into st. Progress goes to out. st may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Fprintf(out, "running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Workload)

		cfg, err := step.resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		gen, err := registry.GetWorkload(cfg.Workload)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(experiment.Config{
			Workload:        cfg.Workload,
			Ops:             cfg.Ops,
			InitialCapacity: cfg.InitialCapacity,
			GrowthFactor:    cfg.GrowthFactor,
			Seed:            cfg.Seed,
			RecordTrace:     cfg.RecordTrace,
		})
		if err := exp.Setup(gen, registry.DefaultMetrics()); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Config: *cfg, Result: result}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			sr.RunID, err = st.Save(storage.RunMetadata{
				Workload:        cfg.Workload,
				Seed:            cfg.Seed,
				InitialCapacity: cfg.InitialCapacity,
				GrowthFactor:    cfg.GrowthFactor,
			}, result)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

// SeedTrialsConfig runs one workload under many seeds.
type SeedTrialsConfig struct {
	Workload        string
	Ops             int
	InitialCapacity int
	GrowthFactor    float64
	NumTrials       int
	Seed            int64
}

// SeedTrial holds the outcome of a single seed.
type SeedTrial struct {
	TrialID int
	Seed    int64
	Metrics map[string]float64
	Errors  int
}

// RunSeedTrials executes cfg.NumTrials runs with consecutive seeds starting
// at cfg.Seed.
func RunSeedTrials(ctx context.Context, cfg *SeedTrialsConfig, registry *experiment.Registry) ([]SeedTrial, error) {
	results := make([]SeedTrial, 0, cfg.NumTrials)

	gen, err := registry.GetWorkload(cfg.Workload)
	if err != nil {
		return nil, err
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		seed := cfg.Seed + int64(trial)
		exp := experiment.New(experiment.Config{
			Workload:        cfg.Workload,
			Ops:             cfg.Ops,
			InitialCapacity: cfg.InitialCapacity,
			GrowthFactor:    cfg.GrowthFactor,
			Seed:            seed,
		})
		if err := exp.Setup(gen, registry.DefaultMetrics()); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SeedTrial{
			TrialID: trial,
			Seed:    seed,
			Metrics: result.Metrics,
			Errors:  len(result.Errors),
		})
	}

	return results, nil
}

// Summary is the spread of one metric across trials.
type Summary struct {
	Min, Max, Mean float64
}

// Summarize reduces the named metric over trials.
func Summarize(trials []SeedTrial, metric string) Summary {
	if len(trials) == 0 {
		return Summary{}
	}
	s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, t := range trials {
		v := t.Metrics[metric]
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		s.Mean += v
	}
	s.Mean /= float64(len(trials))
	return s
}
