package automation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/dynvec/internal/experiment"
	"github.com/san-kum/dynvec/internal/storage"
)

const scenarioYAML = `name: growth-tour
description: append then stack
steps:
  - workload: append
    ops: 300
    growth_factor: 1.5
    save: true
  - workload: stack
    preset: shallow
  - workload: churn
    ops: 200
    initial_capacity: 4
    seed: 9
  - workload: append
    ops: 50
    initial_capacity: 0
    seed: 0
`

func ptr[T any](v T) *T { return &v }

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "growth-tour" {
		t.Errorf("expected name growth-tour, got %s", sc.Name)
	}
	want := []ScenarioStep{
		{Workload: "append", Ops: ptr(300), GrowthFactor: 1.5, Save: true},
		{Workload: "stack", Preset: "shallow"},
		{Workload: "churn", Ops: ptr(200), InitialCapacity: ptr(4), Seed: ptr[int64](9)},
		{Workload: "append", Ops: ptr(50), InitialCapacity: ptr(0), Seed: ptr[int64](0)},
	}
	if diff := cmp.Diff(want, sc.Steps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadScenarioEmpty(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), st, io.Discard)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 step results, got %d", len(results))
	}

	if results[0].RunID == "" {
		t.Error("expected first step to be saved")
	}
	if results[1].RunID != "" || results[2].RunID != "" || results[3].RunID != "" {
		t.Error("expected only the first step to be saved")
	}
	if results[0].Config.GrowthFactor != 1.5 {
		t.Errorf("expected growth 1.5, got %v", results[0].Config.GrowthFactor)
	}
	if results[1].Config.Ops != 1000 || results[1].Config.Seed != 7 {
		t.Errorf("expected shallow preset values, got ops=%d seed=%d", results[1].Config.Ops, results[1].Config.Seed)
	}
	if results[2].Config.InitialCapacity != 4 || results[2].Config.Seed != 9 {
		t.Errorf("expected step overrides, got cap=%d seed=%d", results[2].Config.InitialCapacity, results[2].Config.Seed)
	}

	if results[3].Config.InitialCapacity != 0 || results[3].Config.Seed != 0 {
		t.Errorf("expected explicit zero capacity and seed, got cap=%d seed=%d", results[3].Config.InitialCapacity, results[3].Config.Seed)
	}
	if results[3].Result.Stats.Reallocations == 0 {
		t.Error("expected a vector with no initial storage to reallocate")
	}

	meta, err := st.Load(results[0].RunID)
	if err != nil {
		t.Fatalf("load saved run: %v", err)
	}
	if meta.Ops != 300 {
		t.Errorf("expected 300 saved ops, got %d", meta.Ops)
	}
}

func TestRunScenarioBadStep(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Workload: "append", Ops: ptr(10)},
		{Workload: "stack", Preset: "nope"},
	}}
	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), nil, io.Discard)
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
	if len(results) != 1 {
		t.Errorf("expected the first step to complete, got %d results", len(results))
	}
}

func TestRunScenarioSaveWithoutStore(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Workload: "append", Ops: ptr(10), Save: true}}}
	if _, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), nil, io.Discard); err == nil {
		t.Error("expected error saving without a store")
	}
}

func TestRunSeedTrials(t *testing.T) {
	trials, err := RunSeedTrials(context.Background(), &SeedTrialsConfig{
		Workload:        "random",
		Ops:             500,
		InitialCapacity: 4,
		GrowthFactor:    2,
		NumTrials:       5,
		Seed:            100,
	}, experiment.NewRegistry())
	if err != nil {
		t.Fatalf("trials failed: %v", err)
	}
	if len(trials) != 5 {
		t.Fatalf("expected 5 trials, got %d", len(trials))
	}
	for i, tr := range trials {
		if tr.Seed != 100+int64(i) {
			t.Errorf("trial %d: expected seed %d, got %d", i, 100+i, tr.Seed)
		}
	}

	s := Summarize(trials, "peak_capacity")
	if s.Min > s.Mean || s.Mean > s.Max {
		t.Errorf("summary out of order: %+v", s)
	}
	if s.Min <= 0 {
		t.Errorf("expected positive peak capacity, got %v", s.Min)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil, "slack"); s != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
}
