package config

var Presets = map[string]map[string]*Config{
	"append": {
		"small": {
			Workload: "append", Ops: 100, InitialCapacity: 20, GrowthFactor: 2.0, Seed: 1, RecordTrace: true,
		},
		"large": {
			Workload: "append", Ops: 100000, InitialCapacity: 20, GrowthFactor: 2.0, Seed: 1, RecordTrace: true,
		},
		"tight": {
			Workload: "append", Ops: 10000, InitialCapacity: 1, GrowthFactor: 1.25, Seed: 1, RecordTrace: true,
		},
	},
	"stack": {
		"shallow": {
			Workload: "stack", Ops: 1000, InitialCapacity: 8, GrowthFactor: 2.0, Seed: 7, RecordTrace: true,
		},
		"deep": {
			Workload: "stack", Ops: 50000, InitialCapacity: 8, GrowthFactor: 1.5, Seed: 7, RecordTrace: true,
		},
	},
	"churn": {
		"bursty": {
			Workload: "churn", Ops: 5000, InitialCapacity: 20, GrowthFactor: 2.0, Seed: 3, RecordTrace: true,
		},
	},
	"resize": {
		"sawtooth": {
			Workload: "resize", Ops: 2000, InitialCapacity: 0, GrowthFactor: 2.0, Seed: 11, RecordTrace: true,
		},
	},
	"random": {
		"mixed": {
			Workload: "random", Ops: 5000, InitialCapacity: 20, GrowthFactor: 2.0, Seed: 42, RecordTrace: true,
		},
	},
}

func GetPreset(workload, preset string) *Config {
	workloadPresets, ok := Presets[workload]
	if !ok {
		return nil
	}
	cfg, ok := workloadPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(workload string) []string {
	workloadPresets, ok := Presets[workload]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(workloadPresets))
	for name := range workloadPresets {
		names = append(names, name)
	}
	return names
}
