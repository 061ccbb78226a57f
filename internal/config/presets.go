package config

var Presets = map[string]map[string]*Config{
	"binary": {
		"short": {
			Scenario: "binary", Dt: 1e-3, TEnd: 0.1, Workers: 8, ReportEvery: 10, Partition: "balanced",
		},
		"period": {
			// One full orbit of the unit-separation binary.
			Scenario: "binary", Dt: 1e-3, TEnd: 4.45, Workers: 8, ReportEvery: 10, Partition: "balanced",
		},
		"long": {
			Scenario: "binary", Dt: 1e-3, TEnd: 50.0, Workers: 8, ReportEvery: 100, Partition: "balanced",
		},
	},
	"ring": {
		"small": {
			Scenario: "ring", Bodies: 16, Dt: 1e-3, TEnd: 10.0, Workers: 8, ReportEvery: 10, Partition: "balanced",
		},
		"large": {
			Scenario: "ring", Bodies: 256, Dt: 1e-3, TEnd: 1.0, Workers: 8, ReportEvery: 10, Partition: "balanced",
		},
		"block": {
			// Same run with the naive equal-width partition, for comparison.
			Scenario: "ring", Bodies: 64, Dt: 1e-3, TEnd: 1.0, Workers: 8, ReportEvery: 10, Partition: "block",
		},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
