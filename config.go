package pqscreen

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/synaptecltd/pqscreen/mitigation"
	"github.com/synaptecltd/pqscreen/spectrum"
)

// StudyConfig is the decodable description of one screening study. The
// orchestration layer parses its structured-text configuration into this
// shape; preset and filter names are validated against the catalogs
// during decoding.
type StudyConfig struct {
	Site      SiteConfig    `yaml:"site" mapstructure:"site"`
	Load      LoadConfig    `yaml:"load" mapstructure:"load"`
	Grid      GridConfig    `yaml:"grid" mapstructure:"grid"`
	Limits    LimitsConfig  `yaml:"limits" mapstructure:"limits"`
	Scenarios ScenarioSpace `yaml:"scenarios" mapstructure:"scenarios"`
	Sweep     SweepConfig   `yaml:"sweep" mapstructure:"sweep"`
}

type SiteConfig struct {
	VLLVolts    float64 `yaml:"vll_v" mapstructure:"vll_v"`
	FrequencyHz float64 `yaml:"frequency_hz" mapstructure:"frequency_hz"`
}

type LoadConfig struct {
	DemandKW       float64 `yaml:"demand_kw" mapstructure:"demand_kw"`
	LoadPU         float64 `yaml:"load_pu" mapstructure:"load_pu"`
	DisplacementPF float64 `yaml:"pf_displacement" mapstructure:"pf_displacement"`
	Efficiency     float64 `yaml:"efficiency" mapstructure:"efficiency"`
	DemandIsOutput bool    `yaml:"kw_is_output" mapstructure:"kw_is_output"`
}

type GridConfig struct {
	ShortCircuitMVA   float64 `yaml:"sc_mva" mapstructure:"sc_mva"`
	ImpedanceExponent float64 `yaml:"z_exp" mapstructure:"z_exp"`
}

type LimitsConfig struct {
	THDvLimitPercent float64 `yaml:"thdv_limit_pct" mapstructure:"thdv_limit_pct"`
}

// ScenarioSpace spans the topologies and filters to compare. Override
// entries are keyed by topology catalog key and replace the global
// filter list for that topology.
type ScenarioSpace struct {
	Topologies []spectrum.Preset              `yaml:"topologies" mapstructure:"topologies"`
	Filters    []mitigation.Filter            `yaml:"filters" mapstructure:"filters"`
	Overrides  map[string][]mitigation.Filter `yaml:"per_topology_filters" mapstructure:"per_topology_filters"`
}

type SweepConfig struct {
	Enabled bool      `yaml:"enabled" mapstructure:"enabled"`
	Points  []float64 `yaml:"points" mapstructure:"points"`

	TippingGrid      []float64 `yaml:"tipping_grid" mapstructure:"tipping_grid"`
	TippingScenarios []string  `yaml:"tipping_scenarios" mapstructure:"tipping_scenarios"`
}

// DefaultStudyConfig returns a fully populated study configuration with
// the conventional screening defaults. Callers overwrite fields before
// running the study.
func DefaultStudyConfig() StudyConfig {
	return StudyConfig{
		Site: SiteConfig{VLLVolts: 415.0, FrequencyHz: 60.0},
		Load: LoadConfig{
			DemandKW:       1000.0,
			LoadPU:         0.60,
			DisplacementPF: 0.99,
			Efficiency:     0.96,
			DemandIsOutput: true,
		},
		Grid:   GridConfig{ShortCircuitMVA: 50.0, ImpedanceExponent: 1.0},
		Limits: LimitsConfig{THDvLimitPercent: 5.0},
		Scenarios: ScenarioSpace{
			Topologies: spectrum.AllPresets(),
			Filters:    mitigation.AllFilters(),
			Overrides: map[string][]mitigation.Filter{
				spectrum.AFELowHarmonic.String(): {mitigation.None},
			},
		},
		Sweep: SweepConfig{
			Enabled: true,
			Points:  []float64{20.0, 35.0, 50.0, 75.0, 100.0, 150.0, 250.0, 500.0},
			TippingGrid: []float64{
				10, 15, 20, 25, 30, 35, 40, 50, 60, 75, 100, 150, 250, 500,
			},
			TippingScenarios: []string{
				"AFE (low low-order harmonics) (no filter)",
				"6-pulse (typical) + active_filter_like",
			},
		},
	}
}

// DecodeStudyConfig builds a StudyConfig from a generic map, such as the
// output of a yaml or viper unmarshal. Preset and filter names are parsed
// into their catalog types through decode hooks, so unknown keys fail
// here rather than deep inside a comparison.
func DecodeStudyConfig(raw map[string]interface{}) (*StudyConfig, error) {
	cfg := DefaultStudyConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			spectrum.PresetDecodeHook(),
			mitigation.FilterDecodeHook(),
		),
		Result: &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CompareOptions converts the study configuration into engine options.
// IL must already be derived from the load description, see PCCInputs.
func (c StudyConfig) CompareOptions(ilAmps float64) (CompareOptions, error) {
	overrides := make(map[spectrum.Preset][]mitigation.Filter, len(c.Scenarios.Overrides))
	for key, filters := range c.Scenarios.Overrides {
		preset, err := spectrum.ParsePreset(key)
		if err != nil {
			return CompareOptions{}, fmt.Errorf("per-topology filter override: %w", err)
		}
		overrides[preset] = filters
	}

	return CompareOptions{
		LoadPU:              c.Load.LoadPU,
		ILAmps:              ilAmps,
		VLLVolts:            c.Site.VLLVolts,
		ShortCircuitMVA:     c.Grid.ShortCircuitMVA,
		Topologies:          c.Scenarios.Topologies,
		Filters:             c.Scenarios.Filters,
		FilterOverrides:     overrides,
		VoltageLimitPercent: c.Limits.THDvLimitPercent,
		ImpedanceExponent:   c.Grid.ImpedanceExponent,
	}, nil
}

// PCC returns the point of common coupling description for the study.
func (c StudyConfig) PCC() PCCInputs {
	return PCCInputs{
		VLLVolts:       c.Site.VLLVolts,
		DemandKW:       c.Load.DemandKW,
		DisplacementPF: c.Load.DisplacementPF,
		Efficiency:     c.Load.Efficiency,
		DemandIsOutput: c.Load.DemandIsOutput,
	}
}
