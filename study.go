package pqscreen

import (
	"github.com/google/uuid"

	"github.com/synaptecltd/pqscreen/gridsource"
)

// StudyResult bundles everything one screening study produces: the sized
// demand current, the ranked scenario list, and any sweep tables. The
// calling layer serializes this packet; the core only assembles it.
type StudyResult struct {
	ID uuid.UUID

	ILAmps        float64 // maximum-demand fundamental current at the PCC
	OperatingAmps float64 // fundamental current at the operating load fraction
	Ratio         float64 // Isc/IL at the configured grid strength

	// Scenarios in ranked order; index 0 is the recommendation.
	Scenarios []ScenarioResult

	Sweep         []SweepPoint
	TippingPoints []TippingPoint
}

// Best returns the recommended scenario.
func (r *StudyResult) Best() *ScenarioResult {
	return &r.Scenarios[0]
}

// RunStudy sizes the PCC demand current from the load description, runs
// the scenario comparison, and, when enabled, the grid-strength sweep and
// tipping-point searches. Each call is tagged with a fresh run id; the
// computation itself is deterministic for identical configuration.
func RunStudy(cfg StudyConfig) (*StudyResult, error) {
	pcc := cfg.PCC()
	il, err := pcc.DemandCurrent()
	if err != nil {
		return nil, err
	}
	operating, err := pcc.OperatingCurrent(cfg.Load.LoadPU)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.CompareOptions(il)
	if err != nil {
		return nil, err
	}
	scenarios, err := CompareScenarios(opts)
	if err != nil {
		return nil, err
	}
	ratio, err := gridsource.RatioFromMVA(cfg.Site.VLLVolts, cfg.Grid.ShortCircuitMVA, il)
	if err != nil {
		return nil, err
	}

	result := &StudyResult{
		ID:            uuid.New(),
		ILAmps:        il,
		OperatingAmps: operating,
		Ratio:         ratio,
		Scenarios:     scenarios,
	}

	if cfg.Sweep.Enabled && len(cfg.Sweep.Points) > 0 {
		sweep, err := SweepGridStrength(opts, cfg.Sweep.Points)
		if err != nil {
			return nil, err
		}
		result.Sweep = sweep
	}
	if cfg.Sweep.Enabled && len(cfg.Sweep.TippingGrid) > 0 {
		for _, name := range cfg.Sweep.TippingScenarios {
			tp, err := FindTippingPoint(opts, name, cfg.Sweep.TippingGrid)
			if err != nil {
				return nil, err
			}
			result.TippingPoints = append(result.TippingPoints, tp)
		}
	}

	return result, nil
}
