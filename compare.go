package pqscreen

import (
	"errors"
	"fmt"
	"sort"

	"github.com/synaptecltd/pqscreen/gridsource"
	"github.com/synaptecltd/pqscreen/ieee519"
	"github.com/synaptecltd/pqscreen/mitigation"
	"github.com/synaptecltd/pqscreen/spectrum"
)

// CompareOptions describes one scenario comparison: the operating point,
// the PCC strength, and the scenario space to explore.
type CompareOptions struct {
	LoadPU          float64 // operating load fraction, (0, 1]
	ILAmps          float64 // maximum-demand fundamental current at the PCC
	VLLVolts        float64 // line-to-line service voltage
	ShortCircuitMVA float64 // utility short-circuit apparent power at the PCC

	// Topologies and Filters span the scenario space. Empty slices mean
	// the full catalogs. The None filter never produces an extra
	// scenario: the unmitigated case is always included per topology.
	Topologies []spectrum.Preset
	Filters    []mitigation.Filter

	// FilterOverrides restricts which filters apply to a topology,
	// replacing the global filter list for that topology.
	FilterOverrides map[spectrum.Preset][]mitigation.Filter

	VoltageLimitPercent float64 // THDv limit, percent
	ImpedanceExponent   float64 // source impedance frequency scaling exponent
}

func (o CompareOptions) validate() error {
	if o.LoadPU <= 0 || o.LoadPU > 1 {
		return fmt.Errorf("load fraction must be in (0, 1], got %g", o.LoadPU)
	}
	if o.ILAmps <= 0 {
		return errors.New("IL must be > 0 A")
	}
	if o.VLLVolts <= 0 {
		return errors.New("line-to-line voltage must be > 0")
	}
	if o.ShortCircuitMVA <= 0 {
		return errors.New("short-circuit MVA must be > 0")
	}
	if o.VoltageLimitPercent <= 0 {
		return errors.New("voltage distortion limit must be > 0 %")
	}
	return nil
}

// CompareScenarios forms the cross-product of topologies and mitigation
// filters, evaluates every combination against the current limit table
// and the voltage distortion estimate, and returns the scenarios in
// ranked order. Index 0 is the recommendation.
func CompareScenarios(opts CompareOptions) ([]ScenarioResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	topologies := opts.Topologies
	if len(topologies) == 0 {
		topologies = spectrum.AllPresets()
	}
	filters := opts.Filters
	if len(filters) == 0 {
		filters = mitigation.AllFilters()
	}

	ratio, err := gridsource.RatioFromMVA(opts.VLLVolts, opts.ShortCircuitMVA, opts.ILAmps)
	if err != nil {
		return nil, err
	}
	iscAmps := ratio * opts.ILAmps

	model, err := gridsource.NewModel(opts.VLLVolts, opts.ShortCircuitMVA, opts.ImpedanceExponent)
	if err != nil {
		return nil, err
	}
	v1 := gridsource.VLNFromVLL(opts.VLLVolts)

	var results []ScenarioResult
	for _, topology := range topologies {
		profile, err := topology.Profile()
		if err != nil {
			return nil, err
		}
		base := profile.Harmonics.LoadAdjusted(opts.LoadPU, spectrum.RectifierLike)

		// The unmitigated scenario is always evaluated.
		s, err := evaluateScenario(profile.Name+" (no filter)", topology, mitigation.None, base, opts, iscAmps, model, v1)
		if err != nil {
			return nil, err
		}
		results = append(results, *s)

		applicable := filters
		if override, ok := opts.FilterOverrides[topology]; ok {
			applicable = override
		}
		for _, filter := range applicable {
			if filter == mitigation.None {
				continue
			}
			attenuated := filter.Apply(base)
			s, err := evaluateScenario(profile.Name+" + "+filter.String(), topology, filter, attenuated, opts, iscAmps, model, v1)
			if err != nil {
				return nil, err
			}
			results = append(results, *s)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return ranksBefore(&results[i], &results[j])
	})
	return results, nil
}

func evaluateScenario(name string, topology spectrum.Preset, filter mitigation.Filter,
	s spectrum.Spectrum, opts CompareOptions, iscAmps float64,
	model gridsource.Model, v1Volts float64) (*ScenarioResult, error) {

	current, err := ieee519.Evaluate(s, opts.ILAmps, iscAmps)
	if err != nil {
		return nil, err
	}
	voltage, err := gridsource.EstimateDistortion(s, opts.ILAmps, v1Volts, model, opts.VoltageLimitPercent)
	if err != nil {
		return nil, err
	}

	major, minor := splitMajorMinor(current)
	thdPU := s.THD(spectrum.MaxOrder)

	return &ScenarioResult{
		Name:            name,
		Topology:        topology,
		Filter:          filter,
		Spectrum:        s,
		THDIPercent:     thdPU * 100.0,
		IrmsOverI1:      spectrum.RMSInflation(thdPU),
		HeatingProxy:    s.HeatingProxy(spectrum.MaxOrder),
		Current:         current,
		Voltage:         voltage,
		MajorViolations: major,
		MinorViolations: minor,
		SeverityScore:   severityScore(current),
		StrictPass:      current.TDDPass && len(current.WorstViolations) == 0,
		PracticalPass:   current.TDDPass && len(major) == 0,
	}, nil
}
