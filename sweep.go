package pqscreen

import (
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/synaptecltd/pqscreen/gridsource"
)

// SweepPoint is the outcome of one grid-strength point in a sweep: the
// Isc/IL ratio at that strength and the top-ranked scenario.
type SweepPoint struct {
	ShortCircuitMVA float64
	Ratio           float64
	Best            ScenarioResult
}

// SweepGridStrength evaluates the full comparison at each short-circuit
// MVA point and reports the best scenario per point. Points are
// independent, so they are evaluated concurrently; results are returned
// in input order.
func SweepGridStrength(opts CompareOptions, points []float64) ([]SweepPoint, error) {
	if len(points) == 0 {
		return nil, errors.New("sweep requires at least one grid strength point")
	}

	out := make([]SweepPoint, len(points))
	var g errgroup.Group
	for i, mva := range points {
		i, mva := i, mva
		g.Go(func() error {
			pointOpts := opts
			pointOpts.ShortCircuitMVA = mva
			results, err := CompareScenarios(pointOpts)
			if err != nil {
				return err
			}
			ratio, err := gridsource.RatioFromMVA(opts.VLLVolts, mva, opts.ILAmps)
			if err != nil {
				return err
			}
			out[i] = SweepPoint{ShortCircuitMVA: mva, Ratio: ratio, Best: results[0]}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// TippingPoint is the smallest grid strength at which a named scenario
// first satisfies each compliance criterion. A zero value with the found
// flag false means the criterion never passed within the tested grid.
type TippingPoint struct {
	Scenario string

	// Voltage criterion: THDv within limit.
	VoltageMVA   float64
	VoltageFound bool

	// Current criterion: practical pass (TDD pass and no major violations).
	CurrentMVA   float64
	CurrentFound bool
}

// FindTippingPoint scans an ascending grid of short-circuit MVA values
// and records the first strength at which the named scenario passes the
// voltage criterion and the first at which it passes the practical
// current criterion. Scenario names are matched exactly first, then by
// prefix.
func FindTippingPoint(opts CompareOptions, scenarioName string, grid []float64) (TippingPoint, error) {
	if len(grid) == 0 {
		return TippingPoint{}, errors.New("tipping point search requires a grid of strengths")
	}

	tp := TippingPoint{Scenario: scenarioName}
	for _, mva := range grid {
		pointOpts := opts
		pointOpts.ShortCircuitMVA = mva
		results, err := CompareScenarios(pointOpts)
		if err != nil {
			return TippingPoint{}, err
		}

		row, err := findScenario(results, scenarioName)
		if err != nil {
			return TippingPoint{}, err
		}

		if !tp.VoltageFound && row.Voltage.Pass {
			tp.VoltageMVA = mva
			tp.VoltageFound = true
		}
		if !tp.CurrentFound && row.PracticalPass {
			tp.CurrentMVA = mva
			tp.CurrentFound = true
		}
		if tp.VoltageFound && tp.CurrentFound {
			break
		}
	}
	return tp, nil
}

func findScenario(results []ScenarioResult, name string) (*ScenarioResult, error) {
	for i := range results {
		if results[i].Name == name {
			return &results[i], nil
		}
	}
	for i := range results {
		if strings.HasPrefix(results[i].Name, name) {
			return &results[i], nil
		}
	}
	return nil, errors.New("scenario " + name + " not found in comparison results")
}
