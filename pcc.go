// Package pqscreen screens nonlinear UPS loads for harmonic compliance at
// the point of common coupling. It composes the preset spectrum model,
// the limit evaluator, the voltage distortion estimator, and the
// mitigation library into a deterministic, ranked scenario comparison.
package pqscreen

import (
	"errors"
	"fmt"
)

const sqrt3 = 1.7320508075688772

// PCCInputs describes the point of common coupling as planners know it:
// service voltage, demand power, displacement power factor, and
// conversion efficiency. Demand limits are referenced to IL, the
// maximum-demand fundamental current derived from these values.
type PCCInputs struct {
	VLLVolts       float64 // line-to-line service voltage
	DemandKW       float64 // kW at the maximum demand point
	DisplacementPF float64 // displacement PF at fundamental, (0, 1]
	Efficiency     float64 // conversion efficiency at that demand point, (0, 1]
	Phases         int     // 0 means 3; only 3 is supported

	// DemandIsOutput marks DemandKW as IT/output power, to be converted
	// to input power at the PCC using Efficiency. When false DemandKW is
	// already input power.
	DemandIsOutput bool
}

func (p PCCInputs) validate() error {
	if p.VLLVolts <= 0 {
		return errors.New("line-to-line voltage must be > 0")
	}
	if p.DisplacementPF <= 0 || p.DisplacementPF > 1 {
		return errors.New("displacement power factor must be in (0, 1]")
	}
	if p.Efficiency <= 0 || p.Efficiency > 1 {
		return errors.New("efficiency must be in (0, 1]")
	}
	if p.Phases != 0 && p.Phases != 3 {
		return fmt.Errorf("only 3-phase systems are supported, got %d phases", p.Phases)
	}
	return nil
}

// FundamentalCurrent returns the balanced three-phase fundamental RMS
// line current I1 = P / (sqrt(3) * VLL * PF) with P in watts. This is a
// fundamental-only estimate; harmonic heating is ignored.
func FundamentalCurrent(vllVolts, kw, pf float64) (float64, error) {
	if vllVolts <= 0 {
		return 0, errors.New("line-to-line voltage must be > 0")
	}
	if pf <= 0 || pf > 1 {
		return 0, errors.New("displacement power factor must be in (0, 1]")
	}
	return kw * 1000.0 / (sqrt3 * vllVolts * pf), nil
}

// DemandCurrent returns IL, the maximum-demand fundamental current at the
// PCC. Output power is converted to input power using the efficiency.
func (p PCCInputs) DemandCurrent() (float64, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	kw := p.DemandKW
	if p.DemandIsOutput {
		kw /= p.Efficiency
	}
	return FundamentalCurrent(p.VLLVolts, kw, p.DisplacementPF)
}

// OperatingCurrent returns the fundamental current at an operating load
// fraction relative to the demand point, assuming kW scales linearly.
func (p PCCInputs) OperatingCurrent(loadPU float64) (float64, error) {
	if loadPU < 0 {
		return 0, errors.New("load fraction must be >= 0")
	}
	scaled := p
	scaled.DemandKW = p.DemandKW * loadPU
	return scaled.DemandCurrent()
}
