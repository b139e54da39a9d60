package gridsource

import (
	"errors"
	"math"

	"github.com/synaptecltd/pqscreen/spectrum"
)

// RiskLevel is a coarse classification of voltage distortion risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// DefaultVoltageLimitPercent is the default THDv compliance limit.
const DefaultVoltageLimitPercent = 5.0

// VoltageReport is the estimated voltage distortion at the PCC for one
// harmonic current spectrum.
type VoltageReport struct {
	THDvPercent      float64
	HarmonicVolts    map[int]float64 // Vh per order, volts RMS
	FundamentalVolts float64
	LimitPercent     float64
	Pass             bool
	Risk             RiskLevel
	Interpretation   string
}

// EstimateDistortion computes Vh = Ih * |Z(h)| per harmonic and
// THDv = sqrt(sum Vh^2)/V1 * 100. The spectrum is percent of the
// fundamental current i1Amps; v1Volts must be the line-to-neutral voltage
// when the model impedance is per phase.
func EstimateDistortion(s spectrum.Spectrum, i1Amps, v1Volts float64, m Model, limitPercent float64) (*VoltageReport, error) {
	if i1Amps <= 0 {
		return nil, errors.New("fundamental current must be > 0 A")
	}
	if v1Volts <= 0 {
		return nil, errors.New("fundamental voltage must be > 0 V")
	}
	if limitPercent <= 0 {
		return nil, errors.New("voltage distortion limit must be > 0 %")
	}

	vh := make(map[int]float64, len(s))
	sumSq := 0.0
	for _, h := range s.Orders() {
		if h < 2 || h > spectrum.MaxOrder {
			continue
		}
		ih := (s[h] / 100.0) * i1Amps
		zh, err := m.MagnitudeAt(h)
		if err != nil {
			return nil, err
		}
		v := math.Abs(ih) * zh
		vh[h] = v
		sumSq += v * v
	}

	thdvPct := math.Sqrt(sumSq) / v1Volts * 100.0

	var risk RiskLevel
	switch {
	case thdvPct <= 0.6*limitPercent:
		risk = RiskLow
	case thdvPct <= limitPercent:
		risk = RiskMedium
	default:
		risk = RiskHigh
	}

	return &VoltageReport{
		THDvPercent:      thdvPct,
		HarmonicVolts:    vh,
		FundamentalVolts: v1Volts,
		LimitPercent:     limitPercent,
		Pass:             thdvPct <= limitPercent,
		Risk:             risk,
		Interpretation: "THDv is produced when harmonic currents flow through PCC source impedance. " +
			"Weak PCC (low short-circuit MVA / high impedance) amplifies THDv. " +
			"Confirm Zth using short-circuit data and verify with field measurements.",
	}, nil
}
