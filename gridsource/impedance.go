// Package gridsource derives a per-phase Thevenin source impedance from
// utility short-circuit strength and estimates the voltage distortion
// produced by harmonic currents flowing through it. The estimate is a
// linear screening approximation (harmonic current times scalar impedance
// magnitude), not an impedance-scan or resonance model.
//
// Balanced three-phase relationships used throughout:
//
//	Ssc = sqrt(3) * VLL * Isc
//	Zth (per phase) = (VLL/sqrt(3)) / Isc = VLL^2 / Ssc
package gridsource

import (
	"errors"
	"fmt"
	"math"
)

const sqrt3 = 1.7320508075688772

// DefaultXR is the placeholder X/R ratio carried by Model for future R/X
// separation; the magnitude-only estimate does not use it.
const DefaultXR = 10.0

// Model is an immutable per-phase source impedance model.
// Impedance magnitude at harmonic order h scales as Z1 * h^FreqExp:
// 0.0 gives a flat profile, 1.0 an inductive-like profile.
type Model struct {
	Z1Ohm   float64 // fundamental Thevenin impedance magnitude per phase
	XR      float64 // kept for future R/X separation, unused in magnitude-only mode
	FreqExp float64
}

// ShortCircuitCurrent returns the three-phase short-circuit current
// magnitude (A RMS line) available at the PCC.
func ShortCircuitCurrent(vllVolts, scMVA float64) (float64, error) {
	if vllVolts <= 0 {
		return 0, errors.New("line-to-line voltage must be > 0")
	}
	if scMVA <= 0 {
		return 0, errors.New("short-circuit MVA must be > 0")
	}
	return scMVA * 1e6 / (sqrt3 * vllVolts), nil
}

// TheveninImpedance returns the fundamental per-phase impedance magnitude
// in ohms: Zth = VLL^2 / Ssc.
func TheveninImpedance(vllVolts, scMVA float64) (float64, error) {
	if vllVolts <= 0 {
		return 0, errors.New("line-to-line voltage must be > 0")
	}
	if scMVA <= 0 {
		return 0, errors.New("short-circuit MVA must be > 0")
	}
	return vllVolts * vllVolts / (scMVA * 1e6), nil
}

// RatioFromMVA returns Isc/IL using the short-circuit current derived
// from grid strength and the provided demand current.
func RatioFromMVA(vllVolts, scMVA, ilAmps float64) (float64, error) {
	if ilAmps <= 0 {
		return 0, errors.New("IL must be > 0 A")
	}
	isc, err := ShortCircuitCurrent(vllVolts, scMVA)
	if err != nil {
		return 0, err
	}
	return isc / ilAmps, nil
}

// VLNFromVLL converts line-to-line RMS voltage to line-to-neutral.
func VLNFromVLL(vllVolts float64) float64 {
	return vllVolts / sqrt3
}

// NewModel builds a source impedance model from grid strength.
func NewModel(vllVolts, scMVA, freqExp float64) (Model, error) {
	z1, err := TheveninImpedance(vllVolts, scMVA)
	if err != nil {
		return Model{}, err
	}
	return Model{Z1Ohm: z1, XR: DefaultXR, FreqExp: freqExp}, nil
}

// MagnitudeAt returns the impedance magnitude at harmonic order h.
func (m Model) MagnitudeAt(h int) (float64, error) {
	if h < 1 {
		return 0, fmt.Errorf("harmonic order must be >= 1, got %d", h)
	}
	if m.Z1Ohm <= 0 {
		return 0, errors.New("fundamental impedance must be > 0")
	}
	return m.Z1Ohm * math.Pow(float64(h), m.FreqExp), nil
}
