package spectrum

import "math"

// LoadModel selects how harmonic percentages respond to operating load.
type LoadModel int

const (
	// RectifierLike increases harmonic percentages at light load.
	RectifierLike LoadModel = iota
	// Flat applies no load dependence.
	Flat
)

// Load scaling curve constants: scale = a + b / load_pu^c.
// At 20% load the curve gives roughly 1.35x; at full load roughly 1.0x.
const (
	loadCurveA = 0.85
	loadCurveB = 0.15
	loadCurveC = 0.8

	minLoadPU = 0.05
	maxLoadPU = 1.00

	minLoadScale = 0.95
	maxLoadScale = 1.45
)

// Returns the harmonic scaling factor for the given per-unit load. The
// load is clamped to [0.05, 1.00] and the factor to [0.95, 1.45].
func LoadScale(loadPU float64, model LoadModel) float64 {
	if model == Flat {
		return 1.0
	}

	loadPU = clamp(loadPU, minLoadPU, maxLoadPU)
	scale := loadCurveA + loadCurveB/math.Pow(loadPU, loadCurveC)
	return clamp(scale, minLoadScale, maxLoadScale)
}

// Returns a new spectrum with every harmonic scaled for the operating
// load. The receiver is not modified.
func (s Spectrum) LoadAdjusted(loadPU float64, model LoadModel) Spectrum {
	scale := LoadScale(loadPU, model)
	out := make(Spectrum, len(s))
	for h, pct := range s {
		out[h] = pct * scale
	}
	return out
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
