package spectrum

import (
	"errors"
	"math"
	"math/rand/v2"
)

// PhasePolicy selects how harmonic phase angles are assigned during
// waveform synthesis.
type PhasePolicy int

const (
	// PhaseZero sets every harmonic phase to zero.
	PhaseZero PhasePolicy = iota
	// PhaseDeterministic sets the phase of order h to (h * 17 degrees) mod 360.
	PhaseDeterministic
	// PhaseRandom draws independent uniform phases from a seeded generator.
	PhaseRandom
)

// SynthesisParams describes a time-domain current record to build from a
// fundamental sinusoid plus the harmonic table.
type SynthesisParams struct {
	Frequency        float64     // fundamental frequency in Hz
	FundamentalRMS   float64     // I1 in amps RMS
	Harmonics        Spectrum    // percent of fundamental RMS per order
	Cycles           int         // fundamental cycles to generate, default 10
	SamplesPerCycle  int         // default 4096
	FundamentalPhase float64     // radians
	Phases           PhasePolicy // harmonic phase policy
	Seed             uint64      // generator seed for PhaseRandom
}

// Waveform is a synthesized current record.
type Waveform struct {
	Samples    []float64
	SampleRate float64 // Hz, equals Frequency * SamplesPerCycle
	Frequency  float64 // fundamental frequency in Hz
}

const defaultCycles = 10
const defaultSamplesPerCycle = 4096

// Synthesize builds i(t) = sqrt(2)*I1*sin(wt+phi1) + sum_h sqrt(2)*Ih*sin(hwt+phih).
// Output is deterministic for a fixed seed: harmonics are summed in
// ascending order and phases come from an explicit seeded generator.
func Synthesize(params SynthesisParams) (*Waveform, error) {
	if params.Frequency <= 0 {
		return nil, errors.New("fundamental frequency must be > 0")
	}
	if params.FundamentalRMS <= 0 {
		return nil, errors.New("fundamental RMS current must be > 0")
	}

	cycles := params.Cycles
	if cycles == 0 {
		cycles = defaultCycles
	}
	if cycles < 0 {
		return nil, errors.New("cycles must be > 0")
	}

	samplesPerCycle := params.SamplesPerCycle
	if samplesPerCycle == 0 {
		samplesPerCycle = defaultSamplesPerCycle
	}
	if samplesPerCycle < 2 {
		return nil, errors.New("samples per cycle must be >= 2")
	}

	fs := params.Frequency * float64(samplesPerCycle)
	n := cycles * samplesPerCycle
	w := 2.0 * math.Pi * params.Frequency

	samples := make([]float64, n)
	i1Peak := math.Sqrt2 * params.FundamentalRMS
	for k := 0; k < n; k++ {
		t := float64(k) / fs
		samples[k] = i1Peak * math.Sin(w*t+params.FundamentalPhase)
	}

	rng := rand.New(rand.NewPCG(params.Seed, 0))

	// Ascending order keeps the generator draw sequence reproducible.
	for _, h := range params.Harmonics.Orders() {
		pct := params.Harmonics[h]
		ihPeak := math.Sqrt2 * (pct / 100.0) * params.FundamentalRMS

		var phase float64
		switch params.Phases {
		case PhaseZero:
			phase = 0.0
		case PhaseDeterministic:
			phase = math.Mod(float64(h)*17.0, 360.0) * math.Pi / 180.0
		case PhaseRandom:
			phase = rng.Float64() * 2.0 * math.Pi
		default:
			return nil, errors.New("unknown phase policy")
		}

		hw := float64(h) * w
		for k := 0; k < n; k++ {
			t := float64(k) / fs
			samples[k] += ihPeak * math.Sin(hw*t+phase)
		}
	}

	return &Waveform{
		Samples:    samples,
		SampleRate: fs,
		Frequency:  params.Frequency,
	}, nil
}
