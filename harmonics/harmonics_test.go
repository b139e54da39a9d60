package harmonics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/synaptecltd/pqscreen/harmonics"
	"github.com/synaptecltd/pqscreen/spectrum"
)

func synthesize(t *testing.T, harm spectrum.Spectrum, phases spectrum.PhasePolicy) *spectrum.Waveform {
	t.Helper()
	wave, err := spectrum.Synthesize(spectrum.SynthesisParams{
		Frequency:       60.0,
		FundamentalRMS:  100.0,
		Harmonics:       harm,
		Cycles:          10,
		SamplesPerCycle: 256,
		Phases:          phases,
		Seed:            17,
	})
	assert.NoError(t, err)
	return wave
}

func TestAnalyzeRecoversKnownSpectrum(t *testing.T) {
	wave := synthesize(t, spectrum.Spectrum{5: 20.0}, spectrum.PhaseZero)

	analysis, err := harmonics.Analyze(wave.Samples, wave.SampleRate, wave.Frequency, 50, harmonics.Rectangular)
	assert.NoError(t, err)

	assert.InDelta(t, 100.0, analysis.FundamentalRMS, 1.0, "fundamental RMS within 1%%")
	assert.InDelta(t, 0.2, analysis.THD, 0.002)

	fifth := analysis.Bins[4]
	assert.Equal(t, 5, fifth.Order)
	assert.InDelta(t, 300.0, fifth.Frequency, 1e-9)
	assert.InDelta(t, 20.0, fifth.PercentOfFundamental, 0.2, "5th within 1%% relative")
}

func TestAnalyzeWindows(t *testing.T) {
	// Integer cycles: every window's coherent gain correction should
	// still recover the tone amplitudes closely.
	wave := synthesize(t, spectrum.Spectrum{5: 20.0, 7: 14.0}, spectrum.PhaseRandom)

	for _, window := range []harmonics.Window{harmonics.Rectangular, harmonics.Hann, harmonics.Hamming} {
		t.Run(window.String(), func(t *testing.T) {
			analysis, err := harmonics.Analyze(wave.Samples, wave.SampleRate, wave.Frequency, 50, window)
			assert.NoError(t, err)
			assert.InDelta(t, 100.0, analysis.FundamentalRMS, 1.5)
			assert.InDelta(t, 20.0, analysis.Bins[4].PercentOfFundamental, 0.5)
			assert.InDelta(t, 14.0, analysis.Bins[6].PercentOfFundamental, 0.5)
		})
	}
}

func TestAnalyzePhase(t *testing.T) {
	wave := synthesize(t, nil, spectrum.PhaseZero)

	analysis, err := harmonics.Analyze(wave.Samples, wave.SampleRate, wave.Frequency, 1, harmonics.Rectangular)
	assert.NoError(t, err)

	// sin(wt) appears at -90 degrees in the one-sided spectrum
	assert.InDelta(t, -90.0, analysis.Bins[0].PhaseDeg, 1.0)
}

func TestAnalyzeTotalRMS(t *testing.T) {
	wave := synthesize(t, spectrum.Spectrum{5: 20.0}, spectrum.PhaseZero)

	analysis, err := harmonics.Analyze(wave.Samples, wave.SampleRate, wave.Frequency, 50, harmonics.Rectangular)
	assert.NoError(t, err)

	// Irms = I1 * sqrt(1 + THD^2) = 100 * sqrt(1.04)
	assert.InDelta(t, 101.98, analysis.TotalRMS, 0.2)
}

func TestAnalyzeErrors(t *testing.T) {
	testCases := []struct {
		name       string
		samples    []float64
		sampleRate float64
		f0         float64
	}{
		{name: "too short", samples: make([]float64, 7), sampleRate: 1000, f0: 60},
		{name: "bad sample rate", samples: make([]float64, 64), sampleRate: 0, f0: 60},
		{name: "bad fundamental", samples: make([]float64, 64), sampleRate: 1000, f0: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := harmonics.Analyze(tc.samples, tc.sampleRate, tc.f0, 50, harmonics.Hann)
			assert.Error(t, err)
		})
	}
}

func TestAnalyzeDefaultMaxOrder(t *testing.T) {
	wave := synthesize(t, nil, spectrum.PhaseZero)

	analysis, err := harmonics.Analyze(wave.Samples, wave.SampleRate, wave.Frequency, 0, harmonics.Hann)
	assert.NoError(t, err)
	assert.Len(t, analysis.Bins, harmonics.DefaultMaxOrder)
}

func TestCoherentGain(t *testing.T) {
	cg, err := harmonics.Rectangular.CoherentGain(1024)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, cg)

	cg, err = harmonics.Hann.CoherentGain(1024)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, cg, 0.001)

	cg, err = harmonics.Hamming.CoherentGain(1024)
	assert.NoError(t, err)
	assert.InDelta(t, 0.54, cg, 0.001)
}
