package spectrum_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/synaptecltd/pqscreen/spectrum"
)

func TestParsePreset(t *testing.T) {
	for _, p := range spectrum.AllPresets() {
		parsed, err := spectrum.ParsePreset(p.String())
		assert.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := spectrum.ParsePreset("9pulse_typical")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "6pulse_typical")
}

func TestPresetProfiles(t *testing.T) {
	profile, err := spectrum.Pulse6.Profile()
	assert.NoError(t, err)
	assert.Equal(t, 6, profile.Pulse)
	assert.Equal(t, 20.0, profile.Harmonics[5])
	assert.Equal(t, 14.0, profile.Harmonics[7])

	// 12-pulse cancellation removes the 5th and 7th
	profile, err = spectrum.Pulse12.Profile()
	assert.NoError(t, err)
	assert.NotContains(t, profile.Harmonics, 5)
	assert.NotContains(t, profile.Harmonics, 7)
	assert.Equal(t, 10.0, profile.Harmonics[11])

	// AFE has no pulse number
	profile, err = spectrum.AFELowHarmonic.Profile()
	assert.NoError(t, err)
	assert.Equal(t, 0, profile.Pulse)

	_, err = spectrum.Preset(42).Profile()
	assert.Error(t, err)
}

func TestPresetCatalogImmutable(t *testing.T) {
	profile, err := spectrum.Pulse6.Profile()
	assert.NoError(t, err)
	profile.Harmonics[5] = 99.0

	again, err := spectrum.Pulse6.Profile()
	assert.NoError(t, err)
	assert.Equal(t, 20.0, again.Harmonics[5])
}

func TestLoadScale(t *testing.T) {
	testCases := []struct {
		name     string
		loadPU   float64
		model    spectrum.LoadModel
		expected float64
		delta    float64
	}{
		{name: "flat", loadPU: 0.2, model: spectrum.Flat, expected: 1.0, delta: 0},
		{name: "full load", loadPU: 1.0, model: spectrum.RectifierLike, expected: 1.0, delta: 1e-12},
		{name: "light load", loadPU: 0.2, model: spectrum.RectifierLike, expected: 1.3935, delta: 0.001},
		{name: "clamped low load", loadPU: 0.001, model: spectrum.RectifierLike, expected: 1.45, delta: 1e-12},
		{name: "clamped high load", loadPU: 5.0, model: spectrum.RectifierLike, expected: 1.0, delta: 1e-12},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, spectrum.LoadScale(tc.loadPU, tc.model), tc.delta)
		})
	}
}

func TestLoadScaleMonotoneDecreasing(t *testing.T) {
	prev := math.Inf(1)
	for load := 0.05; load <= 1.0; load += 0.05 {
		scale := spectrum.LoadScale(load, spectrum.RectifierLike)
		assert.LessOrEqual(t, scale, prev, "scale must not increase with load")
		prev = scale
	}
}

func TestLoadAdjustedDoesNotMutate(t *testing.T) {
	base := spectrum.Spectrum{5: 20.0, 7: 14.0}
	adjusted := base.LoadAdjusted(0.2, spectrum.RectifierLike)

	assert.Equal(t, 20.0, base[5])
	assert.Greater(t, adjusted[5], base[5])
}

func TestTHD(t *testing.T) {
	s := spectrum.Spectrum{5: 20.0}
	assert.InDelta(t, 0.2, s.THD(spectrum.MaxOrder), 1e-12)
	assert.InDelta(t, 20.0, s.THDPercent(), 1e-12)

	// orders above the evaluated range are ignored
	s = spectrum.Spectrum{5: 20.0, 53: 50.0}
	assert.InDelta(t, 0.2, s.THD(spectrum.MaxOrder), 1e-12)

	s = spectrum.Spectrum{3: 3.0, 4: 4.0}
	assert.InDelta(t, 0.05, s.THD(spectrum.MaxOrder), 1e-12)
}

func TestHeatingProxy(t *testing.T) {
	s := spectrum.Spectrum{5: 10.0}
	// 5^2 * 0.1^2 = 0.25
	assert.InDelta(t, 0.25, s.HeatingProxy(spectrum.MaxOrder), 1e-12)
}

func TestSynthesizeValidation(t *testing.T) {
	_, err := spectrum.Synthesize(spectrum.SynthesisParams{Frequency: 0, FundamentalRMS: 100})
	assert.Error(t, err)

	_, err = spectrum.Synthesize(spectrum.SynthesisParams{Frequency: 60, FundamentalRMS: 0})
	assert.Error(t, err)
}

func TestSynthesizeAmplitude(t *testing.T) {
	wave, err := spectrum.Synthesize(spectrum.SynthesisParams{
		Frequency:       60.0,
		FundamentalRMS:  100.0,
		Cycles:          2,
		SamplesPerCycle: 256,
	})
	assert.NoError(t, err)
	assert.Len(t, wave.Samples, 512)
	assert.Equal(t, 60.0*256.0, wave.SampleRate)

	// samplesPerCycle divisible by 4 hits the crest exactly: peak = sqrt(2)*RMS
	peak := 0.0
	for _, x := range wave.Samples {
		if x > peak {
			peak = x
		}
	}
	assert.InDelta(t, math.Sqrt2*100.0, peak, 1e-9)
}

func TestSynthesizeDeterministic(t *testing.T) {
	params := spectrum.SynthesisParams{
		Frequency:       50.0,
		FundamentalRMS:  250.0,
		Harmonics:       spectrum.Spectrum{5: 20.0, 7: 14.0, 11: 9.0},
		Cycles:          4,
		SamplesPerCycle: 512,
		Phases:          spectrum.PhaseRandom,
		Seed:            17,
	}

	a, err := spectrum.Synthesize(params)
	assert.NoError(t, err)
	b, err := spectrum.Synthesize(params)
	assert.NoError(t, err)
	assert.Equal(t, a.Samples, b.Samples, "identical seed must give bit-identical output")

	c, err := spectrum.Synthesize(spectrum.SynthesisParams{
		Frequency:       50.0,
		FundamentalRMS:  250.0,
		Harmonics:       spectrum.Spectrum{5: 20.0, 7: 14.0, 11: 9.0},
		Cycles:          4,
		SamplesPerCycle: 512,
		Phases:          spectrum.PhaseRandom,
		Seed:            18,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, a.Samples, c.Samples, "different seeds must differ")
}

func TestSynthesizePhasePolicies(t *testing.T) {
	base := spectrum.SynthesisParams{
		Frequency:       60.0,
		FundamentalRMS:  100.0,
		Harmonics:       spectrum.Spectrum{5: 20.0},
		Cycles:          1,
		SamplesPerCycle: 128,
	}

	zero := base
	zero.Phases = spectrum.PhaseZero
	det := base
	det.Phases = spectrum.PhaseDeterministic

	a, err := spectrum.Synthesize(zero)
	assert.NoError(t, err)
	b, err := spectrum.Synthesize(det)
	assert.NoError(t, err)
	assert.NotEqual(t, a.Samples, b.Samples)

	// deterministic policy needs no seed to reproduce
	c, err := spectrum.Synthesize(det)
	assert.NoError(t, err)
	assert.Equal(t, b.Samples, c.Samples)
}
