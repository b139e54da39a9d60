// Package harmonics recovers a harmonic spectrum and distortion metrics
// from a sampled current waveform using a windowed one-sided FFT. It
// exists to validate synthesized waveforms and to ingest externally
// measured records; compliance evaluation itself operates directly on
// percent-of-fundamental tables.
package harmonics

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DefaultMaxOrder is the highest harmonic order examined by default.
const DefaultMaxOrder = 50

// Bin is one extracted harmonic component.
type Bin struct {
	Order                int
	Frequency            float64 // Hz of the FFT bin used
	RMS                  float64
	PercentOfFundamental float64
	PhaseDeg             float64
}

// Analysis is the result of harmonic extraction on one waveform.
type Analysis struct {
	Fundamental    float64 // Hz
	SampleRate     float64 // Hz
	Samples        int
	Window         Window
	TotalRMS       float64
	FundamentalRMS float64
	THD            float64 // per-unit, orders >= 2
	Bins           []Bin   // orders 1..maxOrder in ascending order
}

// Analyze extracts harmonic RMS magnitudes from a real-valued sampled
// waveform. Each harmonic is read from the FFT bin nearest h*f0; a
// windowed bin value is converted to a single-sided peak amplitude via
// (2/N)*|X|/CG with CG the coherent gain of the window, then to RMS.
// Accuracy is best when the record spans an integer number of
// fundamental cycles. maxOrder of 0 means DefaultMaxOrder.
func Analyze(samples []float64, sampleRate, fundamental float64, maxOrder int, window Window) (*Analysis, error) {
	n := len(samples)
	if n < 8 {
		return nil, fmt.Errorf("signal too short: %d samples, need at least 8", n)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0, got %g", sampleRate)
	}
	if fundamental <= 0 {
		return nil, fmt.Errorf("fundamental frequency must be > 0, got %g", fundamental)
	}
	if maxOrder == 0 {
		maxOrder = DefaultMaxOrder
	}
	if maxOrder < 1 {
		return nil, fmt.Errorf("max harmonic order must be >= 1, got %d", maxOrder)
	}

	w, err := window.vector(n)
	if err != nil {
		return nil, err
	}
	cg := 0.0
	windowed := make([]float64, n)
	for i, x := range samples {
		windowed[i] = x * w[i]
		cg += w[i]
	}
	cg /= float64(n)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	sumSq := 0.0
	for _, x := range samples {
		sumSq += x * x
	}
	totalRMS := math.Sqrt(sumSq / float64(n))

	// One-sided spectrum: bin k sits at k*fs/n for k in [0, n/2].
	binFor := func(freq float64) int {
		k := int(math.Round(freq * float64(n) / sampleRate))
		if k < 0 {
			k = 0
		}
		if k > len(coeffs)-1 {
			k = len(coeffs) - 1
		}
		return k
	}
	rmsAt := func(k int) (rms, phaseDeg float64) {
		x := coeffs[k]
		peak := (2.0 / float64(n)) * cmplx.Abs(x) / cg
		return peak / math.Sqrt2, cmplx.Phase(x) * 180.0 / math.Pi
	}

	k1 := binFor(fundamental)
	i1RMS, _ := rmsAt(k1)

	bins := make([]Bin, 0, maxOrder)
	harmSq := 0.0
	for h := 1; h <= maxOrder; h++ {
		k := binFor(float64(h) * fundamental)
		rms, phase := rmsAt(k)
		pct := 0.0
		if i1RMS > 1e-12 {
			pct = rms / i1RMS * 100.0
		}
		bins = append(bins, Bin{
			Order:                h,
			Frequency:            float64(k) * sampleRate / float64(n),
			RMS:                  rms,
			PercentOfFundamental: pct,
			PhaseDeg:             phase,
		})
		if h >= 2 {
			harmSq += rms * rms
		}
	}

	thd := 0.0
	if i1RMS > 1e-12 {
		thd = math.Sqrt(harmSq) / i1RMS
	}

	return &Analysis{
		Fundamental:    fundamental,
		SampleRate:     sampleRate,
		Samples:        n,
		Window:         window,
		TotalRMS:       totalRMS,
		FundamentalRMS: i1RMS,
		THD:            thd,
		Bins:           bins,
	}, nil
}
