package harmonics

import (
	"fmt"
	"math"
)

// Window selects the tapering applied before the FFT. Windowing reduces
// spectral leakage when the record does not span an integer number of
// fundamental cycles.
type Window int

const (
	Rectangular Window = iota
	Hann
	Hamming
)

// String returns the window name.
func (w Window) String() string {
	switch w {
	case Rectangular:
		return "rectangular"
	case Hann:
		return "hann"
	case Hamming:
		return "hamming"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// Returns the window weight vector of length n.
func (w Window) vector(n int) ([]float64, error) {
	v := make([]float64, n)
	switch w {
	case Rectangular:
		for i := range v {
			v[i] = 1.0
		}
	case Hann:
		for i := range v {
			v[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(n-1)))
		}
	case Hamming:
		for i := range v {
			v[i] = 0.54 - 0.46*math.Cos(2.0*math.Pi*float64(i)/float64(n-1))
		}
	default:
		return nil, fmt.Errorf("unknown window: %d", int(w))
	}
	return v, nil
}

// CoherentGain returns the mean window weight, used to correct FFT
// amplitude estimates.
func (w Window) CoherentGain(n int) (float64, error) {
	v, err := w.vector(n)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(n), nil
}
