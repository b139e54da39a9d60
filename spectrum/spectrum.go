package spectrum

import (
	"math"
	"sort"
)

// MaxOrder is the highest harmonic order considered in compliance work.
const MaxOrder = 50

// Spectrum maps harmonic order (>= 2) to magnitude expressed as a percent
// of the fundamental RMS current. Orders above MaxOrder may be stored but
// are ignored by evaluation.
type Spectrum map[int]float64

// Returns a copy of the spectrum. The receiver is not modified by any
// operation that returns a new Spectrum.
func (s Spectrum) Clone() Spectrum {
	out := make(Spectrum, len(s))
	for h, pct := range s {
		out[h] = pct
	}
	return out
}

// Returns the harmonic orders present in the spectrum in ascending order.
func (s Spectrum) Orders() []int {
	orders := make([]int, 0, len(s))
	for h := range s {
		orders = append(orders, h)
	}
	sort.Ints(orders)
	return orders
}

// Returns THD-I in per-unit computed from the spectrum:
// sqrt(sum((pct/100)^2)) over orders 2..maxOrder.
// Summation runs in ascending order so results are bit-reproducible.
func (s Spectrum) THD(maxOrder int) float64 {
	sum := 0.0
	for _, h := range s.Orders() {
		if h >= 2 && h <= maxOrder {
			pu := s[h] / 100.0
			sum += pu * pu
		}
	}
	return math.Sqrt(sum)
}

// Returns THD-I in percent over orders 2..MaxOrder.
func (s Spectrum) THDPercent() float64 {
	return s.THD(MaxOrder) * 100.0
}

// Returns the eddy-current style heating proxy sum(h^2 * Ih_pu^2) over
// orders 2..maxOrder, with Ih in per-unit of the fundamental.
func (s Spectrum) HeatingProxy(maxOrder int) float64 {
	sum := 0.0
	for _, h := range s.Orders() {
		if h >= 2 && h <= maxOrder {
			pu := s[h] / 100.0
			sum += float64(h*h) * pu * pu
		}
	}
	return sum
}

// Returns Irms/I1 assuming orthogonal harmonics: sqrt(1 + THD^2).
func RMSInflation(thdPU float64) float64 {
	return math.Sqrt(1.0 + thdPU*thdPU)
}
