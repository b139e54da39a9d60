// Package mitigation models harmonic filtering as empirical attenuation
// curves over harmonic order. The curves are a closed named set; applying
// one multiplies every entry of a spectrum by the curve value at that
// order. Actual filter circuit impedance and resonance are not modelled.
package mitigation

import (
	"fmt"

	"github.com/synaptecltd/pqscreen/spectrum"
)

// Filter identifies one of the fixed attenuation curves.
type Filter int

const (
	// None applies no attenuation.
	None Filter = iota
	// Tuned57 is a tuned passive filter: strong reduction at the 5th and
	// 7th, partial at the 11th/13th, mild elsewhere in low order.
	Tuned57
	// BroadbandPassive is a reactor/filter-bank style moderate band-wise
	// reduction.
	BroadbandPassive
	// ActiveFilterLike is an active harmonic filter style cleanup: strong
	// low-order reduction diminishing at high order.
	ActiveFilterLike
)

var filterKeys = map[Filter]string{
	None:             "none",
	Tuned57:          "tuned_5_7",
	BroadbandPassive: "broadband_passive",
	ActiveFilterLike: "active_filter_like",
}

// AllFilters returns every filter in catalog order.
func AllFilters() []Filter {
	return []Filter{None, Tuned57, BroadbandPassive, ActiveFilterLike}
}

// FilterNames returns the catalog keys in catalog order.
func FilterNames() []string {
	names := make([]string, 0, len(filterKeys))
	for _, f := range AllFilters() {
		names = append(names, filterKeys[f])
	}
	return names
}

// Returns the filter matching the given catalog key.
func ParseFilter(name string) (Filter, error) {
	for f, key := range filterKeys {
		if key == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown mitigation filter %q, available: %v", name, FilterNames())
}

// String returns the catalog key of the filter.
func (f Filter) String() string {
	if key, ok := filterKeys[f]; ok {
		return key
	}
	return fmt.Sprintf("filter(%d)", int(f))
}

// Attenuation returns the multiplicative factor in (0, 1] applied to the
// harmonic current at order h.
func (f Filter) Attenuation(h int) float64 {
	switch f {
	case Tuned57:
		switch {
		case h == 5:
			return 0.25
		case h == 7:
			return 0.30
		case h == 11 || h == 13:
			return 0.65
		case h >= 2 && h <= 25:
			return 0.85
		default:
			return 0.95
		}
	case BroadbandPassive:
		switch {
		case h >= 2 && h <= 11:
			return 0.55
		case h >= 12 && h <= 25:
			return 0.70
		case h >= 26 && h <= 50:
			return 0.85
		default:
			return 1.0
		}
	case ActiveFilterLike:
		switch {
		case h >= 2 && h <= 11:
			return 0.25
		case h >= 12 && h <= 25:
			return 0.40
		case h >= 26 && h <= 50:
			return 0.60
		default:
			return 1.0
		}
	default:
		return 1.0
	}
}

// Apply returns a new spectrum with the filter's attenuation applied at
// every order. The source spectrum is not modified.
func (f Filter) Apply(s spectrum.Spectrum) spectrum.Spectrum {
	out := make(spectrum.Spectrum, len(s))
	for h, pct := range s {
		out[h] = pct * f.Attenuation(h)
	}
	return out
}

// Decodes a filter from its catalog key in a yaml document.
func (f *Filter) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseFilter(name)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalYAML renders the filter as its catalog key.
func (f Filter) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}
