package spectrum

import "fmt"

// Preset identifies one of the fixed UPS rectifier front-end harmonic
// profiles. The set is closed: unknown names are rejected at parse time.
type Preset int

const (
	Pulse6 Preset = iota
	Pulse12
	Pulse18
	AFELowHarmonic
)

// Profile is an immutable preset describing the harmonic behaviour of a
// UPS input topology. Percent values are Ih_rms / I1_rms * 100.
type Profile struct {
	Name      string
	Pulse     int // nominal rectifier pulse number, 0 if not applicable
	Harmonics Spectrum
	Notes     string
}

var presetKeys = map[Preset]string{
	Pulse6:         "6pulse_typical",
	Pulse12:        "12pulse_typical",
	Pulse18:        "18pulse_typical",
	AFELowHarmonic: "afe_low_harm",
}

var presetProfiles = map[Preset]Profile{
	// Legacy / simple diode-bridge rectifier UPS
	Pulse6: {
		Name:  "6-pulse (typical)",
		Pulse: 6,
		Harmonics: Spectrum{
			5: 20.0, 7: 14.0,
			11: 9.0, 13: 7.0,
			17: 5.0, 19: 4.0,
			23: 3.0, 25: 2.0,
			29: 1.5, 31: 1.2,
		},
		Notes: "Typical for older 6-pulse UPS/rectifiers at moderate-high load. Strong 5th/7th.",
	},

	// Better front ends with phase-shift transformer cancellation
	Pulse12: {
		Name:  "12-pulse (typical)",
		Pulse: 12,
		Harmonics: Spectrum{
			11: 10.0, 13: 8.0,
			23: 4.0, 25: 3.0,
			35: 2.0, 37: 1.5,
		},
		Notes: "5th/7th mostly canceled. Dominant 11th/13th.",
	},

	Pulse18: {
		Name:  "18-pulse (typical)",
		Pulse: 18,
		Harmonics: Spectrum{
			17: 5.0, 19: 4.0,
			35: 2.0, 37: 1.5,
			53: 1.0,
		},
		Notes: "Lower THD-I, dominant 17th/19th.",
	},

	// Active front end (IGBT/PWM rectifier). HF switching ripple not modelled.
	AFELowHarmonic: {
		Name: "AFE (low low-order harmonics)",
		Harmonics: Spectrum{
			5: 2.0, 7: 1.5,
			11: 1.0, 13: 0.8,
			17: 0.6, 19: 0.5,
		},
		Notes: "Represents modern AFE/PFC behaviour for low-order harmonics.",
	},
}

// AllPresets returns every preset in catalog order.
func AllPresets() []Preset {
	return []Preset{Pulse6, Pulse12, Pulse18, AFELowHarmonic}
}

// PresetNames returns the catalog keys in catalog order.
func PresetNames() []string {
	names := make([]string, 0, len(presetKeys))
	for _, p := range AllPresets() {
		names = append(names, presetKeys[p])
	}
	return names
}

// Returns the preset matching the given catalog key.
func ParsePreset(name string) (Preset, error) {
	for p, key := range presetKeys {
		if key == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown topology preset %q, available: %v", name, PresetNames())
}

// String returns the catalog key of the preset.
func (p Preset) String() string {
	if key, ok := presetKeys[p]; ok {
		return key
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// Returns the profile for the preset. The harmonic table is copied so the
// process-wide catalog can never be mutated through the result.
func (p Preset) Profile() (Profile, error) {
	prof, ok := presetProfiles[p]
	if !ok {
		return Profile{}, fmt.Errorf("unknown topology preset %q, available: %v", p.String(), PresetNames())
	}
	prof.Harmonics = prof.Harmonics.Clone()
	return prof, nil
}

// Decodes a preset from its catalog key in a yaml document.
func (p *Preset) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParsePreset(name)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML renders the preset as its catalog key.
func (p Preset) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}
