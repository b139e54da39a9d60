// Package ieee519 evaluates a harmonic current spectrum against
// IEEE-519-style current distortion limits at the point of common
// coupling. Limits depend on the short-circuit ratio Isc/IL and are
// expressed as percent of IL, the maximum-demand fundamental current.
package ieee519

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/synaptecltd/pqscreen/spectrum"
)

// RiskLevel is a coarse classification of compliance risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// DefaultEvenHarmonicFactor derates even-harmonic limits relative to the
// odd-harmonic limit of the same band, per the table notes.
const DefaultEvenHarmonicFactor = 0.25

// Comparison tolerance absorbing floating-point noise in limit checks.
const limitTolerance = 1e-12

// LimitCheck is the evaluation of a single harmonic order against its
// band limit.
type LimitCheck struct {
	Order           int
	MeasuredPercent float64 // Ih as percent of IL
	LimitPercent    float64
	Pass            bool
	Band            string
	Note            string
}

// CurrentReport aggregates the per-harmonic checks, TDD, and a coarse
// risk classification for one spectrum at one PCC.
type CurrentReport struct {
	IscAmps         float64
	ILAmps          float64
	Ratio           float64 // Isc/IL
	CategoryLabel   string  // ratio band of the selected table row
	TDDPercent      float64
	TDDLimitPercent float64
	TDDPass         bool
	Checks          []LimitCheck // sorted by harmonic order
	WorstViolations []LimitCheck // up to five, largest overage first
	Risk            RiskLevel
	Interpretation  []string
}

// Evaluate checks the spectrum against the limit table using the default
// even-harmonic derating factor.
func Evaluate(s spectrum.Spectrum, ilAmps, iscAmps float64) (*CurrentReport, error) {
	return EvaluateWithFactor(s, ilAmps, iscAmps, DefaultEvenHarmonicFactor)
}

// EvaluateWithFactor checks every harmonic in the spectrum with order in
// [2, 50] against the table row selected by Isc/IL. The spectrum is
// interpreted as percent of IL. Orders outside the range are ignored.
func EvaluateWithFactor(s spectrum.Spectrum, ilAmps, iscAmps, evenFactor float64) (*CurrentReport, error) {
	if ilAmps <= 0 {
		return nil, errors.New("IL must be > 0 A")
	}
	if iscAmps <= 0 {
		return nil, errors.New("Isc must be > 0 A")
	}

	ratio := iscAmps / ilAmps
	row := selectRow(ratio)

	checks := make([]LimitCheck, 0, len(s))
	sumSq := 0.0

	for _, h := range s.Orders() {
		pct := s[h]
		band, ok := bandIndex(h)
		if !ok {
			continue
		}

		limit := row.limits[band]
		note := ""
		if h%2 == 0 {
			limit *= evenFactor
			note = fmt.Sprintf("even harmonic limit = %.0f%% of odd limit", evenFactor*100.0)
		}

		checks = append(checks, LimitCheck{
			Order:           h,
			MeasuredPercent: pct,
			LimitPercent:    limit,
			Pass:            pct <= limit+limitTolerance,
			Band:            bandLabels[band],
			Note:            note,
		})

		pu := pct / 100.0
		sumSq += pu * pu
	}

	tdd := math.Sqrt(sumSq) * 100.0
	tddPass := tdd <= row.tdd+limitTolerance

	violations := make([]LimitCheck, 0, len(checks))
	for _, c := range checks {
		if !c.Pass {
			violations = append(violations, c)
		}
	}
	sort.SliceStable(violations, func(i, j int) bool {
		oi := violations[i].MeasuredPercent - violations[i].LimitPercent
		oj := violations[j].MeasuredPercent - violations[j].LimitPercent
		return oi > oj
	})
	worst := violations
	if len(worst) > 5 {
		worst = worst[:5]
	}

	report := &CurrentReport{
		IscAmps:         iscAmps,
		ILAmps:          ilAmps,
		Ratio:           ratio,
		CategoryLabel:   row.label,
		TDDPercent:      tdd,
		TDDLimitPercent: row.tdd,
		TDDPass:         tddPass,
		Checks:          checks,
		WorstViolations: worst,
		Risk:            riskLevel(tddPass, len(violations)),
		Interpretation:  interpret(ratio, tddPass, worst),
	}
	return report, nil
}

func riskLevel(tddPass bool, violations int) RiskLevel {
	switch {
	case !tddPass && violations >= 2:
		return RiskHigh
	case !tddPass || violations >= 1:
		return RiskMedium
	default:
		return RiskLow
	}
}

func interpret(ratio float64, tddPass bool, worst []LimitCheck) []string {
	var lines []string
	switch {
	case ratio < 20:
		lines = append(lines, "Weak PCC (low Isc/IL): harmonic currents are more likely to cause voltage distortion upstream.")
	case ratio < 50:
		lines = append(lines, "Moderate PCC strength: compliance depends strongly on low-order (5th/7th/11th/13th) magnitudes.")
	default:
		lines = append(lines, "Strong PCC: current limits are higher, but large 5th/7th can still trigger issues in shared systems.")
	}

	if !tddPass {
		lines = append(lines, "TDD exceeds limit: utility/PCC compliance risk is elevated; expect higher RMS heating and potential voltage THD concerns.")
	}
	if len(worst) > 0 {
		top := worst
		if len(top) > 3 {
			top = top[:3]
		}
		names := ""
		for i, c := range top {
			if i > 0 {
				names += ", "
			}
			names += fmt.Sprintf("h%d", c.Order)
		}
		lines = append(lines, fmt.Sprintf("Major individual harmonic violations: %s. These typically drive transformer/cable heating and upstream voltage distortion.", names))
	}
	return lines
}
