package pqscreen

import (
	"github.com/synaptecltd/pqscreen/gridsource"
	"github.com/synaptecltd/pqscreen/ieee519"
	"github.com/synaptecltd/pqscreen/mitigation"
	"github.com/synaptecltd/pqscreen/spectrum"
)

// ScenarioResult is one evaluated (topology, mitigation) combination.
// Values are never modified after construction; the ordering over a slice
// of these is the engine's primary output.
type ScenarioResult struct {
	Name     string
	Topology spectrum.Preset
	Filter   mitigation.Filter
	Spectrum spectrum.Spectrum

	THDIPercent  float64
	IrmsOverI1   float64
	HeatingProxy float64

	Current *ieee519.CurrentReport
	Voltage *gridsource.VoltageReport

	// Practical split of the worst violations: low-order failures are
	// always major, small high-order exceedances are minor.
	MajorViolations []ieee519.LimitCheck
	MinorViolations []ieee519.LimitCheck
	SeverityScore   float64

	// StrictPass: TDD passes and no individual violation exists.
	// PracticalPass: TDD passes and no major violation exists.
	StrictPass    bool
	PracticalPass bool
}

// Splits the report's worst violations into major and minor. Minor means
// order >= 23 with overage <= 1.0 percentage points, or order >= 17 with
// overage <= 0.5; everything else, including every order <= 13, is major.
func splitMajorMinor(report *ieee519.CurrentReport) (major, minor []ieee519.LimitCheck) {
	for _, v := range report.WorstViolations {
		over := v.MeasuredPercent - v.LimitPercent
		switch {
		case v.Order <= 13:
			major = append(major, v)
		case v.Order >= 23 && over <= 1.0:
			minor = append(minor, v)
		case v.Order >= 17 && over <= 0.5:
			minor = append(minor, v)
		default:
			major = append(major, v)
		}
	}
	return major, minor
}

// Severity weights overage magnitude by how disruptive the order is:
// 5.0 for orders <= 13, 2.0 up to 23, 1.0 above, with minor-qualifying
// entries down-weighted by 0.2.
func severityScore(report *ieee519.CurrentReport) float64 {
	sev := 0.0
	for _, v := range report.WorstViolations {
		over := v.MeasuredPercent - v.LimitPercent
		if over < 0 {
			over = 0
		}

		var w float64
		switch {
		case v.Order <= 13:
			w = 5.0
		case v.Order <= 23:
			w = 2.0
		default:
			w = 1.0
		}
		if (v.Order >= 23 && over <= 1.0) || (v.Order >= 17 && over <= 0.5) {
			w *= 0.2
		}
		sev += w * over
	}
	return sev
}

// Ranking is lexicographic, most significant first: voltage pass, TDD
// pass, fewer major violations, lower severity, lower THDv, lower
// heating proxy. Returns true if a ranks strictly before b.
func ranksBefore(a, b *ScenarioResult) bool {
	av, bv := boolRank(a.Voltage.Pass), boolRank(b.Voltage.Pass)
	if av != bv {
		return av < bv
	}
	at, bt := boolRank(a.Current.TDDPass), boolRank(b.Current.TDDPass)
	if at != bt {
		return at < bt
	}
	if len(a.MajorViolations) != len(b.MajorViolations) {
		return len(a.MajorViolations) < len(b.MajorViolations)
	}
	if a.SeverityScore != b.SeverityScore {
		return a.SeverityScore < b.SeverityScore
	}
	if a.Voltage.THDvPercent != b.Voltage.THDvPercent {
		return a.Voltage.THDvPercent < b.Voltage.THDvPercent
	}
	return a.HeatingProxy < b.HeatingProxy
}

func boolRank(pass bool) int {
	if pass {
		return 0
	}
	return 1
}
