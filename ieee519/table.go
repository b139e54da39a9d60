package ieee519

import "math"

// Current distortion limit table for systems rated 120 V through 69 kV,
// expressed as percent of IL. Rows are selected by the Isc/IL ratio over
// the interval (lower, upper]; the rows cover (-inf, +inf) with no gaps.
// Limits apply to odd harmonics; even harmonics are derated separately.
type tableRow struct {
	lower  float64 // exclusive
	upper  float64 // inclusive
	limits [bandCount]float64
	tdd    float64
	label  string
}

const bandCount = 5

// Harmonic order bands: [2,10], [11,16], [17,22], [23,34], [35,50].
var bandLabels = [bandCount]string{"2-10", "11-16", "17-22", "23-34", "35-50"}

var limitRows = []tableRow{
	{math.Inf(-1), 20.0, [bandCount]float64{4.0, 2.0, 1.5, 0.6, 0.3}, 5.0, "<=20"},
	{20.0, 50.0, [bandCount]float64{7.0, 3.5, 2.5, 1.0, 0.5}, 8.0, "20-50"},
	{50.0, 100.0, [bandCount]float64{10.0, 4.5, 4.0, 1.5, 0.7}, 12.0, "50-100"},
	{100.0, 1000.0, [bandCount]float64{12.0, 5.5, 5.0, 2.0, 1.0}, 15.0, "100-1000"},
	{1000.0, math.Inf(1), [bandCount]float64{15.0, 7.0, 6.0, 2.5, 1.4}, 20.0, ">1000"},
}

// Returns the band index for a harmonic order, or false if the order is
// outside the evaluated range [2, 50].
func bandIndex(h int) (int, bool) {
	switch {
	case h < 2 || h > 50:
		return 0, false
	case h <= 10:
		return 0, true
	case h <= 16:
		return 1, true
	case h <= 22:
		return 2, true
	case h <= 34:
		return 3, true
	default:
		return 4, true
	}
}

// Returns the table row whose ratio band contains iscOverIL.
func selectRow(iscOverIL float64) tableRow {
	for _, row := range limitRows {
		if iscOverIL > row.lower && iscOverIL <= row.upper {
			return row
		}
	}
	return limitRows[len(limitRows)-1]
}
