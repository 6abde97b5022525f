package calculator

import (
	"math"
	"sort"

	"repeat-rca/pkg/models"
)

// describe computes count, mean, sample std, min, quartiles and max.
// Quantiles use linear interpolation between closest ranks.
func describe(values []float64) models.ColumnStats {
	nan := math.NaN()
	st := models.ColumnStats{Count: len(values), Mean: nan, Std: nan, Min: nan, P25: nan, P50: nan, P75: nan, Max: nan}
	if len(values) == 0 {
		return st
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	n := float64(len(sorted))
	st.Mean = sum / n

	if len(sorted) > 1 {
		ss := 0.0
		for _, v := range sorted {
			d := v - st.Mean
			ss += d * d
		}
		st.Std = math.Sqrt(ss / (n - 1))
	}

	st.Min = sorted[0]
	st.Max = sorted[len(sorted)-1]
	st.P25 = quantile(sorted, 0.25)
	st.P50 = quantile(sorted, 0.50)
	st.P75 = quantile(sorted, 0.75)
	return st
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
