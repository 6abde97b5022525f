package calculator

import (
	"sort"

	"repeat-rca/pkg/models"
)

// Demographics counts repeat customers per observed (gender, device) pair,
// ordered by gender then device.
func Demographics(repeat []models.CustomerFeatures) []models.DemographicCount {
	type key struct{ gender, device string }
	counts := map[key]int{}
	for _, c := range repeat {
		counts[key{c.Gender, c.DeviceType}]++
	}

	out := make([]models.DemographicCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.DemographicCount{Gender: k.gender, DeviceType: k.device, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gender != out[j].Gender {
			return out[i].Gender < out[j].Gender
		}
		return out[i].DeviceType < out[j].DeviceType
	})
	return out
}

// Behavior describes average amount and average gap. Undefined gaps are skipped.
func Behavior(repeat []models.CustomerFeatures) models.BehaviorSummary {
	amounts := make([]float64, 0, len(repeat))
	gaps := make([]float64, 0, len(repeat))
	for _, c := range repeat {
		amounts = append(amounts, c.AvgAmount)
		if c.AvgGap.Valid {
			gaps = append(gaps, c.AvgGap.Float64)
		}
	}
	return models.BehaviorSummary{
		AvgAmount: describe(amounts),
		AvgGap:    describe(gaps),
	}
}

// TopCategories counts the repeat customers' transactions per category.
func TopCategories(txs []models.Transaction, repeat []models.CustomerFeatures) []models.CategoryCount {
	ids := make(map[string]struct{}, len(repeat))
	for _, c := range repeat {
		ids[c.CustomerID] = struct{}{}
	}
	counts := map[string]int{}
	for _, tx := range txs {
		if _, ok := ids[tx.CustomerID]; ok {
			counts[tx.Category]++
		}
	}
	return ranked(counts)
}

// GenderCounts counts repeat customers per gender value.
func GenderCounts(repeat []models.CustomerFeatures) []models.CategoryCount {
	counts := map[string]int{}
	for _, c := range repeat {
		counts[c.Gender]++
	}
	return ranked(counts)
}

// ranked sorts by count descending, label ascending on ties.
func ranked(counts map[string]int) []models.CategoryCount {
	out := make([]models.CategoryCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, models.CategoryCount{Category: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}
