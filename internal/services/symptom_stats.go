package services

import (
	"sort"

	"github.com/terraincognita07/ovucast/internal/models"
)

type SymptomCount struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

type SymptomStats struct {
	TotalObservations int            `json:"total_observations"`
	Regular           []SymptomCount `json:"regular"`
	Perimenopause     []SymptomCount `json:"perimenopause"`
}

// BuildSymptomStats counts how often each symptom was recorded. Symptoms that
// never occurred are omitted; each group is ordered by count, then key.
func BuildSymptomStats(observations []models.Observation) SymptomStats {
	regular := make(map[string]int)
	extended := make(map[string]int)
	for _, observation := range observations {
		countFlags(regular, observation.Symptoms.Flags())
		if observation.ExtendedSymptoms != nil {
			countFlags(extended, observation.ExtendedSymptoms.Flags())
		}
	}

	total := len(observations)
	return SymptomStats{
		TotalObservations: total,
		Regular:           sortedSymptomCounts(regular, total),
		Perimenopause:     sortedSymptomCounts(extended, total),
	}
}

func countFlags(counts map[string]int, flags []models.SymptomFlag) {
	for _, flag := range flags {
		if flag.Present {
			counts[flag.Key]++
		}
	}
}

func sortedSymptomCounts(counts map[string]int, total int) []SymptomCount {
	result := make([]SymptomCount, 0, len(counts))
	for key, count := range counts {
		share := 0.0
		if total > 0 {
			share = roundHundredths(float64(count) / float64(total))
		}
		result = append(result, SymptomCount{Key: key, Count: count, Share: share})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return result[i].Key < result[j].Key
		}
		return result[i].Count > result[j].Count
	})
	return result
}
