package materials

import (
	"sort"

	"prepress/internal/artifact"
)

// costTierScores maps relative cost to a normalized score where cheaper
// is better.
var costTierScores = map[CostTier]float64{
	CostLow:       0.9,
	CostLowMedium: 0.7,
	CostMedium:    0.5,
	CostHigh:      0.3,
}

var durabilityScores = map[Durability]float64{
	DurabilityLow:        0.3,
	DurabilityMedium:     0.5,
	DurabilityMediumHigh: 0.7,
	DurabilityHigh:       0.8,
	DurabilityVeryHigh:   1.0,
}

// MatchDetails records each criterion's weighted contribution to the total
// score, for display alongside the recommendation.
type MatchDetails struct {
	Quality        float64 `json:"quality"`
	Cost           float64 `json:"cost"`
	Sustainability float64 `json:"sustainability"`
	Durability     float64 `json:"durability"`
}

// Recommendation pairs a candidate with its weighted score in [0, 1].
type Recommendation struct {
	Candidate Candidate    `json:"candidate"`
	Score     float64      `json:"score"`
	Details   MatchDetails `json:"match_details"`
}

// Rank scores every candidate against the priority weights and returns the
// list ordered by descending score, ties broken by ascending candidate ID
// so equal-scoring materials always list in the same order. An empty
// candidate list yields an empty result.
//
// The artifact metadata rides along for callers that annotate
// recommendations with artifact-specific notes; the scoring model itself is
// a pure function of candidate properties and weights.
func Rank(candidates []Candidate, md artifact.Metadata, weights Weights) []Recommendation {
	recommendations := make([]Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		details := MatchDetails{
			Quality:        clamp01(float64(candidate.Properties.PrintQuality)/100) * weights.Quality / 100,
			Cost:           costTierScores[candidate.Properties.CostTier] * weights.Cost / 100,
			Sustainability: clamp01(float64(candidate.Properties.Sustainability)/100) * weights.Sustainability / 100,
			Durability:     durabilityScores[candidate.Properties.Durability] * weights.Durability / 100,
		}
		recommendations = append(recommendations, Recommendation{
			Candidate: candidate,
			Score:     details.Quality + details.Cost + details.Sustainability + details.Durability,
			Details:   details,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].Candidate.ID < recommendations[j].Candidate.ID
	})
	return recommendations
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
