package moments

import (
	"math"

	"github.com/clipworks/ecc/internal/types"
)

// Score computes the heuristic engagement score for a candidate. Higher is
// better; the value is unbounded and may be negative.
func Score(cand types.CandidateSegment) float64 {
	return scoreFeatures(ExtractFeatures(cand))
}

// ScoreAll derives the scored view of a candidate list, attaching both the
// score and the features it was computed from.
func ScoreAll(cands []types.CandidateSegment) []types.ScoredCandidate {
	out := make([]types.ScoredCandidate, 0, len(cands))
	for _, cand := range cands {
		features := ExtractFeatures(cand)
		out = append(out, types.ScoredCandidate{
			CandidateSegment: cand,
			Score:            scoreFeatures(features),
			Features:         features,
		})
	}
	return out
}

func scoreFeatures(features map[string]float64) float64 {
	durationMS := features[FeatureDurationMS]
	wordCount := features[FeatureWordCount]
	wordsPerSecond := features[FeatureWordsPerSecond]

	score := 0.0

	// Mid-length clips (3-8s) are the sweet spot; very short or very long
	// ones are penalized.
	switch {
	case durationMS >= 3000 && durationMS <= 8000:
		score += 1.0
	case durationMS < 2000:
		score -= 0.5
	case durationMS > 12000:
		score -= 0.5
	}

	// Speaking pace as a rough energy proxy.
	score += math.Min(wordsPerSecond/3.0, 1.0)

	// Slight bonus for more content.
	score += math.Min(wordCount/40.0, 0.5)

	return score
}
