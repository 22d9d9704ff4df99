package moments

import (
	"strings"

	"github.com/clipworks/ecc/internal/types"
)

// Feature keys produced by ExtractFeatures. The feature map is open-ended;
// new keys may be added without breaking consumers.
const (
	FeatureDurationMS     = "duration_ms"
	FeatureWordCount      = "word_count"
	FeatureWordsPerSecond = "words_per_second"
)

// ExtractFeatures computes text/duration features for heuristic scoring. It
// trusts the candidate's explicit duration and word count when present and
// derives them otherwise.
func ExtractFeatures(cand types.CandidateSegment) map[string]float64 {
	durationMS := cand.DurationMS
	if durationMS == 0 {
		durationMS = cand.EndMS - cand.StartMS
		if durationMS < 1 {
			durationMS = 1
		}
	}
	wordCount := cand.WordCount
	if wordCount == 0 {
		wordCount = len(strings.Fields(cand.Text))
	}

	// 0.1s floor keeps the pace feature finite for near-zero durations.
	durationSec := float64(durationMS) / 1000.0
	if durationSec < 0.1 {
		durationSec = 0.1
	}

	return map[string]float64{
		FeatureDurationMS:     float64(durationMS),
		FeatureWordCount:      float64(wordCount),
		FeatureWordsPerSecond: float64(wordCount) / durationSec,
	}
}
