package moments

import (
	"sort"

	"github.com/clipworks/ecc/internal/types"
)

// SelectOptions constrains the final clip set.
type SelectOptions struct {
	TargetMinSec  int
	TargetMaxSec  int
	MaxCandidates int
}

func DefaultSelectOptions() SelectOptions {
	return SelectOptions{TargetMinSec: 30, TargetMaxSec: 45, MaxCandidates: 12}
}

// Select greedily picks scored candidates so the total duration lands inside
// the target window. The first pass takes best-scored candidates while
// respecting the duration ceiling; when the floor is still unmet a second
// pass re-scans without the ceiling, trading overshoot for reaching the
// minimum. Candidates overlapping an already-selected candidate in the same
// scene are never taken. The result is ordered by (start_ms, end_ms).
func Select(cands []types.ScoredCandidate, opts SelectOptions) []types.ScoredCandidate {
	ranked := make([]types.ScoredCandidate, len(cands))
	copy(ranked, cands)
	// Stable so equal scores keep input order, which keeps selection
	// deterministic.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	minTotalMS := int64(opts.TargetMinSec) * 1000
	maxTotalMS := int64(opts.TargetMaxSec) * 1000

	var selected []types.ScoredCandidate
	taken := make([]bool, len(ranked))
	var totalMS int64

	for i, cand := range ranked {
		if len(selected) >= opts.MaxCandidates {
			break
		}
		if cand.DurationMS <= 0 || overlapsAny(cand, selected) {
			continue
		}
		if totalMS+cand.DurationMS <= maxTotalMS {
			selected = append(selected, cand)
			taken[i] = true
			totalMS += cand.DurationMS
		}
	}

	if totalMS < minTotalMS {
		for i, cand := range ranked {
			if taken[i] {
				continue
			}
			if len(selected) >= opts.MaxCandidates {
				break
			}
			if cand.DurationMS <= 0 || overlapsAny(cand, selected) {
				continue
			}
			selected = append(selected, cand)
			taken[i] = true
			totalMS += cand.DurationMS
			if totalMS >= minTotalMS {
				break
			}
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].StartMS != selected[j].StartMS {
			return selected[i].StartMS < selected[j].StartMS
		}
		return selected[i].EndMS < selected[j].EndMS
	})
	return selected
}

// overlapsAny reports whether cand shares time with any already-selected
// candidate from the same scene. Candidates from different scenes never
// conflict.
func overlapsAny(cand types.ScoredCandidate, selected []types.ScoredCandidate) bool {
	for _, s := range selected {
		if cand.SceneID != s.SceneID {
			continue
		}
		if cand.EndMS > s.StartMS && cand.StartMS < s.EndMS {
			return true
		}
	}
	return false
}
