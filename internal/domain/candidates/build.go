package candidates

import (
	"fmt"
	"strings"

	"github.com/clipworks/ecc/internal/errs"
	"github.com/clipworks/ecc/internal/types"
)

// Options bounds the duration of chunked candidate windows.
type Options struct {
	MinWindowMS int64
	MaxWindowMS int64
}

func DefaultOptions() Options {
	return Options{MinWindowMS: 3000, MaxWindowMS: 8000}
}

// Build aligns normalized transcript segments to scene windows and chunks the
// overlapping text into duration-bounded clip candidates, in scene order.
// Any invalid scene aborts the whole build; no partial list is returned.
func Build(segments []types.TranscriptSegment, scenes []types.Scene, opts Options) ([]types.CandidateSegment, error) {
	var out []types.CandidateSegment
	for _, scene := range scenes {
		if err := validateScene(scene); err != nil {
			return nil, err
		}
		overlapping := clampToScene(segments, scene)
		if len(overlapping) == 0 {
			continue
		}
		out = append(out, chunkScene(overlapping, scene, opts)...)
	}
	return out, nil
}

func validateScene(scene types.Scene) error {
	if scene.SceneID < 0 {
		return errs.Wrap(errs.ErrValidation, "candidates", "build",
			fmt.Sprintf("scene_id must be non-negative, got %d", scene.SceneID), nil)
	}
	if scene.StartMS < 0 || scene.EndMS <= scene.StartMS {
		return errs.Wrap(errs.ErrValidation, "candidates", "build",
			fmt.Sprintf("scene %d has invalid interval [%d, %d)", scene.SceneID, scene.StartMS, scene.EndMS), nil)
	}
	return nil
}

// clampToScene keeps segments overlapping the scene's half-open interval and
// clamps them to its boundaries.
func clampToScene(segments []types.TranscriptSegment, scene types.Scene) []types.TranscriptSegment {
	var out []types.TranscriptSegment
	for _, seg := range segments {
		if seg.EndMS <= scene.StartMS || seg.StartMS >= scene.EndMS {
			continue
		}
		startMS := max(scene.StartMS, seg.StartMS)
		endMS := min(scene.EndMS, seg.EndMS)
		if endMS <= startMS {
			continue
		}
		out = append(out, types.TranscriptSegment{
			StartMS: startMS,
			EndMS:   endMS,
			Text:    strings.TrimSpace(seg.Text),
		})
	}
	return out
}

// window is the in-progress accumulator used while chunking a scene's
// transcript into candidates.
type window struct {
	startMS  int64
	endMS    int64
	parts    []string
	segments int
}

func newWindow(seg types.TranscriptSegment) window {
	return window{startMS: seg.StartMS, endMS: seg.EndMS, parts: []string{seg.Text}, segments: 1}
}

func (w *window) extend(seg types.TranscriptSegment) {
	w.endMS = seg.EndMS
	w.parts = append(w.parts, seg.Text)
	w.segments++
}

func (w window) text() string {
	nonEmpty := make([]string, 0, len(w.parts))
	for _, p := range w.parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.TrimSpace(strings.Join(nonEmpty, " "))
}

func chunkScene(segments []types.TranscriptSegment, scene types.Scene, opts Options) []types.CandidateSegment {
	var out []types.CandidateSegment

	win := newWindow(segments[0])
	for _, seg := range segments[1:] {
		if seg.EndMS-win.startMS > opts.MaxWindowMS {
			out = flushWindow(out, win, scene, opts.MinWindowMS)
			win = newWindow(seg)
			continue
		}
		win.extend(seg)
	}
	out = flushWindow(out, win, scene, opts.MinWindowMS)

	if len(out) == 0 {
		// Every window fell below the minimum: emit one candidate covering the
		// whole scene so transcript coverage always yields at least one.
		out = fallbackCandidate(segments, scene)
	}
	return out
}

// flushWindow emits the window as a candidate when it clears the minimum
// duration and carries text. Sub-threshold windows are dropped.
func flushWindow(out []types.CandidateSegment, win window, scene types.Scene, minWindowMS int64) []types.CandidateSegment {
	durationMS := win.endMS - win.startMS
	if durationMS < minWindowMS {
		return out
	}
	text := win.text()
	if text == "" {
		return out
	}
	return append(out, types.CandidateSegment{
		CandidateID:  candidateID(scene.SceneID, len(out)),
		SceneID:      scene.SceneID,
		StartMS:      win.startMS,
		EndMS:        win.endMS,
		Text:         text,
		DurationMS:   durationMS,
		WordCount:    len(strings.Fields(text)),
		SegmentCount: win.segments,
	})
}

func fallbackCandidate(segments []types.TranscriptSegment, scene types.Scene) []types.CandidateSegment {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return nil
	}
	return []types.CandidateSegment{{
		CandidateID:  candidateID(scene.SceneID, 0),
		SceneID:      scene.SceneID,
		StartMS:      scene.StartMS,
		EndMS:        scene.EndMS,
		Text:         text,
		DurationMS:   max(1, scene.EndMS-scene.StartMS),
		WordCount:    len(strings.Fields(text)),
		SegmentCount: len(segments),
	}}
}

func candidateID(sceneID int64, index int) string {
	return fmt.Sprintf("scene-%d-%d", sceneID, index)
}
