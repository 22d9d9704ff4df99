package transcript

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipworks/ecc/internal/types"
)

// Options controls merging and splitting thresholds. Zero values are not
// defaulted here; callers thread explicit configuration through every call.
type Options struct {
	// MinSegmentMS merges segments shorter than this into their predecessor.
	MinSegmentMS int64
	// MaxGapMS merges segments whose gap to the predecessor is at most this.
	MaxGapMS int64
	// MaxSegmentMS splits flushed segments longer than this on sentence
	// boundaries when possible.
	MaxSegmentMS int64
}

func DefaultOptions() Options {
	return Options{MinSegmentMS: 600, MaxGapMS: 200, MaxSegmentMS: 8000}
}

// Normalize collapses whitespace, drops empty segments, merges tiny fragments
// and tiny gaps into their predecessor, and splits over-long results on
// sentence punctuation. The input is assumed time-ordered; the output keeps
// that order.
func Normalize(segments []types.TranscriptSegment, opts Options) []types.TranscriptSegment {
	var out []types.TranscriptSegment
	var current types.TranscriptSegment
	have := false

	for _, seg := range segments {
		text := collapseWhitespace(seg.Text)
		if text == "" {
			continue
		}
		seg.Text = text

		if !have {
			current = seg
			have = true
			continue
		}

		gapMS := seg.StartMS - current.EndMS
		if seg.DurationMS() < opts.MinSegmentMS || gapMS <= opts.MaxGapMS {
			current.EndMS = seg.EndMS
			current.Text = current.Text + " " + seg.Text
			continue
		}

		out = append(out, splitLong(current, opts.MaxSegmentMS)...)
		current = seg
	}

	if have {
		out = append(out, splitLong(current, opts.MaxSegmentMS)...)
	}
	return out
}

// splitLong breaks a segment exceeding maxSegmentMS on sentence-ending
// punctuation, distributing the original duration across parts proportionally
// to their character length. The last part absorbs rounding remainder up to
// the original end. Segments with no usable boundary are returned unsplit.
func splitLong(seg types.TranscriptSegment, maxSegmentMS int64) []types.TranscriptSegment {
	durationMS := seg.DurationMS()
	if durationMS <= maxSegmentMS {
		return []types.TranscriptSegment{seg}
	}

	parts := splitSentences(seg.Text)
	if len(parts) <= 1 {
		return []types.TranscriptSegment{seg}
	}

	totalChars := 0
	for _, p := range parts {
		totalChars += utf8.RuneCountInString(p)
	}
	if totalChars == 0 {
		totalChars = 1
	}

	out := make([]types.TranscriptSegment, 0, len(parts))
	startMS := seg.StartMS
	for i, part := range parts {
		endMS := seg.EndMS
		if i < len(parts)-1 {
			share := int64(float64(durationMS) * float64(utf8.RuneCountInString(part)) / float64(totalChars))
			if share < 1 {
				share = 1
			}
			endMS = startMS + share
		}
		out = append(out, types.TranscriptSegment{StartMS: startMS, EndMS: endMS, Text: part})
		startMS = endMS
	}
	return out
}

// splitSentences cuts text after '.', '!' or '?' when followed by whitespace.
func splitSentences(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var parts []string
	runes := []rune(trimmed)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if part := strings.TrimSpace(string(runes[start : i+1])); part != "" {
			parts = append(parts, part)
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		if part := strings.TrimSpace(string(runes[start:])); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
