package types

// Transcript is the artifact produced by the upstream ASR collaborator.
type Transcript struct {
	Segments []TranscriptSegment `json:"segments"`
}

// TranscriptSegment is a single timed span of speech. All times are
// milliseconds from the start of the source video.
type TranscriptSegment struct {
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
	Text    string `json:"text"`
}

func (s TranscriptSegment) DurationMS() int64 { return s.EndMS - s.StartMS }

// Scene is a contiguous video window reported by the upstream shot/cut
// detection collaborator. Scene lists arrive sorted and non-overlapping.
type Scene struct {
	SceneID int64 `json:"scene_id"`
	StartMS int64 `json:"start_ms"`
	EndMS   int64 `json:"end_ms"`
}

// CandidateSegment is a prospective short clip: a scene-bounded window with
// the transcript text it covers. Its interval is always contained in its
// scene's interval.
type CandidateSegment struct {
	CandidateID  string `json:"candidate_id"`
	SceneID      int64  `json:"scene_id"`
	StartMS      int64  `json:"start_ms"`
	EndMS        int64  `json:"end_ms"`
	Text         string `json:"text"`
	DurationMS   int64  `json:"duration_ms"`
	WordCount    int    `json:"word_count"`
	SegmentCount int    `json:"segment_count"`
}

// ScoredCandidate is the read-only scored view of a candidate. Features is an
// open map so scoring inputs can grow without schema changes.
type ScoredCandidate struct {
	CandidateSegment
	Score    float64            `json:"score"`
	Features map[string]float64 `json:"features"`
}
