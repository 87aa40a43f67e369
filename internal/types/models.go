package types

// Segment is one timestamped span of recognized text from the ASR engine.
// Speaker starts empty and is filled in by the assigner and resolver.
type Segment struct {
	ID      int     `json:"id"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// DiarizationTurn is a speaker-homogeneous interval from the diarization engine.
type DiarizationTurn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// ActionItem is an obligation statement extracted from one segment.
type ActionItem struct {
	Assignee    string  `json:"assignee"`
	Description string  `json:"description"`
	Speaker     string  `json:"speaker"`
	Timestamp   float64 `json:"timestamp"`
	Date        string  `json:"date,omitempty"`
	Time        string  `json:"time,omitempty"`
}

// Annotation is the assembled output of one pipeline run.
type Annotation struct {
	Segments     []Segment         `json:"transcription_with_speakers"`
	Transcript   string            `json:"transcript"`
	Summary      string            `json:"summary"`
	ActionItems  []ActionItem      `json:"action_items"`
	SpeakerNames map[string]string `json:"speaker_names"`
}
