// internal/types/api_models.go
package types

// --------------------------------------------
// Request for the /annotate endpoint: callers
// that already have ASR output skip the engines.
// --------------------------------------------
type AnnotateRequest struct {
	Transcript string            `json:"transcript"`
	Segments   []Segment         `json:"segments"`
	Turns      []DiarizationTurn `json:"turns,omitempty"`
}

// --------------------------------------------
// FINAL output delivered to the caller
// --------------------------------------------
type TranscribeResponse struct {
	Success           bool              `json:"success"`
	Transcription     string            `json:"transcription"`
	LanguageDetected  string            `json:"language_detected,omitempty"`
	LanguageRequested string            `json:"language_requested,omitempty"`
	Segments          []Segment         `json:"transcription_with_speakers"`
	Summary           string            `json:"summary"`
	ActionItems       []ActionItem      `json:"action_items"`
	SpeakerNames      map[string]string `json:"speaker_names"`
	Metadata          Metadata          `json:"metadata"`
}

// --------------------------------------------
// Call metadata block
// --------------------------------------------
type Metadata struct {
	Filename         string  `json:"filename,omitempty"`
	FileSize         int64   `json:"file_size,omitempty"`
	Duration         float64 `json:"duration"`
	TotalSpeakers    int     `json:"total_speakers"`
	TotalActionItems int     `json:"total_action_items"`
}
