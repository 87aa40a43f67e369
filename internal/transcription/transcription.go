// Package transcription holds the collaborator boundary: the ASR and
// diarization engines the annotator depends on, behind injectable interfaces.
package transcription

import (
	"context"

	"call-annotator-go/internal/types"
)

// Result is what an ASR engine produces for one audio file.
type Result struct {
	Text     string          `json:"text"`
	Language string          `json:"language"`
	Segments []types.Segment `json:"segments"`
}

// Engine converts an audio file into timestamped text segments.
type Engine interface {
	Transcribe(ctx context.Context, audioPath, language string) (Result, error)
}

// Diarizer partitions an audio file into speaker-homogeneous turns. A nil
// Diarizer is valid: the pipeline then uses its gap-based fallback.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string) ([]types.DiarizationTurn, error)
}
