package dataset

import (
	"strings"

	"call-annotator-go/internal/types"
)

// secondsPerSentence approximates timing for fixture transcripts that come
// without timestamps.
const secondsPerSentence = 3.0

// Segments turns a bare transcript into synthetic contiguous segments, one
// per sentence, so fixture rows can run through the same pipeline as real
// ASR output.
func Segments(transcript string) []types.Segment {
	var out []types.Segment
	start := 0.0
	for i, sentence := range splitSentences(transcript) {
		out = append(out, types.Segment{
			ID:    i,
			Start: start,
			End:   start + secondsPerSentence,
			Text:  sentence,
		})
		start += secondsPerSentence
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); s != "" {
				out = append(out, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}
