package transcription

import (
	"context"

	"call-annotator-go/internal/types"
)

// MockEngine returns a canned two-party call without touching the network.
// Enabled with USE_MOCK_TRANSCRIBE=true, same switch the real deployments use
// for demos.
type MockEngine struct{}

func (MockEngine) Transcribe(ctx context.Context, audioPath, language string) (Result, error) {
	segs := []types.Segment{
		{ID: 0, Start: 0, End: 5, Text: "Thank you for calling. No group. This is Fania."},
		{ID: 1, Start: 5, End: 6, Text: "How many help you?"},
		{ID: 2, Start: 6, End: 8, Text: "Hi, Tania. This is Anthony."},
		{ID: 3, Start: 8, End: 12, Text: "I'm calling from added. I was looking to speak for Gina."},
		{ID: 4, Start: 15, End: 18, Text: "Thank you for holding this, Gina."},
		{ID: 5, Start: 18, End: 20, Text: "Hi, Gina. This is Anthony."},
	}
	text := ""
	for i, s := range segs {
		if i > 0 {
			text += " "
		}
		text += s.Text
	}
	lang := language
	if lang == "" {
		lang = "en"
	}
	return Result{Text: text, Language: lang, Segments: segs}, nil
}
