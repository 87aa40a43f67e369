// internal/pipeline/pipeline.go
package pipeline

import (
	"strings"

	"call-annotator-go/internal/actions"
	"call-annotator-go/internal/diarize"
	"call-annotator-go/internal/logger"
	"call-annotator-go/internal/names"
	"call-annotator-go/internal/summary"
	"call-annotator-go/internal/types"
)

// degradedSummary replaces the summary when its generator panics.
const degradedSummary = "Summary unavailable."

// Annotate runs the full inference pipeline over one call: speaker
// assignment, name extraction, speaker-name resolution, summary, and action
// items. Summary and action-item generation are fault-isolated; a failure in
// either degrades that field without aborting the run.
func Annotate(segs []types.Segment, turns []types.DiarizationTurn, transcript string) types.Annotation {
	log := logger.New().WithComponent("pipeline")

	// Work on a copy: callers keep their raw segments.
	segments := make([]types.Segment, len(segs))
	copy(segments, segs)

	diarize.Assign(segments, turns)

	if transcript == "" {
		transcript = joinSegmentText(segments)
	}

	candidates := names.ExtractNames(transcript)
	mapping := names.ResolveSpeakers(segments, candidates)
	names.ApplyNames(segments, mapping, candidates)
	log.WithField("names_found", len(candidates)).
		WithField("speakers_resolved", len(mapping)).
		Debug("speaker resolution done")

	result := types.Annotation{
		Segments:     segments,
		Transcript:   transcript,
		Summary:      degradedSummary,
		ActionItems:  []types.ActionItem{},
		SpeakerNames: mapping,
	}

	runIsolated("summary", func() {
		result.Summary = summary.Generate(transcript, segments)
	})
	runIsolated("action_items", func() {
		result.ActionItems = actions.Extract(segments)
	})

	return result
}

// runIsolated converts a panic in a generator stage into a logged warning so
// the remaining stages and the response still complete.
func runIsolated(stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.New().WithComponent("pipeline").
				WithField("stage", stage).
				WithField("panic", r).
				Warn("stage failed, using degraded output")
		}
	}()
	fn()
}

func joinSegmentText(segments []types.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Duration is the end time of the last segment, the call length reported in
// response metadata.
func Duration(segments []types.Segment) float64 {
	if len(segments) == 0 {
		return 0
	}
	return segments[len(segments)-1].End
}

// CountSpeakers returns the number of distinct speaker labels on the
// annotated segments.
func CountSpeakers(segments []types.Segment) int {
	seen := map[string]bool{}
	for _, seg := range segments {
		if seg.Speaker != "" {
			seen[seg.Speaker] = true
		}
	}
	return len(seen)
}
