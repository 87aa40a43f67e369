// Package diarize labels transcript segments with speaker ids, either from
// diarization turns or from a gap heuristic when no diarizer ran.
package diarize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"call-annotator-go/internal/types"
)

// Unknown is the placeholder assigned when no turn covers a segment at all.
const Unknown = "Unknown"

// gapThreshold is the silence (seconds) between consecutive segments that
// makes the fallback heuristic switch speakers.
const gapThreshold = 1.0

var speakerLabelRe = regexp.MustCompile(`^Speaker \d+$`)

// Assign labels every segment in place. With turns it matches segments to
// turns by midpoint, then by overlap; without turns it alternates two
// speakers on silence gaps. It always terminates with every segment labeled.
func Assign(segments []types.Segment, turns []types.DiarizationTurn) {
	if len(turns) == 0 {
		for i, id := range gapSpeakerIDs(segments) {
			segments[i].Speaker = SpeakerLabel(id)
		}
		return
	}
	for i := range segments {
		segments[i].Speaker = NormalizeLabel(turnLabel(segments[i], turns))
	}
}

// turnLabel picks the turn containing the segment midpoint, falling back to
// the turn with the largest overlap. Only a strictly larger overlap replaces
// the current best, so the first turn found wins ties.
func turnLabel(seg types.Segment, turns []types.DiarizationTurn) string {
	mid := (seg.Start + seg.End) / 2
	for _, t := range turns {
		if t.Start <= mid && mid <= t.End {
			return t.Speaker
		}
	}
	best := ""
	bestOverlap := 0.0
	for _, t := range turns {
		overlap := min(seg.End, t.End) - max(seg.Start, t.Start)
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = t.Speaker
		}
	}
	if best == "" {
		return Unknown
	}
	return best
}

// gapSpeakerIDs is the diarization-free heuristic: the first segment is
// speaker 0 and the id toggles between 0 and 1 whenever the silence before a
// segment exceeds the threshold.
func gapSpeakerIDs(segments []types.Segment) []int {
	ids := make([]int, len(segments))
	cur := 0
	for i := range segments {
		if i > 0 && segments[i].Start-segments[i-1].End > gapThreshold {
			cur = 1 - cur
		}
		ids[i] = cur
	}
	return ids
}

// SpeakerLabel renders a zero-based numeric speaker id as "Speaker N".
func SpeakerLabel(id int) string {
	return fmt.Sprintf("Speaker %d", id+1)
}

// NormalizeLabel maps raw diarization labels onto the 1-based "Speaker N"
// form. Purely numeric labels ("0", "SPEAKER_01") are treated as zero-based;
// anything else passes through unchanged.
func NormalizeLabel(label string) string {
	s := strings.TrimSpace(label)
	if s == "" {
		return Unknown
	}
	trimmed := strings.TrimPrefix(strings.ToUpper(s), "SPEAKER_")
	if n, err := strconv.Atoi(trimmed); err == nil {
		return SpeakerLabel(n)
	}
	return s
}

// IsPlaceholder reports whether a label is an unresolved speaker token rather
// than a person name.
func IsPlaceholder(label string) bool {
	return label == "" || label == Unknown || speakerLabelRe.MatchString(label)
}
