// Package actions extracts obligation statements ("I'll send the report
// tomorrow") from speaker-labeled segments.
package actions

import (
	"regexp"
	"strings"

	"call-annotator-go/internal/types"
)

type assigneeKind int

const (
	kindSelf assigneeKind = iota
	kindOther
	kindBoth
	kindUnknown
)

// BothAssignee marks an obligation shared by the speakers on the call.
const BothAssignee = "Both speakers"

type rule struct {
	re   *regexp.Regexp
	kind assigneeKind
}

// clause bounds the captured description to [10,150] characters.
const clause = `([^.!?\n]{10,150})`

// Ordered obligation rules; on each segment the first rule that yields a
// surviving action wins and no further rules are tried for that segment.
var rules = []rule{
	{regexp.MustCompile(`(?i)\bi(?:'ll| will)\s+` + clause), kindSelf},
	{regexp.MustCompile(`(?i)\bi need to\s+` + clause), kindSelf},
	{regexp.MustCompile(`(?i)\bi have to\s+` + clause), kindSelf},
	{regexp.MustCompile(`(?i)\blet me\s+` + clause), kindSelf},
	{regexp.MustCompile(`(?i)\byou (?:will|need to|should|have to)\s+` + clause), kindOther},
	{regexp.MustCompile(`(?i)\bcan you\s+` + clause), kindOther},
	{regexp.MustCompile(`(?i)\bcould you\s+` + clause), kindOther},
	{regexp.MustCompile(`(?i)\bwe (?:will|'ll|need to|should)\s+` + clause), kindBoth},
	{regexp.MustCompile(`(?i)\b(?:action item|action|task|todo|follow[- ]?up)\s+is\s+(?:to\s+)?` + clause), kindUnknown},
}

// Date phrases, first hit wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:today|tomorrow|tonight)\b`),
	regexp.MustCompile(`(?i)\b(?:next|this)\s+(?:week|month|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
	regexp.MustCompile(`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`),
}

// Time phrases, first hit wins.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`),
	regexp.MustCompile(`\b\d{1,2}:\d{2}\b`),
	regexp.MustCompile(`(?i)\b(?:noon|midnight|end of day)\b`),
	regexp.MustCompile(`(?i)\b(?:morning|afternoon|evening)\b`),
}

// Extract walks the segments in order and returns the surviving action items
// chronologically. At most one action is taken per segment; duplicates are
// dropped by case-insensitive containment against everything accepted so far.
func Extract(segments []types.Segment) []types.ActionItem {
	items := []types.ActionItem{}
	for _, seg := range segments {
		for _, r := range rules {
			m := r.re.FindStringSubmatch(seg.Text)
			if m == nil {
				continue
			}
			desc := strings.TrimSpace(m[1])
			if isDuplicate(desc, items) {
				continue
			}
			item := types.ActionItem{
				Assignee:    resolveAssignee(r.kind, seg.Speaker, segments),
				Description: desc,
				Speaker:     seg.Speaker,
				Timestamp:   seg.Start,
				Date:        firstMatch(datePatterns, seg.Text),
				Time:        firstMatch(timePatterns, seg.Text),
			}
			items = append(items, item)
			break
		}
	}
	return items
}

func resolveAssignee(kind assigneeKind, speaker string, segments []types.Segment) string {
	switch kind {
	case kindOther:
		if other := firstOtherSpeaker(segments, speaker); other != "" {
			return other
		}
		return speaker
	case kindBoth:
		return BothAssignee
	default:
		// self and unknown both fall to the current speaker
		return speaker
	}
}

// firstOtherSpeaker returns the first speaker id in the whole collection that
// differs from the given one.
func firstOtherSpeaker(segments []types.Segment, speaker string) string {
	for _, seg := range segments {
		if seg.Speaker != speaker {
			return seg.Speaker
		}
	}
	return ""
}

// isDuplicate drops a description that equals, contains, or is contained in
// any earlier accepted description, ignoring case. Earlier items always win.
func isDuplicate(desc string, accepted []types.ActionItem) bool {
	lower := strings.ToLower(desc)
	for _, it := range accepted {
		prev := strings.ToLower(it.Description)
		if lower == prev || strings.Contains(prev, lower) || strings.Contains(lower, prev) {
			return true
		}
	}
	return false
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
