package names

import (
	"regexp"
	"strings"

	"call-annotator-go/internal/types"
)

// Strong self-introduction patterns, tried in order. Used by pass 1 and by
// the segment-level override.
var selfIntroPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?i:this is)\s+` + candidate),
	regexp.MustCompile(`\b(?i:i'?m)\s+` + candidate),
	regexp.MustCompile(`\b(?i:i am)\s+` + candidate),
	regexp.MustCompile(`\b(?i:my name is)\s+` + candidate),
	regexp.MustCompile(`\b` + candidate + `,\s+(?i:this is|i'?m|speaking)\b`),
}

var greetingPattern = regexp.MustCompile(`\b(?i:hi|hello|hey),?\s+` + candidate)

// Marker phrases that make a standalone greeting trustworthy in pass 2.
var selfIntroMarkers = []string{"this is", "i'm", "i am", "my name is"}

// Referential phrases for pass 3; built per candidate name.
var referentialForms = []string{
	`\bcalling\s+for\s+%s\b`,
	`\blooking\s+for\s+%s\b`,
	`\bspeak\s+for\s+%s\b`,
	`\bspeak\s+with\s+%s\b`,
}

// ResolveSpeakers runs passes 1-3 over the labeled segments and returns the
// speaker id -> name mapping. Each pass takes the mapping built so far and
// returns an updated copy; names already bound count as consumed.
func ResolveSpeakers(segments []types.Segment, candidates []string) map[string]string {
	set := candidateSet(candidates)
	mapping := map[string]string{}
	mapping = passSelfIntro(segments, set, mapping)
	mapping = passGreeting(segments, set, mapping)
	mapping = passReferential(segments, candidates, mapping)
	return mapping
}

// passSelfIntro binds each still-unmapped speaker to the first known,
// unconsumed name it introduces itself with.
func passSelfIntro(segments []types.Segment, set map[string]bool, prior map[string]string) map[string]string {
	mapping := copyMapping(prior)
	for _, seg := range segments {
		if _, ok := mapping[seg.Speaker]; ok {
			continue
		}
		if name := firstSelfIntro(seg.Text, set, consumedNames(mapping)); name != "" {
			mapping[seg.Speaker] = name
		}
	}
	return mapping
}

// passGreeting handles "Hi, Y ... This is Z" segments: the current speaker is
// Z, not the greeted party. A standalone greeting binds Y only when the same
// segment carries a self-intro marker elsewhere in its text.
func passGreeting(segments []types.Segment, set map[string]bool, prior map[string]string) map[string]string {
	mapping := copyMapping(prior)
	for _, seg := range segments {
		if _, ok := mapping[seg.Speaker]; ok {
			continue
		}
		m := greetingPattern.FindStringSubmatch(seg.Text)
		if m == nil {
			continue
		}
		consumed := consumedNames(mapping)
		if name := firstSelfIntro(seg.Text, set, consumed); name != "" {
			mapping[seg.Speaker] = name
			continue
		}
		greeted := strings.TrimSpace(m[1])
		if !validCandidate(greeted) || !set[greeted] || consumed[greeted] {
			continue
		}
		if containsSelfIntroMarker(seg.Text) {
			mapping[seg.Speaker] = greeted
		}
	}
	return mapping
}

// passReferential assigns a name mentioned in a "calling for X" style phrase
// to the first distinct, still-unmapped speaker other than the one who said
// it: the utterer is presumed to be addressing someone else.
func passReferential(segments []types.Segment, candidates []string, prior map[string]string) map[string]string {
	mapping := copyMapping(prior)
	for _, name := range candidates {
		if consumedNames(mapping)[name] {
			continue
		}
		for _, seg := range segments {
			if !referencedIn(seg.Text, name) {
				continue
			}
			if other := firstOtherUnmapped(segments, seg.Speaker, mapping); other != "" {
				mapping[other] = name
			}
			break
		}
	}
	return mapping
}

// ApplyNames writes resolved names back onto the segments. A self-intro in a
// segment's own text overrides the mapping for that segment, and may reuse a
// name already bound elsewhere; unmapped speakers keep their placeholder.
func ApplyNames(segments []types.Segment, mapping map[string]string, candidates []string) {
	set := candidateSet(candidates)
	for i := range segments {
		if name := firstSelfIntro(segments[i].Text, set, nil); name != "" {
			segments[i].Speaker = name
			continue
		}
		if name, ok := mapping[segments[i].Speaker]; ok {
			segments[i].Speaker = name
		}
	}
}

func firstSelfIntro(text string, set map[string]bool, consumed map[string]bool) string {
	for _, re := range selfIntroPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if validCandidate(name) && set[name] && !consumed[name] {
				return name
			}
		}
	}
	return ""
}

func containsSelfIntroMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range selfIntroMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func referencedIn(text, name string) bool {
	for _, form := range referentialForms {
		re := regexp.MustCompile(`(?i)` + strings.Replace(form, "%s", regexp.QuoteMeta(name), 1))
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// firstOtherUnmapped returns the first speaker id in segment order that is
// distinct from exclude and has no binding yet.
func firstOtherUnmapped(segments []types.Segment, exclude string, mapping map[string]string) string {
	for _, seg := range segments {
		if seg.Speaker == exclude {
			continue
		}
		if _, ok := mapping[seg.Speaker]; !ok {
			return seg.Speaker
		}
	}
	return ""
}

func candidateSet(candidates []string) map[string]bool {
	set := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		set[c] = true
	}
	return set
}

func consumedNames(mapping map[string]string) map[string]bool {
	consumed := make(map[string]bool, len(mapping))
	for _, name := range mapping {
		consumed[name] = true
	}
	return consumed
}

func copyMapping(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
