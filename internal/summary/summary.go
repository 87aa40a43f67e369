// Package summary composes a short description of a call from topic keywords,
// resolved participants, and decision phrases.
package summary

import (
	"regexp"
	"sort"
	"strings"

	"call-annotator-go/internal/diarize"
	"call-annotator-go/internal/types"
)

const (
	fallbackWordLimit = 50
	fallbackCharLimit = 500
	maxDecisions      = 3
)

type topic struct {
	label    string
	keywords []string
}

// Topic table, matched as case-insensitive substrings; declaration order is
// the output order.
var topics = []topic{
	{"scheduling", []string{"schedule", "meeting", "appointment", "calendar", "reschedule"}},
	{"pricing", []string{"price", "pricing", "cost", "budget", "quote", "invoice"}},
	{"billing", []string{"billing", "payment", "refund", "charge"}},
	{"delivery", []string{"delivery", "shipping", "shipment", "order status"}},
	{"technical support", []string{"error", "not working", "broken", "bug", "issue", "troubleshoot"}},
	{"account", []string{"account", "password", "login", "verification", "register"}},
	{"follow-up", []string{"follow up", "follow-up", "callback", "call back"}},
}

// Decision phrase patterns; the trailing clause must land in [10,200] chars.
var decisionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwe (?:will|'ll)\s+([^.!?\n]{10,200})`),
	regexp.MustCompile(`(?i)\b(?:we )?agreed to\s+([^.!?\n]{10,200})`),
	regexp.MustCompile(`(?i)\bdecided to\s+([^.!?\n]{10,200})`),
	regexp.MustCompile(`(?i)\b(?:the )?(?:action|next step)s?(?: item)?\s+is\s+(?:to\s+)?([^.!?\n]{10,200})`),
}

// Generate builds the summary from the full transcript and the speaker-labeled
// segments. When no participants, topics, or decisions are found it falls
// back to an excerpt of the transcript itself.
func Generate(text string, segments []types.Segment) string {
	participants := participantNames(segments)
	mentioned := mentionedTopics(text)
	decisions := keyDecisions(text)

	var parts []string
	if len(participants) > 0 {
		parts = append(parts, "Participants: "+strings.Join(participants, ", "))
	}
	if len(mentioned) > 0 {
		parts = append(parts, "Topics discussed: "+strings.Join(mentioned, ", "))
	}
	if len(decisions) > 0 {
		parts = append(parts, "Key points: "+strings.Join(decisions, "; "))
	}
	if len(parts) > 0 {
		return strings.Join(parts, ". ") + "."
	}
	return excerpt(text)
}

// participantNames lists the distinct resolved speaker names, sorted.
// Placeholder labels are not participants.
func participantNames(segments []types.Segment) []string {
	seen := map[string]bool{}
	for _, seg := range segments {
		if !diarize.IsPlaceholder(seg.Speaker) && !seen[seg.Speaker] {
			seen[seg.Speaker] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func mentionedTopics(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				out = append(out, t.label)
				break
			}
		}
	}
	return out
}

// keyDecisions collects up to three distinct decision clauses in pattern-scan
// order.
func keyDecisions(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, re := range decisionPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			clause := strings.TrimSpace(m[1])
			if clause == "" || seen[clause] {
				continue
			}
			seen[clause] = true
			out = append(out, clause)
			if len(out) == maxDecisions {
				return out
			}
		}
	}
	return out
}

// excerpt is the no-signal fallback: long transcripts are abridged to their
// first 30 and last 20 words, short ones returned whole (capped at 500 chars).
func excerpt(text string) string {
	words := strings.Fields(text)
	if len(words) > fallbackWordLimit {
		head := strings.Join(words[:30], " ")
		tail := strings.Join(words[len(words)-20:], " ")
		return head + " ... " + tail
	}
	if len(text) > fallbackCharLimit {
		return text[:fallbackCharLimit]
	}
	return text
}
