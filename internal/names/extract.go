// Package names finds person names in call transcripts and maps them onto
// diarization speaker ids.
package names

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// candidate captures one or two capitalized tokens; case is enforced by
// validCandidate, not the pattern, because the anchors match case-insensitively.
const candidate = `([A-Za-z][A-Za-z']*(?:\s+[A-Z][A-Za-z']*)?)`

// Ordered pattern classes: self-introduction, greeting, name-first,
// referential, direct address, transfer. Case-insensitivity is scoped to the
// anchor words so the capture cannot swallow a following lowercase word.
var extractionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?i:this is)\s+` + candidate),
	regexp.MustCompile(`\b(?i:i'?m)\s+` + candidate),
	regexp.MustCompile(`\b(?i:i am)\s+` + candidate),
	regexp.MustCompile(`\b(?i:my name is)\s+` + candidate),
	regexp.MustCompile(`\b(?i:call me)\s+` + candidate),
	regexp.MustCompile(`\b(?i:hi|hello|hey),?\s+` + candidate),
	regexp.MustCompile(`\b` + candidate + `,\s+(?i:this is|i'?m|i am|speaking|here)\b`),
	regexp.MustCompile(`\b(?i:(?:calling|speaking|looking|asking)\s+for)\s+` + candidate),
	regexp.MustCompile(`\b(?i:speak\s+(?:for|with))\s+` + candidate),
	regexp.MustCompile(`\b` + candidate + `,\s+(?i:you|your)\b`),
	regexp.MustCompile(`\b(?i:thank you for holding)\b[^.?!]*?,\s*` + candidate),
}

// stopWords are function words and greeting fillers that the capture groups
// pick up but can never be names.
var stopWords = map[string]bool{
	"a": true, "about": true, "afternoon": true, "again": true, "all": true,
	"am": true, "an": true, "and": true, "are": true, "back": true, "be": true,
	"been": true, "but": true, "bye": true, "calling": true, "can": true,
	"everybody": true, "everyone": true, "evening": true, "fine": true,
	"folks": true, "good": true, "great": true, "guys": true, "he": true,
	"hello": true, "her": true, "here": true, "hey": true, "hi": true,
	"him": true, "his": true, "holding": true, "how": true, "i": true,
	"is": true, "it": true, "just": true, "like": true, "ma'am": true,
	"madam": true, "me": true, "morning": true, "my": true, "no": true,
	"not": true, "now": true, "ok": true, "okay": true, "one": true,
	"or": true, "our": true, "please": true, "really": true, "right": true,
	"she": true, "sir": true, "so": true, "sorry": true, "speaking": true,
	"still": true, "sure": true, "team": true, "thank": true, "thanks": true,
	"that": true, "the": true, "them": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "today": true,
	"tomorrow": true, "tonight": true, "us": true, "very": true, "was": true,
	"we": true, "well": true, "what": true, "when": true, "where": true,
	"who": true, "why": true, "yeah": true, "yes": true, "you": true,
	"your": true,
}

// ExtractNames scans the transcript with the ordered pattern list and returns
// the distinct accepted candidates, sorted. Deterministic and idempotent.
func ExtractNames(text string) []string {
	seen := map[string]bool{}
	for _, re := range extractionPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if validCandidate(name) && !seen[name] {
				seen[name] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// validCandidate accepts a span whose first character is uppercase, whose
// first sub-word length is within [2,20], and whose lowercase form is not a
// stop word.
func validCandidate(name string) bool {
	if name == "" {
		return false
	}
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	first := strings.Fields(name)[0]
	if len(first) < 2 || len(first) > 20 {
		return false
	}
	return !stopWords[strings.ToLower(name)]
}
