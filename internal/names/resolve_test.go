package names

import (
	"testing"

	"call-annotator-go/internal/types"
)

func fixtureSegments() []types.Segment {
	return []types.Segment{
		{ID: 0, Start: 0, End: 5, Speaker: "Speaker 1", Text: "Thank you for calling. No group. This is Fania."},
		{ID: 1, Start: 5, End: 6, Speaker: "Speaker 1", Text: "How many help you?"},
		{ID: 2, Start: 6, End: 8, Speaker: "Speaker 2", Text: "Hi, Tania. This is Anthony."},
		{ID: 3, Start: 8, End: 12, Speaker: "Speaker 2", Text: "I'm calling from added. I was looking to speak for Gina."},
		{ID: 4, Start: 15, End: 18, Speaker: "Speaker 1", Text: "Thank you for holding this, Gina."},
		{ID: 5, Start: 18, End: 20, Speaker: "Speaker 1", Text: "Hi, Gina. This is Anthony."},
	}
}

func TestResolveSpeakersOnCallFixture(t *testing.T) {
	segs := fixtureSegments()
	candidates := ExtractNames(callTranscript)

	mapping := ResolveSpeakers(segs, candidates)
	if got := mapping["Speaker 2"]; got != "Anthony" {
		t.Errorf(`mapping["Speaker 2"] = %q, want "Anthony"`, got)
	}
	if got := mapping["Speaker 1"]; got != "Fania" {
		t.Errorf(`mapping["Speaker 1"] = %q, want "Fania"`, got)
	}
}

func TestResolveSpeakersBijectionOnCleanIntros(t *testing.T) {
	segs := []types.Segment{
		{Speaker: "Speaker 1", Text: "Good morning, this is Fernanda."},
		{Speaker: "Speaker 2", Text: "Hello, my name is Victor."},
		{Speaker: "Speaker 3", Text: "Hey all, I am Rosalind."},
	}
	candidates := ExtractNames("Good morning, this is Fernanda. Hello, my name is Victor. Hey all, I am Rosalind.")

	mapping := ResolveSpeakers(segs, candidates)
	if len(mapping) != 3 {
		t.Fatalf("mapping size = %d, want 3: %v", len(mapping), mapping)
	}
	seen := map[string]string{}
	for speaker, name := range mapping {
		if prev, dup := seen[name]; dup {
			t.Fatalf("name %q bound to both %q and %q", name, prev, speaker)
		}
		seen[name] = speaker
	}
}

func TestPassSelfIntroConsumesNames(t *testing.T) {
	// Two speakers claiming the same name: only the first binding sticks.
	segs := []types.Segment{
		{Speaker: "Speaker 1", Text: "This is Ramona."},
		{Speaker: "Speaker 2", Text: "No, this is Ramona."},
	}
	set := candidateSet([]string{"Ramona"})
	mapping := passSelfIntro(segs, set, map[string]string{})
	if mapping["Speaker 1"] != "Ramona" {
		t.Errorf(`Speaker 1 = %q, want "Ramona"`, mapping["Speaker 1"])
	}
	if _, ok := mapping["Speaker 2"]; ok {
		t.Errorf("Speaker 2 bound to %q, want unbound", mapping["Speaker 2"])
	}
}

func TestPassGreetingBindsIntroducerNotGreeted(t *testing.T) {
	segs := []types.Segment{
		{Speaker: "Speaker 2", Text: "Hi, Tania. This is Anthony."},
	}
	set := candidateSet([]string{"Anthony", "Tania"})
	mapping := passGreeting(segs, set, map[string]string{})
	if mapping["Speaker 2"] != "Anthony" {
		t.Fatalf(`Speaker 2 = %q, want "Anthony" (the introducer, not the greeted party)`, mapping["Speaker 2"])
	}
}

func TestPassGreetingStandaloneNeedsMarker(t *testing.T) {
	set := candidateSet([]string{"Maria"})

	plain := []types.Segment{{Speaker: "Speaker 1", Text: "Hello, Maria. How are you?"}}
	mapping := passGreeting(plain, set, map[string]string{})
	if _, ok := mapping["Speaker 1"]; ok {
		t.Fatalf("plain greeting bound Speaker 1 to %q, want unbound", mapping["Speaker 1"])
	}

	withMarker := []types.Segment{{Speaker: "Speaker 1", Text: "Hello, Maria. I am calling about my account."}}
	mapping = passGreeting(withMarker, set, map[string]string{})
	if mapping["Speaker 1"] != "Maria" {
		t.Fatalf(`Speaker 1 = %q, want "Maria" (greeting plus self-intro marker)`, mapping["Speaker 1"])
	}
}

func TestPassReferentialBindsOtherSpeaker(t *testing.T) {
	segs := []types.Segment{
		{Speaker: "Speaker 1", Text: "I'm calling for Gina."},
		{Speaker: "Speaker 2", Text: "One moment please."},
	}
	mapping := passReferential(segs, []string{"Gina"}, map[string]string{})
	if mapping["Speaker 2"] != "Gina" {
		t.Errorf(`Speaker 2 = %q, want "Gina"`, mapping["Speaker 2"])
	}
	if _, ok := mapping["Speaker 1"]; ok {
		t.Errorf("the referring speaker must stay unbound, got %q", mapping["Speaker 1"])
	}
}

func TestPassReferentialNoFreeSpeaker(t *testing.T) {
	segs := []types.Segment{
		{Speaker: "Speaker 1", Text: "I was looking to speak for Gina."},
	}
	mapping := passReferential(segs, []string{"Gina"}, map[string]string{"Speaker 1": "Anthony"})
	for speaker, name := range mapping {
		if name == "Gina" {
			t.Fatalf("Gina bound to %q, want no binding without a free other speaker", speaker)
		}
	}
}

func TestApplyNamesSegmentOverride(t *testing.T) {
	segs := fixtureSegments()
	candidates := ExtractNames(callTranscript)
	mapping := ResolveSpeakers(segs, candidates)
	ApplyNames(segs, mapping, candidates)

	if segs[0].Speaker != "Fania" {
		t.Errorf("segment 0 speaker = %q, want Fania", segs[0].Speaker)
	}
	if segs[1].Speaker != "Fania" {
		t.Errorf("segment 1 speaker = %q, want Fania (mapping, no own intro)", segs[1].Speaker)
	}
	if segs[2].Speaker != "Anthony" {
		t.Errorf("segment 2 speaker = %q, want Anthony", segs[2].Speaker)
	}
	// The last segment's own "This is Anthony" overrides the Speaker 1 ->
	// Fania binding for that segment alone.
	if segs[5].Speaker != "Anthony" {
		t.Errorf("segment 5 speaker = %q, want Anthony (own-text override)", segs[5].Speaker)
	}
	if segs[4].Speaker != "Fania" {
		t.Errorf("segment 4 speaker = %q, want Fania", segs[4].Speaker)
	}
}

func TestApplyNamesKeepsPlaceholderWhenUnmapped(t *testing.T) {
	segs := []types.Segment{{Speaker: "Speaker 3", Text: "Right, sounds fine."}}
	ApplyNames(segs, map[string]string{}, nil)
	if segs[0].Speaker != "Speaker 3" {
		t.Fatalf("speaker = %q, want placeholder retained", segs[0].Speaker)
	}
}
