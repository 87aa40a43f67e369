package names

import (
	"reflect"
	"testing"
)

const callTranscript = "Thank you for calling. No group. This is Fania. How many help you? " +
	"Hi, Tania. This is Anthony. I'm calling from added. I was looking to speak for Gina. " +
	"Okay. Let me see if she's available. Do you mind holding this moment? Sure. No problem. " +
	"Thank you for holding this, Gina. Hi, Gina. This is Anthony."

func TestExtractNamesFromCall(t *testing.T) {
	got := ExtractNames(callTranscript)
	for _, want := range []string{"Anthony", "Fania", "Gina", "Tania"} {
		if !contains(got, want) {
			t.Errorf("ExtractNames missing %q, got %v", want, got)
		}
	}
}

func TestExtractNamesIdempotent(t *testing.T) {
	first := ExtractNames(callTranscript)
	second := ExtractNames(callTranscript)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-run changed result: %v vs %v", first, second)
	}
}

func TestExtractNamesSorted(t *testing.T) {
	got := ExtractNames("This is Zoe. Hi, Albert. My name is Marcus.")
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("result not strictly sorted: %v", got)
		}
	}
}

func TestExtractNamesRejectsNoise(t *testing.T) {
	cases := []struct {
		text string
		bad  string
	}{
		{"I'm calling about my order.", "calling"},
		{"Hi, there. How are you?", "there"},
		{"This is good news for everyone.", "good"},
		{"Hello, everyone, welcome to the call.", "everyone"},
		{"This is J.", "J"}, // first sub-word shorter than 2
	}
	for _, c := range cases {
		got := ExtractNames(c.text)
		if contains(got, c.bad) {
			t.Errorf("ExtractNames(%q) accepted %q: %v", c.text, c.bad, got)
		}
	}
}

func TestExtractNamesPatternClasses(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"My name is Priya and I can help.", "Priya"},
		{"Please call me Daniel.", "Daniel"},
		{"Marcus, this is the front desk.", "Marcus"},
		{"I was asking for Veronica earlier.", "Veronica"},
		{"Sandra, your account is ready.", "Sandra"},
		{"Thank you for holding so long, Walter.", "Walter"},
	}
	for _, c := range cases {
		got := ExtractNames(c.text)
		if !contains(got, c.want) {
			t.Errorf("ExtractNames(%q) = %v, want it to include %q", c.text, got, c.want)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
