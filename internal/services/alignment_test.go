package services

import (
	"strings"
	"testing"
)

func TestBuildAlignmentPrompt(t *testing.T) {
	got := BuildAlignmentPrompt("you never listen", "frustrated", 4)
	want := "Original message: \"you never listen\"\nMood: frustrated\nIntensity: 4/5"
	if got != want {
		t.Fatalf("prompt mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestParseAlignmentResultValidJSON(t *testing.T) {
	content := `{"aligned":"I feel unheard when plans change.","flags":{"criticism":true,"defensiveness":false,"contempt":false,"stonewalling":false,"anger_level":3},"suggestion":"try a time-out","repair_tag":null}`
	got := ParseAlignmentResult(content, 5)
	if got.Aligned != "I feel unheard when plans change." {
		t.Fatalf("aligned = %q", got.Aligned)
	}
	if !got.Flags.Criticism || got.Flags.AngerLevel != 3 {
		t.Fatalf("flags not parsed: %+v", got.Flags)
	}
	if got.Suggestion == nil || *got.Suggestion != "try a time-out" {
		t.Fatalf("suggestion not parsed: %v", got.Suggestion)
	}
	if got.RepairTag != nil {
		t.Fatalf("null repair_tag should stay nil")
	}
}

func TestParseAlignmentResultFencedJSON(t *testing.T) {
	content := "```json\n{\"aligned\":\"Let's talk tonight.\",\"flags\":{\"anger_level\":1}}\n```"
	got := ParseAlignmentResult(content, 3)
	if got.Aligned != "Let's talk tonight." {
		t.Fatalf("fenced JSON should parse, got aligned = %q", got.Aligned)
	}
}

func TestParseAlignmentResultFallback(t *testing.T) {
	got := ParseAlignmentResult("```\nI hear you and I want to fix this.\n```", 4)
	if got.Aligned != "I hear you and I want to fix this." {
		t.Fatalf("fallback should strip fences, got %q", got.Aligned)
	}
	if got.Flags.Criticism || got.Flags.Defensiveness || got.Flags.Contempt || got.Flags.Stonewalling {
		t.Fatalf("fallback flags should be all false: %+v", got.Flags)
	}
	if got.Flags.AngerLevel != 4 {
		t.Fatalf("fallback anger_level should copy intensity, got %d", got.Flags.AngerLevel)
	}
	if got.Suggestion != nil || got.RepairTag != nil {
		t.Fatalf("fallback suggestion/repair_tag should be nil")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain text", "plain text"},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\nhello\n```", "hello"},
		{"  ```json\n{}\n```  ", "{}"},
	}
	for _, c := range cases {
		if got := stripCodeFence(c.in); got != c.want {
			t.Fatalf("stripCodeFence(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if got := stripCodeFence("no fence at all"); strings.Contains(got, "`") {
		t.Fatalf("unexpected backticks: %q", got)
	}
}
