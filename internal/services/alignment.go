package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Aligner is the text-generation collaborator. It takes a system and user
// prompt and returns the raw completion text. Transport, retries and
// credentials live behind this interface, never in the core.
type Aligner interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// BuildAlignmentPrompt formats the user half of an alignment request.
func BuildAlignmentPrompt(text, mood string, intensity int) string {
	return fmt.Sprintf("Original message: %q\nMood: %s\nIntensity: %d/5", text, mood, intensity)
}

// ParseAlignmentResult decodes the collaborator's JSON reply. A malformed
// reply is recoverable: the raw text (stripped of markdown code fences)
// becomes the aligned message, flags default to all-false with anger_level
// copied from the input intensity.
func ParseAlignmentResult(content string, intensity int) AlignmentResult {
	var result AlignmentResult
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &result); err == nil && result.Aligned != "" {
		return result
	}
	return AlignmentResult{
		Aligned: stripCodeFence(content),
		Flags:   FourHorsemenFlags{AngerLevel: intensity},
	}
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag line (e.g. "json")
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
