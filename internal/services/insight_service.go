package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// InsightService assembles the top-ranked gaps plus context signals into an
// insights request and validates the collaborator's reply. A reply without an
// insights array is a hard error: there is no safe default insight to
// fabricate.
type InsightService struct {
	aligner Aligner
}

func NewInsightService(aligner Aligner) *InsightService {
	return &InsightService{aligner: aligner}
}

// InsightRequest carries the gap list and optional context signals.
type InsightRequest struct {
	Gaps           []NeedGap      `json:"gaps"`
	RecentMoods    []string       `json:"recent_moods,omitempty"`
	HorsemenTrends map[string]int `json:"horsemen_trends,omitempty"`
}

// BuildInsightsPrompt formats the user half of an insights request from the
// top gaps and context signals.
func BuildInsightsPrompt(req InsightRequest) string {
	top := TopGaps(req.Gaps, DefaultTopGapCount)
	lines := make([]string, 0, len(top))
	for _, g := range top {
		lines = append(lines, fmt.Sprintf("%s: Your score %.1f, Partner perceived %.1f, Gap %+.1f",
			g.Category, g.SelfScore, g.PartnerPerceivedScore, g.Gap))
	}
	var b strings.Builder
	b.WriteString("Generate 3 personalized insight cards for these relationship need gaps:\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	if len(req.RecentMoods) > 0 {
		b.WriteString("\nRecent mood patterns: ")
		b.WriteString(strings.Join(req.RecentMoods, ", "))
	}
	if len(req.HorsemenTrends) > 0 {
		keys := make([]string, 0, len(req.HorsemenTrends))
		for k := range req.HorsemenTrends {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%d", k, req.HorsemenTrends[k]))
		}
		b.WriteString("\nCommunication patterns detected: ")
		b.WriteString(strings.Join(parts, ", "))
	}
	b.WriteString("\n\nFocus on practical, specific scripts and micro-experiments. Use warm, non-judgmental language.")
	return b.String()
}

// ParseInsightsResult decodes the collaborator's reply. Unlike alignment
// there is no fallback.
func ParseInsightsResult(content string) ([]NeedInsight, error) {
	var payload struct {
		Insights []NeedInsight `json:"insights"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &payload); err != nil {
		return nil, NewBadGatewayError("invalid insights format: " + err.Error())
	}
	if payload.Insights == nil {
		return nil, NewBadGatewayError("insights array missing from response")
	}
	return payload.Insights, nil
}

// Generate runs the full request/validate round trip.
func (s *InsightService) Generate(ctx context.Context, req InsightRequest) ([]NeedInsight, error) {
	if len(req.Gaps) == 0 {
		return nil, NewInvalidError("gaps required")
	}
	if s.aligner == nil {
		return nil, NewBadGatewayError("aligner not configured")
	}
	content, err := s.aligner.Complete(ctx, InsightsSystemPrompt, BuildInsightsPrompt(req))
	if err != nil {
		return nil, NewBadGatewayError("insights generation failed: " + err.Error())
	}
	return ParseInsightsResult(content)
}
