package services

import "sort"

// ScoreByCategory reduces a response set to one averaged score per category.
// Responses referencing unknown item ids are ignored. Two responses for the
// same item id keep only the last value seen. The result always holds exactly
// the seven canonical categories in canonical order; a category with no
// responses scores 0.
func ScoreByCategory(responses []NeedResponse) []NeedScore {
	// Dedup first so a re-answered item contributes a single value.
	latest := make(map[string]int, len(responses))
	for _, r := range responses {
		if _, known := itemCategories[r.ItemID]; !known {
			continue
		}
		latest[r.ItemID] = r.Value
	}

	sums := make(map[NeedCategory]int, len(NeedCategories))
	counts := make(map[NeedCategory]int, len(NeedCategories))
	for itemID, value := range latest {
		cat := itemCategories[itemID]
		sums[cat] += value
		counts[cat]++
	}

	out := make([]NeedScore, 0, len(NeedCategories))
	for _, cat := range NeedCategories {
		score := 0.0
		if n := counts[cat]; n > 0 {
			score = float64(sums[cat]) / float64(n)
		}
		out = append(out, NeedScore{Category: cat, Score: score})
	}
	return out
}

// ComputeGaps pairs each self score with the matching partner-perceived score.
// A category absent from partner defaults to 0; output order mirrors self.
func ComputeGaps(self, partner []NeedScore) []NeedGap {
	partnerByCat := make(map[NeedCategory]float64, len(partner))
	for _, p := range partner {
		partnerByCat[p.Category] = p.Score
	}
	out := make([]NeedGap, 0, len(self))
	for _, s := range self {
		p := partnerByCat[s.Category]
		out = append(out, NeedGap{
			Category:              s.Category,
			SelfScore:             s.Score,
			PartnerPerceivedScore: p,
			Gap:                   p - s.Score,
		})
	}
	return out
}

// DefaultTopGapCount is how many gaps feed the insight prompt.
const DefaultTopGapCount = 3

// TopGaps returns the n gaps with the largest magnitude, descending by |gap|,
// ties keeping original order. The input slice is not modified.
func TopGaps(gaps []NeedGap, n int) []NeedGap {
	sorted := append([]NeedGap(nil), gaps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return abs(sorted[i].Gap) > abs(sorted[j].Gap)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	if n < 0 {
		n = 0
	}
	return sorted[:n]
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
