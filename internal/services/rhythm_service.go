package services

import (
	"sort"
	"strings"
	"time"
)

// RhythmStore abstracts the message log read required by RhythmService.
type RhythmStore interface {
	GetPair(id string) *Pair
	ListMessagesByPair(pairID string, from, to time.Time) []*Message
}

const defaultRhythmWindowDays = 30

// RhythmService recomputes a pair's communication-health snapshot from the
// message log. Nothing here is persisted.
type RhythmService struct {
	store RhythmStore
	now   func() time.Time
}

func NewRhythmService(store RhythmStore) *RhythmService {
	return &RhythmService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Compute derives RhythmMetrics over the pair's last days of messages
// (default 30).
func (s *RhythmService) Compute(pairID string, days int) (*RhythmMetrics, error) {
	if strings.TrimSpace(pairID) == "" {
		return nil, NewInvalidError("pair_id required")
	}
	if s.store.GetPair(pairID) == nil {
		return nil, NewNotFoundError("pair not found")
	}
	if days <= 0 {
		days = defaultRhythmWindowDays
	}
	now := s.now()
	messages := s.store.ListMessagesByPair(pairID, now.AddDate(0, 0, -days), now)

	period := WeekIdentifier(now)
	if len(messages) > 0 {
		period = WeekIdentifier(messages[len(messages)-1].Timestamp)
	}

	return &RhythmMetrics{
		PairID:          pairID,
		TimePeriod:      period,
		PositivityRatio: PositivityRatio(messages),
		RepairRate:      RepairRate(messages),
		HorsemenIndex:   HorsemenIndex(messages, DefaultHorsemenPeriod),
		// No bid/turn linkage exists in the data model yet, so
		// responsiveness cannot be measured. Fixed 0 until it does.
		BidResponsiveness: 0,
		BestWindows:       BestWindows(messages, 2),
		CalculatedAt:      now,
	}, nil
}

// BestWindows ranks day parts by how many positive messages land in each and
// returns the top n. Day parts with no positive messages are skipped; ties
// keep chronological day-part order.
func BestWindows(messages []*Message, n int) []TimeWindow {
	counts := make(map[TimeWindow]int)
	for _, m := range messages {
		if positiveMessage(m) {
			counts[TimeWindowOf(m.Timestamp)]++
		}
	}
	windows := make([]TimeWindow, 0, len(counts))
	for _, w := range TimeWindows {
		if counts[w] > 0 {
			windows = append(windows, w)
		}
	}
	sort.SliceStable(windows, func(i, j int) bool {
		return counts[windows[i]] > counts[windows[j]]
	})
	if n > len(windows) {
		n = len(windows)
	}
	if n < 0 {
		n = 0
	}
	return windows[:n]
}
