package services

import (
	"encoding/json"
	"math"
	"strings"
)

// DefaultHorsemenPeriod is the message window for the horsemen index.
const DefaultHorsemenPeriod = 100

// HorsemenIndex scores the density of criticism/defensiveness/contempt/
// stonewalling flags over the last period messages, scaled to [0,100].
// A single message can contribute 0 to 4 flags. Empty input scores 0.
func HorsemenIndex(messages []*Message, period int) float64 {
	if len(messages) == 0 {
		return 0
	}
	if period <= 0 {
		period = DefaultHorsemenPeriod
	}
	window := messages
	if len(window) > period {
		window = window[len(window)-period:]
	}
	flagCount := 0
	for _, m := range window {
		if m.Flags.Criticism {
			flagCount++
		}
		if m.Flags.Defensiveness {
			flagCount++
		}
		if m.Flags.Contempt {
			flagCount++
		}
		if m.Flags.Stonewalling {
			flagCount++
		}
	}
	return float64(flagCount) / float64(len(window)) * 100
}

// Ratio is a non-negative ratio whose denominator may be zero. Unbounded is
// set instead of letting floating-point infinity leak into arithmetic.
type Ratio struct {
	Value     float64 `json:"value"`
	Unbounded bool    `json:"unbounded"`
}

// Float converts to a plain float64, mapping the unbounded case to +Inf.
func (r Ratio) Float() float64 {
	if r.Unbounded {
		return math.Inf(1)
	}
	return r.Value
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.Unbounded {
		return []byte(`{"value":null,"unbounded":true}`), nil
	}
	type plain Ratio
	return json.Marshal(plain(r))
}

var positivityPhrases = []string{"thank", "appreciate", "love"}

// positiveMessage reports whether a message counts toward the positive side of
// the positivity ratio: repair-tagged, or aligned text containing one of the
// appreciation substrings (case-insensitive).
func positiveMessage(m *Message) bool {
	if m.RepairTag != nil && *m.RepairTag != "" {
		return true
	}
	lowered := strings.ToLower(m.AlignedText)
	for _, p := range positivityPhrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

func negativeMessage(m *Message) bool {
	return m.Flags.Criticism || m.Flags.Contempt || m.Flags.AngerLevel >= 4
}

// PositivityRatio is positive/negative message counts. A message can count on
// both sides (e.g. an apology sent with high anger); that double counting
// matches the observed product behavior and is intentional.
func PositivityRatio(messages []*Message) Ratio {
	positive, negative := 0, 0
	for _, m := range messages {
		if positiveMessage(m) {
			positive++
		}
		if negativeMessage(m) {
			negative++
		}
	}
	if negative == 0 {
		if positive > 0 {
			return Ratio{Unbounded: true}
		}
		return Ratio{}
	}
	return Ratio{Value: float64(positive) / float64(negative)}
}

// HorsemenTrends counts each horseman flag separately over the last period
// messages, for use as insight-prompt context.
func HorsemenTrends(messages []*Message, period int) map[string]int {
	if period <= 0 {
		period = DefaultHorsemenPeriod
	}
	window := messages
	if len(window) > period {
		window = window[len(window)-period:]
	}
	counts := map[string]int{}
	for _, m := range window {
		if m.Flags.Criticism {
			counts["criticism"]++
		}
		if m.Flags.Defensiveness {
			counts["defensiveness"]++
		}
		if m.Flags.Contempt {
			counts["contempt"]++
		}
		if m.Flags.Stonewalling {
			counts["stonewalling"]++
		}
	}
	return counts
}

// RepairDetector reports the fraction of repair-tagged messages that receive
// subsequent acknowledgment.
type RepairDetector interface {
	Rate(messages []*Message) float64
}

// placeholderRepairDetector stands in until the data model records reply
// linkage. It returns a fixed 0.7 whenever any repair-tagged message exists.
// TODO: replace once message threading lands and acknowledgments are real.
type placeholderRepairDetector struct{}

const placeholderRepairRate = 0.7

func (placeholderRepairDetector) Rate(messages []*Message) float64 {
	for _, m := range messages {
		if m.RepairTag != nil && *m.RepairTag != "" {
			return placeholderRepairRate
		}
	}
	return 0
}

// DefaultRepairDetector is the active implementation; swap it for a real one
// when acknowledgment data exists.
var DefaultRepairDetector RepairDetector = placeholderRepairDetector{}

// RepairRate computes the repair-acknowledgment rate via DefaultRepairDetector.
func RepairRate(messages []*Message) float64 {
	return DefaultRepairDetector.Rate(messages)
}
