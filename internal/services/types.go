package services

import "time"

// NeedCategory is one of the seven fixed need labels. The set is closed and
// never extended at runtime.
type NeedCategory string

const (
	CategorySecurity    NeedCategory = "security"
	CategoryAutonomy    NeedCategory = "autonomy"
	CategoryBelonging   NeedCategory = "belonging"
	CategoryFairness    NeedCategory = "fairness"
	CategoryPlay        NeedCategory = "play"
	CategoryRest        NeedCategory = "rest"
	CategoryRecognition NeedCategory = "recognition"
)

// NeedCategories is the canonical category order. Scoring and gap output
// always follow this order.
var NeedCategories = []NeedCategory{
	CategorySecurity,
	CategoryAutonomy,
	CategoryBelonging,
	CategoryFairness,
	CategoryPlay,
	CategoryRest,
	CategoryRecognition,
}

// NeedItem is a survey question belonging to exactly one category.
type NeedItem struct {
	ID       string       `json:"id"`
	Category NeedCategory `json:"category"`
	Question string       `json:"question"`
}

// NeedResponse is a single answered item. Values are 1..5; out-of-range
// values are a caller bug, not validated here.
type NeedResponse struct {
	ItemID string `json:"item_id"`
	Value  int    `json:"value"`
}

// Perspective says which party an assessment describes.
const (
	PerspectiveSelf             = "self"
	PerspectivePartnerPerceived = "partner_perceived"
)

// NeedAssessment is one submitted response set for a (user, pair, perspective).
// A later submission for the same key replaces the earlier one.
type NeedAssessment struct {
	UserID      string         `json:"user_id"`
	PairID      string         `json:"pair_id"`
	Perspective string         `json:"perspective"`
	Responses   []NeedResponse `json:"responses"`
	CompletedAt time.Time      `json:"completed_at"`
}

// NeedScore is the averaged score for one category, 0 when no responses exist.
type NeedScore struct {
	Category NeedCategory `json:"category"`
	Score    float64      `json:"score"`
}

// NeedGap compares a user's self score against the partner's perceived score.
// Gap is always partner minus self.
type NeedGap struct {
	Category              NeedCategory `json:"category"`
	SelfScore             float64      `json:"self_score"`
	PartnerPerceivedScore float64      `json:"partner_perceived_score"`
	Gap                   float64      `json:"gap"`
}

// NeedInsight is one coaching card returned by the text-generation collaborator.
type NeedInsight struct {
	Type            string       `json:"type"` // self_unmet | partner_unmet | aligned
	Category        NeedCategory `json:"category"`
	Gap             float64      `json:"gap"`
	Script          string       `json:"script"`
	MicroExperiment string       `json:"micro_experiment"`
}

// FourHorsemenFlags are the communication-pattern flags attached to a message.
type FourHorsemenFlags struct {
	Criticism     bool `json:"criticism"`
	Defensiveness bool `json:"defensiveness"`
	Contempt      bool `json:"contempt"`
	Stonewalling  bool `json:"stonewalling"`
	AngerLevel    int  `json:"anger_level"` // 1..5
}

// AlignmentResult is the parsed output of a message-alignment call.
type AlignmentResult struct {
	Aligned    string            `json:"aligned"`
	Flags      FourHorsemenFlags `json:"flags"`
	Suggestion *string           `json:"suggestion"`
	RepairTag  *string           `json:"repair_tag"`
}

// Message is an append-only log entry; never mutated after creation.
type Message struct {
	ID          string            `json:"id"`
	PairID      string            `json:"pair_id"`
	SenderID    string            `json:"sender_id"`
	RawText     string            `json:"raw_text"`
	AlignedText string            `json:"aligned_text"`
	Mood        string            `json:"mood"`
	Intensity   int               `json:"intensity"`
	Flags       FourHorsemenFlags `json:"flags"`
	Suggestion  *string           `json:"suggestion"`
	RepairTag   *string           `json:"repair_tag"`
	Timestamp   time.Time         `json:"timestamp"`
}

// MoodPing is an append-only mood log entry.
type MoodPing struct {
	ID        string    `json:"id"`
	PairID    string    `json:"pair_id"`
	UserID    string    `json:"user_id"`
	MoodEmoji string    `json:"mood"`
	MoodValue string    `json:"mood_value"`
	Intensity int       `json:"intensity"` // 1..5
	Tag       string    `json:"tag,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Pair links two users. The join code is stored only as a bcrypt hash; the
// plaintext code exists only in the create response.
type Pair struct {
	PairID      string    `json:"pair_id"`
	CodeHash    []byte    `json:"-"`
	CreatorID   string    `json:"creator_id"`
	CreatorName string    `json:"creator_name"`
	JoinerID    string    `json:"joiner_id,omitempty"`
	JoinerName  string    `json:"joiner_name,omitempty"`
	Status      string    `json:"status"` // pending | active
	CreatedAt   time.Time `json:"created_at"`
	JoinedAt    time.Time `json:"joined_at"`
}

const (
	PairStatusPending = "pending"
	PairStatusActive  = "active"
)

// RhythmMetrics is a derived snapshot, recomputed from the message log and
// never persisted.
type RhythmMetrics struct {
	PairID            string       `json:"pair_id"`
	TimePeriod        string       `json:"time_period"` // e.g. "2025-W42"
	PositivityRatio   Ratio        `json:"positivity_ratio"`
	RepairRate        float64      `json:"repair_rate"`
	HorsemenIndex     float64      `json:"horsemen_index"`
	BidResponsiveness float64      `json:"bid_responsiveness"`
	BestWindows       []TimeWindow `json:"best_windows"`
	CalculatedAt      time.Time    `json:"calculated_at"`
}

// AuditEntry records a pairing-lifecycle event.
type AuditEntry struct {
	Time   time.Time `json:"time"`
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	Target string    `json:"target"`
	Note   string    `json:"note,omitempty"`
}
