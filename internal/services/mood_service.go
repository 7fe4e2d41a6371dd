package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MoodStore abstracts persistence operations required by MoodService.
type MoodStore interface {
	GetPair(id string) *Pair
	AddMoodPing(m *MoodPing)
	ListMoodPingsByPair(pairID string, from, to time.Time) []*MoodPing
}

const defaultMoodWindowDays = 7

type MoodService struct {
	store MoodStore
	now   func() time.Time
	idGen func() string
}

func NewMoodService(store MoodStore) *MoodService {
	return &MoodService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: uuid.NewString,
	}
}

// LogInput is the sanitized handler input for a mood ping.
type LogInput struct {
	PairID    string
	UserID    string
	MoodEmoji string
	MoodValue string
	Intensity int
	Tag       string
}

// Log validates and appends a mood ping.
func (s *MoodService) Log(in LogInput) (*MoodPing, error) {
	if strings.TrimSpace(in.PairID) == "" || strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.MoodEmoji) == "" {
		return nil, NewInvalidError("pair_id, user_id and mood required")
	}
	if in.Intensity < 1 || in.Intensity > 5 {
		return nil, NewInvalidError("intensity must be between 1 and 5")
	}
	if s.store.GetPair(in.PairID) == nil {
		return nil, NewNotFoundError("pair not found")
	}
	ping := &MoodPing{
		ID:        s.idGen(),
		PairID:    in.PairID,
		UserID:    in.UserID,
		MoodEmoji: in.MoodEmoji,
		MoodValue: in.MoodValue,
		Intensity: in.Intensity,
		Tag:       in.Tag,
		Timestamp: s.now(),
	}
	s.store.AddMoodPing(ping)
	return ping, nil
}

// List returns the pair's mood pings for the last days (default 7), ordered
// by timestamp.
func (s *MoodService) List(pairID string, days int) ([]*MoodPing, error) {
	if strings.TrimSpace(pairID) == "" {
		return nil, NewInvalidError("pair_id required")
	}
	if days <= 0 {
		days = defaultMoodWindowDays
	}
	to := s.now()
	from := to.AddDate(0, 0, -days)
	return s.store.ListMoodPingsByPair(pairID, from, to), nil
}
