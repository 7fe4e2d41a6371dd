package api

import (
	"sort"
	"sync"
	"time"

	"github.com/relaypair/relay/internal/services"
)

type memoryStore struct {
	mu          sync.RWMutex
	pairs       map[string]*services.Pair
	messages    []*services.Message
	moods       []*services.MoodPing
	assessments map[string]*services.NeedAssessment
	audit       []services.AuditEntry
}

// NewMemoryStore builds the in-process Store used when no sqlite path is
// configured. Data does not survive a restart.
func NewMemoryStore() Store { return newMemoryStore() }

func newMemoryStore() *memoryStore {
	return &memoryStore{
		pairs:       map[string]*services.Pair{},
		messages:    []*services.Message{},
		moods:       []*services.MoodPing{},
		assessments: map[string]*services.NeedAssessment{},
		audit:       []services.AuditEntry{},
	}
}

func (s *memoryStore) AddPair(p *services.Pair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[p.PairID] = p
}

func (s *memoryStore) GetPair(id string) *services.Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pairs[id]
}

func (s *memoryStore) ListPendingPairs() []*services.Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Pair{}
	for _, p := range s.pairs {
		if p.Status == services.PairStatusPending {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PairID < out[j].PairID })
	return out
}

func (s *memoryStore) UpdatePair(p *services.Pair) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pairs[p.PairID]; !ok {
		return false
	}
	s.pairs[p.PairID] = p
	return true
}

func (s *memoryStore) AddMessage(m *services.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

func (s *memoryStore) ListMessagesByPair(pairID string, from, to time.Time) []*services.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Message{}
	for _, m := range s.messages {
		if m.PairID != pairID || !inRange(m.Timestamp, from, to) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func (s *memoryStore) AddMoodPing(m *services.MoodPing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moods = append(s.moods, m)
}

func (s *memoryStore) ListMoodPingsByPair(pairID string, from, to time.Time) []*services.MoodPing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.MoodPing{}
	for _, m := range s.moods {
		if m.PairID != pairID || !inRange(m.Timestamp, from, to) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func (s *memoryStore) SaveAssessment(a *services.NeedAssessment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[assessmentKey(a.PairID, a.UserID, a.Perspective)] = a
}

func (s *memoryStore) GetAssessment(pairID, userID, perspective string) *services.NeedAssessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assessments[assessmentKey(pairID, userID, perspective)]
}

func (s *memoryStore) AddAudit(e services.AuditEntry) {
	s.mu.Lock()
	s.audit = append(s.audit, e)
	s.mu.Unlock()
}

func (s *memoryStore) ListAudit() []services.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]services.AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}

func assessmentKey(pairID, userID, perspective string) string {
	return pairID + "/" + userID + "/" + perspective
}

func inRange(ts, from, to time.Time) bool {
	if !from.IsZero() && ts.Before(from) {
		return false
	}
	if !to.IsZero() && ts.After(to) {
		return false
	}
	return true
}
