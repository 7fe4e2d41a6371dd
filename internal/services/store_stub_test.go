package services

import "time"

// stubStore is an in-memory test double satisfying every narrow store
// interface the services need.
type stubStore struct {
	pairs       map[string]*Pair
	messages    []*Message
	moods       []*MoodPing
	assessments map[string]*NeedAssessment
	audit       []AuditEntry
}

func newStubStore() *stubStore {
	return &stubStore{
		pairs:       map[string]*Pair{},
		assessments: map[string]*NeedAssessment{},
	}
}

func (s *stubStore) AddPair(p *Pair) { s.pairs[p.PairID] = p }

func (s *stubStore) GetPair(id string) *Pair { return s.pairs[id] }

func (s *stubStore) ListPendingPairs() []*Pair {
	out := []*Pair{}
	for _, p := range s.pairs {
		if p.Status == PairStatusPending {
			out = append(out, p)
		}
	}
	return out
}

func (s *stubStore) UpdatePair(p *Pair) bool {
	if _, ok := s.pairs[p.PairID]; !ok {
		return false
	}
	s.pairs[p.PairID] = p
	return true
}

func (s *stubStore) AddMessage(m *Message) { s.messages = append(s.messages, m) }

func (s *stubStore) ListMessagesByPair(pairID string, from, to time.Time) []*Message {
	out := []*Message{}
	for _, m := range s.messages {
		if m.PairID != pairID {
			continue
		}
		if !from.IsZero() && m.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && m.Timestamp.After(to) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *stubStore) AddMoodPing(m *MoodPing) { s.moods = append(s.moods, m) }

func (s *stubStore) ListMoodPingsByPair(pairID string, from, to time.Time) []*MoodPing {
	out := []*MoodPing{}
	for _, m := range s.moods {
		if m.PairID != pairID {
			continue
		}
		if !from.IsZero() && m.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && m.Timestamp.After(to) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *stubStore) SaveAssessment(a *NeedAssessment) {
	s.assessments[a.PairID+"/"+a.UserID+"/"+a.Perspective] = a
}

func (s *stubStore) GetAssessment(pairID, userID, perspective string) *NeedAssessment {
	return s.assessments[pairID+"/"+userID+"/"+perspective]
}

func (s *stubStore) AddAudit(e AuditEntry) { s.audit = append(s.audit, e) }

func activeStubPair(s *stubStore, pairID string) *Pair {
	p := &Pair{PairID: pairID, CreatorID: "u-creator", JoinerID: "u-joiner", Status: PairStatusActive, CreatedAt: time.Now().UTC()}
	s.AddPair(p)
	return p
}
