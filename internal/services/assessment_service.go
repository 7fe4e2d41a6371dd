package services

import (
	"strings"
	"time"
)

// AssessmentStore abstracts persistence operations required by
// AssessmentService. The latest submission per (pair, user, perspective)
// replaces any earlier one.
type AssessmentStore interface {
	GetPair(id string) *Pair
	SaveAssessment(a *NeedAssessment)
	GetAssessment(pairID, userID, perspective string) *NeedAssessment
}

type AssessmentService struct {
	store AssessmentStore
	now   func() time.Time
}

func NewAssessmentService(store AssessmentStore) *AssessmentService {
	return &AssessmentService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a response set for one perspective and returns its category
// scores.
func (s *AssessmentService) Submit(pairID, userID, perspective string, responses []NeedResponse) ([]NeedScore, error) {
	if strings.TrimSpace(pairID) == "" || strings.TrimSpace(userID) == "" {
		return nil, NewInvalidError("pair_id and user_id required")
	}
	if perspective != PerspectiveSelf && perspective != PerspectivePartnerPerceived {
		return nil, NewInvalidError("perspective must be self or partner_perceived")
	}
	if len(responses) == 0 {
		return nil, NewInvalidError("responses required")
	}
	if s.store.GetPair(pairID) == nil {
		return nil, NewNotFoundError("pair not found")
	}
	s.store.SaveAssessment(&NeedAssessment{
		UserID:      userID,
		PairID:      pairID,
		Perspective: perspective,
		Responses:   responses,
		CompletedAt: s.now(),
	})
	return ScoreByCategory(responses), nil
}

// Gaps compares the user's self assessment against their partner_perceived
// assessment. Both must exist.
func (s *AssessmentService) Gaps(pairID, userID string) ([]NeedGap, error) {
	if strings.TrimSpace(pairID) == "" || strings.TrimSpace(userID) == "" {
		return nil, NewInvalidError("pair_id and user_id required")
	}
	self := s.store.GetAssessment(pairID, userID, PerspectiveSelf)
	if self == nil {
		return nil, NewNotFoundError("self assessment not completed")
	}
	partner := s.store.GetAssessment(pairID, userID, PerspectivePartnerPerceived)
	if partner == nil {
		return nil, NewNotFoundError("partner_perceived assessment not completed")
	}
	return ComputeGaps(ScoreByCategory(self.Responses), ScoreByCategory(partner.Responses)), nil
}
