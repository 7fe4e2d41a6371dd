package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MessageStore abstracts persistence operations required by MessageService.
type MessageStore interface {
	GetPair(id string) *Pair
	AddMessage(m *Message)
	ListMessagesByPair(pairID string, from, to time.Time) []*Message
}

// MessageService runs the align-then-persist workflow.
type MessageService struct {
	store   MessageStore
	aligner Aligner
	now     func() time.Time
	idGen   func() string
}

func NewMessageService(store MessageStore, aligner Aligner) *MessageService {
	return &MessageService{
		store:   store,
		aligner: aligner,
		now:     func() time.Time { return time.Now().UTC() },
		idGen:   uuid.NewString,
	}
}

// AlignInput is the sanitized handler input for sending a message.
type AlignInput struct {
	PairID    string
	SenderID  string
	Text      string
	Mood      string
	Intensity int
}

// Align rewrites the raw text through the collaborator, falls back locally on
// a malformed reply, and appends the resulting message to the pair's log.
func (s *MessageService) Align(ctx context.Context, in AlignInput) (*Message, error) {
	if strings.TrimSpace(in.Text) == "" || strings.TrimSpace(in.Mood) == "" {
		return nil, NewInvalidError("text and mood required")
	}
	if in.Intensity < 1 || in.Intensity > 5 {
		return nil, NewInvalidError("intensity must be between 1 and 5")
	}
	pair := s.store.GetPair(in.PairID)
	if pair == nil {
		return nil, NewNotFoundError("pair not found")
	}
	if pair.Status != PairStatusActive {
		return nil, NewConflictError("pair is not active")
	}
	if s.aligner == nil {
		return nil, NewBadGatewayError("aligner not configured")
	}

	content, err := s.aligner.Complete(ctx, AlignmentSystemPrompt, BuildAlignmentPrompt(in.Text, in.Mood, in.Intensity))
	if err != nil {
		return nil, NewBadGatewayError("alignment failed: " + err.Error())
	}
	result := ParseAlignmentResult(content, in.Intensity)

	msg := &Message{
		ID:          s.idGen(),
		PairID:      in.PairID,
		SenderID:    in.SenderID,
		RawText:     in.Text,
		AlignedText: result.Aligned,
		Mood:        in.Mood,
		Intensity:   in.Intensity,
		Flags:       result.Flags,
		Suggestion:  result.Suggestion,
		RepairTag:   result.RepairTag,
		Timestamp:   s.now(),
	}
	s.store.AddMessage(msg)
	return msg, nil
}

// List returns the pair's messages ordered by timestamp, optionally limited
// to the last days.
func (s *MessageService) List(pairID string, days int) ([]*Message, error) {
	if strings.TrimSpace(pairID) == "" {
		return nil, NewInvalidError("pair_id required")
	}
	from := time.Time{}
	to := s.now()
	if days > 0 {
		from = to.AddDate(0, 0, -days)
	}
	return s.store.ListMessagesByPair(pairID, from, to), nil
}
