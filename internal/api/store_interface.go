package api

import (
	"time"

	"github.com/relaypair/relay/internal/services"
)

// Store is the full persistence surface. It is a superset of the narrow
// per-service interfaces in the services package, so a single implementation
// backs every service.
type Store interface {
	AddPair(p *services.Pair)
	GetPair(id string) *services.Pair
	ListPendingPairs() []*services.Pair
	UpdatePair(p *services.Pair) bool

	AddMessage(m *services.Message)
	ListMessagesByPair(pairID string, from, to time.Time) []*services.Message

	AddMoodPing(m *services.MoodPing)
	ListMoodPingsByPair(pairID string, from, to time.Time) []*services.MoodPing

	SaveAssessment(a *services.NeedAssessment)
	GetAssessment(pairID, userID, perspective string) *services.NeedAssessment

	AddAudit(e services.AuditEntry)
	ListAudit() []services.AuditEntry
}

var _ Store = (*memoryStore)(nil)
