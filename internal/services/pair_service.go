package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PairStore abstracts persistence operations required by PairService.
type PairStore interface {
	AddPair(p *Pair)
	GetPair(id string) *Pair
	ListPendingPairs() []*Pair
	UpdatePair(p *Pair) bool
	AddAudit(e AuditEntry)
}

// TokenSigner mints a session token for a pair member.
type TokenSigner func(userID, pairID, name string, ttl time.Duration) (string, error)

type PairService struct {
	store     PairStore
	now       func() time.Time
	idGen     func(n int) string
	codeGen   func() (string, error)
	signToken TokenSigner
	tokenTTL  time.Duration
}

func NewPairService(store PairStore, signer TokenSigner) *PairService {
	return &PairService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		idGen:     shortID,
		codeGen:   generatePairCode,
		signToken: signer,
		tokenTTL:  30 * 24 * time.Hour,
	}
}

// PairResult is returned from Create and Join. Code is only populated on
// Create; it is never recoverable afterwards.
type PairResult struct {
	PairID string `json:"pair_id"`
	UserID string `json:"user_id"`
	Code   string `json:"code,omitempty"`
	Status string `json:"status"`
	Token  string `json:"token"`
}

var pairCodeRe = regexp.MustCompile(`^\d{6}$`)

// Create starts a pending pair and returns its one-time 6-digit join code.
// Only the bcrypt hash of the code is stored.
func (s *PairService) Create(creatorName string) (*PairResult, error) {
	creatorName = strings.TrimSpace(creatorName)
	if !validName(creatorName) {
		return nil, NewInvalidError("name must be 2-30 characters")
	}
	code, err := s.codeGen()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	pair := &Pair{
		PairID:      s.idGen(8),
		CodeHash:    hash,
		CreatorID:   s.idGen(12),
		CreatorName: creatorName,
		Status:      PairStatusPending,
		CreatedAt:   s.now(),
	}
	s.store.AddPair(pair)
	s.store.AddAudit(AuditEntry{Time: pair.CreatedAt, Actor: pair.CreatorID, Action: "pair.create", Target: pair.PairID})

	token, err := s.sign(pair.CreatorID, pair.PairID, creatorName)
	if err != nil {
		return nil, err
	}
	return &PairResult{PairID: pair.PairID, UserID: pair.CreatorID, Code: code, Status: pair.Status, Token: token}, nil
}

// Join redeems a pending pair's code and activates the pair.
func (s *PairService) Join(code, joinerName string) (*PairResult, error) {
	joinerName = strings.TrimSpace(joinerName)
	if !validName(joinerName) {
		return nil, NewInvalidError("name must be 2-30 characters")
	}
	code = strings.TrimSpace(code)
	if !pairCodeRe.MatchString(code) {
		return nil, NewInvalidError("invalid pair code format")
	}

	var pair *Pair
	for _, p := range s.store.ListPendingPairs() {
		if bcrypt.CompareHashAndPassword(p.CodeHash, []byte(code)) == nil {
			pair = p
			break
		}
	}
	if pair == nil {
		return nil, NewNotFoundError("pair not found or expired")
	}
	if pair.Status == PairStatusActive {
		return nil, NewConflictError("pair already has two members")
	}

	pair.JoinerID = s.idGen(12)
	pair.JoinerName = joinerName
	pair.Status = PairStatusActive
	pair.JoinedAt = s.now()
	if !s.store.UpdatePair(pair) {
		return nil, NewConflictError("pair could not be updated")
	}
	s.store.AddAudit(AuditEntry{Time: pair.JoinedAt, Actor: pair.JoinerID, Action: "pair.join", Target: pair.PairID})

	token, err := s.sign(pair.JoinerID, pair.PairID, joinerName)
	if err != nil {
		return nil, err
	}
	return &PairResult{PairID: pair.PairID, UserID: pair.JoinerID, Status: pair.Status, Token: token}, nil
}

// Get returns a pair without its code hash.
func (s *PairService) Get(pairID string) (*Pair, error) {
	p := s.store.GetPair(pairID)
	if p == nil {
		return nil, NewNotFoundError("pair not found")
	}
	return p, nil
}

func (s *PairService) sign(userID, pairID, name string) (string, error) {
	if s.signToken == nil {
		return "", NewInvalidError("token signer not configured")
	}
	return s.signToken(userID, pairID, name, s.tokenTTL)
}

func validName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= 2 && n <= 30
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

func generatePairCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
