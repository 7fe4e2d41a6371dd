package services

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func testSigner(userID, pairID, name string, _ time.Duration) (string, error) {
	return "token:" + userID + ":" + pairID, nil
}

func TestPairServiceCreateAndJoin(t *testing.T) {
	store := newStubStore()
	svc := NewPairService(store, testSigner)

	created, err := svc.Create("Alex")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(created.Code) {
		t.Fatalf("code should be 6 digits, got %q", created.Code)
	}
	if created.Status != PairStatusPending || created.Token == "" {
		t.Fatalf("unexpected create result: %+v", created)
	}
	stored := store.GetPair(created.PairID)
	if stored == nil || len(stored.CodeHash) == 0 {
		t.Fatalf("pair not stored with code hash")
	}
	if string(stored.CodeHash) == created.Code {
		t.Fatalf("plaintext code must not be stored")
	}

	joined, err := svc.Join(created.Code, "Sam")
	if err != nil {
		t.Fatalf("Join error: %v", err)
	}
	if joined.PairID != created.PairID || joined.Status != PairStatusActive {
		t.Fatalf("unexpected join result: %+v", joined)
	}
	if store.GetPair(created.PairID).JoinerName != "Sam" {
		t.Fatalf("joiner not recorded")
	}
	if len(store.audit) != 2 {
		t.Fatalf("expected create+join audit entries, got %d", len(store.audit))
	}

	// second join must fail: the pair is no longer pending
	if _, err := svc.Join(created.Code, "Robin"); err == nil {
		t.Fatalf("expected error joining an active pair")
	}
}

func TestPairServiceJoinValidation(t *testing.T) {
	store := newStubStore()
	svc := NewPairService(store, testSigner)

	if _, err := svc.Join("12345", "Sam"); err == nil {
		t.Fatalf("expected format error for short code")
	}
	if _, err := svc.Join("abcdef", "Sam"); err == nil {
		t.Fatalf("expected format error for non-digit code")
	}
	if _, err := svc.Join("123456", "Sam"); err == nil {
		t.Fatalf("expected not-found for unknown code")
	}
	if _, err := svc.Join("123456", "S"); err == nil {
		t.Fatalf("expected name length error")
	}
}

func TestPairServiceCreateValidation(t *testing.T) {
	svc := NewPairService(newStubStore(), testSigner)
	for _, name := range []string{"", "A", "  ", strings.Repeat("x", 31)} {
		if _, err := svc.Create(name); err == nil {
			t.Fatalf("expected name error for %q", name)
		}
	}
}

func TestPairServiceGet(t *testing.T) {
	store := newStubStore()
	activeStubPair(store, "P1")
	svc := NewPairService(store, testSigner)
	if _, err := svc.Get("P1"); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if _, err := svc.Get("missing"); err == nil {
		t.Fatalf("expected not-found")
	}
}
